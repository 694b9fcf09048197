package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alnah/go-chat2doc"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeService records the last input and returns canned results.
type fakeService struct {
	mu     sync.Mutex
	input  chat2doc.Input
	result *chat2doc.ConvertResult
	err    error
	panic  string
}

func (f *fakeService) Convert(_ context.Context, input chat2doc.Input) (*chat2doc.ConvertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panic != "" {
		panic(f.panic)
	}
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &chat2doc.ConvertResult{
		Data:        []byte("%PDF-fake"),
		Format:      input.Format,
		ContentType: input.Format.ContentType(),
		FileName:    "conversation_20260221_192916." + input.Format.Extension(),
	}, nil
}

func (f *fakeService) lastInput() chat2doc.Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

type upload struct {
	fileName string
	content  []byte
	fields   map[string]string
	noFile   bool
}

func newUploadRequest(t *testing.T, u upload) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if !u.noFile {
		part, err := w.CreateFormFile(fieldFile, u.fileName)
		require.NoError(t, err)
		_, err = part.Write(u.content)
		require.NoError(t, err)
	}
	for k, v := range u.fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/convert", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestIndex(t *testing.T) {
	t.Parallel()

	s := New(&fakeService{}, nil, Config{Languages: []string{"en", "it"}, Version: "v1.0.0"})
	rec := serve(t, s, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got indexResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "chat2doc", got.Name)
	assert.Equal(t, "v1.0.0", got.Version)
	assert.Equal(t, []string{"en", "it"}, got.Languages)
	assert.Equal(t, []string{"pdf", "html", "markdown", "text"}, got.Formats)
	assert.Equal(t, "pdf", got.DefaultFormat)
	assert.Equal(t, int64(DefaultMaxUploadBytes), got.MaxUploadBytes)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rec := serve(t, New(&fakeService{}, nil, Config{}), httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSample(t *testing.T) {
	t.Parallel()

	rec := serve(t, New(&fakeService{}, nil, Config{}), httptest.NewRequest(http.MethodGet, "/sample", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	disposition, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Equal(t, chat2doc.SampleFileName, params["filename"])
	assert.Equal(t, chat2doc.SamplePayload(), rec.Body.Bytes())
}

func TestConvert_FormOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fields map[string]string
		want   chat2doc.Options
		format chat2doc.Format
	}{
		{
			name:   "nothing checked",
			fields: nil,
			want:   chat2doc.Options{Language: "it"},
			format: chat2doc.FormatPDF,
		},
		{
			name: "all checked",
			fields: map[string]string{
				fieldShowDate: "on", fieldShowDivider: "on", fieldShowModel: "on",
				fieldShowPrompt: "on", fieldShowNumbers: "on",
			},
			want: chat2doc.Options{
				ShowDate: true, ShowDivider: true, ShowModel: true,
				ShowTimings: true, ShowNumbers: true, Language: "it",
			},
			format: chat2doc.FormatPDF,
		},
		{
			name:   "checkbox needs on",
			fields: map[string]string{fieldShowDate: "true", fieldShowModel: "on"},
			want:   chat2doc.Options{ShowModel: true, Language: "it"},
			format: chat2doc.FormatPDF,
		},
		{
			name: "labels language and format",
			fields: map[string]string{
				fieldUserName: "  Alice ", fieldAssistantName: "Bot",
				fieldLanguage: "en", fieldFormat: "md",
			},
			want:   chat2doc.Options{UserLabel: "Alice", AssistantLabel: "Bot", Language: "en"},
			format: chat2doc.FormatMarkdown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &fakeService{}
			s := New(svc, nil, Config{})
			rec := serve(t, s, newUploadRequest(t, upload{
				fileName: "chat.json",
				content:  chat2doc.SamplePayload(),
				fields:   tt.fields,
			}))

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			in := svc.lastInput()
			assert.Equal(t, tt.want, in.Options)
			assert.Equal(t, tt.format, in.Format)
			assert.Equal(t, chat2doc.SamplePayload(), in.Payload)
			assert.Equal(t, tt.format.ContentType(), rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Header().Get("Content-Disposition"), "conversation_20260221_192916."+tt.format.Extension())
		})
	}
}

func TestConvert_DefaultFormatFromConfig(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	s := New(svc, nil, Config{DefaultFormat: chat2doc.FormatHTML})
	rec := serve(t, s, newUploadRequest(t, upload{fileName: "a.JSON", content: []byte("{}")}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, chat2doc.FormatHTML, svc.lastInput().Format)
}

func TestConvert_RequestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		upload     upload
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing file",
			upload:     upload{noFile: true, fields: map[string]string{fieldLanguage: "en"}},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "no file uploaded",
		},
		{
			name:       "wrong extension",
			upload:     upload{fileName: "chat.txt", content: []byte("{}")},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "only .json files are accepted",
		},
		{
			name:       "no extension",
			upload:     upload{fileName: "chat", content: []byte("{}")},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "only .json files are accepted",
		},
		{
			name: "unknown format",
			upload: upload{
				fileName: "chat.json", content: []byte("{}"),
				fields: map[string]string{fieldFormat: "docx"},
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "unsupported output format",
		},
		{
			name: "label too long",
			upload: upload{
				fileName: "chat.json", content: []byte("{}"),
				fields: map[string]string{fieldUserName: strings.Repeat("x", maxLabelFormLength+1)},
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "labels must be at most",
		},
		{
			name: "language too long",
			upload: upload{
				fileName: "chat.json", content: []byte("{}"),
				fields: map[string]string{fieldLanguage: strings.Repeat("x", maxLanguageFormSize+1)},
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "language must be at most",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &fakeService{}
			rec := serve(t, New(svc, nil, Config{}), newUploadRequest(t, tt.upload))

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, errorMessage(t, rec), tt.wantMsg)
			assert.Nil(t, svc.lastInput().Payload, "service must not be called")
		})
	}
}

func TestConvert_TooLarge(t *testing.T) {
	t.Parallel()

	s := New(&fakeService{}, nil, Config{MaxUploadBytes: 1024})
	rec := serve(t, s, newUploadRequest(t, upload{
		fileName: "big.json",
		content:  bytes.Repeat([]byte("a"), 4096),
	}))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "1024")
}

func TestConvert_ServiceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"empty payload", chat2doc.ErrEmptyPayload, http.StatusUnprocessableEntity, "uploaded file is empty"},
		{"invalid payload", fmt.Errorf("%w: malformed JSON", chat2doc.ErrInvalidPayload), http.StatusUnprocessableEntity, "invalid JSON file"},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, "conversion timed out"},
		{"pool closed", chat2doc.ErrPoolClosed, http.StatusServiceUnavailable, "server is shutting down"},
		{"render failure", fmt.Errorf("converting to PDF: %w", chat2doc.ErrPDFGeneration), http.StatusInternalServerError, "error during conversion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := New(&fakeService{err: tt.err}, nil, Config{})
			rec := serve(t, s, newUploadRequest(t, upload{fileName: "c.json", content: []byte("x")}))

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, rec))
		})
	}
}

func TestConvert_PanicRecovered(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	s := New(&fakeService{panic: "boom"}, zap.New(core), Config{})
	rec := serve(t, s, newUploadRequest(t, upload{fileName: "c.json", content: []byte("{}")}))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", errorMessage(t, rec))
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	s := New(&fakeService{}, zap.New(core), Config{})

	rec := serve(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
	generated := rec.Header().Get(RequestIDHeader)
	require.NotEmpty(t, generated)

	const incoming = "6f1f6a55-7a53-4c1c-9c1d-2b3f4a5b6c7d"
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec = serve(t, s, req)
	assert.Equal(t, incoming, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "not a uuid")
	rec = serve(t, s, req)
	assert.NotEqual(t, "not a uuid", rec.Header().Get(RequestIDHeader))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 3)
	assert.Equal(t, generated, entries[0].ContextMap()["request_id"])
	assert.Equal(t, incoming, entries[1].ContextMap()["request_id"])
	assert.Equal(t, "/health", entries[0].ContextMap()["path"])
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	s := New(&fakeService{err: errors.New("kaput")}, zap.New(core), Config{})

	serve(t, s, newUploadRequest(t, upload{fileName: "c.txt", content: []byte("{}")}))
	serve(t, s, newUploadRequest(t, upload{fileName: "c.json", content: []byte("{}")}))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Contains(t, entries[1].ContextMap()["error"], "kaput")
}

func newPoolServer(t *testing.T) *Server {
	t.Helper()
	pool := chat2doc.NewConverterPool(1, chat2doc.WithLocation(time.UTC))
	t.Cleanup(func() { _ = pool.Close() })
	return New(NewPoolService(pool), nil, Config{})
}

func TestPoolService_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format      string
		contentType string
		ext         string
		contains    string
	}{
		{"html", "text/html; charset=utf-8", ".html", "<td>sample-id</td>"},
		{"markdown", "text/markdown; charset=utf-8", ".md", "- **ID**: sample-id"},
		{"text", "text/plain; charset=utf-8", ".txt", "Modello-Esempio"},
	}

	s := newPoolServer(t)
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := serve(t, s, newUploadRequest(t, upload{
				fileName: chat2doc.SampleFileName,
				content:  chat2doc.SamplePayload(),
				fields: map[string]string{
					fieldFormat: tt.format, fieldShowModel: "on", fieldLanguage: "en",
				},
			}))

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			_, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(params["filename"], "conversation_"))
			assert.True(t, strings.HasSuffix(params["filename"], tt.ext))
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestPoolService_InvalidPayload(t *testing.T) {
	t.Parallel()

	s := newPoolServer(t)
	for _, content := range [][]byte{[]byte(`[1, 2]`), []byte(`{"conv":`), {}} {
		rec := serve(t, s, newUploadRequest(t, upload{
			fileName: "bad.json",
			content:  content,
			fields:   map[string]string{fieldFormat: "text"},
		}))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "content %q", content)
	}
}

func TestPoolService_ClosedPool(t *testing.T) {
	t.Parallel()

	pool := chat2doc.NewConverterPool(1)
	require.NoError(t, pool.Close())

	_, err := NewPoolService(pool).Convert(context.Background(), chat2doc.Input{Payload: []byte("{}")})
	require.ErrorIs(t, err, chat2doc.ErrPoolClosed)
}

func TestRun_GracefulShutdown(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	s := New(&fakeService{}, nil, Config{ShutdownTimeout: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_ListenError(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	s := New(&fakeService{}, nil, Config{})
	err = s.Run(context.Background(), ln.Addr().String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on")
}
