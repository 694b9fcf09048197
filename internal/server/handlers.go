package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alnah/go-chat2doc"
	"github.com/alnah/go-chat2doc/internal/fileutil"
)

// Multipart form fields accepted by POST /convert.
const (
	fieldFile           = "file"
	fieldShowDate       = "show_date"
	fieldShowDivider    = "show_divider"
	fieldShowModel      = "show_model"
	fieldShowPrompt     = "show_prompt"
	fieldShowNumbers    = "show_numbers"
	fieldUserName       = "custom_user_name"
	fieldAssistantName  = "custom_assistant_name"
	fieldLanguage       = "language"
	fieldFormat         = "format"
	checkboxOn          = "on"
	uploadExtension     = "json"
	maxLabelFormLength  = 100
	maxLanguageFormSize = 10
)

type indexResponse struct {
	Name           string   `json:"name"`
	Version        string   `json:"version,omitempty"`
	Languages      []string `json:"languages"`
	Formats        []string `json:"formats"`
	DefaultFormat  string   `json:"defaultFormat"`
	MaxUploadBytes int64    `json:"maxUploadBytes"`
}

func (s *Server) handleIndex(c *gin.Context) {
	formats := make([]string, len(chat2doc.Formats))
	for i, f := range chat2doc.Formats {
		formats[i] = string(f)
	}
	c.JSON(http.StatusOK, indexResponse{
		Name:           "chat2doc",
		Version:        s.cfg.Version,
		Languages:      s.cfg.Languages,
		Formats:        formats,
		DefaultFormat:  string(s.cfg.DefaultFormat),
		MaxUploadBytes: s.cfg.MaxUploadBytes,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSample(c *gin.Context) {
	setAttachment(c, chat2doc.SampleFileName)
	c.Data(http.StatusOK, "application/json", chat2doc.SamplePayload())
}

func (s *Server) handleConvert(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)

	header, err := c.FormFile(fieldFile)
	if err != nil {
		if isTooLarge(err) {
			writeError(c, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds %d bytes", s.cfg.MaxUploadBytes))
			return
		}
		writeError(c, http.StatusBadRequest, "no file uploaded")
		return
	}
	if header.Filename == "" {
		writeError(c, http.StatusBadRequest, "no file selected")
		return
	}
	if !fileutil.HasExtension(header.Filename, uploadExtension) {
		writeError(c, http.StatusBadRequest, "only .json files are accepted")
		return
	}

	payload, err := readUpload(header)
	if err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusBadRequest, "could not read uploaded file")
		return
	}

	format := s.cfg.DefaultFormat
	if name := c.PostForm(fieldFormat); name != "" {
		format, err = chat2doc.ParseFormat(name)
		if err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	opts, err := formOptions(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.ConvertTimeout)
	defer cancel()

	result, err := s.svc.Convert(ctx, chat2doc.Input{Payload: payload, Format: format, Options: opts})
	if err != nil {
		_ = c.Error(err)
		status, msg := convertStatus(err)
		writeError(c, status, msg)
		return
	}

	setAttachment(c, result.FileName)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// formOptions reads the rendering options. Checkboxes are on only when the
// browser submitted them with the value "on".
func formOptions(c *gin.Context) (chat2doc.Options, error) {
	opts := chat2doc.Options{
		ShowDate:       c.PostForm(fieldShowDate) == checkboxOn,
		ShowDivider:    c.PostForm(fieldShowDivider) == checkboxOn,
		ShowModel:      c.PostForm(fieldShowModel) == checkboxOn,
		ShowTimings:    c.PostForm(fieldShowPrompt) == checkboxOn,
		ShowNumbers:    c.PostForm(fieldShowNumbers) == checkboxOn,
		UserLabel:      strings.TrimSpace(c.PostForm(fieldUserName)),
		AssistantLabel: strings.TrimSpace(c.PostForm(fieldAssistantName)),
		Language:       strings.TrimSpace(c.DefaultPostForm(fieldLanguage, defaultLanguage)),
	}
	if len(opts.UserLabel) > maxLabelFormLength || len(opts.AssistantLabel) > maxLabelFormLength {
		return opts, fmt.Errorf("labels must be at most %d characters", maxLabelFormLength)
	}
	if len(opts.Language) > maxLanguageFormSize {
		return opts, fmt.Errorf("language must be at most %d characters", maxLanguageFormSize)
	}
	return opts, nil
}

// convertStatus maps conversion errors to a status and a client message.
func convertStatus(err error) (int, string) {
	switch {
	case errors.Is(err, chat2doc.ErrEmptyPayload):
		return http.StatusUnprocessableEntity, "uploaded file is empty"
	case errors.Is(err, chat2doc.ErrInvalidPayload):
		return http.StatusUnprocessableEntity, "invalid JSON file"
	case errors.Is(err, chat2doc.ErrUnsupportedFormat):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "conversion timed out"
	case errors.Is(err, chat2doc.ErrPoolClosed):
		return http.StatusServiceUnavailable, "server is shutting down"
	default:
		return http.StatusInternalServerError, "error during conversion"
	}
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

func setAttachment(c *gin.Context, name string) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
}

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
