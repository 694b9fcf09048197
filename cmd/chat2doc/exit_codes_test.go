package main

// Notes:
// - exitCodeFor: we test every sentinel the CLI maps, plus wrapped errors to
//   verify the errors.Is chain.
// - Exit code constants: Unix conventions (0=success, 1=general, 2=usage) and
//   custom codes below 126.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/alnah/go-chat2doc"
	"github.com/alnah/go-chat2doc/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", chat2doc.ErrBrowserConnect, ExitBrowser},
		{"page create", chat2doc.ErrPageCreate, ExitBrowser},
		{"page load", chat2doc.ErrPageLoad, ExitBrowser},
		{"pdf generation", chat2doc.ErrPDFGeneration, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("failed: %w", chat2doc.ErrBrowserConnect), ExitBrowser},

		// Payload errors (exit 5)
		{"invalid payload", chat2doc.ErrInvalidPayload, ExitPayload},
		{"empty payload", chat2doc.ErrEmptyPayload, ExitPayload},
		{"wrapped payload", fmt.Errorf("2 conversion(s) failed: %w", chat2doc.ErrInvalidPayload), ExitPayload},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read conversation", ErrReadConversation, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"no conversations", ErrNoConversations, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"unsupported format", chat2doc.ErrUnsupportedFormat, ExitUsage},
		{"style not found", chat2doc.ErrStyleNotFound, ExitUsage},
		{"invalid asset path", chat2doc.ErrInvalidAssetPath, ExitUsage},
		{"invalid timestamp format", chat2doc.ErrInvalidTimestampFormat, ExitUsage},
		{"locales unavailable", chat2doc.ErrLocalesUnavailable, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid worker count", ErrInvalidWorkerCount, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"usage", ErrUsage, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"render error", chat2doc.ErrRender, ExitGeneral},
		{"deadline", context.DeadlineExceeded, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("Unix exit codes changed: success=%d general=%d usage=%d", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitBrowser, ExitPayload} {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("custom exit code %d should be in (2, 126)", code)
		}
	}
}
