package chat2doc

import (
	"errors"

	"github.com/alnah/go-chat2doc/internal/transcript"
)

// Sentinel errors for library operations.
var (
	// ErrInvalidPayload reports a payload that is not a JSON object.
	ErrInvalidPayload = transcript.ErrInvalidPayload

	ErrEmptyPayload      = errors.New("conversation payload cannot be empty")
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrRender            = errors.New("rendering failed")

	// Browser errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Configuration errors.
	ErrInvalidTimestampFormat = errors.New("invalid timestamp format")
	ErrStyleNotFound          = errors.New("style not found")
	ErrInvalidAssetPath       = errors.New("invalid asset path")
	ErrLocalesUnavailable     = errors.New("label translations unavailable")
)
