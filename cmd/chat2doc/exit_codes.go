package main

import (
	"errors"
	"os"

	"github.com/alnah/go-chat2doc"
	"github.com/alnah/go-chat2doc/internal/config"
)

// Exit codes for the chat2doc CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
	ExitPayload = 5 // Conversation file is not a usable export
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, chat2doc.ErrBrowserConnect) ||
		errors.Is(err, chat2doc.ErrPageCreate) ||
		errors.Is(err, chat2doc.ErrPageLoad) ||
		errors.Is(err, chat2doc.ErrPDFGeneration) {
		return ExitBrowser
	}

	if errors.Is(err, chat2doc.ErrInvalidPayload) ||
		errors.Is(err, chat2doc.ErrEmptyPayload) {
		return ExitPayload
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadConversation) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoConversations) {
		return ExitIO
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, chat2doc.ErrUnsupportedFormat) ||
		errors.Is(err, chat2doc.ErrStyleNotFound) ||
		errors.Is(err, chat2doc.ErrInvalidAssetPath) ||
		errors.Is(err, chat2doc.ErrInvalidTimestampFormat) ||
		errors.Is(err, chat2doc.ErrLocalesUnavailable) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
