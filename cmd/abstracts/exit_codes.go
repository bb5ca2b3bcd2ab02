package main

import (
	"context"
	"errors"
	"os"

	abstracts "github.com/alnah/go-abstracts"
	"github.com/alnah/go-abstracts/internal/assets"
	"github.com/alnah/go-abstracts/internal/config"
	"github.com/alnah/go-abstracts/internal/pdf"
	"github.com/alnah/go-abstracts/internal/source"
)

// Exit codes for the abstracts CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Book written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or submission data
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, pdf.ErrBrowserConnect) ||
		errors.Is(err, pdf.ErrPageCreate) ||
		errors.Is(err, pdf.ErrPageLoad) ||
		errors.Is(err, pdf.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadPreface) ||
		errors.Is(err, ErrReadStyle) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, abstracts.ErrMissingField) ||
		errors.Is(err, abstracts.ErrMalformedIdentifier) ||
		errors.Is(err, abstracts.ErrInvalidMode) ||
		errors.Is(err, abstracts.ErrInvalidScheme) ||
		errors.Is(err, abstracts.ErrInvalidFormat) ||
		errors.Is(err, abstracts.ErrFormatMismatch) ||
		errors.Is(err, abstracts.ErrInvalidWrapWidth) ||
		errors.Is(err, abstracts.ErrDuplicateCategory) ||
		errors.Is(err, source.ErrUnsupportedFormat) ||
		errors.Is(err, source.ErrNoHeader) ||
		errors.Is(err, source.ErrDuplicateHeader) ||
		errors.Is(err, source.ErrSheetNotFound) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, pdf.ErrInvalidPageSize) ||
		errors.Is(err, pdf.ErrInvalidMargin) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnexpectedArgs) {
		return ExitUsage
	}

	return ExitGeneral
}
