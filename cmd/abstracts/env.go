package main

import (
	"io"
	"os"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	abstracts "github.com/alnah/go-abstracts"
	"github.com/alnah/go-abstracts/internal/assets"
	"github.com/alnah/go-abstracts/internal/pdf"
)

// Printer prints HTML to PDF and owns a browser until closed.
type Printer interface {
	abstracts.PDFPrinter
	Close() error
}

// Compile-time interface implementation check.
var _ Printer = (*pdf.Printer)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout      io.Writer
	Stderr      io.Writer
	AssetLoader assets.AssetLoader // used when no assets.basePath is configured
	NewPrinter  func(opts pdf.Options, timeout time.Duration) (Printer, error)
	MaxProcs    func(logf func(string, ...any))  // nil skips GOMAXPROCS tuning
	LookChrome  func() (path string, found bool) // browser lookup for --doctor
}

// DefaultEnv returns the production environment with embedded assets and a
// go-rod printer.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		AssetLoader: assets.NewEmbeddedLoader(),
		NewPrinter: func(opts pdf.Options, timeout time.Duration) (Printer, error) {
			return pdf.NewPrinter(opts, timeout)
		},
		MaxProcs:   setMaxProcs,
		LookChrome: launcher.LookPath,
	}
}
