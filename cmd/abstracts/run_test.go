package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abstracts "github.com/alnah/go-abstracts"
	"github.com/alnah/go-abstracts/internal/config"
	"github.com/alnah/go-abstracts/internal/pdf"
)

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI wins over config
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("set flags override", func(t *testing.T) {
		t.Parallel()

		flags, err := parseFlags([]string{
			"--talks", "t.csv", "--poster-scheme", "preserve",
			"-m", "document", "--wrap", "60", "--link-base", "index.html",
			"-o", "book.md", "-p", "legal", "--standalone",
		}, nil)
		require.NoError(t, err)

		cfg := config.DefaultConfig()
		cfg.Sections.Talks.Path = "from-config.csv"
		cfg.Title = "Kept"
		mergeFlags(flags, cfg)

		assert.Equal(t, "t.csv", cfg.Sections.Talks.Path)
		assert.Equal(t, "preserve", cfg.Sections.Posters.Scheme)
		assert.Equal(t, "document", cfg.Mode)
		assert.Equal(t, 60, cfg.WrapWidth)
		assert.Equal(t, "index.html", cfg.LinkBase)
		assert.Equal(t, "book.md", cfg.Output.Path)
		assert.Equal(t, "legal", cfg.PDF.PageSize)
		assert.True(t, cfg.Output.Standalone)
		assert.Equal(t, "Kept", cfg.Title)
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()

		flags, err := parseFlags(nil, nil)
		require.NoError(t, err)

		cfg := config.DefaultConfig()
		cfg.WrapWidth = 80
		cfg.Output.Standalone = true
		mergeFlags(flags, cfg)

		assert.Equal(t, 80, cfg.WrapWidth)
		assert.Equal(t, "listing", cfg.Mode)
		assert.True(t, cfg.Output.Standalone)
	})
}

func TestLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want string
	}{
		{nil, "info"},
		{[]string{"-q"}, "error"},
		{[]string{"-v"}, "debug"},
		{[]string{"-q", "-v"}, "debug"},
	}

	for _, tt := range tests {
		flags, err := parseFlags(tt.args, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.want, flags.logLevel(), "args %v", tt.args)
	}
}

// ---------------------------------------------------------------------------
// TestFormatFromPath / TestNeedsStylesheet
// ---------------------------------------------------------------------------

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":              "",
		"-":             "",
		"book.md":       "markdown",
		"book.MARKDOWN": "markdown",
		"out/book.html": "html",
		"book.htm":      "html",
		"book.pdf":      "pdf",
		"book.txt":      "",
	}
	for path, want := range tests {
		assert.Equal(t, want, formatFromPath(path), "path %q", path)
	}
}

func TestNeedsStylesheet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mode       abstracts.Mode
		format     abstracts.Format
		standalone bool
		want       bool
	}{
		{"markdown never", abstracts.ModeDocument, abstracts.FormatMarkdown, true, false},
		{"pdf always", abstracts.ModeListing, abstracts.FormatPDF, false, true},
		{"document html", abstracts.ModeDocument, abstracts.FormatHTML, false, true},
		{"listing fragment", abstracts.ModeListing, abstracts.FormatHTML, false, false},
		{"listing standalone", abstracts.ModeListing, abstracts.FormatHTML, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, needsStylesheet(tt.mode, tt.format, tt.standalone))
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveTimeout / TestColumnKey / TestNewPrinter
// ---------------------------------------------------------------------------

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	d, err := resolveTimeout("")
	require.NoError(t, err)
	assert.Equal(t, pdf.DefaultTimeout, d)

	d, err = resolveTimeout("2m")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)

	_, err = resolveTimeout("-1s")
	assert.ErrorIs(t, err, ErrInvalidTimeout)

	_, err = resolveTimeout("later")
	assert.ErrorIs(t, err, ErrInvalidTimeout)
}

func TestColumnKey(t *testing.T) {
	t.Parallel()

	cols := abstracts.Columns{Presenter: "Speaker"}

	assert.Equal(t, "presenter", columnKey(cols, "Speaker"))
	assert.Equal(t, "abstract", columnKey(cols, "Abstract (max 1500 characters)"))
	assert.Equal(t, "", columnKey(cols, "Presenter name"))
}

func TestNewPrinter(t *testing.T) {
	t.Parallel()

	var got pdf.Options
	env := &Environment{
		NewPrinter: func(opts pdf.Options, _ time.Duration) (Printer, error) {
			got = opts
			return &mockPrinter{}, nil
		},
	}

	cfg := config.DefaultConfig()
	cfg.Title = "Workshop"
	cfg.PDF.PageSize = "Legal"
	cfg.PDF.NoPageNumbers = true

	_, err := newPrinter(cfg, env)
	require.NoError(t, err)
	assert.Equal(t, "legal", got.PageSize)
	assert.Equal(t, pdf.DefaultMargin, got.Margin)
	assert.Equal(t, "Workshop", got.FooterText)
	assert.False(t, got.PageNumbers)
}
