package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading and name resolution
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("full file", func(t *testing.T) {
		t.Parallel()

		content := `title: "Workshop 2026"
mode: document
wrapWidth: 72
linkBase: abstracts/index.html
sections:
  talks:
    path: talks.csv
  posters:
    path: posters.xlsx
    sheet: Accepted
    scheme: resequence
columns:
  presenter: Speaker
output:
  path: book.md
  format: markdown
pdf:
  pageSize: a4
  timeout: 45s
`
		path := writeConfig(t, content)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		if cfg.Title != "Workshop 2026" {
			t.Errorf("Title = %q, want %q", cfg.Title, "Workshop 2026")
		}
		if cfg.Mode != "document" {
			t.Errorf("Mode = %q, want %q", cfg.Mode, "document")
		}
		if cfg.WrapWidth != 72 {
			t.Errorf("WrapWidth = %d, want 72", cfg.WrapWidth)
		}
		if cfg.Sections.Posters.Sheet != "Accepted" {
			t.Errorf("Sections.Posters.Sheet = %q, want %q", cfg.Sections.Posters.Sheet, "Accepted")
		}
		if cfg.Sections.Posters.Scheme != "resequence" {
			t.Errorf("Sections.Posters.Scheme = %q, want %q", cfg.Sections.Posters.Scheme, "resequence")
		}
		if cfg.Columns.Presenter != "Speaker" {
			t.Errorf("Columns.Presenter = %q, want %q", cfg.Columns.Presenter, "Speaker")
		}
		if cfg.PDF.Timeout != "45s" {
			t.Errorf("PDF.Timeout = %q, want %q", cfg.PDF.Timeout, "45s")
		}
	})

	t.Run("omitted keys keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfig(writeConfig(t, "title: Minimal\n"))
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Mode != "listing" {
			t.Errorf("Mode = %q, want default %q", cfg.Mode, "listing")
		}
		if cfg.Output.Path != "-" {
			t.Errorf("Output.Path = %q, want default %q", cfg.Output.Path, "-")
		}
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "wrapwidth: 60\n"))
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value rejected", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "mode: slides\n"))
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig() error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("unresolvable name lists tried paths", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("no-such-config-7f3a")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "no-such-config-7f3a.yaml") {
			t.Errorf("error = %q, want it to list the searched paths", err)
		}
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "abstracts.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestValidate - Field lengths and enumerations
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "mode case-insensitive", mutate: func(c *Config) { c.Mode = "Document" }},
		{name: "wrap width zero means default", mutate: func(c *Config) { c.WrapWidth = 0 }},
		{name: "wrap width at minimum", mutate: func(c *Config) { c.WrapWidth = MinWrapWidth }},
		{
			name:    "wrap width below minimum",
			mutate:  func(c *Config) { c.WrapWidth = MinWrapWidth - 1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "wrap width above maximum",
			mutate:  func(c *Config) { c.WrapWidth = MaxWrapWidth + 1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Output.Format = "docx" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown scheme",
			mutate:  func(c *Config) { c.Sections.Talks.Scheme = "shuffle" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown page size",
			mutate:  func(c *Config) { c.PDF.PageSize = "a3" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative margin",
			mutate:  func(c *Config) { c.PDF.Margin = -0.5 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unparseable timeout",
			mutate:  func(c *Config) { c.PDF.Timeout = "soon" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.PDF.Timeout = "0s" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "title too long",
			mutate:  func(c *Config) { c.Title = strings.Repeat("a", MaxTitleLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "column name too long",
			mutate:  func(c *Config) { c.Columns.Abstract = strings.Repeat("q", MaxColumnLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "sheet name too long",
			mutate:  func(c *Config) { c.Sections.Posters.Sheet = strings.Repeat("s", MaxNameLength+1) },
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSearchPaths - Name resolution order
// ---------------------------------------------------------------------------

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("work")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() returned %d paths, want at least 2", len(paths))
	}
	if paths[0] != "work.yaml" || paths[1] != "work.yml" {
		t.Errorf("SearchPaths()[:2] = %v, want [work.yaml work.yml]", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, configDirName) {
			t.Errorf("user path %q does not contain %q", p, configDirName)
		}
	}
}
