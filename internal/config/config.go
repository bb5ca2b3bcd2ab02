package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-abstracts/internal/fileutil"
	"github.com/alnah/go-abstracts/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength  = 200
	MaxPathLength   = 4096
	MaxURLLength    = 2048
	MaxColumnLength = 200 // spreadsheet headers can be long questions
	MaxNameLength   = 64  // style, sheet and enum names
	MaxFooterLength = 200
)

// Wrap width bounds. Zero means the library default.
const (
	MinWrapWidth = 20
	MaxWrapWidth = 500
)

// configDirName is the directory under the user config dir searched for names.
const configDirName = "go-abstracts"

// Config holds all configuration for building the book.
type Config struct {
	Title     string         `yaml:"title"`     // HTML <title> and PDF footer
	Mode      string         `yaml:"mode"`      // "document" or "listing"
	WrapWidth int            `yaml:"wrapWidth"` // abstract body width
	LinkBase  string         `yaml:"linkBase"`  // e.g. "abstracts/index.html"
	Preface   string         `yaml:"preface"`   // Markdown file placed before the talks
	Style     string         `yaml:"style"`     // stylesheet name or path
	Assets    AssetsConfig   `yaml:"assets"`
	Sections  SectionsConfig `yaml:"sections"`
	Index     IndexConfig    `yaml:"index"`
	Columns   ColumnsConfig  `yaml:"columns"`
	Output    OutputConfig   `yaml:"output"`
	PDF       PDFConfig      `yaml:"pdf"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded styles
}

// SectionsConfig lists the input of each category.
type SectionsConfig struct {
	Talks   SectionConfig `yaml:"talks"`
	Posters SectionConfig `yaml:"posters"`
}

// SectionConfig describes one category's input.
type SectionConfig struct {
	Path   string `yaml:"path"`   // .csv or .xlsx; empty skips the section
	Title  string `yaml:"title"`  // heading, default "Talks"/"Posters"
	Scheme string `yaml:"scheme"` // "preserve" or "resequence"; empty = category default
	Sheet  string `yaml:"sheet"`  // .xlsx only; empty = first sheet
}

// IndexConfig defines the presenter index.
type IndexConfig struct {
	Title string `yaml:"title"`
}

// ColumnsConfig overrides source column names. Empty keeps the default.
type ColumnsConfig struct {
	Presenter    string `yaml:"presenter"`
	Coauthors    string `yaml:"coauthors"`
	Affiliations string `yaml:"affiliations"`
	Title        string `yaml:"title"`
	Abstract     string `yaml:"abstract"`
	Keywords     string `yaml:"keywords"`
	Topics       string `yaml:"topics"`
	Number       string `yaml:"number"`
}

// OutputConfig defines the destination.
type OutputConfig struct {
	Path       string `yaml:"path"`       // "-" or empty = stdout
	Format     string `yaml:"format"`     // "markdown", "html", "pdf"; empty = mode default
	Standalone bool   `yaml:"standalone"` // listing HTML wrapped in a full document
}

// PDFConfig defines printed page settings.
type PDFConfig struct {
	PageSize      string  `yaml:"pageSize"`      // "letter", "a4", "legal"
	Margin        float64 `yaml:"margin"`        // inches
	Timeout       string  `yaml:"timeout"`       // Go duration, e.g. "45s"
	FooterText    string  `yaml:"footerText"`    // left of the page number
	NoPageNumbers bool    `yaml:"noPageNumbers"` // hide page numbers
}

var (
	validModes     = []string{"document", "listing"}
	validFormats   = []string{"markdown", "html", "pdf"}
	validSchemes   = []string{"preserve", "resequence"}
	validPageSizes = []string{"letter", "a4", "legal"}
)

// Validate checks field lengths and enumerated values.
// Called by LoadConfig, and again by the CLI after flags are merged.
func (c *Config) Validate() error {
	lengths := []struct {
		name  string
		value string
		max   int
	}{
		{"title", c.Title, MaxTitleLength},
		{"linkBase", c.LinkBase, MaxURLLength},
		{"preface", c.Preface, MaxPathLength},
		{"style", c.Style, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"sections.talks.path", c.Sections.Talks.Path, MaxPathLength},
		{"sections.talks.title", c.Sections.Talks.Title, MaxTitleLength},
		{"sections.talks.sheet", c.Sections.Talks.Sheet, MaxNameLength},
		{"sections.posters.path", c.Sections.Posters.Path, MaxPathLength},
		{"sections.posters.title", c.Sections.Posters.Title, MaxTitleLength},
		{"sections.posters.sheet", c.Sections.Posters.Sheet, MaxNameLength},
		{"index.title", c.Index.Title, MaxTitleLength},
		{"columns.presenter", c.Columns.Presenter, MaxColumnLength},
		{"columns.coauthors", c.Columns.Coauthors, MaxColumnLength},
		{"columns.affiliations", c.Columns.Affiliations, MaxColumnLength},
		{"columns.title", c.Columns.Title, MaxColumnLength},
		{"columns.abstract", c.Columns.Abstract, MaxColumnLength},
		{"columns.keywords", c.Columns.Keywords, MaxColumnLength},
		{"columns.topics", c.Columns.Topics, MaxColumnLength},
		{"columns.number", c.Columns.Number, MaxColumnLength},
		{"output.path", c.Output.Path, MaxPathLength},
		{"pdf.footerText", c.PDF.FooterText, MaxFooterLength},
	}
	for _, f := range lengths {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validateEnum("mode", c.Mode, validModes); err != nil {
		return err
	}
	if err := validateEnum("output.format", c.Output.Format, validFormats); err != nil {
		return err
	}
	if err := validateEnum("sections.talks.scheme", c.Sections.Talks.Scheme, validSchemes); err != nil {
		return err
	}
	if err := validateEnum("sections.posters.scheme", c.Sections.Posters.Scheme, validSchemes); err != nil {
		return err
	}
	if err := validateEnum("pdf.pageSize", c.PDF.PageSize, validPageSizes); err != nil {
		return err
	}

	if c.WrapWidth != 0 && (c.WrapWidth < MinWrapWidth || c.WrapWidth > MaxWrapWidth) {
		return fmt.Errorf("%w: wrapWidth: must be between %d and %d, got %d", ErrInvalidValue, MinWrapWidth, MaxWrapWidth, c.WrapWidth)
	}

	if c.PDF.Margin < 0 {
		return fmt.Errorf("%w: pdf.margin: must not be negative, got %.2f", ErrInvalidValue, c.PDF.Margin)
	}
	if c.PDF.Timeout != "" {
		d, err := time.ParseDuration(c.PDF.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: pdf.timeout: %q is not a positive duration", ErrInvalidValue, c.PDF.Timeout)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateEnum accepts an empty value or one of allowed (case-insensitive).
func validateEnum(fieldName, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// DefaultConfig returns a configuration that renders a listing to stdout.
func DefaultConfig() *Config {
	return &Config{
		Mode:   "listing",
		Output: OutputConfig{Path: "-"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path. Otherwise it is a
// name searched as name.yaml or name.yml in the working directory, then in
// the user config directory. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the paths LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing search path for name.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
