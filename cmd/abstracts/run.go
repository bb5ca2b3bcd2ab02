package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	abstracts "github.com/alnah/go-abstracts"
	"github.com/alnah/go-abstracts/internal/assets"
	"github.com/alnah/go-abstracts/internal/config"
	"github.com/alnah/go-abstracts/internal/fileutil"
	"github.com/alnah/go-abstracts/internal/hints"
	"github.com/alnah/go-abstracts/internal/pdf"
	"github.com/alnah/go-abstracts/internal/source"
	"github.com/alnah/go-abstracts/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified: set --talks and/or --posters")
	ErrReadPreface    = errors.New("failed to read preface")
	ErrReadStyle      = errors.New("failed to read stylesheet")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrUnexpectedArgs = errors.New("unexpected arguments")
)

// filePermissions is rw-r--r--.
const filePermissions = 0o644

// stdoutPath selects standard output.
const stdoutPath = "-"

// run loads the configuration, builds the book and writes it.
func run(ctx context.Context, flags *cliFlags, env *Environment, logger *slog.Logger) error {
	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		var err error
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// CLI wins
	mergeFlags(flags, cfg)
	if cfg.Output.Format == "" {
		cfg.Output.Format = formatFromPath(cfg.Output.Path)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if flags.printConfig {
		out, err := yamlutil.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(out)
		return err
	}

	mode, err := abstracts.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	format, err := abstracts.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	sections, headers, err := loadSections(cfg, logger)
	if err != nil {
		return err
	}

	preface, err := readPreface(cfg.Preface)
	if err != nil {
		return err
	}

	cols := columnsFrom(cfg.Columns)
	builder := abstracts.NewBuilder(
		abstracts.WithMode(mode),
		abstracts.WithWrapWidth(cfg.WrapWidth),
		abstracts.WithLinkBase(cfg.LinkBase),
		abstracts.WithColumns(cols),
		abstracts.WithIndexTitle(cfg.Index.Title),
		abstracts.WithPreface(preface),
		abstracts.WithLogger(logger),
	)

	book, err := builder.Build(sections...)
	if err != nil {
		return withColumnHint(err, cols, headers)
	}

	if format == "" {
		format = abstracts.DefaultFormat(mode)
	}
	opts := abstracts.PublishOptions{
		Format:     format,
		Title:      cfg.Title,
		Standalone: cfg.Output.Standalone,
	}
	if cfg.Preface != "" {
		opts.BaseDir = filepath.Dir(cfg.Preface)
	}

	if needsStylesheet(mode, format, cfg.Output.Standalone) {
		opts.CSS, err = resolveStylesheet(cfg, env.AssetLoader)
		if err != nil {
			return err
		}
	}

	if format == abstracts.FormatPDF {
		printer, err := newPrinter(cfg, env)
		if err != nil {
			return err
		}
		defer func() { _ = printer.Close() }()
		opts.Printer = printer
	}

	data, err := book.Publish(ctx, opts)
	if err != nil {
		return err
	}

	if err := writeOutput(cfg.Output.Path, data, env); err != nil {
		return err
	}

	logger.Info("book written",
		"output", displayPath(cfg.Output.Path),
		"format", format,
		"sections", len(book.Sections),
		"bytes", len(data))
	return nil
}

// mergeFlags copies set flags over config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.input.talks != "" {
		cfg.Sections.Talks.Path = flags.input.talks
	}
	if flags.input.posters != "" {
		cfg.Sections.Posters.Path = flags.input.posters
	}
	if flags.input.talkScheme != "" {
		cfg.Sections.Talks.Scheme = flags.input.talkScheme
	}
	if flags.input.posterScheme != "" {
		cfg.Sections.Posters.Scheme = flags.input.posterScheme
	}
	if flags.input.preface != "" {
		cfg.Preface = flags.input.preface
	}

	if flags.layout.mode != "" {
		cfg.Mode = flags.layout.mode
	}
	if flags.layout.wrap != 0 {
		cfg.WrapWidth = flags.layout.wrap
	}
	if flags.layout.linkBase != "" {
		cfg.LinkBase = flags.layout.linkBase
	}
	if flags.layout.title != "" {
		cfg.Title = flags.layout.title
	}
	if flags.layout.indexTitle != "" {
		cfg.Index.Title = flags.layout.indexTitle
	}
	if flags.layout.style != "" {
		cfg.Style = flags.layout.style
	}

	if flags.output.path != "" {
		cfg.Output.Path = flags.output.path
	}
	if flags.output.format != "" {
		cfg.Output.Format = flags.output.format
	}
	if flags.output.standalone {
		cfg.Output.Standalone = true
	}
	if flags.output.pageSize != "" {
		cfg.PDF.PageSize = flags.output.pageSize
	}
	if flags.output.timeout != "" {
		cfg.PDF.Timeout = flags.output.timeout
	}
}

// formatFromPath infers the output format from a file extension.
// Unknown extensions and stdout return "" (use the mode's default).
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return string(abstracts.FormatMarkdown)
	case ".html", ".htm":
		return string(abstracts.FormatHTML)
	case ".pdf":
		return string(abstracts.FormatPDF)
	}
	return ""
}

// loadSections decodes each configured input in book order: talks, then
// posters. headers maps each source name to its column headers for hints.
func loadSections(cfg *config.Config, logger *slog.Logger) ([]abstracts.Section, map[string][]string, error) {
	inputs := []struct {
		category abstracts.Category
		section  config.SectionConfig
	}{
		{abstracts.CategoryTalk, cfg.Sections.Talks},
		{abstracts.CategoryPoster, cfg.Sections.Posters},
	}

	var sections []abstracts.Section
	headers := make(map[string][]string)
	for _, in := range inputs {
		if in.section.Path == "" {
			continue
		}

		scheme, err := abstracts.ParseScheme(in.section.Scheme)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", in.category, err)
		}

		table, err := source.Load(in.section.Path, in.section.Sheet)
		if err != nil {
			if errors.Is(err, source.ErrUnsupportedFormat) {
				return nil, nil, fmt.Errorf("%w%s", err, hints.ForUnsupportedSource())
			}
			return nil, nil, fmt.Errorf("loading %s: %w", in.category, err)
		}
		logger.Debug("source decoded", "category", in.category, "source", table.Source, "rows", len(table.Rows))

		rows := make([]abstracts.Row, len(table.Rows))
		for i, r := range table.Rows {
			rows[i] = abstracts.Row(r)
		}
		headers[table.Source] = table.Header
		sections = append(sections, abstracts.Section{
			Title:    in.section.Title,
			Category: in.category,
			Scheme:   scheme,
			Source:   table.Source,
			Rows:     rows,
		})
	}

	if len(sections) == 0 {
		return nil, nil, ErrNoInput
	}
	return sections, headers, nil
}

// columnsFrom converts configured column names. Empty names keep defaults.
func columnsFrom(c config.ColumnsConfig) abstracts.Columns {
	return abstracts.Columns{
		Presenter:    c.Presenter,
		Coauthors:    c.Coauthors,
		Affiliations: c.Affiliations,
		Title:        c.Title,
		Abstract:     c.Abstract,
		Keywords:     c.Keywords,
		Topics:       c.Topics,
		Number:       c.Number,
	}
}

// withColumnHint appends the source's real headers to a missing-column error.
func withColumnHint(err error, cols abstracts.Columns, headers map[string][]string) error {
	var mf *abstracts.MissingFieldError
	if !errors.As(err, &mf) || mf.Empty {
		return err
	}
	return fmt.Errorf("%w%s", err, hints.ForMissingColumn(columnKey(cols, mf.Field), headers[mf.Source]))
}

// columnKey returns the config key under columns: that names column.
func columnKey(cols abstracts.Columns, column string) string {
	full := cols.WithDefaults()
	keys := []struct {
		key  string
		name string
	}{
		{"presenter", full.Presenter},
		{"coauthors", full.Coauthors},
		{"affiliations", full.Affiliations},
		{"title", full.Title},
		{"abstract", full.Abstract},
		{"keywords", full.Keywords},
		{"topics", full.Topics},
		{"number", full.Number},
	}
	for _, k := range keys {
		if k.name == column {
			return k.key
		}
	}
	return ""
}

func readPreface(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadPreface, err)
	}
	return string(data), nil
}

// needsStylesheet reports whether the published output is a full HTML
// document. Bare listing fragments are styled by the page that embeds them.
func needsStylesheet(mode abstracts.Mode, format abstracts.Format, standalone bool) bool {
	switch format {
	case abstracts.FormatMarkdown:
		return false
	case abstracts.FormatPDF:
		return true
	}
	return mode == abstracts.ModeDocument || standalone
}

// resolveStylesheet loads cfg.Style: a .css path is read from disk, a name is
// looked up in the configured asset directory, then the embedded styles.
func resolveStylesheet(cfg *config.Config, fallback assets.AssetLoader) (string, error) {
	style := cfg.Style
	if style == "" {
		style = assets.DefaultStyleName
	}

	if fileutil.IsFilePath(style) || strings.HasSuffix(strings.ToLower(style), ".css") {
		content, err := os.ReadFile(style) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrReadStyle, err)
		}
		return string(content), nil
	}

	loader := fallback
	if cfg.Assets.BasePath != "" {
		resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
		if err != nil {
			return "", err
		}
		loader = resolver
	}

	css, err := loader.LoadStyle(style)
	if errors.Is(err, assets.ErrStyleNotFound) {
		return "", fmt.Errorf("%w%s", err, hints.ForStyleNotFound(loader.ListStyles()))
	}
	return css, err
}

// newPrinter builds PDF options from the config and starts a printer.
func newPrinter(cfg *config.Config, env *Environment) (Printer, error) {
	opts := pdf.DefaultOptions()
	if cfg.PDF.PageSize != "" {
		opts.PageSize = strings.ToLower(cfg.PDF.PageSize)
	}
	if cfg.PDF.Margin != 0 {
		opts.Margin = cfg.PDF.Margin
	}
	opts.FooterText = cfg.PDF.FooterText
	if opts.FooterText == "" {
		opts.FooterText = cfg.Title
	}
	opts.PageNumbers = !cfg.PDF.NoPageNumbers

	timeout, err := resolveTimeout(cfg.PDF.Timeout)
	if err != nil {
		return nil, err
	}
	return env.NewPrinter(opts, timeout)
}

// resolveTimeout parses a Go duration. Empty uses the printer default.
func resolveTimeout(s string) (time.Duration, error) {
	if s == "" {
		return pdf.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, s)
	}
	return d, nil
}

// writeOutput writes data to stdout or atomically to path.
func writeOutput(path string, data []byte, env *Environment) error {
	if path == "" || path == stdoutPath {
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

func displayPath(path string) string {
	if path == "" || path == stdoutPath {
		return "stdout"
	}
	return path
}
