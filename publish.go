package abstracts

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-abstracts/internal/pipeline"
)

// Format is the file type a book is published as.
type Format string

// Output formats.
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// ParseFormat validates a format name (case-insensitive).
// Empty input returns "" (use the mode's default).
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q (must be markdown, html or pdf)", ErrInvalidFormat, s)
}

// DefaultFormat returns the format a mode renders natively.
func DefaultFormat(m Mode) Format {
	if m == ModeDocument {
		return FormatMarkdown
	}
	return FormatHTML
}

// PDFPrinter prints a complete HTML document to PDF.
type PDFPrinter interface {
	Print(ctx context.Context, html string) ([]byte, error)
}

// PublishOptions controls how Publish packages a rendered book.
type PublishOptions struct {
	Format     Format     // empty uses DefaultFormat(mode)
	Title      string     // <title> of HTML documents
	CSS        string     // stylesheet injected into HTML documents
	Standalone bool       // wrap listing HTML in a full document; implied by PDF
	Printer    PDFPrinter // required for FormatPDF

	// BaseDir resolves relative image and file links of the preface when
	// printing PDF. Usually the preface file's directory.
	BaseDir string
}

// Publish renders the book and converts it to opts.Format.
//
// Document mode publishes as Markdown, or as HTML converted by goldmark.
// Listing mode publishes as an HTML fragment, or as a full document when
// Standalone is set. PDF prints the full HTML document.
func (bk *Book) Publish(ctx context.Context, opts PublishOptions) ([]byte, error) {
	format := opts.Format
	if format == "" {
		format = DefaultFormat(bk.mode)
	}
	if format == FormatMarkdown && bk.mode != ModeDocument {
		return nil, fmt.Errorf("%w: %s mode renders HTML", ErrFormatMismatch, bk.mode)
	}
	if format == FormatPDF && opts.Printer == nil {
		return nil, ErrNoPrinter
	}

	body, err := bk.Render(ctx)
	if err != nil {
		return nil, err
	}
	if format == FormatMarkdown {
		return []byte(body), nil
	}

	doc, err := bk.htmlDocument(ctx, body, opts, format == FormatPDF)
	if err != nil {
		return nil, err
	}
	bk.logger.Debug("html published", "format", format, "bytes", len(doc))
	bk.checkAnchors(doc)

	if format == FormatHTML {
		return []byte(doc), nil
	}

	doc, err = pipeline.ResolveRelativePaths(doc, opts.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving preface paths: %w", err)
	}
	pdf, err := opts.Printer.Print(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("printing PDF: %w", err)
	}
	bk.logger.Debug("pdf printed", "bytes", len(pdf))
	return pdf, nil
}

// htmlDocument turns the rendered body into HTML. A bare listing fragment is
// returned unchanged unless a full document is wanted.
func (bk *Book) htmlDocument(ctx context.Context, body string, opts PublishOptions, full bool) (string, error) {
	var doc string
	switch {
	case bk.mode == ModeDocument:
		pre := &pipeline.CommonMarkPreprocessor{}
		converted, err := bk.markdown.ToHTML(ctx, pre.PreprocessMarkdown(ctx, body), opts.Title)
		if err != nil {
			return "", fmt.Errorf("converting document: %w", err)
		}
		doc = converted
	case opts.Standalone || full:
		doc = pipeline.WrapDocument(body, opts.Title)
	default:
		return body, nil
	}

	injector := &pipeline.CSSInjection{}
	return injector.InjectCSS(ctx, doc, opts.CSS), nil
}

// checkAnchors warns about in-page links with no target. Links are only
// in-page when no link base is set.
func (bk *Book) checkAnchors(doc string) {
	if bk.linkBase != "" {
		return
	}
	missing, err := pipeline.MissingAnchors(doc)
	if err != nil {
		bk.logger.Warn("anchor check skipped", "error", err)
		return
	}
	for _, href := range missing {
		bk.logger.Warn("link target not found", "href", href)
	}
}
