package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultTitle is the <title> used when none is given.
const DefaultTitle = "Book of Abstracts"

// htmlTemplate wraps Goldmark's fragment output in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// HTMLConverter abstracts Markdown to standalone HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content, title string) (string, error)
}

// FragmentConverter abstracts Markdown to HTML fragment conversion.
type FragmentConverter interface {
	ToFragment(ctx context.Context, content string) (string, error)
}

// Compile-time interface implementation checks.
var (
	_ HTMLConverter     = (*GoldmarkConverter)(nil)
	_ FragmentConverter = (*GoldmarkConverter)(nil)
)

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions,
// heading attributes and syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes in the preface
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes, styled by the book stylesheet
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Index letter headings get ids
			parser.WithAttribute(),     // "## T03: Title {#T03}" keeps the record anchor
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
			// WithUnsafe is not used: escaped record text never needs raw HTML.
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToFragment converts Markdown to an HTML fragment without a document wrapper.
func (c *GoldmarkConverter) ToFragment(ctx context.Context, content string) (string, error) {
	return c.convert(ctx, content)
}

// ToHTML converts Markdown to a standalone HTML5 document titled title.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content, title string) (string, error) {
	body, err := c.convert(ctx, content)
	if err != nil {
		return "", err
	}
	return WrapDocument(body, title), nil
}

// convert runs Goldmark in a goroutine so a cancelled context returns early;
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) convert(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// WrapDocument places an HTML body fragment in a complete HTML5 document.
func WrapDocument(body, title string) string {
	if title == "" {
		title = DefaultTitle
	}
	return fmt.Sprintf(htmlTemplate, html.EscapeString(title), body)
}
