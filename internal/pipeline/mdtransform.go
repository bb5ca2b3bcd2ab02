package pipeline

import (
	"context"
	"regexp"
	"strings"
)

var (
	// lineBreaks matches Windows and classic Mac line endings.
	lineBreaks = regexp.MustCompile(`\r\n?`)

	// blankRuns matches two or more consecutive blank lines.
	blankRuns = regexp.MustCompile(`\n{3,}`)
)

// MarkdownPreprocessor cleans Markdown before conversion.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// Compile-time interface implementation check.
var _ MarkdownPreprocessor = (*CommonMarkPreprocessor)(nil)

// CommonMarkPreprocessor prepares the preface and the rendered document for
// goldmark. Text exported from spreadsheets and word processors often
// carries a byte order mark and \r\n line endings.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown drops a leading byte order mark, converts line endings
// to \n and collapses runs of blank lines into one. A cancelled context
// returns content unchanged.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, "\ufeff")
	content = lineBreaks.ReplaceAllString(content, "\n")
	return blankRuns.ReplaceAllString(content, "\n\n")
}
