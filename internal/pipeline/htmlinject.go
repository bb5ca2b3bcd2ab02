package pipeline

import (
	"context"
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// Compile-time interface implementation check.
var _ CSSInjector = (*CSSInjection)(nil)

// CSSInjection injects the book stylesheet as a <style> block.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, else after <body>,
// else at the start of the content. Listing output is a bare fragment, so
// the last case is common.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lower := strings.ToLower(htmlContent)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lower, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			pos := idx + closeIdx + 1
			return htmlContent[:pos] + styleBlock + htmlContent[pos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so stylesheet text cannot close the <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
