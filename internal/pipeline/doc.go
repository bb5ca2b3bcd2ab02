// Package pipeline converts the rendered book into publishable HTML.
//
// Stages:
//   - Markdown preprocessing (line endings, blank line compression)
//   - Markdown to HTML conversion via Goldmark, as a full document or a fragment
//   - CSS injection into the HTML document
//   - Link checks and preface path resolution via golang.org/x/net/html
//
// PDF printing is handled by the pdf package; this package only produces HTML.
package pipeline
