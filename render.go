package abstracts

import (
	"fmt"
	"strings"
)

// PageBreakMarker separates records in document mode. It is a CommonMark
// thematic break; the book stylesheet turns <hr> into a page break.
const PageBreakMarker = "* * *"

// Renderer writes one markup dialect into a strings.Builder.
// Writes to a strings.Builder cannot fail, so methods return nothing.
type Renderer interface {
	Heading(b *strings.Builder, title string)
	Submission(b *strings.Builder, s *Submission)
	Index(b *strings.Builder, title string, idx *Index)
}

// RenderOptions configures both renderers.
type RenderOptions struct {
	WrapWidth int    // abstract body width, DefaultWrapWidth when zero
	LinkBase  string // prefix for "#ID" links, empty for in-page anchors
}

// Compile-time interface implementation checks.
var (
	_ Renderer = (*documentRenderer)(nil)
	_ Renderer = (*listingRenderer)(nil)
)

// NewRenderer returns the renderer for mode.
func NewRenderer(mode Mode, opts RenderOptions) (Renderer, error) {
	if opts.WrapWidth == 0 {
		opts.WrapWidth = DefaultWrapWidth
	}
	if opts.WrapWidth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWrapWidth, opts.WrapWidth)
	}

	switch mode {
	case ModeDocument:
		return &documentRenderer{opts: opts}, nil
	case ModeListing:
		return &listingRenderer{opts: opts}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
}

// anchorFor turns a heading into an anchor name ("Presenter index" -> "Presenter_index").
func anchorFor(title string) string {
	return strings.Join(strings.Fields(title), "_")
}

// link returns the href pointing at an identifier.
func (o RenderOptions) link(id string) string {
	return o.LinkBase + "#" + id
}

// ---------------------------------------------------------------------------
// Document mode (Markdown)
// ---------------------------------------------------------------------------

type documentRenderer struct {
	opts RenderOptions
}

func (r *documentRenderer) Heading(b *strings.Builder, title string) {
	fmt.Fprintf(b, "# %s {#%s}\n\n", inlineMarkdown(title), anchorFor(title))
}

func (r *documentRenderer) Submission(b *strings.Builder, s *Submission) {
	fmt.Fprintf(b, "## [%s](%s): %s {#%s}\n\n", s.ID, r.opts.link(s.ID), inlineMarkdown(s.Title), s.ID)
	r.field(b, "Authors", s.AuthorList)
	r.field(b, "Affiliations", s.Affiliations)
	r.field(b, "Topics", s.Topics)
	if s.Keywords != "" {
		r.field(b, "Keywords", s.Keywords)
	}

	b.WriteString("**Abstract:**\n\n")
	if lines := wrapText(EscapeMarkdown(s.Text), r.opts.WrapWidth, ""); len(lines) > 0 {
		for i, l := range lines {
			lines[i] = escapeOrderedMarker(l)
		}
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n\n")
	}
	b.WriteString(PageBreakMarker + "\n\n")
}

func (r *documentRenderer) field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "**%s:** %s\n\n", label, inlineMarkdown(value))
}

// inlineMarkdown escapes s and joins its lines, so a multi-line cell stays
// inside its heading or paragraph.
func inlineMarkdown(s string) string {
	return EscapeMarkdown(strings.Join(strings.Fields(s), " "))
}

func (r *documentRenderer) Index(b *strings.Builder, title string, idx *Index) {
	r.Heading(b, title)
	for _, g := range idx.Groups {
		fmt.Fprintf(b, "## %s\n\n", inlineMarkdown(g.Key))
		links := make([]string, len(g.Entries))
		for i, s := range g.Entries {
			links[i] = fmt.Sprintf("[%s](%s)", inlineMarkdown(s.PrimaryAuthor), r.opts.link(s.ID))
		}
		b.WriteString(strings.Join(links, ", "))
		b.WriteString("\n\n")
	}
}

// ---------------------------------------------------------------------------
// Listing mode (HTML)
// ---------------------------------------------------------------------------

type listingRenderer struct {
	opts RenderOptions
}

func (r *listingRenderer) Heading(b *strings.Builder, title string) {
	fmt.Fprintf(b, "<h3 id=\"%s\">%s</h3>\n", EscapeHTML(anchorFor(title)), EscapeHTML(title))
}

func (r *listingRenderer) Submission(b *strings.Builder, s *Submission) {
	rows := 5
	if s.Keywords != "" {
		rows++
	}

	fmt.Fprintf(b, "<table id=\"%s\">\n", s.ID)

	b.WriteString("<tr>\n")
	fmt.Fprintf(b, "\t<td class=\"date\" rowspan=\"%d\"><a href=\"%s\" title=\"%s\">%s</a></td>\n",
		rows, EscapeHTML(r.opts.link(s.ID)), s.ID, s.ID)
	fmt.Fprintf(b, "\t<td class=\"title\">%s</td>\n", EscapeHTML(s.Title))
	b.WriteString("</tr>\n")

	r.row(b, "speaker", "", s.AuthorList)
	r.row(b, "speaker", "Affiliations", s.Affiliations)
	r.row(b, "speaker", "Topics", s.Topics)
	if s.Keywords != "" {
		r.row(b, "speaker", "Keywords", s.Keywords)
	}

	b.WriteString("<tr>\n\t<td class=\"abstract\">\n")
	for _, line := range wrapText(EscapeHTML(s.Text), r.opts.WrapWidth, "\t\t") {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("\t</td>\n</tr>\n</table>\n")
}

func (r *listingRenderer) row(b *strings.Builder, class, label, value string) {
	b.WriteString("<tr>\n")
	if label == "" {
		fmt.Fprintf(b, "\t<td class=\"%s\">%s</td>\n", class, EscapeHTML(value))
	} else {
		fmt.Fprintf(b, "\t<td class=\"%s\"><b>%s:</b> %s</td>\n", class, label, EscapeHTML(value))
	}
	b.WriteString("</tr>\n")
}

func (r *listingRenderer) Index(b *strings.Builder, title string, idx *Index) {
	r.Heading(b, title)
	for _, g := range idx.Groups {
		fmt.Fprintf(b, "<h4>%s</h4>\n", EscapeHTML(g.Key))
		links := make([]string, len(g.Entries))
		for i, s := range g.Entries {
			links[i] = fmt.Sprintf("<a href=\"%s\">%s</a>", EscapeHTML(r.opts.link(s.ID)), EscapeHTML(s.PrimaryAuthor))
		}
		fmt.Fprintf(b, "<p>%s</p>\n", strings.Join(links, ", "))
	}
}
