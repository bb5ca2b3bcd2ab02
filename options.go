package abstracts

import "log/slog"

// Default values for Builder.
const (
	DefaultMode       = ModeListing
	DefaultIndexTitle = "Presenter index"
)

// Option configures a Builder.
type Option func(*Builder)

// WithMode selects document (Markdown) or listing (HTML) output.
func WithMode(mode Mode) Option {
	return func(b *Builder) {
		b.mode = mode
	}
}

// WithWrapWidth sets the line width of abstract bodies.
func WithWrapWidth(width int) Option {
	return func(b *Builder) {
		b.render.WrapWidth = width
	}
}

// WithLinkBase prefixes identifier links, e.g. "abstracts/index.html"
// produces "abstracts/index.html#T03".
func WithLinkBase(base string) Option {
	return func(b *Builder) {
		b.render.LinkBase = base
	}
}

// WithColumns overrides source column names. Empty names keep their default.
func WithColumns(cols Columns) Option {
	return func(b *Builder) {
		b.columns = cols.WithDefaults()
	}
}

// WithIndexTitle sets the presenter index heading.
func WithIndexTitle(title string) Option {
	return func(b *Builder) {
		if title != "" {
			b.indexTitle = title
		}
	}
}

// WithPreface places Markdown before the first section. Document mode emits
// it as is; listing mode converts it to an HTML fragment.
func WithPreface(markdown string) Option {
	return func(b *Builder) {
		b.preface = markdown
	}
}

// WithLogger sets the logger for debug output. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// withMarkdownConverter replaces the converter used for the preface and for
// publishing document mode as HTML.
func withMarkdownConverter(c markdownConverter) Option {
	return func(b *Builder) {
		b.markdown = c
	}
}
