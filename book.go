package abstracts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alnah/go-abstracts/internal/pipeline"
)

// markdownConverter renders Markdown to HTML fragments and documents.
type markdownConverter interface {
	pipeline.HTMLConverter
	pipeline.FragmentConverter
}

// Compile-time interface implementation check.
var _ markdownConverter = (*pipeline.GoldmarkConverter)(nil)

// Builder turns decoded sections into an identified Book.
// Create with NewBuilder and reuse for any number of builds.
type Builder struct {
	mode       Mode
	render     RenderOptions
	columns    Columns
	indexTitle string
	preface    string
	markdown   markdownConverter
	logger     *slog.Logger
}

// NewBuilder creates a Builder in listing mode with the default columns.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		mode:       DefaultMode,
		render:     RenderOptions{WrapWidth: DefaultWrapWidth},
		columns:    DefaultColumns(),
		indexTitle: DefaultIndexTitle,
		markdown:   pipeline.NewGoldmarkConverter(),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BookSection is a titled, sorted and identified category.
type BookSection struct {
	Title       string
	Category    Category
	Scheme      Scheme
	Submissions []*Submission
}

// Book is the fully identified collection, ready to render.
// It is not modified by rendering.
type Book struct {
	Sections   []BookSection
	Index      *Index
	IndexTitle string

	preface  string
	renderer Renderer
	mode     Mode
	linkBase string
	markdown markdownConverter
	logger   *slog.Logger
}

// Build normalizes every row, sorts and identifies each section, and builds
// the presenter index over all sections in order. Any error aborts the whole
// build: a book is never returned with a section missing.
func (b *Builder) Build(sections ...Section) (*Book, error) {
	if len(sections) == 0 {
		return nil, ErrNoSections
	}

	renderer, err := NewRenderer(b.mode, b.render)
	if err != nil {
		return nil, err
	}

	book := &Book{
		IndexTitle: b.indexTitle,
		preface:    b.preface,
		renderer:   renderer,
		mode:       b.mode,
		linkBase:   b.render.LinkBase,
		markdown:   b.markdown,
		logger:     b.logger,
	}

	seen := make(map[Category]bool)
	var all []*Submission
	for i := range sections {
		sec := &sections[i]
		if sec.Category != CategoryTalk && sec.Category != CategoryPoster {
			return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(sec.Category))
		}
		if seen[sec.Category] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, sec.Category)
		}
		seen[sec.Category] = true

		bs, err := b.buildSection(sec)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", sec.Category, err)
		}
		book.Sections = append(book.Sections, bs)
		all = append(all, bs.Submissions...)
	}

	book.Index = BuildIndex(all)
	b.logger.Debug("index built", "groups", len(book.Index.Groups), "entries", len(all))
	return book, nil
}

func (b *Builder) buildSection(sec *Section) (BookSection, error) {
	scheme := sec.Scheme
	if scheme == "" {
		scheme = DefaultScheme(sec.Category)
	}
	title := sec.Title
	if title == "" {
		title = defaultSectionTitle(sec.Category)
	}

	subs := make([]*Submission, 0, len(sec.Rows))
	for i, row := range sec.Rows {
		s, err := submissionFromRow(sec, b.columns, scheme, row, i+1)
		if err != nil {
			return BookSection{}, err
		}
		subs = append(subs, s)
	}
	b.logger.Debug("records normalized", "category", sec.Category, "source", sec.Source, "records", len(subs))

	if err := AssignIdentifiers(sec.Category, scheme, subs); err != nil {
		return BookSection{}, err
	}
	if len(subs) > 0 {
		b.logger.Debug("identifiers assigned", "category", sec.Category, "scheme", scheme,
			"first", subs[0].ID, "last", subs[len(subs)-1].ID)
	}

	return BookSection{Title: title, Category: sec.Category, Scheme: scheme, Submissions: subs}, nil
}

// Mode returns the markup mode the book renders in.
func (bk *Book) Mode() Mode {
	return bk.mode
}

// Render returns the whole book: preface, each section heading followed by
// its records, then the presenter index.
func (bk *Book) Render(ctx context.Context) (string, error) {
	var b strings.Builder

	if strings.TrimSpace(bk.preface) != "" {
		preface, err := bk.renderPreface(ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(preface)
	}

	for _, sec := range bk.Sections {
		bk.renderer.Heading(&b, sec.Title)
		for _, s := range sec.Submissions {
			bk.renderer.Submission(&b, s)
		}
	}
	bk.renderer.Index(&b, bk.IndexTitle, bk.Index)

	bk.logger.Debug("book rendered", "mode", bk.mode, "bytes", b.Len())
	return b.String(), nil
}

func (bk *Book) renderPreface(ctx context.Context) (string, error) {
	pre := &pipeline.CommonMarkPreprocessor{}
	preface := pre.PreprocessMarkdown(ctx, bk.preface)
	if bk.mode == ModeDocument {
		return strings.TrimRight(preface, "\n") + "\n\n", nil
	}
	fragment, err := bk.markdown.ToFragment(ctx, preface)
	if err != nil {
		return "", fmt.Errorf("rendering preface: %w", err)
	}
	return fragment, nil
}

// WriteTo renders the book and writes it with a single Write call, so a
// failed render leaves w untouched.
func (bk *Book) WriteTo(w io.Writer) (int64, error) {
	out, err := bk.Render(context.Background())
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, out)
	return int64(n), err
}
