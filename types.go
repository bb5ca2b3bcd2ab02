package abstracts

import (
	"fmt"
	"strings"
)

// Category distinguishes talks from posters.
type Category int

// Category values.
const (
	CategoryTalk Category = iota + 1
	CategoryPoster
)

// Prefix returns the identifier prefix for the category.
func (c Category) Prefix() string {
	switch c {
	case CategoryTalk:
		return "T"
	case CategoryPoster:
		return "P"
	}
	return "?"
}

func (c Category) String() string {
	switch c {
	case CategoryTalk:
		return "talks"
	case CategoryPoster:
		return "posters"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory accepts "talk", "talks", "poster" or "posters" (case-insensitive).
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "talk", "talks":
		return CategoryTalk, nil
	case "poster", "posters":
		return CategoryPoster, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Scheme selects how identifiers are derived for a category.
type Scheme string

// Identifier schemes.
const (
	// SchemePreserve formats the source submission number and sorts by it.
	SchemePreserve Scheme = "preserve"
	// SchemeResequence sorts by presenter surname then first name and numbers
	// records by position.
	SchemeResequence Scheme = "resequence"
)

// DefaultScheme returns the scheme a category uses when none is configured.
func DefaultScheme(c Category) Scheme {
	if c == CategoryTalk {
		return SchemePreserve
	}
	return SchemeResequence
}

// ParseScheme validates a scheme name. Empty input returns "" (use default).
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case SchemePreserve:
		return SchemePreserve, nil
	case SchemeResequence:
		return SchemeResequence, nil
	}
	return "", fmt.Errorf("%w: %q (must be preserve or resequence)", ErrInvalidScheme, s)
}

// Mode selects the markup the renderer produces.
type Mode string

// Markup modes.
const (
	// ModeDocument emits Markdown sections with bold labels and a page
	// break after each record.
	ModeDocument Mode = "document"
	// ModeListing emits anchored HTML tables for a single continuous page.
	ModeListing Mode = "listing"
)

// ParseMode validates a markup mode name (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDocument:
		return ModeDocument, nil
	case ModeListing:
		return ModeListing, nil
	}
	return "", fmt.Errorf("%w: %q (must be document or listing)", ErrInvalidMode, s)
}

// Row is one decoded tabular record: column name to cell text.
type Row map[string]string

// Columns maps logical submission fields to source column names.
type Columns struct {
	Presenter    string
	Coauthors    string
	Affiliations string
	Title        string
	Abstract     string
	Keywords     string
	Topics       string
	Number       string // talks only
}

// DefaultColumns returns the column names of the submission form export.
func DefaultColumns() Columns {
	return Columns{
		Presenter:    "Presenter name",
		Coauthors:    "Coauthors",
		Affiliations: "Affiliations",
		Title:        "Title",
		Abstract:     "Abstract (max 1500 characters)",
		Keywords:     "Keywords",
		Topics:       "Topics (select all that apply)",
		Number:       "Talk Number",
	}
}

// WithDefaults fills empty column names from DefaultColumns.
func (c Columns) WithDefaults() Columns {
	d := DefaultColumns()
	if c.Presenter == "" {
		c.Presenter = d.Presenter
	}
	if c.Coauthors == "" {
		c.Coauthors = d.Coauthors
	}
	if c.Affiliations == "" {
		c.Affiliations = d.Affiliations
	}
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.Abstract == "" {
		c.Abstract = d.Abstract
	}
	if c.Keywords == "" {
		c.Keywords = d.Keywords
	}
	if c.Topics == "" {
		c.Topics = d.Topics
	}
	if c.Number == "" {
		c.Number = d.Number
	}
	return c
}

// RawFields holds the plain-text fields a Submission is built from.
// Topics is already joined with ", ".
type RawFields struct {
	Author       string
	Coauthors    string
	Affiliations string
	Title        string
	Text         string
	Keywords     string
	Topics       string
}

// Submission is one talk or poster abstract.
// Fields are derived once by NewSubmission; ID is set by AssignIdentifiers.
type Submission struct {
	Category Category
	ID       string
	Number   int // source submission number, preserve scheme only

	RawAuthor     string // presenter field as supplied
	PrimaryAuthor string // RawAuthor truncated at "[" and trimmed
	FirstName     string
	LastName      string
	Coauthors     string
	AuthorList    string

	Affiliations string
	Title        string
	Text         string
	Keywords     string
	Topics       string

	Source string // input name, for diagnostics
	Row    int    // 1-based data row, for diagnostics
}

// Section is one category of the book and the rows that feed it.
type Section struct {
	Title    string   // heading; defaults to "Talks" or "Posters"
	Category Category // required
	Scheme   Scheme   // empty uses DefaultScheme(Category)
	Source   string   // input name for error messages
	Rows     []Row
}

// defaultSectionTitle returns the heading used when Section.Title is empty.
func defaultSectionTitle(c Category) string {
	if c == CategoryTalk {
		return "Talks"
	}
	return "Posters"
}
