package abstracts

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// keywordSeparator joins normalized keyword and topic terms.
const keywordSeparator = ", "

// NewSubmission builds a normalized Submission from raw fields.
// The presenter name must contain at least one token before any "[".
func NewSubmission(cat Category, raw RawFields) (*Submission, error) {
	display := primaryAuthor(raw.Author)
	tokens := strings.Fields(display)
	if len(tokens) == 0 {
		return nil, &MissingFieldError{Field: "presenter", Empty: true}
	}

	coauthors := stripAuthorPrefix(raw.Coauthors, raw.Author)

	return &Submission{
		Category:      cat,
		RawAuthor:     raw.Author,
		PrimaryAuthor: display,
		FirstName:     tokens[0],
		LastName:      tokens[len(tokens)-1],
		Coauthors:     coauthors,
		AuthorList:    joinAuthorList(display, coauthors),
		Affiliations:  raw.Affiliations,
		Title:         raw.Title,
		Text:          raw.Text,
		Keywords:      NormalizeKeywords(raw.Keywords),
		Topics:        raw.Topics,
	}, nil
}

// primaryAuthor drops everything from the first "[" (affiliation markers).
func primaryAuthor(author string) string {
	if i := strings.IndexByte(author, '['); i != -1 {
		author = author[:i]
	}
	return strings.TrimSpace(author)
}

// stripAuthorPrefix removes a literal repeat of the raw author at the start
// of the coauthor field, once. It does not compare names.
func stripAuthorPrefix(coauthors, author string) string {
	if author == "" {
		return coauthors
	}
	return strings.TrimPrefix(coauthors, author)
}

// joinAuthorList appends coauthors to the display name. A comma is inserted
// unless coauthors already starts with one.
func joinAuthorList(display, coauthors string) string {
	if coauthors == "" {
		return display
	}
	if strings.HasPrefix(coauthors, ",") {
		return display + " " + coauthors
	}
	return display + ", " + coauthors
}

// NormalizeKeywords splits on ',' and ';', drops empty terms, collapses inner
// whitespace, title-cases each term and joins with ", ".
// The result is stable: NormalizeKeywords(NormalizeKeywords(s)) == NormalizeKeywords(s).
func NormalizeKeywords(s string) string {
	// cases.Caser keeps state between calls and is not safe for sharing.
	caser := cases.Title(language.English)

	parts := strings.FieldsFunc(s, isKeywordDelimiter)
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		term := strings.Join(strings.Fields(p), " ")
		if term == "" {
			continue
		}
		terms = append(terms, caser.String(term))
	}
	return strings.Join(terms, keywordSeparator)
}

func isKeywordDelimiter(r rune) bool {
	return r == ',' || r == ';'
}

// JoinTopics turns a ";"-delimited multi-select cell into a ", " list.
// Empty selections are dropped.
func JoinTopics(s string) string {
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, keywordSeparator)
}

// extractRaw reads the required columns of a row.
func (c Columns) extractRaw(row Row) (RawFields, error) {
	var raw RawFields
	fields := []struct {
		column string
		dest   *string
	}{
		{c.Presenter, &raw.Author},
		{c.Coauthors, &raw.Coauthors},
		{c.Affiliations, &raw.Affiliations},
		{c.Title, &raw.Title},
		{c.Abstract, &raw.Text},
		{c.Keywords, &raw.Keywords},
		{c.Topics, &raw.Topics},
	}
	for _, f := range fields {
		v, ok := row[f.column]
		if !ok {
			return RawFields{}, &MissingFieldError{Field: f.column}
		}
		*f.dest = v
	}
	raw.Topics = JoinTopics(raw.Topics)
	return raw, nil
}

// submissionFromRow decodes and normalizes one row of a section.
// row is the 1-based data row used in error messages.
func submissionFromRow(sec *Section, cols Columns, scheme Scheme, r Row, row int) (*Submission, error) {
	raw, err := cols.extractRaw(r)
	if err != nil {
		return nil, locate(err, sec.Source, row)
	}

	sub, err := NewSubmission(sec.Category, raw)
	if err != nil {
		if mf, ok := err.(*MissingFieldError); ok {
			mf.Field = cols.Presenter
		}
		return nil, locate(err, sec.Source, row)
	}
	sub.Source = sec.Source
	sub.Row = row

	if scheme == SchemePreserve {
		text, ok := r[cols.Number]
		if !ok {
			return nil, locate(&MissingFieldError{Field: cols.Number}, sec.Source, row)
		}
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || n < 0 {
			return nil, &MalformedIdentifierError{
				Source:   sec.Source,
				Category: sec.Category,
				Value:    fmt.Sprintf("%q at row %d", text, row),
				Reason:   "submission number must be a non-negative integer",
			}
		}
		sub.Number = n
	}

	return sub, nil
}

// locate stamps source and row onto a MissingFieldError.
func locate(err error, source string, row int) error {
	if mf, ok := err.(*MissingFieldError); ok {
		mf.Source = source
		mf.Row = row
	}
	return err
}
