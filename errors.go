package abstracts

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrMissingField        = errors.New("missing required field")
	ErrMalformedIdentifier = errors.New("malformed identifier")
	ErrInvalidMode         = errors.New("invalid markup mode")
	ErrInvalidScheme       = errors.New("invalid identifier scheme")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidWrapWidth    = errors.New("invalid wrap width")
	ErrNoSections          = errors.New("no sections to render")
	ErrDuplicateCategory   = errors.New("category given more than once")
	ErrInvalidFormat       = errors.New("invalid output format")
	ErrFormatMismatch      = errors.New("output format does not fit markup mode")
	ErrNoPrinter           = errors.New("no PDF printer configured")
)

// MissingFieldError reports a required column absent from a decoded row,
// or a presenter name that yields no display name.
type MissingFieldError struct {
	Source string // input name, e.g. "data/talks.csv"
	Row    int    // 1-based data row, 0 when unknown
	Field  string // column name as it appears in the source
	Empty  bool   // column present but its value is unusable
}

func (e *MissingFieldError) Error() string {
	what := "absent"
	if e.Empty {
		what = "empty"
	}
	loc := e.Source
	if loc == "" {
		loc = "<input>"
	}
	if e.Row > 0 {
		loc = fmt.Sprintf("%s row %d", loc, e.Row)
	}
	return fmt.Sprintf("%s: %v %q (%s)", loc, ErrMissingField, e.Field, what)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// MalformedIdentifierError reports an identifier that cannot be produced
// without truncation or collision.
type MalformedIdentifierError struct {
	Source   string
	Category Category
	Value    string // offending number, count or raw text
	Reason   string
}

func (e *MalformedIdentifierError) Error() string {
	src := ""
	if e.Source != "" {
		src = e.Source + ": "
	}
	return fmt.Sprintf("%s%v for %s: %s (%s)", src, ErrMalformedIdentifier, e.Category, e.Value, e.Reason)
}

func (e *MalformedIdentifierError) Unwrap() error { return ErrMalformedIdentifier }
