// Package abstracts builds a conference book of abstracts from talk and
// poster submissions.
//
// # Quick Start
//
// Decode each category into rows (column name to cell text), then build and
// render the book:
//
//	book, err := abstracts.NewBuilder(
//	    abstracts.WithMode(abstracts.ModeListing),
//	).Build(
//	    abstracts.Section{Category: abstracts.CategoryTalk, Source: "talks.csv", Rows: talks},
//	    abstracts.Section{Category: abstracts.CategoryPoster, Source: "posters.csv", Rows: posters},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := book.Render(ctx)
//
// Render emits, in order: an optional preface, each section heading followed
// by its records, and the presenter index.
//
// # Identifiers
//
// Every record gets a category prefix ("T" or "P") and a two-digit number.
// SchemePreserve formats the source submission number (talk 7 is T07) and
// sorts by it. SchemeResequence sorts by presenter surname then first name
// and numbers records by position. Talks preserve and posters resequence by
// default. Numbers above 99, duplicates and more than 99 resequenced records
// fail the build with a MalformedIdentifierError.
//
// # Markup Modes
//
// ModeDocument renders Markdown: one anchored heading per record, bold field
// labels and a thematic break ("* * *") that the book stylesheet turns into
// a page break. ModeListing renders one anchored HTML table per record for a
// single continuous page. All record text is escaped for the mode.
//
// # Publishing
//
// Book.Publish packages the rendered book as Markdown, HTML or PDF:
//
//	data, err := book.Publish(ctx, abstracts.PublishOptions{
//	    Format: abstracts.FormatHTML,
//	    Title:  "Spring Meeting",
//	    CSS:    css,
//	})
//
// Document mode converts to HTML through goldmark. PDF needs a PDFPrinter,
// such as the go-rod printer used by cmd/abstracts.
//
// # Errors
//
// A required column absent from a row yields a MissingFieldError naming the
// source, row and column. Both error types unwrap to the sentinels
// ErrMissingField and ErrMalformedIdentifier for errors.Is. A failed build
// returns no book.
package abstracts
