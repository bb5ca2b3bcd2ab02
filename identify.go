package abstracts

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
)

// MaxIdentifierValue is the largest number that fits the two-digit width.
const MaxIdentifierValue = 99

// AssignIdentifiers sorts subs in place and sets ID on every submission.
//
// SchemePreserve sorts by source number and formats that number.
// SchemeResequence sorts by (LastName, FirstName) with ordinal comparison and
// numbers records 1..n by position. Both sorts are stable, so ties keep input
// order. IDs are left unset when an error is returned.
func AssignIdentifiers(cat Category, scheme Scheme, subs []*Submission) error {
	if scheme == "" {
		scheme = DefaultScheme(cat)
	}

	switch scheme {
	case SchemePreserve:
		return assignPreserved(cat, subs)
	case SchemeResequence:
		return assignResequenced(cat, subs)
	}
	return fmt.Errorf("%w: %q", ErrInvalidScheme, scheme)
}

func assignPreserved(cat Category, subs []*Submission) error {
	slices.SortStableFunc(subs, func(a, b *Submission) int {
		return cmp.Compare(a.Number, b.Number)
	})

	for i, s := range subs {
		if s.Number > MaxIdentifierValue {
			return &MalformedIdentifierError{
				Source:   s.Source,
				Category: cat,
				Value:    strconv.Itoa(s.Number),
				Reason:   fmt.Sprintf("exceeds %d", MaxIdentifierValue),
			}
		}
		if i > 0 && subs[i-1].Number == s.Number {
			return &MalformedIdentifierError{
				Source:   s.Source,
				Category: cat,
				Value:    strconv.Itoa(s.Number),
				Reason:   fmt.Sprintf("duplicate submission number (rows %d and %d)", subs[i-1].Row, s.Row),
			}
		}
	}

	for _, s := range subs {
		s.ID = formatIdentifier(cat, s.Number)
	}
	return nil
}

func assignResequenced(cat Category, subs []*Submission) error {
	if len(subs) > MaxIdentifierValue {
		source := ""
		if len(subs) > 0 {
			source = subs[0].Source
		}
		return &MalformedIdentifierError{
			Source:   source,
			Category: cat,
			Value:    strconv.Itoa(len(subs)) + " records",
			Reason:   fmt.Sprintf("more than %d records", MaxIdentifierValue),
		}
	}

	slices.SortStableFunc(subs, compareByName)

	for i, s := range subs {
		s.ID = formatIdentifier(cat, i+1)
	}
	return nil
}

// compareByName orders by surname, then first name, byte-wise.
func compareByName(a, b *Submission) int {
	if c := cmp.Compare(a.LastName, b.LastName); c != 0 {
		return c
	}
	return cmp.Compare(a.FirstName, b.FirstName)
}

// formatIdentifier returns prefix plus n zero-padded to two digits.
func formatIdentifier(cat Category, n int) string {
	return fmt.Sprintf("%s%02d", cat.Prefix(), n)
}
