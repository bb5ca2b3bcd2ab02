package abstracts

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IndexGroup holds the submissions whose presenter surname starts with Key.
type IndexGroup struct {
	Key     string // upper-cased first letter of the surname
	Entries []*Submission
}

// Index is the presenter index: groups sorted by key, entries in the
// order the submissions were given.
type Index struct {
	Groups []IndexGroup
}

// BuildIndex groups identified submissions by the first letter of
// LastName. Grouping ignores case; the submissions themselves are untouched.
func BuildIndex(subs []*Submission) *Index {
	pos := make(map[string]int)
	idx := &Index{}

	for _, s := range subs {
		key := groupKey(s.LastName)
		i, ok := pos[key]
		if !ok {
			i = len(idx.Groups)
			pos[key] = i
			idx.Groups = append(idx.Groups, IndexGroup{Key: key})
		}
		idx.Groups[i].Entries = append(idx.Groups[i].Entries, s)
	}

	slices.SortStableFunc(idx.Groups, func(a, b IndexGroup) int {
		return strings.Compare(a.Key, b.Key)
	})
	return idx
}

func groupKey(lastName string) string {
	r, _ := utf8.DecodeRuneInString(lastName)
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}
