package abstracts

import "testing"

func TestBuildIndex(t *testing.T) {
	t.Parallel()

	entry := func(name, last, id string) *Submission {
		return &Submission{PrimaryAuthor: name, LastName: last, ID: id}
	}

	smith := entry("Jane Smith", "Smith", "T01")
	adams := entry("li adams", "adams", "T02")
	archer := entry("Bo Archer", "Archer", "P01")
	blank := entry("", "", "P02")
	elan := entry("Marc Élan", "Élan", "P03")
	sun := entry("Ann Sun", "Sun", "P04")

	idx := BuildIndex([]*Submission{smith, adams, archer, blank, elan, sun})

	want := []struct {
		key     string
		entries []*Submission
	}{
		{"?", []*Submission{blank}},
		{"A", []*Submission{adams, archer}},
		{"S", []*Submission{smith, sun}},
		{"É", []*Submission{elan}},
	}

	if len(idx.Groups) != len(want) {
		t.Fatalf("got %d groups, want %d", len(idx.Groups), len(want))
	}
	for i, w := range want {
		g := idx.Groups[i]
		if g.Key != w.key {
			t.Errorf("group %d key = %q, want %q", i, g.Key, w.key)
		}
		if len(g.Entries) != len(w.entries) {
			t.Errorf("group %q has %d entries, want %d", g.Key, len(g.Entries), len(w.entries))
			continue
		}
		for j := range w.entries {
			if g.Entries[j] != w.entries[j] {
				t.Errorf("group %q entry %d = %q, want %q", g.Key, j, g.Entries[j].PrimaryAuthor, w.entries[j].PrimaryAuthor)
			}
		}
	}

	if adams.LastName != "adams" {
		t.Error("BuildIndex must not modify submissions")
	}
}

func TestBuildIndex_Empty(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(nil)
	if idx == nil || len(idx.Groups) != 0 {
		t.Errorf("expected empty index, got %+v", idx)
	}
}

func TestGroupKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Smith":    "S",
		"smith":    "S",
		"":         "?",
		"\xffoo":   "?",
		"ørsted":   "Ø",
		"O'Connor": "O",
	}
	for in, want := range tests {
		if got := groupKey(in); got != want {
			t.Errorf("groupKey(%q) = %q, want %q", in, got, want)
		}
	}
}
