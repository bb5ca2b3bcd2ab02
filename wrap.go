package abstracts

import "strings"

// DefaultWrapWidth is the line width used for abstract bodies.
const DefaultWrapWidth = 70

// wrapText fills words greedily into lines of at most width bytes, each
// prefixed by indent. Runs of whitespace, newlines included, collapse to one
// space. A word longer than width gets a line of its own and is not split,
// so escape sequences and entities stay intact.
func wrapText(text string, width int, indent string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var line strings.Builder
	for _, w := range words {
		if line.Len() > 0 && line.Len()+1+len(w) > width {
			lines = append(lines, indent+line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(w)
	}
	return append(lines, indent+line.String())
}
