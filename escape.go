package abstracts

import (
	"html"
	"strings"
)

// markdownReplacer backslash-escapes the ASCII punctuation that CommonMark
// gives inline or block meaning. Backslash comes first so inserted escapes
// are not escaped again.
var markdownReplacer = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
	`+`, `\+`,
	`-`, `\-`,
	`!`, `\!`,
	`|`, `\|`,
	`~`, `\~`,
	`&`, `\&`,
	`=`, `\=`,
)

// EscapeMarkdown escapes text so it renders literally in a Markdown document.
func EscapeMarkdown(s string) string {
	return markdownReplacer.Replace(s)
}

// EscapeHTML escapes <, >, &, ' and " for embedding in HTML text or
// quoted attribute values.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// escapeOrderedMarker escapes the delimiter of a wrapped line that would
// otherwise open an ordered list, e.g. "1." or "2)".
func escapeOrderedMarker(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	// CommonMark list numbers have at most nine digits.
	if i == 0 || i > 9 || i == len(line) {
		return line
	}
	if line[i] == '.' || line[i] == ')' {
		return line[:i] + `\` + line[i:]
	}
	return line
}
