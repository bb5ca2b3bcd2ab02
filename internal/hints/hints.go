// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-abstracts/internal/fileutil"
)

// maxListedColumns caps how many available column names a hint repeats.
const maxListedColumns = 8

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciVariables are set by the CI services whose runners lack a Chrome sandbox.
var ciVariables = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// InCI reports whether a CI service variable is set.
func InCI() bool {
	for _, v := range ciVariables {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect returns hints for a browser that failed to start or
// connect while printing the book.
func ForBrowserConnect() string {
	var hints []string

	if (InCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	hints = append(hints, "or use --format html and print from a browser")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow PDF output.
func ForTimeout() string {
	return format("for large books, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-abstracts/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-abstracts") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForMissingColumn suggests the columns a source actually has, and how to map
// one of them onto the expected field.
func ForMissingColumn(field string, available []string) string {
	var hints []string
	if len(available) > 0 {
		listed := available
		more := ""
		if len(listed) > maxListedColumns {
			listed = listed[:maxListedColumns]
			more = ", ..."
		}
		hints = append(hints, "source columns: "+strings.Join(listed, ", ")+more)
	}
	if field != "" {
		hints = append(hints, "map a different header with columns."+field+" in the config file")
	}
	return formatHints(hints)
}

// ForMalformedIdentifier explains the preserve scheme's requirements.
func ForMalformedIdentifier() string {
	return format("talk numbers must be unique whole numbers from 0 to 99; use --talk-scheme resequence to renumber")
}

// ForUnsupportedSource lists the accepted input extensions.
func ForUnsupportedSource() string {
	return format("inputs must be .csv or .xlsx files")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
