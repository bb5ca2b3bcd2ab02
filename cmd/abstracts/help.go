package main

import (
	"fmt"
	"io"
)

// printUsage prints the command usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: abstracts [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a book of abstracts from talk and poster submissions.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "      --talks <path>        Talk submissions (.csv or .xlsx)")
	fmt.Fprintln(w, "      --posters <path>      Poster submissions (.csv or .xlsx)")
	fmt.Fprintln(w, "      --talk-scheme <s>     Talk identifiers: preserve (default), resequence")
	fmt.Fprintln(w, "      --poster-scheme <s>   Poster identifiers: resequence (default), preserve")
	fmt.Fprintln(w, "      --preface <path>      Markdown placed before the talks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "  -m, --mode <s>            Markup: document (Markdown), listing (HTML, default)")
	fmt.Fprintln(w, "      --wrap <n>            Abstract line width (default 70)")
	fmt.Fprintln(w, "      --link-base <s>       Prefix for identifier links, e.g. abstracts/index.html")
	fmt.Fprintln(w, "      --title <s>           HTML document title")
	fmt.Fprintln(w, "      --index-title <s>     Presenter index heading")
	fmt.Fprintln(w, "      --style <s>           Stylesheet name or .css path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (- = stdout)")
	fmt.Fprintln(w, "  -f, --format <s>          markdown, html, pdf (default from mode or extension)")
	fmt.Fprintln(w, "      --standalone          Wrap listing HTML in a full document")
	fmt.Fprintln(w, "  -p, --page-size <s>       PDF page size: letter, a4, legal")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w, "      --log-format <s>      text (default), json")
	fmt.Fprintln(w, "      --print-config        Print the merged config as YAML and exit")
	fmt.Fprintln(w, "      --doctor              Check the system for PDF output and exit")
	fmt.Fprintln(w, "      --json                With --doctor, print the report as JSON")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
}
