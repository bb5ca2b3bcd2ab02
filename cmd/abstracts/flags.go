package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags that control the run rather than the book.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// inputFlags holds source file flags.
type inputFlags struct {
	talks        string
	posters      string
	talkScheme   string
	posterScheme string
	preface      string
}

// layoutFlags holds rendering flags.
type layoutFlags struct {
	mode       string
	wrap       int
	linkBase   string
	title      string
	indexTitle string
	style      string
}

// outputFlags holds destination flags.
type outputFlags struct {
	path       string
	format     string
	standalone bool
	pageSize   string
	timeout    string
}

// cliFlags holds every flag of the abstracts command.
type cliFlags struct {
	common      commonFlags
	input       inputFlags
	layout      layoutFlags
	output      outputFlags
	printConfig bool
	doctor      bool
	json        bool
	version     bool
}

// logLevel maps --quiet and --verbose to a slog level name.
func (f *cliFlags) logLevel() string {
	switch {
	case f.common.verbose:
		return "debug"
	case f.common.quiet:
		return "error"
	}
	return "info"
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
	fs.StringVar(&f.logFormat, "log-format", "text", "log format: text, json")
}

func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVar(&f.talks, "talks", "", "talk submissions (.csv or .xlsx)")
	fs.StringVar(&f.posters, "posters", "", "poster submissions (.csv or .xlsx)")
	fs.StringVar(&f.talkScheme, "talk-scheme", "", "talk identifiers: preserve, resequence")
	fs.StringVar(&f.posterScheme, "poster-scheme", "", "poster identifiers: preserve, resequence")
	fs.StringVar(&f.preface, "preface", "", "Markdown file placed before the talks")
}

func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.StringVarP(&f.mode, "mode", "m", "", "markup mode: document, listing")
	fs.IntVar(&f.wrap, "wrap", 0, "abstract line width (default 70)")
	fs.StringVar(&f.linkBase, "link-base", "", "prefix for identifier links")
	fs.StringVar(&f.title, "title", "", "HTML document title")
	fs.StringVar(&f.indexTitle, "index-title", "", "presenter index heading")
	fs.StringVar(&f.style, "style", "", "stylesheet name or .css path")
}

func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.path, "output", "o", "", "output file (- = stdout)")
	fs.StringVarP(&f.format, "format", "f", "", "output format: markdown, html, pdf")
	fs.BoolVar(&f.standalone, "standalone", false, "wrap listing HTML in a full document")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "PDF page size: letter, a4, legal")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
}

// parseFlags parses the command line (without the program name).
// Usage goes to usage when --help is given.
func parseFlags(args []string, usage io.Writer) (*cliFlags, error) {
	fs := flag.NewFlagSet("abstracts", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &cliFlags{}

	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addLayoutFlags(fs, &f.layout)
	addOutputFlags(fs, &f.output)
	fs.BoolVar(&f.printConfig, "print-config", false, "print the merged config as YAML and exit")
	fs.BoolVar(&f.doctor, "doctor", false, "check the system for PDF output and exit")
	fs.BoolVar(&f.json, "json", false, "print the --doctor report as JSON")
	fs.BoolVar(&f.version, "version", false, "show version information")

	fs.Usage = func() { printUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnexpectedArgs, fs.Args())
	}
	return f, nil
}
