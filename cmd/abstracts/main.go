package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	abstracts "github.com/alnah/go-abstracts"
	"github.com/alnah/go-abstracts/internal/config"
	"github.com/alnah/go-abstracts/internal/hints"
	"github.com/alnah/go-abstracts/internal/logging"
	"github.com/alnah/go-abstracts/internal/pdf"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain parses args, runs the command and returns the exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	flags, err := parseFlags(args, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "abstracts: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'abstracts --help' for usage.")
		return ExitUsage
	}

	if flags.version {
		fmt.Fprintf(env.Stdout, "abstracts %s\n", Version)
		return ExitSuccess
	}
	if flags.doctor {
		return runDoctor(env, flags.json)
	}

	logger := logging.Setup(env.Stderr, flags.logLevel(), flags.common.logFormat)

	if env.MaxProcs != nil {
		if flags.common.verbose {
			env.MaxProcs(logging.Printf(logger))
		} else {
			env.MaxProcs(func(string, ...any) {})
		}
	}

	if err := run(ctx, flags, env, logger); err != nil {
		fmt.Fprintf(env.Stderr, "abstracts: %v%s\n", err, hintFor(err, flags))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(logf func(string, ...any)) {
	_, _ = maxprocs.Set(maxprocs.Logger(logf))
}

// hintFor returns an actionable hint for errors whose fix is outside the
// data itself. Column and style hints are attached where the error occurs.
func hintFor(err error, flags *cliFlags) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(flags.common.config))
	case errors.Is(err, pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, pdf.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, abstracts.ErrMalformedIdentifier):
		return hints.ForMalformedIdentifier()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
