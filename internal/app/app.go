// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"deltafilter/internal/appcore"
	"deltafilter/internal/cli"
	"deltafilter/internal/version"
	"deltafilter/internal/writers"
)

const name = "delta-filter"

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		return printUsage(fs, stdout, stderr, 0)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return printUsage(fs, stdout, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return printUsage(fs, stderr, stderr, 2)
	}

	if opts.Version {
		outw := bufio.NewWriter(stdout)
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return flush(outw, stderr, 0)
	}

	return appcore.Run(parent, stdout, stderr, appcore.FromCLI(opts))
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func printUsage(fs *flag.FlagSet, dst, stderr io.Writer, code int) int {
	outw := bufio.NewWriter(dst)
	fs.SetOutput(outw)
	fs.Usage()
	return flush(outw, stderr, code)
}

func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return code
}
