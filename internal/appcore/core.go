// internal/appcore/core.go
package appcore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"deltafilter/internal/cli"
	"deltafilter/internal/cmdutil"
	"deltafilter/internal/delta"
	"deltafilter/internal/fasta"
	"deltafilter/internal/graph"
	"deltafilter/internal/input"
	"deltafilter/internal/jsonutil"
	"deltafilter/internal/writers"
	"deltafilter/pkg/api"
)

type Options struct {
	Input    string
	RefFasta []string
	QryFasta []string

	Steps       []cli.Step
	MinIdentity float64
	MinLength   int64
	MinUnique   float64
	Epsilon     float64
	MaxOverlap  float64

	Threads int

	Output string
	Header bool
	Stats  bool
	Quiet  bool
}

// FromCLI copies the parsed flags.
func FromCLI(o cli.Options) Options {
	return Options{
		Input: o.Input, RefFasta: o.RefFasta, QryFasta: o.QryFasta,
		Steps: o.Steps, MinIdentity: o.MinIdentity, MinLength: o.MinLength, MinUnique: o.MinUnique,
		Epsilon: o.Epsilon, MaxOverlap: o.MaxOverlap,
		Threads: o.Threads,
		Output:  o.Output, Header: o.Header, Stats: o.Stats, Quiet: o.Quiet,
	}
}

// Run reads, filters and writes one delta file. Nothing reaches stdout
// unless every step succeeds.
func Run(ctx context.Context, stdout, stderr io.Writer, o Options) int {
	format, err := writers.Lookup(o.Output)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	bopt := graph.BuildOptions{HeadersOnly: !format.NeedsDeltas, Threads: thr}
	if len(o.RefFasta) > 0 {
		lk, err := fasta.LoadLengths(ctx, o.RefFasta...)
		if err != nil {
			return fail(stderr, err)
		}
		bopt.RefLengths = lk
	}
	if len(o.QryFasta) > 0 {
		lk, err := fasta.LoadLengths(ctx, o.QryFasta...)
		if err != nil {
			return fail(stderr, err)
		}
		bopt.QryLengths = lk
	}

	g, err := build(ctx, o.Input, bopt)
	if err != nil {
		return fail(stderr, err)
	}
	in := g.Stats()
	cmdutil.Infof(stderr, o.Quiet, "read %s alignments over %s sequence pairs",
		cmdutil.Count(in.Edgelets), cmdutil.Count(in.Edges))

	for _, s := range o.Steps {
		if err := ctx.Err(); err != nil {
			return fail(stderr, err)
		}
		if err := Apply(g, s, o); err != nil {
			return fail(stderr, fmt.Errorf("%s filter: %w", s, err))
		}
		cmdutil.Infof(stderr, o.Quiet, "%s filter: %s alignments retained", s, cmdutil.Count(g.RetainedCount()))
	}
	g.Clean()
	if g.EdgeletCount() == 0 && in.Edgelets > 0 {
		cmdutil.Warnf(stderr, o.Quiet, "no alignments passed the filters")
	}

	var buf bytes.Buffer
	if err := format.Write(&buf, g, writers.Options{Header: o.Header}); err != nil {
		return fail(stderr, err)
	}
	if err := ctx.Err(); err != nil {
		return fail(stderr, err)
	}
	if _, err := buf.WriteTo(stdout); writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}

	if o.Stats {
		if err := jsonutil.EncodePretty(stderr, summary(o, g, in)); err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
	}
	return 0
}

// Apply runs one filter step on g.
func Apply(g *graph.Graph, s cli.Step, o Options) error {
	switch s {
	case cli.StepScore:
		return g.FlagScore(o.MinLength, o.MinIdentity)
	case cli.StepUnique:
		return g.FlagUNIQ(o.MinUnique)
	case cli.StepQuery:
		return g.FlagQLIS(o.Epsilon, o.MaxOverlap)
	case cli.StepReference:
		return g.FlagRLIS(o.Epsilon, o.MaxOverlap)
	case cli.StepGlobal:
		return g.FlagGLIS(o.Epsilon)
	case cli.StepOneToOne:
		return g.FlagOneToOne(o.Epsilon, o.MaxOverlap)
	case cli.StepManyToMany:
		return g.FlagManyToMany(o.Epsilon, o.MaxOverlap)
	}
	return fmt.Errorf("unknown filter step %d", int(s))
}

func build(ctx context.Context, path string, opt graph.BuildOptions) (*graph.Graph, error) {
	rc, err := input.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	g, err := graph.Build(delta.NewReader(ctxReader{ctx, rc}), opt)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ctxReader stops a long parse once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func fail(stderr io.Writer, err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 130
	}
	fmt.Fprintln(stderr, "error:", err)
	return 3
}

func summary(o Options, g *graph.Graph, in graph.Stats) api.SummaryV1 {
	steps := make([]string, len(o.Steps))
	for i, s := range o.Steps {
		steps[i] = s.String()
	}
	h := g.Header()
	return api.SummaryV1{
		Input:         o.Input,
		Type:          h.Type.String(),
		RefPath:       h.RefPath,
		QryPath:       h.QryPath,
		Steps:         steps,
		RefSequences:  in.RefNodes,
		QrySequences:  in.QryNodes,
		Pairs:         in.Edges,
		AlignmentsIn:  in.Edgelets,
		AlignmentsOut: g.EdgeletCount(),
	}
}
