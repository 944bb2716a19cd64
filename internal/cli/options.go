// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"math"

	"deltafilter/internal/cliutil"
	"deltafilter/internal/output"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	Input    string
	RefFasta []string
	QryFasta []string

	// Filters, in run order
	Steps       []Step
	MinIdentity float64
	MinLength   int64
	MinUnique   float64
	Epsilon     float64
	MaxOverlap  float64

	// Performance
	Threads int

	// Output
	Output string
	Header bool // true unless --no-header
	Stats  bool

	// Misc
	Quiet   bool
	Version bool
}

// ParseArgs registers and parses all flags, returns an Options struct.
// Flags and the input path may be given in any order.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help, noHeader bool
	p := &plan{}

	// Filters
	score := &stepFloat{p: p, step: StepScore, dst: &opt.MinIdentity}
	fs.Var(score, "min-identity", "minimum alignment identity [0,100]")
	fs.Var(score, "i", "alias of --min-identity")
	length := &stepInt{p: p, step: StepScore, dst: &opt.MinLength}
	fs.Var(length, "min-length", "minimum alignment length on the reference")
	fs.Var(length, "l", "alias of --min-length")
	uniq := &stepFloat{p: p, step: StepUnique, dst: &opt.MinUnique}
	fs.Var(uniq, "min-unique", "minimum alignment uniqueness [0,100]")
	fs.Var(uniq, "u", "alias of --min-unique")

	for _, b := range []struct {
		long, short string
		step        Step
		usage       string
	}{
		{"query", "q", StepQuery, "query chain: best consistent alignments per query"},
		{"reference", "r", StepReference, "reference chain: best consistent alignments per reference"},
		{"global", "g", StepGlobal, "global chain per sequence pair"},
		{"one-to-one", "1", StepOneToOne, "intersection of query and reference chains"},
		{"many-to-many", "m", StepManyToMany, "union of query and reference chains"},
	} {
		v := &stepBool{p: p, step: b.step}
		fs.Var(v, b.long, b.usage)
		fs.Var(v, b.short, "alias of --"+b.long)
	}

	fs.Float64Var(&opt.Epsilon, "epsilon", -1, "keep repeats within this percent of the best chain (-1 = best only)")
	fs.Float64Var(&opt.Epsilon, "e", -1, "alias of --epsilon")
	fs.Float64Var(&opt.MaxOverlap, "max-overlap", 100, "max overlap between chained alignments, percent of the shorter")
	fs.Float64Var(&opt.MaxOverlap, "o", 100, "alias of --max-overlap")

	// Input
	fs.Var(&sliceValue{dst: &opt.RefFasta}, "ref-fasta", "reference FASTA for length checks (repeatable)")
	fs.Var(&sliceValue{dst: &opt.QryFasta}, "qry-fasta", "query FASTA for length checks (repeatable)")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 1, "worker threads for filter passes (0=all CPUs)")
	fs.IntVar(&opt.Threads, "t", 1, "alias of --threads")

	// Output
	fs.StringVar(&opt.Output, "output", output.FormatDelta, "output: delta | coords | json | jsonl")
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in coords output")
	fs.BoolVar(&opt.Stats, "stats", false, "print a JSON run summary to stderr")

	// Misc
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress non-essential messages")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")
	fs.BoolVar(&help, "h", false, "show this help message")
	fs.BoolVar(&help, "help", false, "show this help message")

	installUsage(fs)

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	posArgs = append(posArgs, fs.Args()...)
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Steps = p.steps
	opt.Header = !noHeader

	inputs, err := cliutil.ExpandPositionals(posArgs)
	if err != nil {
		return opt, err
	}
	if len(inputs) != 1 {
		return opt, fmt.Errorf("exactly one delta file (or '-') is required, got %d", len(inputs))
	}
	opt.Input = inputs[0]
	return opt, Validate(&opt)
}

// Validate applies the CLI invariants.
func Validate(o *Options) error {
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"--min-identity", o.MinIdentity},
		{"--min-unique", o.MinUnique},
		{"--max-overlap", o.MaxOverlap},
	} {
		if math.IsNaN(c.v) || c.v < 0 || c.v > 100 {
			return fmt.Errorf("%s must be within [0,100]", c.name)
		}
	}
	if o.MinLength < 0 {
		return errors.New("--min-length must be ≥ 0")
	}
	if math.IsNaN(o.Epsilon) || math.IsInf(o.Epsilon, 0) {
		return errors.New("--epsilon must be a finite number")
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	switch o.Output {
	case output.FormatDelta, output.FormatCoords, output.FormatJSON, output.FormatJSONL:
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	return nil
}
