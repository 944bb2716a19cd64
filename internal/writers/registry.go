// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"deltafilter/internal/graph"
)

// Options are the presentation switches shared by all formats.
type Options struct {
	Header bool // column header for tabular formats
}

// Func renders the retained alignments of g.
type Func func(w io.Writer, g *graph.Graph, opt Options) error

// Format describes one registered output.
type Format struct {
	Write Func
	// NeedsDeltas is false for formats that never print gap positions, so
	// the input may be read headers-only.
	NeedsDeltas bool
}

// Registry (format → handler). Register from init() blocks in each writer file.
var registry = map[string]Format{}

// Register adds or replaces a format (last wins).
func Register(name string, f Format) { registry[name] = f }

// Lookup returns the format registered under name.
func Lookup(name string) (Format, error) {
	f, ok := registry[name]
	if !ok {
		return Format{}, fmt.Errorf("unknown output format %q (no writer registered)", name)
	}
	return f, nil
}

// Write dispatches to the named format.
func Write(name string, w io.Writer, g *graph.Graph, opt Options) error {
	f, err := Lookup(name)
	if err != nil {
		return err
	}
	return f.Write(w, g, opt)
}

// Names lists the registered formats, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
