// internal/writers/delta.go
package writers

import (
	"io"

	"deltafilter/internal/graph"
	"deltafilter/internal/output"
)

func init() {
	Register(output.FormatDelta, Format{
		Write: func(w io.Writer, g *graph.Graph, _ Options) error {
			return g.WriteDelta(w)
		},
		NeedsDeltas: true,
	})
}
