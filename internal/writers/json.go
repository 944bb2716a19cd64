// internal/writers/json.go
package writers

import (
	"io"

	"deltafilter/internal/graph"
	"deltafilter/internal/output"
)

func init() {
	Register(output.FormatJSON, Format{
		Write: func(w io.Writer, g *graph.Graph, _ Options) error {
			return output.WriteJSON(w, g.Records())
		},
		NeedsDeltas: true,
	})
}
