// internal/writers/coords.go
package writers

import (
	"io"

	"deltafilter/internal/graph"
	"deltafilter/internal/output"
)

func init() {
	Register(output.FormatCoords, Format{
		Write: func(w io.Writer, g *graph.Graph, opt Options) error {
			return output.WriteCoords(w, g.Records(), opt.Header)
		},
	})
}
