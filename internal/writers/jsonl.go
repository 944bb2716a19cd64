// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"deltafilter/internal/delta"
	"deltafilter/internal/graph"
	"deltafilter/internal/jsonlutil"
	"deltafilter/internal/output"
)

type row struct {
	rec *delta.Record
	aln *delta.Alignment
}

// startJSONL streams each alignment as one JSON line (v1).
func startJSONL(out io.Writer, bufSize int) (chan<- row, <-chan error) {
	return jsonlutil.Start[row](out, bufSize,
		func(enc *json.Encoder, r row) error {
			return enc.Encode(output.ToAPIAlignment(r.rec, r.aln))
		},
		IsBrokenPipe,
	)
}

func writeJSONL(w io.Writer, g *graph.Graph, _ Options) error {
	in, done := startJSONL(w, 0)
	for _, rec := range g.Records() {
		for i := range rec.Alignments {
			in <- row{rec, &rec.Alignments[i]}
		}
	}
	close(in)
	return <-done
}

func init() {
	Register(output.FormatJSONL, Format{Write: writeJSONL, NeedsDeltas: true})
}
