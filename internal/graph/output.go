// internal/graph/output.go
package graph

import (
	"io"

	"deltafilter/internal/delta"
)

// Record converts the retained edgelets of e back into a delta record, in
// input order. The record has no alignments if nothing is retained.
func (e *Edge) Record() *delta.Record {
	rec := &delta.Record{IDR: e.Ref.ID, IDQ: e.Qry.ID, LenR: e.Ref.Len, LenQ: e.Qry.Len}
	for _, el := range e.Edgelets {
		if el.Retained {
			rec.Alignments = append(rec.Alignments, el.Alignment())
		}
	}
	return rec
}

// WriteDelta writes the graph as a delta file: the preamble once, then one
// record per sequence pair with at least one retained alignment, in the order
// the pairs were first read.
func (g *Graph) WriteDelta(w io.Writer) error {
	dw := delta.NewWriter(w)
	if err := dw.WriteHeader(g.Header()); err != nil {
		return err
	}
	for _, rec := range g.Records() {
		if err := dw.WriteRecord(rec); err != nil {
			return err
		}
	}
	return dw.Flush()
}

// Records returns one record per edge with at least one retained alignment,
// in first-seen order.
func (g *Graph) Records() []*delta.Record {
	var out []*delta.Record
	for _, e := range g.edges {
		if rec := e.Record(); len(rec.Alignments) > 0 {
			out = append(out, rec)
		}
	}
	return out
}
