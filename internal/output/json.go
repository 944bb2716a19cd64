// internal/output/json.go
package output

import (
	"io"

	"deltafilter/internal/delta"
	"deltafilter/internal/jsonutil"
	"deltafilter/pkg/api"
)

func strand(s, e int64) string {
	if e < s {
		return "-"
	}
	return "+"
}

// ToAPIAlignment converts one alignment of rec to the stable wire schema (v1).
func ToAPIAlignment(rec *delta.Record, a *delta.Alignment) api.AlignmentV1 {
	return api.AlignmentV1{
		RefID:      rec.IDR,
		QryID:      rec.IDQ,
		RefLen:     rec.LenR,
		QryLen:     rec.LenQ,
		RefStart:   a.SR,
		RefEnd:     a.ER,
		QryStart:   a.SQ,
		QryEnd:     a.EQ,
		RefSpan:    Span(a.SR, a.ER),
		QrySpan:    Span(a.SQ, a.EQ),
		RefStrand:  strand(a.SR, a.ER),
		QryStrand:  strand(a.SQ, a.EQ),
		Identity:   a.Idy,
		Similarity: a.Sim,
		Stop:       a.Stp,
		Errors:     a.IdyC,
		SimErrors:  a.SimC,
		Stops:      a.StpC,
		Deltas:     append([]int64(nil), a.Deltas...),
	}
}

// ToAPIAlignments flattens records into wire alignments, in order.
func ToAPIAlignments(recs []*delta.Record) []api.AlignmentV1 {
	out := make([]api.AlignmentV1, 0, len(recs))
	for _, rec := range recs {
		for i := range rec.Alignments {
			out = append(out, ToAPIAlignment(rec, &rec.Alignments[i]))
		}
	}
	return out
}

// WriteJSON writes a single JSON array of v1 alignments (pretty-indented).
func WriteJSON(w io.Writer, recs []*delta.Record) error {
	return jsonutil.EncodePretty(w, ToAPIAlignments(recs))
}
