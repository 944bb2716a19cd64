// internal/output/rows.go
package output

import (
	"strconv"

	"deltafilter/internal/delta"
)

// Span is the inclusive aligned length between two delta coordinates.
func Span(s, e int64) int64 {
	if e < s {
		return s - e + 1
	}
	return e - s + 1
}

// AppendRowTSV appends the coords columns of one alignment (no trailing
// newline). Percentages have two decimals.
func AppendRowTSV(b []byte, rec *delta.Record, a *delta.Alignment) []byte {
	for i, v := range [...]int64{a.SR, a.ER, a.SQ, a.EQ, Span(a.SR, a.ER), Span(a.SQ, a.EQ)} {
		if i > 0 {
			b = append(b, '\t')
		}
		b = strconv.AppendInt(b, v, 10)
	}
	for _, f := range [...]float64{a.Idy, a.Sim, a.Stp} {
		b = append(b, '\t')
		b = strconv.AppendFloat(b, f, 'f', 2, 64)
	}
	b = append(b, '\t')
	b = strconv.AppendInt(b, rec.LenR, 10)
	b = append(b, '\t')
	b = strconv.AppendInt(b, rec.LenQ, 10)
	b = append(b, '\t')
	b = append(b, rec.IDR...)
	b = append(b, '\t')
	b = append(b, rec.IDQ...)
	return b
}

// FormatRowTSV is AppendRowTSV into a fresh string.
func FormatRowTSV(rec *delta.Record, a *delta.Alignment) string {
	return string(AppendRowTSV(nil, rec, a))
}
