// internal/delta/types.go
package delta

import "fmt"

// DataType tags the kind of alignment data held in a delta file.
type DataType byte

const (
	NullData DataType = 0
	Nucmer   DataType = 'N'
	Promer   DataType = 'P'
)

const (
	NucmerTag = "NUCMER"
	PromerTag = "PROMER"
)

// String returns the tag line used in the delta preamble.
func (t DataType) String() string {
	switch t {
	case Nucmer:
		return NucmerTag
	case Promer:
		return PromerTag
	default:
		return ""
	}
}

// ParseDataType maps a preamble tag line to a DataType.
func ParseDataType(s string) (DataType, bool) {
	switch s {
	case NucmerTag:
		return Nucmer, true
	case PromerTag:
		return Promer, true
	}
	return NullData, false
}

// Dir is a match direction on one axis.
type Dir uint8

const (
	Forward Dir = iota
	Reverse
)

func (d Dir) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Header is the two-line preamble of a delta file.
type Header struct {
	Type    DataType
	RefPath string
	QryPath string
}

// Alignment is one delta-encoded alignment region. Coordinates are 1-based
// and start > end marks a reverse match on that axis.
type Alignment struct {
	SR, ER int64
	SQ, EQ int64

	IdyC int64 // mismatches
	SimC int64 // similarity scores < 1
	StpC int64 // stop codons

	Idy float64 // percent identity [0-100]
	Sim float64 // percent similarity [0-100]
	Stp float64 // percent stop codon [0-100]

	// Deltas holds the gap positions without the terminating 0.
	Deltas []int64
}

// Record holds the alignments between one reference and one query sequence.
type Record struct {
	IDR, IDQ   string
	LenR, LenQ int64
	Alignments []Alignment
}

// ParseError reports a malformed or truncated delta stream.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	s := fmt.Sprintf("delta: line %d: %s", e.Line, e.Msg)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ParseError) Unwrap() error { return e.Err }

// ComputePercents derives Idy, Sim and Stp from the counts and span length.
// negDeltas is the number of negative gap positions, each adding one column.
func (a *Alignment) ComputePercents(t DataType, negDeltas int) {
	total := a.Columns(t, negDeltas)
	a.Idy = (total - float64(a.IdyC)) / total * 100
	a.Sim = (total - float64(a.SimC)) / total * 100
	a.Stp = float64(a.StpC) / (total * 2) * 100
}

// Columns is the alignment length the percentages are taken over: the
// reference span (in codons for Promer) plus one per negative gap.
func (a *Alignment) Columns(t DataType, negDeltas int) float64 {
	span := a.ER - a.SR
	if span < 0 {
		span = -span
	}
	total := float64(span) + 1
	if t == Promer {
		total /= 3
	}
	return total + float64(negDeltas)
}
