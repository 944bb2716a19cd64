// internal/delta/writer.go
package delta

import (
	"bufio"
	"errors"
	"io"
	"strconv"
)

// Writer serializes delta records. Call Flush when done.
type Writer struct {
	bw      *bufio.Writer
	started bool
	scratch []byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriterSize(w, 64<<10)}
}

// WriteHeader writes the tag line followed by "refpath qrypath". It must be
// called exactly once, before any record.
func (w *Writer) WriteHeader(h Header) error {
	if w.started {
		return errors.New("delta: header already written")
	}
	tag := h.Type.String()
	if tag == "" {
		return errors.New("delta: header has no alignment data type")
	}
	w.started = true
	b := w.scratch[:0]
	b = append(b, tag...)
	b = append(b, '\n')
	b = append(b, h.RefPath...)
	b = append(b, ' ')
	b = append(b, h.QryPath...)
	b = append(b, '\n')
	w.scratch = b
	_, err := w.bw.Write(b)
	return err
}

// WriteRecord writes one ">" block and all of its alignments.
func (w *Writer) WriteRecord(rec *Record) error {
	if !w.started {
		return errors.New("delta: record written before header")
	}
	b := w.scratch[:0]
	b = append(b, '>')
	b = append(b, rec.IDR...)
	b = append(b, ' ')
	b = append(b, rec.IDQ...)
	b = append(b, ' ')
	b = strconv.AppendInt(b, rec.LenR, 10)
	b = append(b, ' ')
	b = strconv.AppendInt(b, rec.LenQ, 10)
	b = append(b, '\n')
	for i := range rec.Alignments {
		a := &rec.Alignments[i]
		for j, v := range [...]int64{a.SR, a.ER, a.SQ, a.EQ, a.IdyC, a.SimC, a.StpC} {
			if j > 0 {
				b = append(b, ' ')
			}
			b = strconv.AppendInt(b, v, 10)
		}
		b = append(b, '\n')
		for _, d := range a.Deltas {
			b = strconv.AppendInt(b, d, 10)
			b = append(b, '\n')
		}
		b = append(b, "0\n"...)
	}
	w.scratch = b
	_, err := w.bw.Write(b)
	return err
}

func (w *Writer) Flush() error { return w.bw.Flush() }
