// internal/delta/reader.go
package delta

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Reader parses a delta stream record by record.
//
// The preamble is read lazily by the first call to Header, Next or
// NextHeadersOnly. After any error other than io.EOF the reader is unusable.
type Reader struct {
	sc   *bufio.Scanner
	line int

	pending []byte
	hasPend bool

	hdr     Header
	hdrRead bool
	err     error
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	const maxLine = 16 * 1024 * 1024
	sc.Buffer(make([]byte, 64*1024), maxLine)
	return &Reader{sc: sc}
}

// Header returns the file preamble. The tag line may come before or after
// the "refpath qrypath" line.
func (r *Reader) Header() (Header, error) {
	if err := r.readHeader(); err != nil {
		return Header{}, err
	}
	return r.hdr, nil
}

// Next reads the next record including gap positions. It returns io.EOF
// when the stream ends at a record boundary.
func (r *Reader) Next() (*Record, error) { return r.readRecord(true) }

// NextHeadersOnly reads the next record but leaves every Alignment.Deltas
// empty. The gap positions are still consumed.
func (r *Reader) NextHeadersOnly() (*Record, error) { return r.readRecord(false) }

// nextLine returns the next non-blank line, or io.EOF.
func (r *Reader) nextLine() ([]byte, error) {
	if r.hasPend {
		r.hasPend = false
		return r.pending, nil
	}
	for r.sc.Scan() {
		r.line++
		ln := bytes.TrimSpace(r.sc.Bytes())
		if len(ln) == 0 {
			continue
		}
		return ln, nil
	}
	if err := r.sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (r *Reader) unread(ln []byte) {
	r.pending = ln
	r.hasPend = true
}

func (r *Reader) fail(msg string, err error) error {
	r.err = &ParseError{Line: r.line, Msg: msg, Err: err}
	return r.err
}

func (r *Reader) readHeader() error {
	if r.err != nil {
		return r.err
	}
	if r.hdrRead {
		return nil
	}
	var lines [2]string
	for i := range lines {
		ln, err := r.nextLine()
		if err == io.EOF {
			return r.fail("missing delta preamble", io.ErrUnexpectedEOF)
		} else if err != nil {
			r.err = err
			return err
		}
		lines[i] = string(ln)
	}

	paths := lines[1]
	t, ok := ParseDataType(lines[0])
	if !ok {
		if t, ok = ParseDataType(lines[1]); !ok {
			return r.fail("missing NUCMER/PROMER tag line", nil)
		}
		paths = lines[0]
	}
	f := bytes.Fields([]byte(paths))
	if len(f) != 2 {
		return r.fail(fmt.Sprintf("bad path line %q", paths), nil)
	}
	r.hdr = Header{Type: t, RefPath: string(f[0]), QryPath: string(f[1])}
	r.hdrRead = true
	return nil
}

func (r *Reader) readRecord(keepDeltas bool) (*Record, error) {
	if err := r.readHeader(); err != nil {
		return nil, err
	}

	ln, err := r.nextLine()
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		return nil, err
	}
	if ln[0] != '>' {
		return nil, r.fail("expected record header '>'", nil)
	}
	f := bytes.Fields(ln[1:])
	if len(f) != 4 {
		return nil, r.fail(fmt.Sprintf("record header has %d fields, want 4", len(f)), nil)
	}
	rec := &Record{IDR: string(f[0]), IDQ: string(f[1])}
	if rec.LenR, err = parseInt(f[2]); err != nil || rec.LenR < 0 {
		return nil, r.fail("bad reference length", err)
	}
	if rec.LenQ, err = parseInt(f[3]); err != nil || rec.LenQ < 0 {
		return nil, r.fail("bad query length", err)
	}

	for {
		ln, err := r.nextLine()
		if err == io.EOF {
			return rec, nil
		} else if err != nil {
			r.err = err
			return nil, err
		}
		if ln[0] == '>' {
			r.unread(ln)
			return rec, nil
		}
		a, err := r.readAlignment(ln, keepDeltas)
		if err != nil {
			return nil, err
		}
		rec.Alignments = append(rec.Alignments, a)
	}
}

// readAlignment parses the seven-number span line ln and its 0-terminated
// delta list.
func (r *Reader) readAlignment(ln []byte, keepDeltas bool) (Alignment, error) {
	var a Alignment
	f := bytes.Fields(ln)
	if len(f) != 7 {
		return a, r.fail(fmt.Sprintf("alignment line has %d fields, want 7", len(f)), nil)
	}
	var v [7]int64
	for i := range f {
		n, err := parseInt(f[i])
		if err != nil {
			return a, r.fail(fmt.Sprintf("bad alignment field %d", i+1), err)
		}
		if n < 0 {
			return a, r.fail(fmt.Sprintf("negative alignment field %d", i+1), nil)
		}
		v[i] = n
	}
	a.SR, a.ER, a.SQ, a.EQ = v[0], v[1], v[2], v[3]
	a.IdyC, a.SimC, a.StpC = v[4], v[5], v[6]
	if a.SR == 0 || a.ER == 0 || a.SQ == 0 || a.EQ == 0 {
		return a, r.fail("coordinates are 1-based", nil)
	}

	neg := 0
	for {
		dl, err := r.nextLine()
		if err == io.EOF {
			return a, r.fail("unterminated delta list", io.ErrUnexpectedEOF)
		} else if err != nil {
			r.err = err
			return a, err
		}
		if dl[0] == '>' {
			return a, r.fail("unterminated delta list", nil)
		}
		d, err := parseInt(dl)
		if err != nil {
			if len(bytes.Fields(dl)) > 1 {
				return a, r.fail("unterminated delta list", err)
			}
			return a, r.fail("bad delta", err)
		}
		if d == 0 {
			break
		}
		if d < 0 {
			neg++
		}
		if keepDeltas {
			a.Deltas = append(a.Deltas, d)
		}
	}
	total := a.Columns(r.hdr.Type, neg)
	if float64(a.IdyC) > total || float64(a.SimC) > total || float64(a.StpC) > 2*total {
		return a, r.fail(fmt.Sprintf("error counts %d %d %d exceed alignment length", a.IdyC, a.SimC, a.StpC), nil)
	}
	a.ComputePercents(r.hdr.Type, neg)
	return a, nil
}

func parseInt(b []byte) (int64, error) {
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			return 0, ne.Err
		}
		return 0, err
	}
	return n, nil
}
