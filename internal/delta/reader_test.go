package delta

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"testing"
)

const sample = `NUCMER
/data/ref.fa /data/qry.fa
>chr1 ctg7 1000 500
1 100 1 101 5 5 0
3
-2
0
500 401 200 299 0 0 0
0
>chr2 ctg7 800 500
10 50 60 100 1 1 0
0
`

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func readAll(t *testing.T, r *Reader, headersOnly bool) []*Record {
	t.Helper()
	var out []*Record
	for {
		var (
			rec *Record
			err error
		)
		if headersOnly {
			rec, err = r.NextHeadersOnly()
		} else {
			rec, err = r.Next()
		}
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		out = append(out, rec)
	}
}

func TestReader_Sample(t *testing.T) {
	r := NewReader(strings.NewReader(sample))
	h, err := r.Header()
	if err != nil {
		t.Fatalf("header: %v", err)
	}
	if h.Type != Nucmer || h.RefPath != "/data/ref.fa" || h.QryPath != "/data/qry.fa" {
		t.Fatalf("header = %+v", h)
	}
	recs := readAll(t, r, false)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	r0 := recs[0]
	if r0.IDR != "chr1" || r0.IDQ != "ctg7" || r0.LenR != 1000 || r0.LenQ != 500 {
		t.Fatalf("record 0 = %+v", r0)
	}
	if len(r0.Alignments) != 2 {
		t.Fatalf("got %d alignments, want 2", len(r0.Alignments))
	}
	a := r0.Alignments[0]
	if a.SR != 1 || a.ER != 100 || a.SQ != 1 || a.EQ != 101 || a.IdyC != 5 {
		t.Fatalf("alignment 0 = %+v", a)
	}
	if len(a.Deltas) != 2 || a.Deltas[0] != 3 || a.Deltas[1] != -2 {
		t.Fatalf("deltas = %v", a.Deltas)
	}
	// 100 reference columns plus one query insertion
	if want := 96.0 / 101.0 * 100; !near(a.Idy, want) {
		t.Fatalf("idy = %v want %v", a.Idy, want)
	}
	if b := r0.Alignments[1]; b.SR != 500 || b.ER != 401 || len(b.Deltas) != 0 || !near(b.Idy, 100) {
		t.Fatalf("alignment 1 = %+v", b)
	}
}

func TestReader_PathsFirstPreamble(t *testing.T) {
	in := "ref.fa qry.fa\nPROMER\n>a b 300 300\n1 300 1 300 10 20 3\n0\n"
	r := NewReader(strings.NewReader(in))
	recs := readAll(t, r, false)
	h, _ := r.Header()
	if h.Type != Promer || h.RefPath != "ref.fa" || h.QryPath != "qry.fa" {
		t.Fatalf("header = %+v", h)
	}
	a := recs[0].Alignments[0]
	// 300 nt = 100 aa
	if !near(a.Idy, 90) || !near(a.Sim, 80) || !near(a.Stp, 1.5) {
		t.Fatalf("percents idy=%v sim=%v stp=%v", a.Idy, a.Sim, a.Stp)
	}
}

func TestReader_HeadersOnlyMatchesFull(t *testing.T) {
	full := readAll(t, NewReader(strings.NewReader(sample)), false)
	hdrs := readAll(t, NewReader(strings.NewReader(sample)), true)
	if len(full) != len(hdrs) {
		t.Fatalf("record count %d vs %d", len(full), len(hdrs))
	}
	for i := range full {
		for j := range full[i].Alignments {
			f, h := full[i].Alignments[j], hdrs[i].Alignments[j]
			if h.Deltas != nil {
				t.Fatalf("headers-only kept deltas: %v", h.Deltas)
			}
			if f.SR != h.SR || f.EQ != h.EQ || !near(f.Idy, h.Idy) {
				t.Fatalf("record %d alignment %d differs: %+v vs %+v", i, j, f, h)
			}
		}
	}
}

func TestReader_EmptyRecord(t *testing.T) {
	in := "NUCMER\nr q\n>a b 10 10\n>c d 20 20\n1 5 1 5 0 0 0\n0\n"
	recs := readAll(t, NewReader(strings.NewReader(in)), false)
	if len(recs) != 2 || len(recs[0].Alignments) != 0 || len(recs[1].Alignments) != 1 {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestReader_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		is   error
	}{
		{"no preamble", "", io.ErrUnexpectedEOF},
		{"no tag", "a b\nc d\n", nil},
		{"bad number", "NUCMER\nr q\n>a b 10 10\n1 5 x 5 0 0 0\n0\n", strconv.ErrSyntax},
		{"short span line", "NUCMER\nr q\n>a b 10 10\n1 5 1 5 0 0\n0\n", nil},
		{"truncated deltas", "NUCMER\nr q\n>a b 10 10\n1 5 1 5 0 0 0\n3\n", io.ErrUnexpectedEOF},
		{"header inside deltas", "NUCMER\nr q\n>a b 10 10\n1 5 1 5 0 0 0\n3\n>c d 1 1\n", nil},
		{"missing terminator", "NUCMER\nr q\n>a b 10 10\n1 5 1 5 0 0 0\n2 6 2 6 0 0 0\n0\n", nil},
		{"bad record header", "NUCMER\nr q\n>a b 10\n", nil},
		{"zero coordinate", "NUCMER\nr q\n>a b 10 10\n0 5 1 5 0 0 0\n0\n", nil},
		{"body before header", "NUCMER\nr q\n1 5 1 5 0 0 0\n0\n", nil},
		{"mismatches exceed span", "NUCMER\nr q\n>a b 100 100\n1 10 1 10 500 500 500\n0\n", nil},
		{"stops exceed codons", "PROMER\nr q\n>a b 100 100\n1 9 1 9 0 0 7\n0\n", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(c.in))
			var err error
			for err == nil {
				_, err = r.Next()
			}
			if err == io.EOF {
				t.Fatalf("expected parse error, got EOF")
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("want *ParseError, got %T %v", err, err)
			}
			if c.is != nil && !errors.Is(err, c.is) {
				t.Fatalf("want errors.Is(%v), got %v", c.is, err)
			}
			// reader stays failed
			if _, err2 := r.Next(); err2 != err {
				t.Fatalf("sticky error lost: %v", err2)
			}
		})
	}
}
