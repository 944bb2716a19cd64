package graph

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"deltafilter/internal/delta"
)

func mustBuild(t *testing.T, text string) *Graph {
	t.Helper()
	g, err := Build(delta.NewReader(strings.NewReader(text)), BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return g
}

// randomDelta writes a nucmer delta file with random alignments among a few
// sequences, including repeats and reverse matches.
func randomDelta(t *testing.T, seed int64) string {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var buf bytes.Buffer
	w := delta.NewWriter(&buf)
	if err := w.WriteHeader(delta.Header{Type: delta.Nucmer, RefPath: "ref.fa", QryPath: "qry.fa"}); err != nil {
		t.Fatal(err)
	}
	const seqLen = 2000
	for r := 0; r < 3; r++ {
		for q := 0; q < 3; q++ {
			if rng.Intn(4) == 0 {
				continue
			}
			rec := &delta.Record{
				IDR: fmt.Sprintf("ref%d", r), IDQ: fmt.Sprintf("qry%d", q),
				LenR: seqLen, LenQ: seqLen,
			}
			n := 1 + rng.Intn(6)
			for i := 0; i < n; i++ {
				ln := int64(50 + rng.Intn(400))
				sr := int64(1 + rng.Intn(seqLen-int(ln)))
				sq := int64(1 + rng.Intn(seqLen-int(ln)))
				a := delta.Alignment{
					SR: sr, ER: sr + ln - 1, SQ: sq, EQ: sq + ln - 1,
					IdyC: int64(rng.Intn(int(ln) / 5)),
				}
				a.SimC = a.IdyC
				if rng.Intn(3) == 0 {
					a.SQ, a.EQ = a.EQ, a.SQ
				}
				rec.Alignments = append(rec.Alignments, a)
			}
			if err := w.WriteRecord(rec); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

// snapshot captures every edgelet's flags in graph order.
func snapshot(g *Graph) []Flags {
	var out []Flags
	for _, e := range g.Edges() {
		for _, el := range e.Edgelets {
			out = append(out, el.Flags)
		}
	}
	return out
}

func retainedSet(g *Graph) []bool {
	var out []bool
	for _, f := range snapshot(g) {
		out = append(out, f.Retained)
	}
	return out
}
