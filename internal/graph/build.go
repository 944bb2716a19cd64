// internal/graph/build.go
package graph

import (
	"fmt"
	"io"

	"deltafilter/internal/delta"
	"deltafilter/internal/input"
)

// LengthLookup resolves a sequence id to its length.
type LengthLookup interface {
	Length(id string) (int64, bool)
}

// BuildOptions controls graph construction.
type BuildOptions struct {
	// HeadersOnly skips the gap positions. The graph can still be filtered,
	// but WriteDelta output will lack deltas.
	HeadersOnly bool

	// Optional lookups used to backfill zero lengths and to validate the
	// lengths reported in record headers.
	RefLengths LengthLookup
	QryLengths LengthLookup

	Threads int
}

// Build reads every record from r. On any error no graph is returned.
func Build(r *delta.Reader, opt BuildOptions) (*Graph, error) {
	hdr, err := r.Header()
	if err != nil {
		return nil, err
	}
	g := New()
	g.Type, g.RefPath, g.QryPath = hdr.Type, hdr.RefPath, hdr.QryPath
	g.Threads = opt.Threads

	next := r.Next
	if opt.HeadersOnly {
		next = r.NextHeadersOnly
	}
	for {
		rec, err := next()
		if err == io.EOF {
			return g, nil
		}
		if err != nil {
			return nil, err
		}
		if err := g.add(rec, opt); err != nil {
			return nil, err
		}
	}
}

// BuildFile opens path (plain, gzip or "-" for stdin) and builds from it.
func BuildFile(path string, opt BuildOptions) (*Graph, error) {
	rc, err := input.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	g, err := Build(delta.NewReader(rc), opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func (g *Graph) add(rec *delta.Record, opt BuildOptions) error {
	r := g.addNode(g.refNodes, &g.refOrder, rec.IDR)
	if err := setLength("reference", r, rec.LenR, opt.RefLengths); err != nil {
		return err
	}
	q := g.addNode(g.qryNodes, &g.qryOrder, rec.IDQ)
	if err := setLength("query", q, rec.LenQ, opt.QryLengths); err != nil {
		return err
	}

	e := g.edgeFor(r, q)
	for i := range rec.Alignments {
		e.Edgelets = append(e.Edgelets, newEdgelet(&rec.Alignments[i]))
	}
	return nil
}

// setLength records or checks a node's length. Zero means unknown.
func setLength(side string, n *Node, got int64, lk LengthLookup) error {
	if lk != nil {
		if want, ok := lk.Length(n.ID); ok {
			switch {
			case got == 0:
				got = want
			case got != want:
				return &LengthMismatchError{Side: side, ID: n.ID, Have: want, Got: got}
			}
		}
	}
	switch {
	case got == 0:
	case n.Len == 0:
		n.Len = got
	case n.Len != got:
		return &LengthMismatchError{Side: side, ID: n.ID, Have: n.Len, Got: got}
	}
	return nil
}
