// Package graph holds the bipartite alignment graph built from a delta file
// and the filters that decide which alignments survive.
//
// Reference sequences and query sequences are nodes. All alignments between
// one reference and one query form an Edge; a single alignment is an
// Edgelet. Edgelet coordinates reference the forward strand and are stored
// lo before hi; strand lives in DirR/DirQ only.
//
// Filters only clear flags. Clean drops what they rejected.
package graph

import (
	"errors"
	"fmt"

	"deltafilter/internal/delta"
)

var (
	// ErrInvalidParam is returned by a filter called with an out-of-range
	// parameter. The graph is not modified.
	ErrInvalidParam = errors.New("invalid filter parameter")

	// ErrLengthMismatch means one sequence id was reported with two lengths.
	ErrLengthMismatch = errors.New("sequence length mismatch")
)

// LengthMismatchError details an ErrLengthMismatch.
type LengthMismatchError struct {
	Side      string // "reference" or "query"
	ID        string
	Have, Got int64
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s sequence %q: length %d conflicts with %d: %v", e.Side, e.ID, e.Got, e.Have, ErrLengthMismatch)
}

func (e *LengthMismatchError) Unwrap() error { return ErrLengthMismatch }

// EdgeID is a handle into the graph's edge list. Handles are reassigned by
// Clean.
type EdgeID int

// Node is one sequence, shared by every edge touching it.
type Node struct {
	ID    string
	Len   int64
	Edges []EdgeID
}

// Edge is the set of alignments between one reference and one query node.
type Edge struct {
	ID       EdgeID
	Ref, Qry *Node
	Edgelets []*Edgelet
}

// Flags are the per-alignment filter states.
type Flags struct {
	Retained         bool // master switch; false means dropped by Clean
	InGlobalChain    bool
	InQueryChain     bool
	InReferenceChain bool
	InGlobalLIS      bool // mirrors InGlobalChain for older consumers
}

// Edgelet is one normalized alignment.
type Edgelet struct {
	Flags

	DirR, DirQ delta.Dir

	Idy, Sim, Stp    float64
	IdyC, SimC, StpC int64

	LoR, HiR int64
	LoQ, HiQ int64

	Deltas []int64
}

// LenR is the aligned length on the reference.
func (e *Edgelet) LenR() int64 { return e.HiR - e.LoR + 1 }

// LenQ is the aligned length on the query.
func (e *Edgelet) LenQ() int64 { return e.HiQ - e.LoQ + 1 }

func newEdgelet(a *delta.Alignment) *Edgelet {
	e := &Edgelet{
		Flags: Flags{Retained: true},
		Idy:   a.Idy, Sim: a.Sim, Stp: a.Stp,
		IdyC: a.IdyC, SimC: a.SimC, StpC: a.StpC,
		LoR: a.SR, HiR: a.ER,
		LoQ: a.SQ, HiQ: a.EQ,
		Deltas: a.Deltas,
	}
	if e.LoR > e.HiR {
		e.LoR, e.HiR = e.HiR, e.LoR
		e.DirR = delta.Reverse
	}
	if e.LoQ > e.HiQ {
		e.LoQ, e.HiQ = e.HiQ, e.LoQ
		e.DirQ = delta.Reverse
	}
	return e
}

// Alignment converts e back to delta coordinates, start > end on reverse axes.
func (e *Edgelet) Alignment() delta.Alignment {
	a := delta.Alignment{
		SR: e.LoR, ER: e.HiR, SQ: e.LoQ, EQ: e.HiQ,
		IdyC: e.IdyC, SimC: e.SimC, StpC: e.StpC,
		Idy: e.Idy, Sim: e.Sim, Stp: e.Stp,
		Deltas: e.Deltas,
	}
	if e.DirR == delta.Reverse {
		a.SR, a.ER = a.ER, a.SR
	}
	if e.DirQ == delta.Reverse {
		a.SQ, a.EQ = a.EQ, a.SQ
	}
	return a
}

// Graph is the reference/query alignment graph.
type Graph struct {
	Type    delta.DataType
	RefPath string
	QryPath string

	// Threads > 1 runs per-node and per-edge filter passes in parallel.
	Threads int

	refNodes map[string]*Node
	qryNodes map[string]*Node
	refOrder []*Node
	qryOrder []*Node
	edges    []*Edge
	pairs    map[[2]*Node]EdgeID
}

// New returns an empty graph.
func New() *Graph {
	g := &Graph{}
	g.Clear()
	return g
}

// Clear removes all nodes, edges and metadata.
func (g *Graph) Clear() {
	threads := g.Threads
	*g = Graph{
		Threads:  threads,
		refNodes: make(map[string]*Node),
		qryNodes: make(map[string]*Node),
		pairs:    make(map[[2]*Node]EdgeID),
	}
}

// Header returns the delta preamble for this graph.
func (g *Graph) Header() delta.Header {
	return delta.Header{Type: g.Type, RefPath: g.RefPath, QryPath: g.QryPath}
}

// RefNode looks up a reference node by id.
func (g *Graph) RefNode(id string) (*Node, bool) {
	n, ok := g.refNodes[id]
	return n, ok
}

// QryNode looks up a query node by id.
func (g *Graph) QryNode(id string) (*Node, bool) {
	n, ok := g.qryNodes[id]
	return n, ok
}

// RefNodes returns reference nodes in first-seen order.
func (g *Graph) RefNodes() []*Node { return g.refOrder }

// QryNodes returns query nodes in first-seen order.
func (g *Graph) QryNodes() []*Node { return g.qryOrder }

// Edges returns all edges in first-seen order.
func (g *Graph) Edges() []*Edge { return g.edges }

// Edge resolves a handle.
func (g *Graph) Edge(id EdgeID) *Edge { return g.edges[id] }

// EdgeBetween returns the edge joining two sequences, if any.
func (g *Graph) EdgeBetween(refID, qryID string) (*Edge, bool) {
	r, ok := g.refNodes[refID]
	if !ok {
		return nil, false
	}
	q, ok := g.qryNodes[qryID]
	if !ok {
		return nil, false
	}
	id, ok := g.pairs[[2]*Node{r, q}]
	if !ok {
		return nil, false
	}
	return g.edges[id], true
}

// NodeCount is the number of reference plus query nodes.
func (g *Graph) NodeCount() int { return len(g.refOrder) + len(g.qryOrder) }

// EdgeCount is the number of sequence pairs.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// EdgeletCount is the number of alignments, retained or not.
func (g *Graph) EdgeletCount() int {
	n := 0
	for _, e := range g.edges {
		n += len(e.Edgelets)
	}
	return n
}

// RetainedCount is the number of alignments still retained.
func (g *Graph) RetainedCount() int {
	n := 0
	g.eachEdgelet(func(el *Edgelet) {
		if el.Retained {
			n++
		}
	})
	return n
}

// Stats summarizes the graph size.
type Stats struct {
	RefNodes, QryNodes int
	Edges              int
	Edgelets, Retained int
}

func (g *Graph) Stats() Stats {
	return Stats{
		RefNodes: len(g.refOrder),
		QryNodes: len(g.qryOrder),
		Edges:    len(g.edges),
		Edgelets: g.EdgeletCount(),
		Retained: g.RetainedCount(),
	}
}

func (g *Graph) eachEdgelet(fn func(*Edgelet)) {
	for _, e := range g.edges {
		for _, el := range e.Edgelets {
			fn(el)
		}
	}
}

// incident returns the edgelets of n's edges, in edge then span order.
func (g *Graph) incident(n *Node) []*Edgelet {
	var out []*Edgelet
	for _, id := range n.Edges {
		out = append(out, g.edges[id].Edgelets...)
	}
	return out
}

func (g *Graph) addNode(m map[string]*Node, order *[]*Node, id string) *Node {
	n, ok := m[id]
	if !ok {
		n = &Node{ID: id}
		m[id] = n
		*order = append(*order, n)
	}
	return n
}

func (g *Graph) edgeFor(r, q *Node) *Edge {
	key := [2]*Node{r, q}
	if id, ok := g.pairs[key]; ok {
		return g.edges[id]
	}
	e := &Edge{ID: EdgeID(len(g.edges)), Ref: r, Qry: q}
	g.edges = append(g.edges, e)
	g.pairs[key] = e.ID
	r.Edges = append(r.Edges, e.ID)
	q.Edges = append(q.Edges, e.ID)
	return e
}
