// internal/graph/lis.go
package graph

import "deltafilter/internal/chain"

// selection is the outcome of one chain pass over one node or edge.
type selection struct {
	els     []*Edgelet
	onChain []bool
	keep    []bool
}

func newSelection(els []*Edgelet, res chain.Result) selection {
	s := selection{els: els, onChain: make([]bool, len(els)), keep: make([]bool, len(els))}
	for _, i := range res.Chain {
		s.onChain[i] = true
	}
	for _, i := range res.Keep {
		s.keep[i] = true
	}
	return s
}

func retained(els []*Edgelet) []*Edgelet {
	var out []*Edgelet
	for _, el := range els {
		if el.Retained {
			out = append(out, el)
		}
	}
	return out
}

// selectAxis runs a 1-D chain over the retained edgelets of n.
func (g *Graph) selectAxis(n *Node, ax axis, p chain.Params) selection {
	els := retained(g.incident(n))
	ivs := make([]chain.Interval, len(els))
	for i, el := range els {
		lo, hi := ax.bounds(el)
		ivs[i] = chain.Interval{Lo: lo, Hi: hi, Identity: el.Idy, Preferred: el.InGlobalChain}
	}
	return newSelection(els, chain.Select(ivs, p))
}

// selectGlobal runs a 2-D chain over the retained edgelets of e. Alignments
// with opposite reference/query directions are chained on the reversed
// query axis and never mixed with same-direction alignments.
func selectGlobal(e *Edge, eps float64) selection {
	els := retained(e.Edgelets)
	ivs := make([]chain.Interval, len(els))
	for i, el := range els {
		iv := chain.Interval{Lo: el.LoR, Hi: el.HiR, Lo2: el.LoQ, Hi2: el.HiQ, Identity: el.Idy}
		if el.DirR != el.DirQ {
			iv.Group = 1
			iv.Lo2, iv.Hi2 = -el.HiQ, -el.LoQ
		}
		ivs[i] = iv
	}
	return newSelection(els, chain.Select(ivs, chain.Params{MaxOverlap: 100, Epsilon: eps, TwoD: true}))
}

func (g *Graph) flagAxis(nodes []*Node, ax axis, eps, maxOverlap float64, mark func(*Edgelet, bool)) error {
	p, err := axisParams(eps, maxOverlap)
	if err != nil {
		return err
	}
	g.forRange(len(nodes), func(i int) {
		s := g.selectAxis(nodes[i], ax, p)
		for k, el := range s.els {
			mark(el, s.onChain[k])
			el.Retained = s.keep[k]
		}
	})
	return nil
}

// FlagQLIS keeps, for every query, the length × identity weighted chain of
// query-consistent alignments. Chain members get InQueryChain. eps keeps
// repeat alignments within eps percent of the best chain (negative: only the
// best); maxOverlap is the percent [0-100] consecutive members may overlap.
func (g *Graph) FlagQLIS(eps, maxOverlap float64) error {
	return g.flagAxis(g.qryOrder, qryAxis, eps, maxOverlap, func(el *Edgelet, on bool) { el.InQueryChain = on })
}

// FlagRLIS is FlagQLIS on the reference side; chain members get
// InReferenceChain.
func (g *Graph) FlagRLIS(eps, maxOverlap float64) error {
	return g.flagAxis(g.refOrder, refAxis, eps, maxOverlap, func(el *Edgelet, on bool) { el.InReferenceChain = on })
}

// FlagGLIS keeps, for every sequence pair, the weighted chain of alignments
// consistent on both sequences, i.e. the global alignment of the pair.
func (g *Graph) FlagGLIS(eps float64) error {
	if err := checkEpsilon(eps); err != nil {
		return err
	}
	g.forRange(len(g.edges), func(i int) {
		s := selectGlobal(g.edges[i], eps)
		for k, el := range s.els {
			el.InGlobalChain = s.onChain[k]
			el.InGlobalLIS = s.onChain[k]
			el.Retained = s.keep[k]
		}
	})
	return nil
}

// FlagManyToMany keeps alignments selected by the query chain or by the
// reference chain, both computed on the same input.
func (g *Graph) FlagManyToMany(eps, maxOverlap float64) error {
	p, err := axisParams(eps, maxOverlap)
	if err != nil {
		return err
	}
	g.joinAxes(p, func(q, r bool) bool { return q || r })
	return nil
}

// FlagOneToOne keeps alignments selected by both the query chain and the
// reference chain, both computed on the same input. Dropping an alignment can
// reshape the chains it took part in, so the intersection is repeated until
// it no longer changes.
func (g *Graph) FlagOneToOne(eps, maxOverlap float64) error {
	p, err := axisParams(eps, maxOverlap)
	if err != nil {
		return err
	}
	for g.joinAxes(p, func(q, r bool) bool { return q && r }) {
	}
	return nil
}

func axisParams(eps, maxOverlap float64) (chain.Params, error) {
	if err := checkEpsilon(eps); err != nil {
		return chain.Params{}, err
	}
	if err := checkPercent("max overlap", maxOverlap); err != nil {
		return chain.Params{}, err
	}
	return chain.Params{MaxOverlap: maxOverlap, Epsilon: eps}, nil
}

// joinAxes runs both 1-D passes on the current retained set and combines
// their verdicts. It reports whether any edgelet was dropped.
func (g *Graph) joinAxes(p chain.Params, join func(q, r bool) bool) bool {
	qs := make([]selection, len(g.qryOrder))
	rs := make([]selection, len(g.refOrder))
	g.forRange(len(g.qryOrder), func(i int) { qs[i] = g.selectAxis(g.qryOrder[i], qryAxis, p) })
	g.forRange(len(g.refOrder), func(i int) { rs[i] = g.selectAxis(g.refOrder[i], refAxis, p) })

	keepQ := make(map[*Edgelet]bool)
	for _, s := range qs {
		for k, el := range s.els {
			el.InQueryChain = s.onChain[k]
			keepQ[el] = s.keep[k]
		}
	}
	changed := false
	for _, s := range rs {
		for k, el := range s.els {
			el.InReferenceChain = s.onChain[k]
			if !join(keepQ[el], s.keep[k]) {
				el.Retained = false
				changed = true
			}
		}
	}
	return changed
}
