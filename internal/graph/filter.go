// internal/graph/filter.go
package graph

import (
	"fmt"
	"math"
	"sort"
)

// axis selects which coordinates of an edgelet a per-node pass looks at.
type axis int

const (
	refAxis axis = iota
	qryAxis
)

func (a axis) bounds(el *Edgelet) (lo, hi int64) {
	if a == refAxis {
		return el.LoR, el.HiR
	}
	return el.LoQ, el.HiQ
}

func checkPercent(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 100 {
		return fmt.Errorf("%w: %s %v outside [0,100]", ErrInvalidParam, name, v)
	}
	return nil
}

func checkEpsilon(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: epsilon %v", ErrInvalidParam, v)
	}
	return nil
}

// FlagScore unretains alignments shorter than minLen on the reference or
// below minIdy percent identity.
func (g *Graph) FlagScore(minLen int64, minIdy float64) error {
	if minLen < 0 {
		return fmt.Errorf("%w: min length %d < 0", ErrInvalidParam, minLen)
	}
	if err := checkPercent("min identity", minIdy); err != nil {
		return err
	}
	g.forRange(len(g.edges), func(i int) {
		for _, el := range g.edges[i].Edgelets {
			if el.Retained && (el.LenR() < minLen || el.Idy < minIdy) {
				el.Retained = false
			}
		}
	})
	return nil
}

// FlagUNIQ unretains alignments whose span on either sequence is less than
// minUniq percent unique. Per node, alignments are ranked by length ×
// identity; the unique part of an alignment is what no other surviving
// alignment of equal or better weight on that node covers. Alignments of
// equal weight cover one another, so identical repeats fail together. Both
// partitions are judged against the same starting state.
func (g *Graph) FlagUNIQ(minUniq float64) error {
	if err := checkPercent("min uniqueness", minUniq); err != nil {
		return err
	}
	refDrop := make([][]*Edgelet, len(g.refOrder))
	qryDrop := make([][]*Edgelet, len(g.qryOrder))
	g.forRange(len(g.refOrder), func(i int) {
		refDrop[i] = uniqReject(g.incident(g.refOrder[i]), refAxis, minUniq)
	})
	g.forRange(len(g.qryOrder), func(i int) {
		qryDrop[i] = uniqReject(g.incident(g.qryOrder[i]), qryAxis, minUniq)
	})
	for _, drops := range [][][]*Edgelet{refDrop, qryDrop} {
		for _, list := range drops {
			for _, el := range list {
				el.Retained = false
			}
		}
	}
	return nil
}

type span struct{ lo, hi int64 }

type ranked struct {
	el     *Edgelet
	lo, hi int64
	weight float64
}

// uniqReject returns the retained edgelets of one node that fail minUniq.
func uniqReject(els []*Edgelet, ax axis, minUniq float64) []*Edgelet {
	var cand []ranked
	for _, el := range els {
		if el.Retained {
			lo, hi := ax.bounds(el)
			cand = append(cand, ranked{el: el, lo: lo, hi: hi, weight: float64(hi-lo+1) * el.Idy})
		}
	}
	sort.SliceStable(cand, func(i, j int) bool {
		a, b := cand[i], cand[j]
		if a.weight != b.weight {
			return a.weight > b.weight
		}
		if na, nb := a.hi-a.lo, b.hi-b.lo; na != nb {
			return na > nb
		}
		return a.lo < b.lo
	})

	var (
		claimed []span // disjoint, sorted by lo
		drop    []*Edgelet
	)
	for start := 0; start < len(cand); {
		end := start + 1
		for end < len(cand) && cand[end].weight == cand[start].weight {
			end++
		}
		group := cand[start:end]

		var kept []span
		for i, c := range group {
			cover := claimed
			for j, o := range group {
				if j != i {
					cover = claim(cover, span{o.lo, o.hi})
				}
			}
			n := c.hi - c.lo + 1
			if float64(n-coveredBy(cover, c.lo, c.hi))/float64(n)*100 < minUniq {
				drop = append(drop, c.el)
				continue
			}
			kept = append(kept, span{c.lo, c.hi})
		}
		for _, s := range kept {
			claimed = claim(claimed, s)
		}
		start = end
	}
	return drop
}

// coveredBy counts the positions of [lo,hi] inside the disjoint sorted list.
func coveredBy(list []span, lo, hi int64) int64 {
	covered := int64(0)
	for _, c := range list {
		if c.lo > hi {
			break
		}
		if c.hi < lo {
			continue
		}
		covered += min64(c.hi, hi) - max64(c.lo, lo) + 1
	}
	return covered
}

// claim merges s into the disjoint sorted list.
func claim(list []span, s span) []span {
	out := make([]span, 0, len(list)+1)
	i := 0
	for ; i < len(list) && list[i].hi < s.lo-1; i++ {
		out = append(out, list[i])
	}
	for ; i < len(list) && list[i].lo <= s.hi+1; i++ {
		s.lo = min64(s.lo, list[i].lo)
		s.hi = max64(s.hi, list[i].hi)
	}
	out = append(out, s)
	return append(out, list[i:]...)
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
