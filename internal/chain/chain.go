// Package chain selects maximum-weight chains of position-compatible
// intervals. It is a pure function over its input; callers map the returned
// indices back onto their own alignments.
package chain

import (
	"math"
	"sort"
)

// Interval is one candidate alignment projected onto a coordinate axis.
// Lo2/Hi2 are only consulted when Params.TwoD is set.
type Interval struct {
	Lo, Hi   int64
	Lo2, Hi2 int64

	Identity float64 // percent [0-100]
	Group    int     // links only form within a group (orientation class)

	// Preferred wins ties, e.g. an alignment already on the global chain.
	Preferred bool
}

// Len is the inclusive length on the primary axis.
func (iv Interval) Len() int64 { return iv.Hi - iv.Lo + 1 }

func (iv Interval) len2() int64 { return iv.Hi2 - iv.Lo2 + 1 }

// Weight is length × identity.
func (iv Interval) Weight() float64 { return float64(iv.Len()) * iv.Identity }

// Params tunes chain compatibility and the repeat tolerance.
type Params struct {
	// MaxOverlap is the percent [0-100] of the shorter interval that two
	// consecutive chain members may share.
	MaxOverlap float64
	// Epsilon keeps every chain whose score is within Epsilon percent of the
	// best. Negative keeps only the optimal chain.
	Epsilon float64
	// TwoD requires compatibility on both axes.
	TwoD bool
}

// Result holds indices into the input slice.
type Result struct {
	Chain []int   // optimal chain, in axis order
	Keep  []int   // union of all chains within epsilon, ascending index
	Best  float64 // score of the optimal chain
}

type cell struct {
	score float64
	from  int // position in sorted order, -1 = chain start
}

// Select runs a weighted LIS over ivs. Extending a chain ending in A with B
// scores (len(B) - overlap(A,B)) × identity(B).
func Select(ivs []Interval, p Params) Result {
	n := len(ivs)
	if n == 0 {
		return Result{}
	}

	ord := make([]int, n)
	for i := range ord {
		ord[i] = i
	}
	sort.SliceStable(ord, func(a, b int) bool {
		x, y := ivs[ord[a]], ivs[ord[b]]
		if x.Lo != y.Lo {
			return x.Lo < y.Lo
		}
		if x.Hi != y.Hi {
			return x.Hi < y.Hi
		}
		return ord[a] < ord[b]
	})

	dp := make([]cell, n)
	for i := 0; i < n; i++ {
		b := ivs[ord[i]]
		dp[i] = cell{score: b.Weight(), from: -1}
		for j := 0; j < i; j++ {
			a := ivs[ord[j]]
			olap, ok := link(a, b, p)
			if !ok {
				continue
			}
			s := dp[j].score + float64(max64(b.Len()-olap, 0))*b.Identity
			switch {
			case s > dp[i].score:
				dp[i] = cell{score: s, from: j}
			case s == dp[i].score && dp[i].from >= 0 && better(ivs, ord[j], ord[dp[i].from]):
				dp[i].from = j
			}
		}
	}

	best := 0
	for i := 1; i < n; i++ {
		if dp[i].score > dp[best].score ||
			(dp[i].score == dp[best].score && better(ivs, ord[i], ord[best])) {
			best = i
		}
	}

	res := Result{Best: dp[best].score}
	for k := best; k >= 0; k = dp[k].from {
		res.Chain = append(res.Chain, ord[k])
	}
	for l, r := 0, len(res.Chain)-1; l < r; l, r = l+1, r-1 {
		res.Chain[l], res.Chain[r] = res.Chain[r], res.Chain[l]
	}

	keep := make([]bool, n)
	if p.Epsilon < 0 {
		for _, i := range res.Chain {
			keep[i] = true
		}
	} else {
		cut := res.Best - res.Best*p.Epsilon/100
		for i := 0; i < n; i++ {
			if dp[i].score < cut {
				continue
			}
			for k := i; k >= 0 && !keep[ord[k]]; k = dp[k].from {
				keep[ord[k]] = true
			}
		}
	}
	for i, ok := range keep {
		if ok {
			res.Keep = append(res.Keep, i)
		}
	}
	return res
}

// link reports whether b may follow a and the overlap to charge b for.
// a precedes b in (Lo, Hi) order.
func link(a, b Interval, p Params) (int64, bool) {
	if a.Group != b.Group || b.Lo < a.Lo || b.Hi <= a.Hi {
		return 0, false
	}
	olap := max64(a.Hi-b.Lo+1, 0)
	if !allowed(olap, a.Len(), b.Len(), p.MaxOverlap) {
		return 0, false
	}
	if p.TwoD {
		if b.Lo2 < a.Lo2 || b.Hi2 <= a.Hi2 {
			return 0, false
		}
		olap2 := max64(a.Hi2-b.Lo2+1, 0)
		if !allowed(olap2, a.len2(), b.len2(), p.MaxOverlap) {
			return 0, false
		}
		if olap2 > olap {
			olap = olap2
		}
	}
	return olap, true
}

func allowed(olap, la, lb int64, maxOverlap float64) bool {
	if olap == 0 {
		return true
	}
	shorter := la
	if lb < shorter {
		shorter = lb
	}
	return float64(olap) <= math.Max(maxOverlap, 0)/100*float64(shorter)
}

// better orders equally scored candidates: preferred, then longer, then
// lower lo, then input order.
func better(ivs []Interval, i, j int) bool {
	a, b := ivs[i], ivs[j]
	if a.Preferred != b.Preferred {
		return a.Preferred
	}
	if a.Len() != b.Len() {
		return a.Len() > b.Len()
	}
	if a.Lo != b.Lo {
		return a.Lo < b.Lo
	}
	return i < j
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
