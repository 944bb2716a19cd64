package graph

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestFlagScore_ShortAlignmentDroppedWithNodes(t *testing.T) {
	g := mustBuild(t, "NUCMER\nr q\n>r1 q1 1000 1000\n1 500 1 500 0 0 0\n0\n")
	if err := g.FlagScore(600, 0); err != nil {
		t.Fatal(err)
	}
	if g.RetainedCount() != 0 {
		t.Fatal("500bp alignment survived min length 600")
	}
	g.Clean()
	if _, ok := g.RefNode("r1"); ok {
		t.Fatal("reference node survived Clean")
	}
	if _, ok := g.QryNode("q1"); ok {
		t.Fatal("query node survived Clean")
	}
	if _, ok := g.EdgeBetween("r1", "q1"); ok || g.EdgeCount() != 0 || g.NodeCount() != 0 {
		t.Fatalf("graph not empty: %+v", g.Stats())
	}
}

func TestFlagScore_IffThreshold(t *testing.T) {
	g := mustBuild(t, randomDelta(t, 1))
	const minLen, minIdy = 200, 90.0
	if err := g.FlagScore(minLen, minIdy); err != nil {
		t.Fatal(err)
	}
	for _, e := range g.Edges() {
		for _, el := range e.Edgelets {
			bad := el.LenR() < minLen || el.Idy < minIdy
			if el.Retained == bad {
				t.Fatalf("len=%d idy=%.2f retained=%v", el.LenR(), el.Idy, el.Retained)
			}
		}
	}
}

func TestFlagQLIS_OverlapKeepsHeavier(t *testing.T) {
	// weights 1000 and 400 on the same query, overlapping
	g := mustBuild(t, `NUCMER
r q
>r1 q1 1000 100
1 10 1 10 0 0 0
0
101 104 5 8 0 0 0
0
`)
	if err := g.FlagQLIS(-1, 0); err != nil {
		t.Fatal(err)
	}
	els := g.Edges()[0].Edgelets
	if !els[0].Retained || !els[0].InQueryChain {
		t.Fatalf("heavy alignment flags = %+v", els[0].Flags)
	}
	if els[1].Retained || els[1].InQueryChain {
		t.Fatalf("light alignment flags = %+v", els[1].Flags)
	}
}

func TestFlagRLIS_Chain(t *testing.T) {
	// two queries tiling one reference plus a contained repeat
	g := mustBuild(t, `NUCMER
r q
>r1 q1 1000 300
1 300 1 300 0 0 0
0
>r1 q2 1000 300
301 600 1 300 3 3 0
0
>r1 q3 1000 100
101 200 1 100 5 5 0
0
`)
	if err := g.FlagRLIS(-1, 0); err != nil {
		t.Fatal(err)
	}
	got := []bool{}
	for _, e := range g.Edges() {
		got = append(got, e.Edgelets[0].Retained && e.Edgelets[0].InReferenceChain)
	}
	if want := []bool{true, true, false}; !reflect.DeepEqual(got, want) {
		t.Fatalf("retained = %v want %v", got, want)
	}
}

func TestFlagUNIQ(t *testing.T) {
	in := `NUCMER
r q
>r1 q1 1000 1000
1 100 1 100 0 0 0
0
>r2 q1 1000 1000
1 100 51 150 0 0 0
0
`
	g := mustBuild(t, in)
	if err := g.FlagUNIQ(50); err != nil {
		t.Fatal(err)
	}
	if g.RetainedCount() != 2 {
		t.Fatal("50% unique alignment dropped at min 50")
	}
	if err := g.FlagUNIQ(60); err != nil {
		t.Fatal(err)
	}
	// equal weights cover each other: both are only 50% unique
	if g.RetainedCount() != 0 {
		t.Fatalf("retained = %d, want 0", g.RetainedCount())
	}
}

func TestFlagUNIQ_IdenticalRepeats(t *testing.T) {
	in := `NUCMER
r q
>r1 q1 1000 1000
1 100 1 100 0 0 0
0
>r2 q1 1000 1000
1 100 1 100 0 0 0
0
>r3 q1 1000 1000
1 300 301 600 0 0 0
0
`
	g := mustBuild(t, in)
	if err := g.FlagUNIQ(50); err != nil {
		t.Fatal(err)
	}
	got := []bool{}
	for _, e := range g.Edges() {
		got = append(got, e.Edgelets[0].Retained)
	}
	if want := []bool{false, false, true}; !reflect.DeepEqual(got, want) {
		t.Fatalf("retained = %v want %v", got, want)
	}
}

func TestFlagUNIQ_BetterAlignmentClaimsFirst(t *testing.T) {
	in := `NUCMER
r q
>r1 q1 1000 1000
1 200 1 200 0 0 0
0
>r2 q1 1000 1000
1 100 101 200 0 0 0
0
>r3 q1 1000 1000
1 100 101 200 0 0 0
0
`
	g := mustBuild(t, in)
	if err := g.FlagUNIQ(1); err != nil {
		t.Fatal(err)
	}
	got := []bool{}
	for _, e := range g.Edges() {
		got = append(got, e.Edgelets[0].Retained)
	}
	if want := []bool{true, false, false}; !reflect.DeepEqual(got, want) {
		t.Fatalf("retained = %v want %v", got, want)
	}
}

func TestFlagGLIS(t *testing.T) {
	g := mustBuild(t, `NUCMER
r q
>r1 q1 1000 1000
1 100 1 100 0 0 0
0
201 300 201 300 0 0 0
0
101 200 801 900 10 10 0
0
301 400 700 601 0 0 0
0
`)
	if err := g.FlagGLIS(-1); err != nil {
		t.Fatal(err)
	}
	els := g.Edges()[0].Edgelets
	want := []bool{true, true, false, false}
	for i, el := range els {
		if el.Retained != want[i] || el.InGlobalChain != want[i] || el.InGlobalLIS != el.InGlobalChain {
			t.Fatalf("edgelet %d flags = %+v", i, el.Flags)
		}
	}
}

func TestFlagGLIS_ReverseChain(t *testing.T) {
	// an inversion: two reverse alignments consistent on the reversed query
	g := mustBuild(t, `NUCMER
r q
>r1 q1 1000 1000
1 100 900 801 0 0 0
0
201 300 700 601 0 0 0
0
101 150 1 50 0 0 0
0
`)
	if err := g.FlagGLIS(-1); err != nil {
		t.Fatal(err)
	}
	els := g.Edges()[0].Edgelets
	if !els[0].Retained || !els[1].Retained || els[2].Retained {
		t.Fatalf("retained = %v %v %v", els[0].Retained, els[1].Retained, els[2].Retained)
	}
}

const repeat = `NUCMER
r q
>r1 q1 1000 1000
1 100 1 100 0 0 0
0
>r2 q1 1000 1000
1 100 1 100 5 5 0
0
`

func TestFlagManyToManyAndOneToOne(t *testing.T) {
	g := mustBuild(t, repeat)
	if err := g.FlagManyToMany(-1, 100); err != nil {
		t.Fatal(err)
	}
	if g.RetainedCount() != 2 {
		t.Fatalf("many-to-many kept %d, want 2", g.RetainedCount())
	}

	g = mustBuild(t, repeat)
	if err := g.FlagOneToOne(-1, 100); err != nil {
		t.Fatal(err)
	}
	e1, _ := g.EdgeBetween("r1", "q1")
	e2, _ := g.EdgeBetween("r2", "q1")
	if !e1.Edgelets[0].Retained || e2.Edgelets[0].Retained {
		t.Fatalf("one-to-one r1=%v r2=%v", e1.Edgelets[0].Retained, e2.Edgelets[0].Retained)
	}
	if !e2.Edgelets[0].InReferenceChain || e2.Edgelets[0].InQueryChain {
		t.Fatalf("r2 chain flags = %+v", e2.Edgelets[0].Flags)
	}
}

func TestOneToOneSubsetOfManyToMany(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		text := randomDelta(t, seed)
		one, many := mustBuild(t, text), mustBuild(t, text)
		if err := one.FlagOneToOne(-1, 20); err != nil {
			t.Fatal(err)
		}
		if err := many.FlagManyToMany(-1, 20); err != nil {
			t.Fatal(err)
		}
		a, b := retainedSet(one), retainedSet(many)
		for i := range a {
			if a[i] && !b[i] {
				t.Fatalf("seed %d: edgelet %d in one-to-one but not many-to-many", seed, i)
			}
		}
	}
}

type filterCase struct {
	name string
	run  func(*Graph) error
}

var filterCases = []filterCase{
	{"score", func(g *Graph) error { return g.FlagScore(150, 92) }},
	{"uniq", func(g *Graph) error { return g.FlagUNIQ(70) }},
	{"qlis", func(g *Graph) error { return g.FlagQLIS(-1, 10) }},
	{"qlis-eps", func(g *Graph) error { return g.FlagQLIS(15, 100) }},
	{"rlis", func(g *Graph) error { return g.FlagRLIS(-1, 10) }},
	{"rlis-eps", func(g *Graph) error { return g.FlagRLIS(5, 50) }},
	{"glis", func(g *Graph) error { return g.FlagGLIS(-1) }},
	{"glis-eps", func(g *Graph) error { return g.FlagGLIS(10) }},
	{"many", func(g *Graph) error { return g.FlagManyToMany(-1, 10) }},
	{"one", func(g *Graph) error { return g.FlagOneToOne(-1, 10) }},
}

func TestFilters_MonotoneAndIdempotent(t *testing.T) {
	for _, fc := range filterCases {
		t.Run(fc.name, func(t *testing.T) {
			for seed := int64(1); seed <= 8; seed++ {
				g := mustBuild(t, randomDelta(t, seed))
				// start from a partially filtered graph
				if err := g.FlagScore(80, 0); err != nil {
					t.Fatal(err)
				}
				before := retainedSet(g)
				if err := fc.run(g); err != nil {
					t.Fatal(err)
				}
				once := retainedSet(g)
				for i := range once {
					if once[i] && !before[i] {
						t.Fatalf("seed %d: edgelet %d resurrected", seed, i)
					}
				}
				if err := fc.run(g); err != nil {
					t.Fatal(err)
				}
				if twice := retainedSet(g); !reflect.DeepEqual(once, twice) {
					t.Fatalf("seed %d: second run changed retained set", seed)
				}
			}
		})
	}
}

func TestFilters_ParallelMatchesSerial(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		text := randomDelta(t, seed)
		run := func(threads int) []Flags {
			g := mustBuild(t, text)
			g.Threads = threads
			for _, fc := range filterCases {
				if err := fc.run(g); err != nil {
					t.Fatal(err)
				}
			}
			return snapshot(g)
		}
		if serial, par := run(1), run(4); !reflect.DeepEqual(serial, par) {
			t.Fatalf("seed %d: parallel flags differ from serial", seed)
		}
	}
}

func TestFilters_InvalidParamsLeaveGraphUnchanged(t *testing.T) {
	bad := []filterCase{
		{"neg length", func(g *Graph) error { return g.FlagScore(-1, 0) }},
		{"identity > 100", func(g *Graph) error { return g.FlagScore(0, 101) }},
		{"uniq < 0", func(g *Graph) error { return g.FlagUNIQ(-3) }},
		{"uniq NaN", func(g *Graph) error { return g.FlagUNIQ(math.NaN()) }},
		{"qlis overlap", func(g *Graph) error { return g.FlagQLIS(-1, 150) }},
		{"rlis eps inf", func(g *Graph) error { return g.FlagRLIS(math.Inf(1), 10) }},
		{"glis eps NaN", func(g *Graph) error { return g.FlagGLIS(math.NaN()) }},
		{"many overlap", func(g *Graph) error { return g.FlagManyToMany(0, -1) }},
		{"one eps", func(g *Graph) error { return g.FlagOneToOne(math.NaN(), 10) }},
	}
	for _, fc := range bad {
		t.Run(fc.name, func(t *testing.T) {
			g := mustBuild(t, randomDelta(t, 3))
			before := snapshot(g)
			if err := fc.run(g); !errors.Is(err, ErrInvalidParam) {
				t.Fatalf("want ErrInvalidParam, got %v", err)
			}
			if !reflect.DeepEqual(before, snapshot(g)) {
				t.Fatal("graph modified by rejected call")
			}
		})
	}
}

func TestFilters_SkipDiscarded(t *testing.T) {
	g := mustBuild(t, repeat)
	e1, _ := g.EdgeBetween("r1", "q1")
	e1.Edgelets[0].Retained = false
	if err := g.FlagQLIS(-1, 0); err != nil {
		t.Fatal(err)
	}
	e2, _ := g.EdgeBetween("r2", "q1")
	if e1.Edgelets[0].Retained || e1.Edgelets[0].InQueryChain {
		t.Fatal("discarded alignment re-examined")
	}
	if !e2.Edgelets[0].Retained || !e2.Edgelets[0].InQueryChain {
		t.Fatal("remaining alignment should now lead the query chain")
	}
}

func TestFlagQLIS_PrefersGlobalChainOnTie(t *testing.T) {
	in := `NUCMER
r q
>r1 q1 1000 1000
1 100 1 100 0 0 0
0
>r2 q1 1000 1000
1 100 1 100 0 0 0
0
`
	g := mustBuild(t, in)
	e2, _ := g.EdgeBetween("r2", "q1")
	e2.Edgelets[0].InGlobalChain = true
	if err := g.FlagQLIS(-1, 0); err != nil {
		t.Fatal(err)
	}
	e1, _ := g.EdgeBetween("r1", "q1")
	if e1.Edgelets[0].Retained || !e2.Edgelets[0].Retained {
		t.Fatalf("tie should go to the global-chain alignment: r1=%v r2=%v",
			e1.Edgelets[0].Retained, e2.Edgelets[0].Retained)
	}
}
