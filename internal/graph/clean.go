// internal/graph/clean.go
package graph

// Clean removes every edgelet that is not retained, then every edge left
// without edgelets, then every node left without edges. Edge handles are
// reassigned; first-seen order is kept.
func (g *Graph) Clean() {
	kept := g.edges[:0]
	remap := make(map[EdgeID]EdgeID, len(g.edges))
	for _, e := range g.edges {
		els := e.Edgelets[:0]
		for _, el := range e.Edgelets {
			if el.Retained {
				els = append(els, el)
			}
		}
		for i := len(els); i < len(e.Edgelets); i++ {
			e.Edgelets[i] = nil
		}
		e.Edgelets = els
		if len(els) == 0 {
			delete(g.pairs, [2]*Node{e.Ref, e.Qry})
			continue
		}
		remap[e.ID] = EdgeID(len(kept))
		e.ID = EdgeID(len(kept))
		g.pairs[[2]*Node{e.Ref, e.Qry}] = e.ID
		kept = append(kept, e)
	}
	for i := len(kept); i < len(g.edges); i++ {
		g.edges[i] = nil
	}
	g.edges = kept

	g.refOrder = pruneNodes(g.refNodes, g.refOrder, remap)
	g.qryOrder = pruneNodes(g.qryNodes, g.qryOrder, remap)
}

func pruneNodes(m map[string]*Node, order []*Node, remap map[EdgeID]EdgeID) []*Node {
	out := order[:0]
	for _, n := range order {
		ids := n.Edges[:0]
		for _, id := range n.Edges {
			if nid, ok := remap[id]; ok {
				ids = append(ids, nid)
			}
		}
		n.Edges = ids
		if len(ids) == 0 {
			delete(m, n.ID)
			continue
		}
		out = append(out, n)
	}
	for i := len(out); i < len(order); i++ {
		order[i] = nil
	}
	return out
}
