// Package connectivity implements the union-find-style zone analysis of
// §4.3: it discovers synchronous components ("zones") from an edge list
// and an activity predicate, independent of any particular graph
// representation. The network package adapts its own Branch/Hvdc state
// into the Edge shape this package expects; connectivity itself never
// imports network, which keeps the dependency direction the same as the
// teacher's generic algorithm packages (prim_kruskal operates on any
// *core.Graph without needing to know why an edge exists).
package connectivity

// Edge is one candidate connection between two nodes, identified by an
// opaque ID the caller can trace back to its own representation (a branch
// or HVDC link index).
type Edge struct {
	ID       int
	From, To int
}

// Result is the outcome of one Analyze call: a zone id per node (dense
// 0..N-1 node indexing, sparse zone ids — per the design notes' open
// question, newly created zone ids are allocated densely but the
// collapse table may leave gaps after union, which is fine: callers only
// ever compare zone ids for equality, never rely on their magnitude) plus
// the node membership of each zone and the id of the largest zone.
type Result struct {
	Zone     []int   // len == nodeCount
	Members  map[int][]int // zone id -> node indices, in first-visit order
	MainZone int     // the zone id with the most nodes; -1 if no nodes
}

// zoneTracker implements the specific "handle_edge" algorithm of §4.3:
// it is deliberately not textbook union-by-rank union-find, because the
// specification calls for collapsing onto the *smaller* id and recording
// the mapping in a collapse table resolved at the end by path compression,
// which is the behavior the original implementation's traiterConnexion
// helper exhibits (see DESIGN.md, "Open Question decisions").
type zoneTracker struct {
	zone     []int
	nextZone int
	collapse map[int]int
}

func newZoneTracker(n int) *zoneTracker {
	z := make([]int, n)
	for i := range z {
		z[i] = -1
	}
	return &zoneTracker{zone: z, collapse: make(map[int]int)}
}

// handleEdge applies one closed-edge observation to the tracker, per the
// four cases of §4.3.
func (t *zoneTracker) handleEdge(from, to int) {
	zf, zt := t.zone[from], t.zone[to]
	switch {
	case zf == -1 && zt == -1:
		id := t.nextZone
		t.nextZone++
		t.zone[from] = id
		t.zone[to] = id
	case zf == -1:
		t.zone[from] = zt
	case zt == -1:
		t.zone[to] = zf
	case zf != zt:
		lo, hi := t.resolve(zf), t.resolve(zt)
		if hi < lo {
			lo, hi = hi, lo
		}
		if lo != hi {
			t.collapse[hi] = lo
		}
	default:
		// both zoned and equal: no-op
	}
}

// resolve follows the collapse table to the root zone id, compressing the
// chain as it goes so repeated calls are O(1) amortized.
func (t *zoneTracker) resolve(z int) int {
	if z < 0 {
		return z
	}
	root := z
	for {
		next, ok := t.collapse[root]
		if !ok {
			break
		}
		root = next
	}
	for cur := z; cur != root; {
		next, ok := t.collapse[cur]
		if !ok {
			break
		}
		t.collapse[cur] = root
		cur = next
	}
	return root
}

// Analyze discovers zones over nodeCount nodes given a sequence of
// candidate edges and a predicate selecting which are currently active
// (both endpoints closed, in network-package terms). Edges are processed
// in slice order, which is what makes the "first traversal" tie-break of
// §4.3 deterministic: callers must supply edges in a stable, meaningful
// order (branch declaration order).
func Analyze(nodeCount int, edges []Edge, active func(Edge) bool) Result {
	t := newZoneTracker(nodeCount)
	for _, e := range edges {
		if active(e) {
			t.handleEdge(e.From, e.To)
		}
	}

	resolved := make([]int, nodeCount)
	for i := 0; i < nodeCount; i++ {
		z := t.zone[i]
		if z == -1 {
			// An isolated node (never touched by a closed edge) forms
			// its own singleton zone, so every node is assigned (I2:
			// connectivity totality).
			z = t.nextZone
			t.nextZone++
			t.zone[i] = z
		}
		resolved[i] = t.resolve(z)
	}

	members := make(map[int][]int)
	for i, z := range resolved {
		members[z] = append(members[z], i)
	}

	main := -1
	best := -1
	for z, nodes := range members {
		if len(nodes) > best {
			best = len(nodes)
			main = z
		} else if len(nodes) == best && z < main {
			// deterministic tie-break: smaller zone id wins, so the
			// result never depends on map iteration order.
			main = z
		}
	}

	return Result{Zone: resolved, Members: members, MainZone: main}
}

// SecondPass re-runs zone discovery starting from an existing Result,
// additionally unioning endpoints of a second edge set (HVDC links) that
// are active (§4.3 "second pass: optionally iterate HVDC links the same
// way"). It returns a fresh Result; the caller decides whether to keep it
// based on configuration.
func SecondPass(base Result, nodeCount int, secondary []Edge, active func(Edge) bool) Result {
	t := newZoneTracker(nodeCount)
	// Seed the tracker with the base zoning by replaying it as edges
	// between every node and the first node observed in its zone; this
	// reuses handleEdge's union semantics without duplicating them.
	firstOfZone := make(map[int]int)
	for i := 0; i < nodeCount; i++ {
		z := base.Zone[i]
		if first, ok := firstOfZone[z]; ok {
			t.handleEdge(first, i)
		} else {
			firstOfZone[z] = i
			t.zone[i] = t.nextZone
			t.nextZone++
		}
	}
	for _, e := range secondary {
		if active(e) {
			t.handleEdge(e.From, e.To)
		}
	}

	resolved := make([]int, nodeCount)
	for i := 0; i < nodeCount; i++ {
		resolved[i] = t.resolve(t.zone[i])
	}
	members := make(map[int][]int)
	for i, z := range resolved {
		members[z] = append(members[z], i)
	}
	main := -1
	best := -1
	for z, nodes := range members {
		if len(nodes) > best || (len(nodes) == best && z < main) {
			best = len(nodes)
			main = z
		}
	}
	return Result{Zone: resolved, Members: members, MainZone: main}
}

// SameZone reports whether two nodes share a zone in r.
func (r Result) SameZone(a, b int) bool {
	return r.Zone[a] == r.Zone[b]
}

// IsIslanded reports whether more than one zone was discovered.
func (r Result) IsIslanded() bool {
	return len(r.Members) > 1
}
