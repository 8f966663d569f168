package network

// Node is a stable-indexed entry in the Network's node arena. Its zone id
// is assigned by the connectivity analyzer and cleared whenever topology
// changes; IsSlack is set by slack selection (§4.3).
//
// Back-references to incident elements are stored as index slices into the
// owning Network's arenas (arena + index pattern, design notes): Node never
// holds pointers, so the arena can be copied/reset without fixing up
// cross-references.
type Node struct {
	Index  int
	Name   string
	Region int
	Kind   NodeKind

	Zone    int // -1 until connectivity has run
	IsSlack bool

	Branches       []int // indices into Network.Branches, incident at this node
	PhaseShifters  []int // indices into Network.PhaseShifters, owned branch touches this node
	HvdcEndpoints  []int // indices into Network.Hvdcs
	Generators     []int // indices into Network.Generators
	Loads          []int // indices into Network.Loads
}

func newNode(index, region int, kind NodeKind, name string) *Node {
	return &Node{
		Index:  index,
		Name:   name,
		Region: region,
		Kind:   kind,
		Zone:   -1,
	}
}

// clearSolveState resets per-variant connectivity bookkeeping (§4.4 reset:
// "slack-variable maps must be cleared").
func (n *Node) clearSolveState() {
	n.Zone = -1
	n.IsSlack = false
}
