package network

// ContingencyClass classifies a contingency by the kinds of elements it
// trips (§4.2 step 7).
type ContingencyClass int

const (
	ClassLineOnly ContingencyClass = iota
	ClassGeneratorOnly
	ClassMixed
)

// LostPocket describes the set of nodes islanded from the main synchronous
// component by a contingency (§4.3).
type LostPocket struct {
	// NodeZone is the zone id of the lowest-indexed pocket node; a pocket
	// made of several islands spans several zone ids.
	NodeZone int

	// AvailableGeneration is the total max-available generation located
	// in the pocket.
	AvailableGeneration float64
	HasGeneration        bool
	HasLoad               bool

	// ModifiedBranches excludes branches that become purely internal to
	// the pocket once it is islanded (§4.3): opening them would be
	// redundant since the pocket is already isolated.
	ModifiedBranches []int

	Nodes []int
}

// Contingency is an ordered set of branches/generators/HVDCs to open or
// trip, plus the bookkeeping the connectivity analyzer and remedial-action
// builder attach to it (§3).
type Contingency struct {
	ID   int
	Name string

	Branches   []int // indices into Network.Branches
	Generators []int // indices into Network.Generators
	Hvdcs      []int // indices into Network.Hvdcs

	Probability float64
	Complex     bool
	Valid       bool

	Class ContingencyClass

	Pocket *LostPocket // nil unless this contingency islands the network

	// Parades holds the remedial-action alternatives for this
	// contingency, in declaration order, plus the synthetic "do nothing"
	// parade prepended by the remedial-action builder (§4.5). A
	// contingency with no user-defined parades has an empty slice (no
	// implicit parade is created unless at least one real parade exists).
	Parades []*Parade

	// Curatives lists every curative action conditioned on this
	// contingency (§4.2 step 9), attached unless the contingency already
	// trips that very element.
	Curatives []*CurativeAction
}

// TripsElement reports whether the contingency already trips the named
// element kind/index, used by curative wiring (§4.2 step 9: "unless that
// contingency already trips that very element").
func (c *Contingency) TripsElement(kind CurativeElementKind, phaseShifterRealBranch, index int) bool {
	switch kind {
	case CurativeGenerator:
		for _, g := range c.Generators {
			if g == index {
				return true
			}
		}
	case CurativeHvdc:
		for _, h := range c.Hvdcs {
			if h == index {
				return true
			}
		}
	case CurativePhaseShifter:
		for _, b := range c.Branches {
			if b == phaseShifterRealBranch {
				return true
			}
		}
	}
	return false
}

// Recoverable marks a connectivity-breaking contingency whose pocket can be
// (fully or partially) restored by at least one parade (§4.3).
func (c *Contingency) Recoverable() bool {
	if c.Pocket == nil {
		return true
	}
	for _, p := range c.Parades {
		if p.RecoversPocket {
			return true
		}
	}
	return false
}
