package network

// CouplingReference selects which generator/load field an element-coupling
// group's proportions are linked through (§3).
type CouplingReference int

const (
	RefPmax CouplingReference = iota
	RefPmin
	RefPobj
	RefPmaxMinusPobj
)

// CouplingGroup is an ordered, named set of generators or loads whose
// proportions are linked through a reference variable (§3).
type CouplingGroup struct {
	Name        string
	IsGenerator bool
	Members     []int // indices into Network.Generators or Network.Loads
	Reference   CouplingReference
}

// Parade is a contingency extended with additional branches to open and
// branches to close, optionally restricted to specific monitored elements
// (§3, §4.5). IsParade is always true for entries in Contingency.Parades;
// Parent points back at the owning contingency.
type Parade struct {
	Contingency // embeds ID/Name/Branches/Generators/Hvdcs/Probability/... of the combined tripping set

	Parent   *Contingency
	IsParade bool

	// ExtraOpen/ExtraClose are the parade-specific deltas on top of the
	// parent's opens (§4.5); Contingency.Branches already includes both
	// the parent's opens and ExtraOpen so solver code can treat a parade
	// like any contingency, while ExtraOpen/ExtraClose remain available
	// for diagnostics and for I6 (inheritance) checks.
	ExtraOpen  []int
	ExtraClose []int

	// AllowedConstraints restricts the parade to be triggered only when
	// specific monitored elements (N-1) are constrained; empty means
	// unrestricted.
	AllowedConstraints []int

	// RecoversPocket is set by the connectivity analyzer when this
	// parade fully or partially restores the parent contingency's lost
	// pocket (§4.3).
	RecoversPocket bool

	// IsDoNothing marks the synthetic "<name>_NRF" parade auto-prepended
	// by the remedial-action builder (§4.5, scenario 6).
	IsDoNothing bool
}

// DoNothingSuffix is the synthetic parade's name suffix (scenario 6).
const DoNothingSuffix = "_NRF"

// InheritsParent reports I6: the parade's opened-branch set must be a
// superset of its parent's, and its closed set must be disjoint from its
// open set.
func (p *Parade) InheritsParent() bool {
	parentOpen := make(map[int]bool, len(p.Parent.Branches))
	for _, b := range p.Parent.Branches {
		parentOpen[b] = true
	}
	for b := range parentOpen {
		found := false
		for _, pb := range p.Branches {
			if pb == b {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	openSet := make(map[int]bool, len(p.Branches))
	for _, b := range p.Branches {
		openSet[b] = true
	}
	for _, c := range p.ExtraClose {
		if openSet[c] {
			return false
		}
	}
	return true
}
