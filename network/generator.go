package network

// Generator is a dispatchable unit hosted at a node (§3). Pmin <= Target <=
// Pmax is required whenever the generator is on (enforced by callers that
// mutate Target; the type itself does not silently clamp).
type Generator struct {
	Index int
	Name  string
	Unit  string // diagnostics-only grouping tag, supplemented from original_source

	Node int

	Adjustability Adjustability

	Target        float64
	PMin, PMax    float64
	AvailablePMax float64

	targetBase, pMinBase, pMaxBase, availablePMaxBase float64

	ReserveHalfBand float64

	CostRaiseNoNet, CostLowerNoNet     float64
	CostRaiseWithNet, CostLowerWithNet float64

	costRaiseNoNetBase, costLowerNoNetBase     float64
	costRaiseWithNetBase, costLowerWithNetBase float64

	CurativeTargetNames []string
	CurativeEligible    map[int]bool

	// On reports whether the generator participates at all; an
	// unavailability delta clears it (§4.4 step 1).
	On     bool
	onBase bool
}

func (g *Generator) updateBase() {
	g.targetBase, g.pMinBase, g.pMaxBase, g.availablePMaxBase = g.Target, g.PMin, g.PMax, g.AvailablePMax
	g.costRaiseNoNetBase, g.costLowerNoNetBase = g.CostRaiseNoNet, g.CostLowerNoNet
	g.costRaiseWithNetBase, g.costLowerWithNetBase = g.CostRaiseWithNet, g.CostLowerWithNet
	g.onBase = g.On
}

func (g *Generator) resetToBase() {
	g.Target, g.PMin, g.PMax, g.AvailablePMax = g.targetBase, g.pMinBase, g.pMaxBase, g.availablePMaxBase
	g.CostRaiseNoNet, g.CostLowerNoNet = g.costRaiseNoNetBase, g.costLowerNoNetBase
	g.CostRaiseWithNet, g.CostLowerWithNet = g.costRaiseWithNetBase, g.costLowerWithNetBase
	g.On = g.onBase
}

// Adjustable reports whether the merit-order balance adjuster may move
// Target for this generator (§4.4 merit order).
func (g *Generator) Adjustable() bool {
	return g.On && g.Adjustability != AdjustNone
}

// ReserveCovers reports whether the frequency-reserve half-band is
// sufficient to cover a single-contingency generation loss of lossMW
// (§4.2 step 5 validation).
func (g *Generator) ReserveCovers(lossMW float64) bool {
	return g.ReserveHalfBand >= lossMW
}
