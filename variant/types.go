// Package variant models the decoded shape of one variant-file entry (§4.4)
// and applies its deltas to a network.Network in the fixed twelve-step
// order. Parsing the variant file itself is external to this module (§6);
// what this package defines is the typed payload a caller hands to Apply,
// mirroring the way package diedata defines the typed DIE payload without
// owning its file format.
package variant

import "github.com/metrix-opf/metrix/network"

// GeneratorUnavailability is step 1: unavailability plus optional Pmax/Pmin
// overrides, which also feed the frequency-reserve recalculation.
type GeneratorUnavailability struct {
	Generator    string
	Unavailable  bool
	PMaxOverride *float64
	PMinOverride *float64
}

// ImposedGeneratorOutput is step 2: an imposed (non-adjustable-for-this-
// variant) generator target.
type ImposedGeneratorOutput struct {
	Generator string
	Value     float64
}

// LoadValue is step 3.
type LoadValue struct {
	Load  string
	Value float64
}

// CostOverride is step 4; nil fields leave that cost column unchanged.
type CostOverride struct {
	Generator                                                 string
	RaiseNoNet, LowerNoNet, RaiseWithNet, LowerWithNet *float64
}

// CurativeShedCostOverride is step 5.
type CurativeShedCostOverride struct {
	Load string
	Cost float64
}

// ZonalBalance is shared by steps 6 and 12: a requested net export target
// for a zone, to be reached either by proportional load scaling (step 6)
// or by merit-order generation redispatch (step 12).
type ZonalBalance struct {
	Zone            int
	TargetNetExport float64
}

// HvdcOverride is step 7; nil fields leave that field unchanged.
type HvdcOverride struct {
	Hvdc                   string
	PMin, PMax, Setpoint *float64
}

// PhaseShifterSetpoint is step 8, expressed as an angle in degrees; Apply
// converts it to apparent power via Configuration.AngleToPower.
type PhaseShifterSetpoint struct {
	PhaseShifter string
	AngleDeg     float64
}

// ThresholdOverride is step 9: a direct override of one threshold column of
// a monitored element's forward set.
type ThresholdOverride struct {
	MonitoredElement string
	Column           network.ThresholdColumn
	Value            float64
}

// ContingencyProbabilityOverride is step 10.
type ContingencyProbabilityOverride struct {
	Contingency string
	Probability float64
}

// TopologyRemoval is step 11: a branch forced open for the duration of (or,
// for variant -1, permanently in) this variant.
type TopologyRemoval struct {
	Branch string
}

// Variant is one fully-decoded variant-file entry. Number == -1 marks the
// base-update variant (§4.4 "base-variant update").
type Variant struct {
	Number int

	GeneratorUnavailabilities []GeneratorUnavailability
	ImposedOutputs            []ImposedGeneratorOutput
	LoadValues                []LoadValue
	CostOverrides             []CostOverride
	CurativeShedCosts         []CurativeShedCostOverride
	ConsumptionBalances       []ZonalBalance
	HvdcOverrides             []HvdcOverride
	PhaseShifterSetpoints     []PhaseShifterSetpoint
	ThresholdOverrides        []ThresholdOverride
	ContingencyProbabilities  []ContingencyProbabilityOverride
	TopologyRemovals          []TopologyRemoval
	GenerationBalances        []ZonalBalance
}

// IsBaseUpdate reports whether this variant overwrites the shadow fields
// themselves rather than being applied-then-reset (§4.4).
func (v *Variant) IsBaseUpdate() bool {
	return v.Number == -1
}
