package solver

import "github.com/metrix-opf/metrix/network"

// VariableKind tags the seven decision-variable families named by §4.6.
type VariableKind int

const (
	VarGeneratorRaise VariableKind = iota
	VarGeneratorLower
	VarLoadShed
	VarPhaseShifterDeviation
	VarHvdcDeviation
	VarCurativeActivation
	VarParadeActivation
)

// DecisionVariable is one (lower, upper, cost) triple the external solver
// optimizes over (§4.6). Ref indexes into the arena named by Kind:
// Network.Generators for the two generator kinds, Network.Loads for
// VarLoadShed, Network.PhaseShifters, Network.Hvdcs. For
// VarCurativeActivation, Ref is the curative element's index in the arena
// of its own kind (CurativeAction.Index); for VarParadeActivation, Ref is
// the parade's position in that contingency's Parades slice.
type DecisionVariable struct {
	Kind  VariableKind
	Ref   int
	Lower float64
	Upper float64
	Cost  float64

	// ContingencyID is set for VarCurativeActivation and VarParadeActivation,
	// identifying which contingency the binary activation is conditioned on.
	ContingencyID int
}

// BuildDecisionVariables enumerates every decision variable for the current
// network state (§4.6): generator raise/lower pairs for adjustable
// generators, shed variables for sheddable loads, phase-shifter and HVDC
// deviation pairs for optimized-mode elements, one curative-activation
// variable per curative-eligible (contingency, element) pair, and one
// parade-activation variable per declared parade.
func BuildDecisionVariables(n *network.Network) []DecisionVariable {
	var vars []DecisionVariable

	for _, g := range n.Generators {
		if !g.Adjustable() {
			continue
		}
		vars = append(vars,
			DecisionVariable{Kind: VarGeneratorRaise, Ref: g.Index, Lower: 0, Upper: g.PMax - g.Target, Cost: g.CostRaiseNoNet},
			DecisionVariable{Kind: VarGeneratorLower, Ref: g.Index, Lower: 0, Upper: g.Target - g.PMin, Cost: g.CostLowerNoNet},
		)
	}

	for _, l := range n.Loads {
		if l.MaxShedFraction <= 0 {
			continue
		}
		vars = append(vars, DecisionVariable{
			Kind: VarLoadShed, Ref: l.Index, Lower: 0, Upper: l.MaxShedMW(), Cost: l.PreventiveShedCost,
		})
	}

	for _, ps := range n.PhaseShifters {
		if ps.Mode != network.PSAngleOptimized && ps.Mode != network.PSPowerOptimized {
			continue
		}
		lo, hi := phaseShifterBounds(ps)
		vars = append(vars, DecisionVariable{
			Kind: VarPhaseShifterDeviation, Ref: ps.Index, Lower: lo, Upper: hi, Cost: n.Cfg.CostWeightPhaseShifter,
		})
	}

	for _, h := range n.Hvdcs {
		if h.Mode != network.HvdcPowerOptimized && h.Mode != network.HvdcACEmulationOptimized {
			continue
		}
		vars = append(vars, DecisionVariable{
			Kind: VarHvdcDeviation, Ref: h.Index, Lower: h.PMin - h.Setpoint, Upper: h.PMax - h.Setpoint, Cost: n.Cfg.CostWeightHvdc,
		})
	}

	for ci, c := range n.Contingencies {
		if !c.Valid {
			continue
		}
		for _, ca := range c.Curatives {
			vars = append(vars, DecisionVariable{
				Kind: VarCurativeActivation, Ref: curativeRef(ca), ContingencyID: ci, Lower: 0, Upper: 1,
			})
		}
		for pi, p := range c.Parades {
			if p.IsDoNothing {
				continue
			}
			vars = append(vars, DecisionVariable{
				Kind: VarParadeActivation, Ref: pi, ContingencyID: ci, Lower: 0, Upper: 1,
			})
		}
	}

	return vars
}

func phaseShifterBounds(ps *network.PhaseShifter) (lo, hi float64) {
	if len(ps.TapAngles) == 0 {
		return 0, 0
	}
	lo, hi = ps.TapAngles[0], ps.TapAngles[0]
	for _, a := range ps.TapAngles {
		if a < lo {
			lo = a
		}
		if a > hi {
			hi = a
		}
	}
	return lo - ps.BaseTapAngle(), hi - ps.BaseTapAngle()
}

func curativeRef(ca *network.CurativeAction) int { return ca.Index }
