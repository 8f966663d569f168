package network

import "github.com/metrix-opf/metrix/connectivity"

// analyzeAC runs the AC-only zone analysis of §4.3 step 6: the edge set is
// every closed real or phase-shifter-auxiliary branch. AC-emulation fictive
// branches are excluded, since they represent a DC link and must never
// merge two AC zones on their own (that is exactly what checkACEmulationZones
// guards against).
func (n *Network) analyzeAC() connectivity.Result {
	edges := make([]connectivity.Edge, 0, len(n.Branches))
	for _, b := range n.Branches {
		if b.Kind == BranchACEmulationFictive {
			continue
		}
		edges = append(edges, connectivity.Edge{ID: b.Index, From: b.From, To: b.To})
	}
	return connectivity.Analyze(len(n.Nodes), edges, func(e connectivity.Edge) bool {
		b := n.Branches[e.ID]
		return b.ClosedFrom && b.ClosedTo
	})
}

// checkACEmulationZones enforces that an AC-emulation HVDC only ever
// operates between nodes the AC-only analysis already placed in the same
// zone. Per §4.3, an AC-emulation link spanning two distinct AC zones
// disables its own curative mode (and that of its fictive phase-shifter)
// and reports ErrACEmulationCrossZone. network.New returns that error and
// aborts construction; RecomputeConnectivity only logs it.
func (n *Network) checkACEmulationZones(res connectivity.Result) error {
	var firstErr error
	for _, h := range n.Hvdcs {
		if !h.Mode.IsACEmulation() {
			continue
		}
		if res.SameZone(h.From, h.To) {
			continue
		}
		h.CurativeEligible = make(map[int]bool)
		h.CurativeTargetNames = nil
		if h.FictivePhaseShifter >= 0 {
			ps := n.PhaseShifters[h.FictivePhaseShifter]
			ps.CurativeEligible = make(map[int]bool)
			ps.CurativeTargetNames = nil
		}
		if firstErr == nil {
			firstErr = newConfigError(ErrKindACEmulationCrossZone,
				"AC-emulation hvdc %q spans two distinct AC zones, curative mode disabled", h.Name)
		}
	}
	return firstErr
}
