package network

// step 9: resolve every curative-eligible element's pending contingency-name
// list against the built contingency arena, skipping a pairing when the
// contingency already trips that very element (§4.2 step 9).
func (n *Network) wireCuratives() {
	for _, ps := range n.PhaseShifters {
		n.wireCurativeTargets(ps.CurativeTargetNames, CurativePhaseShifter, ps.Index, ps.RealBranch, ps.CurativeEligible)
	}
	for _, h := range n.Hvdcs {
		n.wireCurativeTargets(h.CurativeTargetNames, CurativeHvdc, h.Index, -1, h.CurativeEligible)
	}
	for _, g := range n.Generators {
		n.wireCurativeTargets(g.CurativeTargetNames, CurativeGenerator, g.Index, -1, g.CurativeEligible)
	}
	for _, l := range n.Loads {
		n.wireCurativeTargets(l.CurativeTargetNames, CurativeLoad, l.Index, -1, l.CurativeEligible)
	}
}

// wireCurativeTargets resolves one element's pending CurativeTargetNames
// list (either explicit contingency names or the allContingenciesMarker
// wildcard used by AC-emulation fictive phase-shifters) into its
// CurativeEligible map and into the matching contingencies' Curatives list.
func (n *Network) wireCurativeTargets(names []string, kind CurativeElementKind, index, phaseShifterRealBranch int, eligible map[int]bool) {
	if len(names) == 1 && names[0] == allContingenciesMarker {
		for ci, c := range n.Contingencies {
			n.attachCurative(c, ci, kind, index, phaseShifterRealBranch, eligible)
		}
		return
	}
	for _, name := range names {
		ci, ok := n.ContingencyByName[name]
		if !ok {
			continue
		}
		n.attachCurative(n.Contingencies[ci], ci, kind, index, phaseShifterRealBranch, eligible)
	}
}

func (n *Network) attachCurative(c *Contingency, contingencyIdx int, kind CurativeElementKind, index, phaseShifterRealBranch int, eligible map[int]bool) {
	if c.TripsElement(kind, phaseShifterRealBranch, index) {
		return
	}
	eligible[contingencyIdx] = true
	c.Curatives = append(c.Curatives, &CurativeAction{
		Kind:          kind,
		Index:         index,
		ContingencyID: contingencyIdx,
		varIndex:      -1,
	})
}
