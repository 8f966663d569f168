package network

// RecomputeConnectivity re-runs zone discovery and slack selection after a
// variant's topology deltas (§4.4 "connectivity re-check"), then
// recomputes every branch-tripping contingency's lost pocket against the
// new topology, invalidating contingencies the new topology breaks. It
// advances Generation so cached influence coefficients are rebuilt.
func (n *Network) RecomputeConnectivity() error {
	n.Generation++
	for _, node := range n.Nodes {
		node.IsSlack = false
	}
	res := n.analyzeAC()
	n.applyZoneResult(res)
	n.selectSlackPerZone(res)
	if err := n.checkACEmulationZones(res); err != nil {
		n.log.Warn().Err(err).Msg("AC-emulation hvdc disabled after topology change")
	}
	n.recomputeContingencyPockets()
	return nil
}

// TestBranchConnectivity runs the same snapshot/apply/restore connectivity
// test construction uses (§4.3) against an arbitrary branch set, for the
// remedial-action builder's per-parade validation (§4.5).
func (n *Network) TestBranchConnectivity(branches []int) (*LostPocket, []int, error) {
	return n.testContingencyConnectivity(branches)
}

// recomputeContingencyPockets re-derives each branch-tripping contingency's
// LostPocket against the current (post-variant) topology. A contingency
// that now islands a pocket while also tripping generation or HVDC
// capacity is invalidated and logged rather than aborting the whole variant, since
// §4.4 only requires that "contingencies invalidated by the variant
// topology are logged and skipped".
func (n *Network) recomputeContingencyPockets() {
	for _, c := range n.Contingencies {
		if len(c.Branches) == 0 {
			continue
		}
		pocket, modified, err := n.testContingencyConnectivity(c.Branches)
		if err != nil {
			n.log.Warn().Err(err).Str("contingency", c.Name).Msg("connectivity test failed after topology change")
			c.Valid = false
			continue
		}
		if pocket == nil {
			c.Pocket = nil
			c.Valid = true
			continue
		}
		if len(c.Generators) > 0 || len(c.Hvdcs) > 0 {
			n.log.Warn().Str("contingency", c.Name).Msg("contingency invalidated: islands a pocket while also tripping generation or hvdc capacity")
			c.Pocket = nil
			c.Valid = false
			continue
		}
		pocket.ModifiedBranches = modified
		c.Pocket = pocket
		c.Valid = n.Cfg.AllowConnectivityBreakingContingencies
	}
}
