package network

import (
	"fmt"

	"github.com/metrix-opf/metrix/diedata"
)

// step 7: resolve every contingency's element list against the built
// arenas, classify it, and run the per-contingency connectivity test that
// discovers lost pockets (§4.3).
func (n *Network) buildContingencies(data *diedata.NetworkData) error {
	for _, def := range data.Contingencies {
		name := def.Name
		if name == "" {
			name = fmt.Sprintf("C%d", def.ID)
		}
		if _, dup := n.ContingencyByName[name]; dup {
			return newConfigError(ErrKindMalformed, "duplicate contingency name %q", name)
		}

		c := &Contingency{
			ID:          def.ID,
			Name:        name,
			Probability: def.Probability,
			Complex:     def.Complex,
			Valid:       true,
		}
		for _, el := range def.Elements {
			switch el.Kind {
			case diedata.ContingencyBranch:
				bi, ok := n.BranchByName[el.Name]
				if !ok {
					return newConfigError(ErrKindMalformed, "contingency %q references unknown branch %q", name, el.Name)
				}
				c.Branches = append(c.Branches, bi)
			case diedata.ContingencyGenerator:
				gi, ok := n.GeneratorByName[el.Name]
				if !ok {
					return newConfigError(ErrKindMalformed, "contingency %q references unknown generator %q", name, el.Name)
				}
				c.Generators = append(c.Generators, gi)
			case diedata.ContingencyHvdc:
				hi, ok := n.HvdcByName[el.Name]
				if !ok {
					return newConfigError(ErrKindMalformed, "contingency %q references unknown hvdc %q", name, el.Name)
				}
				c.Hvdcs = append(c.Hvdcs, hi)
			default:
				return newConfigError(ErrKindMalformed, "contingency %q has an unrecognized element kind", name)
			}
		}
		c.Class = classifyContingency(c)

		if len(c.Branches) > 0 {
			pocket, modified, err := n.testContingencyConnectivity(c.Branches)
			if err != nil {
				return err
			}
			if pocket != nil {
				if len(c.Generators) > 0 || len(c.Hvdcs) > 0 {
					return newConfigError(ErrKindPocketWithSource,
						"contingency %q islands a pocket while also tripping generation or hvdc capacity", name)
				}
				pocket.ModifiedBranches = modified
				c.Pocket = pocket
				if !n.Cfg.AllowConnectivityBreakingContingencies {
					// the contingency stays in the arena for diagnostics but
					// is excluded from solving until a parade recovers it.
					c.Valid = false
				}
			}
		}

		idx := len(n.Contingencies)
		n.Contingencies = append(n.Contingencies, c)
		n.ContingencyByName[name] = idx
	}
	return nil
}

// classifyContingency buckets a contingency by the kinds of elements it
// trips (§4.2 step 7).
func classifyContingency(c *Contingency) ContingencyClass {
	hasBranch := len(c.Branches) > 0
	hasOther := len(c.Generators) > 0 || len(c.Hvdcs) > 0
	switch {
	case hasBranch && hasOther:
		return ClassMixed
	case hasBranch:
		return ClassLineOnly
	default:
		return ClassGeneratorOnly
	}
}

// testContingencyConnectivity opens the given branches against the base
// topology, re-runs the AC zone analysis, and reports the lost pocket (if
// any) plus the subset of branches whose opening is not already implied by
// the pocket being islanded (§4.3: branches purely internal to the pocket
// are redundant to record as "modified", since opening the pocket already
// isolates them).
func (n *Network) testContingencyConnectivity(trippedBranches []int) (*LostPocket, []int, error) {
	snapshots := make([]branchEndsSnapshot, len(n.Branches))
	for i, b := range n.Branches {
		snapshots[i] = b.snapshotEnds()
	}
	defer func() {
		for i, b := range n.Branches {
			b.restoreEnds(snapshots[i])
		}
	}()

	for _, bi := range trippedBranches {
		b := n.Branches[bi]
		b.ClosedFrom = false
		b.ClosedTo = false
	}

	res := n.analyzeAC()
	if !res.IsIslanded() {
		return nil, nil, nil
	}

	pocketZone := -1
	for _, z := range res.Zone {
		if z != res.MainZone {
			pocketZone = z
			break
		}
	}
	if pocketZone == -1 {
		return nil, nil, nil
	}

	pocket := &LostPocket{NodeZone: pocketZone}
	inPocket := make(map[int]bool)
	for nodeIdx, z := range res.Zone {
		if z == res.MainZone {
			continue
		}
		inPocket[nodeIdx] = true
		pocket.Nodes = append(pocket.Nodes, nodeIdx)
		node := n.Nodes[nodeIdx]
		for _, gi := range node.Generators {
			pocket.AvailableGeneration += n.Generators[gi].AvailablePMax
			pocket.HasGeneration = true
		}
		if len(node.Loads) > 0 {
			pocket.HasLoad = true
		}
	}

	var modified []int
	for _, bi := range trippedBranches {
		b := n.Branches[bi]
		if inPocket[b.From] && inPocket[b.To] {
			// purely internal to the pocket: opening it is implied by the
			// pocket already being isolated from the main zone.
			continue
		}
		modified = append(modified, bi)
	}

	return pocket, modified, nil
}

// step 8: build standalone monitored elements declared independently of any
// single branch row (weighted watched sections).
func (n *Network) buildWatchedSections(data *diedata.NetworkData) error {
	for i := range data.WatchedSections {
		def := data.WatchedSections[i]
		if _, err := n.addMonitored(&def, -1); err != nil {
			return err
		}
	}
	return nil
}

// buildCouplingGroups resolves element-coupling group member names against
// the generator/load arenas built in step 5 (§3).
func (n *Network) buildCouplingGroups(data *diedata.NetworkData) error {
	for _, def := range data.CouplingGroups {
		g := &CouplingGroup{
			Name:        def.Name,
			IsGenerator: def.IsGenerator,
			Reference:   couplingReferenceFromString(def.Reference),
		}
		for _, member := range def.Members {
			if def.IsGenerator {
				gi, ok := n.GeneratorByName[member]
				if !ok {
					return newConfigError(ErrKindMalformed, "coupling group %q references unknown generator %q", def.Name, member)
				}
				g.Members = append(g.Members, gi)
			} else {
				li, ok := n.LoadByName[member]
				if !ok {
					return newConfigError(ErrKindMalformed, "coupling group %q references unknown load %q", def.Name, member)
				}
				g.Members = append(g.Members, li)
			}
		}
		n.CouplingGroups = append(n.CouplingGroups, g)
	}
	return nil
}

func couplingReferenceFromString(s string) CouplingReference {
	switch s {
	case "Pmin":
		return RefPmin
	case "Pobj":
		return RefPobj
	case "Pmax-Pobj":
		return RefPmaxMinusPobj
	default:
		return RefPmax
	}
}
