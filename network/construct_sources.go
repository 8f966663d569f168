package network

import (
	"github.com/metrix-opf/metrix/connectivity"
	"github.com/metrix-opf/metrix/diedata"
)

// generationLossByContingency sums AvailablePMax for every generator a
// contingency trips, keyed by contingency name, using the raw DIE payload
// (Contingency network objects do not exist yet at step 5).
func generationLossByContingency(data *diedata.NetworkData) map[string]float64 {
	genByName := make(map[string]diedata.GeneratorDef, len(data.Generators))
	for _, g := range data.Generators {
		genByName[g.Name] = g
	}
	loss := make(map[string]float64, len(data.Contingencies))
	for _, c := range data.Contingencies {
		var total float64
		for _, el := range c.Elements {
			if el.Kind == diedata.ContingencyGenerator {
				if g, ok := genByName[el.Name]; ok {
					total += g.AvailablePMax
				}
			}
		}
		loss[c.Name] = total
	}
	return loss
}

// step 5: build generator and load arrays; register curative eligibility;
// for each eligible-generator contingency, verify the half-band of
// frequency reserve is sufficient to cover the maximum single-contingency
// generation loss; fail fast with ReserveTooSmall otherwise.
func (n *Network) buildGeneratorsAndLoads(data *diedata.NetworkData) error {
	lossByContingency := generationLossByContingency(data)

	for _, def := range data.Generators {
		for _, target := range def.CurativeTargets {
			if loss, ok := lossByContingency[target]; ok && loss > def.ReserveHalfBand {
				return newConfigError(ErrKindReserveTooSmall,
					"generator %q reserve half-band %g cannot cover contingency %q generation loss %g",
					def.Name, def.ReserveHalfBand, target, loss)
			}
		}
		if def.NodeIndex < 0 || def.NodeIndex >= len(n.Nodes) {
			return newConfigError(ErrKindMalformed, "generator %q references out-of-range node", def.Name)
		}
		if def.PMin > def.PMax {
			return newConfigError(ErrKindMalformed, "generator %q has Pmin(%g) > Pmax(%g)", def.Name, def.PMin, def.PMax)
		}
		on := def.Adjustability != 0 || def.Target != 0 || def.PMax != 0
		if on && (def.Target < def.PMin || def.Target > def.PMax) {
			return newConfigError(ErrKindMalformed, "generator %q target %g outside [%g,%g]", def.Name, def.Target, def.PMin, def.PMax)
		}
		g := &Generator{
			Name:                def.Name,
			Unit:                def.Unit,
			Node:                def.NodeIndex,
			Adjustability:       Adjustability(def.Adjustability),
			Target:              def.Target,
			PMin:                def.PMin,
			PMax:                def.PMax,
			AvailablePMax:       def.AvailablePMax,
			ReserveHalfBand:     def.ReserveHalfBand,
			CostRaiseNoNet:      def.CostRaiseNoNet,
			CostLowerNoNet:      def.CostLowerNoNet,
			CostRaiseWithNet:    def.CostRaiseWithNet,
			CostLowerWithNet:    def.CostLowerWithNet,
			CurativeTargetNames: append([]string(nil), def.CurativeTargets...),
			CurativeEligible:    make(map[int]bool),
			On:                  true,
		}
		idx := len(n.Generators)
		g.Index = idx
		n.Generators = append(n.Generators, g)
		if _, dup := n.GeneratorByName[g.Name]; dup {
			return newConfigError(ErrKindMalformed, "duplicate generator name %q", g.Name)
		}
		n.GeneratorByName[g.Name] = idx
		n.Nodes[g.Node].Generators = append(n.Nodes[g.Node].Generators, idx)
	}

	for _, def := range data.Loads {
		if def.NodeIndex < 0 || def.NodeIndex >= len(n.Nodes) {
			return newConfigError(ErrKindMalformed, "load %q references out-of-range node", def.Name)
		}
		l := &Load{
			Name:                 def.Name,
			Node:                 def.NodeIndex,
			Value:                def.Value,
			MaxShedFraction:      def.MaxShedFraction,
			PreventiveShedCost:   def.PreventiveShedCost,
			CurativeShedFraction: def.CurativeShedFrac,
			CurativeShedCost:     def.CurativeShedCost,
			CurativeTargetNames:  append([]string(nil), def.CurativeTargets...),
			CurativeEligible:     make(map[int]bool),
		}
		idx := len(n.Loads)
		l.Index = idx
		n.Loads = append(n.Loads, l)
		if _, dup := n.LoadByName[l.Name]; dup {
			return newConfigError(ErrKindMalformed, "duplicate load name %q", l.Name)
		}
		n.LoadByName[l.Name] = idx
		n.Nodes[l.Node].Loads = append(n.Nodes[l.Node].Loads, idx)
	}

	return nil
}

// step 6 (run once, before contingencies exist): execute the initial
// connectivity pass and, if requested, select a slack node per zone.
// Returns false if the network is islanded and no slack selection was
// requested (caller turns that into ErrDisconnected).
func (n *Network) runInitialConnectivity(selectSlack bool) (bool, error) {
	res := n.analyzeAC()
	if res.IsIslanded() && !selectSlack {
		return false, nil
	}
	n.applyZoneResult(res)
	if selectSlack {
		n.selectSlackPerZone(res)
	}
	if err := n.checkACEmulationZones(res); err != nil {
		return false, err
	}
	return true, nil
}

// selectSlackPerZone picks the first node of each discovered zone as that
// zone's slack (§4.3: "the first node of each discovered zone becomes that
// zone's slack"), iterating nodes in index order for determinism.
func (n *Network) selectSlackPerZone(res connectivity.Result) {
	chosen := make(map[int]bool)
	for nodeIdx, z := range res.Zone {
		if !chosen[z] {
			n.Nodes[nodeIdx].IsSlack = true
			chosen[z] = true
		}
	}
}

func (n *Network) applyZoneResult(res connectivity.Result) {
	for i, z := range res.Zone {
		n.Nodes[i].Zone = z
	}
}
