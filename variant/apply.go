package variant

import (
	"math/rand"
	"sort"

	"github.com/metrix-opf/metrix/network"
)

// Apply runs one variant's deltas against n in the fixed twelve-step order
// of §4.4. For a base-update variant (Number == -1) the deltas overwrite
// the shadow fields themselves via Network.UpdateBase once applied; every
// other variant is applied then reset by the caller (Reset).
//
// rng drives the deterministic merit-order tie-break (§5, §9); callers must
// pass the engine's single seeded generator, never a fresh one per variant.
func Apply(n *network.Network, v *Variant, rng *rand.Rand) error {
	imposed := make(map[int]bool)

	for _, d := range v.GeneratorUnavailabilities {
		gi, ok := n.GeneratorByName[d.Generator]
		if !ok {
			continue
		}
		g := n.Generators[gi]
		if d.Unavailable {
			g.On = false
		}
		if d.PMaxOverride != nil {
			g.PMax = *d.PMaxOverride
		}
		if d.PMinOverride != nil {
			g.PMin = *d.PMinOverride
		}
		if d.PMaxOverride != nil || d.PMinOverride != nil {
			g.AvailablePMax = g.PMax
		}
	}

	for _, d := range v.ImposedOutputs {
		gi, ok := n.GeneratorByName[d.Generator]
		if !ok {
			continue
		}
		n.Generators[gi].Target = d.Value
		imposed[gi] = true
	}

	for _, d := range v.LoadValues {
		li, ok := n.LoadByName[d.Load]
		if !ok {
			continue
		}
		n.Loads[li].Value = d.Value
	}

	for _, d := range v.CostOverrides {
		gi, ok := n.GeneratorByName[d.Generator]
		if !ok {
			continue
		}
		g := n.Generators[gi]
		if d.RaiseNoNet != nil {
			g.CostRaiseNoNet = *d.RaiseNoNet
		}
		if d.LowerNoNet != nil {
			g.CostLowerNoNet = *d.LowerNoNet
		}
		if d.RaiseWithNet != nil {
			g.CostRaiseWithNet = *d.RaiseWithNet
		}
		if d.LowerWithNet != nil {
			g.CostLowerWithNet = *d.LowerWithNet
		}
	}

	for _, d := range v.CurativeShedCosts {
		li, ok := n.LoadByName[d.Load]
		if !ok {
			continue
		}
		n.Loads[li].CurativeShedCost = d.Cost
	}

	for _, d := range v.ConsumptionBalances {
		if err := applyConsumptionBalance(n, d, imposed); err != nil {
			return err
		}
	}

	for _, d := range v.HvdcOverrides {
		hi, ok := n.HvdcByName[d.Hvdc]
		if !ok {
			continue
		}
		applyHvdcOverride(n, hi, d)
	}

	for _, d := range v.PhaseShifterSetpoints {
		pi, ok := n.PhaseShifterByName[d.PhaseShifter]
		if !ok {
			continue
		}
		ps := n.PhaseShifters[pi]
		ps.Setpoint = n.Cfg.AngleToPower(d.AngleDeg, n.Branches[ps.RealBranch].Admittance)
	}

	for _, d := range v.ThresholdOverrides {
		mi, ok := n.MonitoredByName[d.MonitoredElement]
		if !ok {
			continue
		}
		n.Monitored[mi].Forward.Set(d.Column, d.Value)
	}

	for _, d := range v.ContingencyProbabilities {
		ci, ok := n.ContingencyByName[d.Contingency]
		if !ok {
			continue
		}
		n.Contingencies[ci].Probability = d.Probability
	}

	if len(v.TopologyRemovals) > 0 {
		for _, d := range v.TopologyRemovals {
			bi, ok := n.BranchByName[d.Branch]
			if !ok {
				continue
			}
			b := n.Branches[bi]
			b.ClosedFrom = false
			b.ClosedTo = false
		}
		if err := n.RecomputeConnectivity(); err != nil {
			return err
		}
	}

	for _, d := range v.GenerationBalances {
		if err := applyGenerationBalance(n, d, imposed, rng); err != nil {
			return err
		}
	}

	if v.IsBaseUpdate() {
		n.UpdateBase()
	}

	return nil
}

// Reset restores every mutable field from its shadow and clears
// per-variant solve state (§4.4 "reset"), then re-derives zones, slack
// nodes and contingency pockets from the restored base topology so the
// next variant is solved against them.
func Reset(n *network.Network) {
	n.ResetToBase()
	n.ClearSolveState()
	_ = n.RecomputeConnectivity()
}

func applyHvdcOverride(n *network.Network, hi int, d HvdcOverride) {
	h := n.Hvdcs[hi]
	if d.PMin != nil {
		h.PMin = *d.PMin
	}
	if d.PMax != nil {
		h.PMax = *d.PMax
	}
	if d.Setpoint != nil {
		h.Setpoint = *d.Setpoint
	}
	if h.Mode.IsACEmulation() && h.FictiveMonitorIndex >= 0 {
		lower, upper := h.ACEmulationThresholds()
		mon := n.Monitored[h.FictiveMonitorIndex]
		mon.Forward.Set(network.Basecase, upper)
		if mon.Reverse != nil {
			mon.Reverse.Set(network.Basecase, -lower)
		}
	}
}

func applyConsumptionBalance(n *network.Network, d ZonalBalance, imposed map[int]bool) error {
	var loadSum, genSum float64
	var loadIdx []int
	for _, l := range n.Loads {
		if n.Nodes[l.Node].Zone == d.Zone {
			loadSum += l.Value
			loadIdx = append(loadIdx, l.Index)
		}
	}
	for _, g := range n.Generators {
		if !g.On || n.Nodes[g.Node].Zone != d.Zone {
			continue
		}
		genSum += g.Target
		if g.Adjustable() && !imposed[g.Index] {
			return newVariantError(ErrKindImposedGroupInBalance,
				"zone %d has a non-imposed adjustable generator during balance-by-consumption", d.Zone)
		}
	}

	delta := (genSum - loadSum) - d.TargetNetExport
	if delta == 0 {
		return nil
	}
	if loadSum == 0 {
		return newVariantError(ErrKindBalanceUnreachable, "zone %d has no load to scale", d.Zone)
	}
	factor := (loadSum + delta) / loadSum
	for _, li := range loadIdx {
		n.Loads[li].Value *= factor
	}
	return nil
}

// generatorBalanceEntry pairs a generator with the cost column relevant to
// the current redispatch direction, for deterministic sorting.
type generatorBalanceEntry struct {
	index int
	cost  float64
}

func applyGenerationBalance(n *network.Network, d ZonalBalance, imposed map[int]bool, rng *rand.Rand) error {
	var balance float64
	var entries []generatorBalanceEntry
	for _, g := range n.Generators {
		if !g.On || n.Nodes[g.Node].Zone != d.Zone {
			continue
		}
		balance += g.Target
	}
	for _, l := range n.Loads {
		if n.Nodes[l.Node].Zone == d.Zone {
			balance -= l.Value
		}
	}

	delta := balance - d.TargetNetExport
	if delta == 0 {
		return nil
	}

	raising := delta < 0
	for _, g := range n.Generators {
		if !g.On || !g.Adjustable() || imposed[g.Index] || n.Nodes[g.Node].Zone != d.Zone {
			continue
		}
		cost := g.CostLowerNoNet
		if raising {
			cost = g.CostRaiseNoNet
		}
		entries = append(entries, generatorBalanceEntry{index: g.Index, cost: cost})
	}

	sortByMeritOrder(entries, rng)

	for _, e := range entries {
		if delta == 0 {
			break
		}
		g := n.Generators[e.index]
		if raising {
			room := g.PMax - g.Target
			if room <= 0 {
				continue
			}
			take := room
			if take > -delta {
				take = -delta
			}
			g.Target += take
			delta += take
		} else {
			room := g.Target - g.PMin
			if room <= 0 {
				continue
			}
			take := room
			if take > delta {
				take = delta
			}
			g.Target -= take
			delta -= take
		}
	}

	eps := n.Cfg.EffectiveBalanceEpsilon()
	if delta > eps || delta < -eps {
		return newVariantError(ErrKindBalanceUnreachable, "zone %d residual %g exceeds epsilon %g", d.Zone, delta, eps)
	}
	return nil
}

// sortByMeritOrder orders generators by ascending cost, breaking exact-cost
// ties with a deterministic shuffle seeded from the engine's single PRNG
// (§9: "do not rely on insertion order").
func sortByMeritOrder(entries []generatorBalanceEntry, rng *rand.Rand) {
	rng.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].cost < entries[j].cost
	})
}
