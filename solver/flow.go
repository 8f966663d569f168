package solver

import "github.com/metrix-opf/metrix/network"

// Violation records one monitored element whose resolved flow exceeds its
// resolved threshold under a given context.
type Violation struct {
	Monitored int // index into Network.Monitored
	Flow      float64
	Lower     float64
	Upper     float64
}

// Result is what the core writes back after a solve (§4.6: "the core
// writes decisions back into the live model... surfaces aggregate results
// to the external result writer").
type Result struct {
	Angles     map[int]float64 // node index -> angle-equivalent, per zone
	Flows      map[int]float64 // branch index -> signed MW flow
	Violations []Violation
}

// netInjections computes the per-node net injection (generation minus
// load) for the base case, the starting point for every DC flow solve.
func netInjections(n *network.Network) map[int]float64 {
	inj := make(map[int]float64, len(n.Nodes))
	for _, g := range n.Generators {
		if g.On {
			inj[g.Node] += g.Target
		}
	}
	for _, l := range n.Loads {
		inj[l.Node] -= l.Value
	}
	for _, h := range n.Hvdcs {
		if h.Mode == network.HvdcOutOfService {
			continue
		}
		inj[h.From] -= h.Setpoint
		inj[h.To] += h.Setpoint
	}
	return inj
}

// branchFlows derives every closed branch's signed MW flow from a solved
// angle map: flow(from->to) = (theta[from]-theta[to])·u²y, where theta was
// solved against a B whose entries are the same u²y values (§3's
// angle<->power convention).
func branchFlows(n *network.Network, theta map[int]float64) map[int]float64 {
	flows := make(map[int]float64, len(n.Branches))
	for _, b := range n.Branches {
		if !b.ClosedFrom || !b.ClosedTo {
			continue
		}
		flows[b.Index] = (theta[b.From] - theta[b.To]) * b.UxY()
	}
	return flows
}

// checkViolations resolves each monitored element's threshold under ctx
// and compares it against the computed flow, recording any breach.
func checkViolations(n *network.Network, flows map[int]float64, ctx ThresholdContext) []Violation {
	var out []Violation
	for _, m := range n.Monitored {
		flow := monitoredFlow(n, m, flows)
		lower, upper, ok := ResolveThreshold(&m.Forward, m.Asymmetric(), m.Reverse, n.Cfg.ItamThreshold, ctx, flow)
		if !ok {
			continue
		}
		if flow < lower || flow > upper {
			out = append(out, Violation{Monitored: m.Index, Flow: flow, Lower: lower, Upper: upper})
		}
	}
	return out
}

func monitoredFlow(n *network.Network, m *network.MonitoredElement, flows map[int]float64) float64 {
	if !m.IsSection {
		return flows[m.Branch]
	}
	var sum float64
	for _, term := range m.Section {
		sum += term.Coefficient * flows[term.Branch]
	}
	return sum
}

// SolveBaseCase computes the base-case DC flow for every synchronous zone
// and reports threshold violations (§4.6 base-case influence coefficients
// and threshold precedence). Per-contingency influence coefficients reuse
// the same Cache keyed by the post-contingency topology's zone set; the
// caller (engine) is responsible for re-deriving zones for each tested
// contingency before calling SolveBaseCase again.
func SolveBaseCase(n *network.Network, cache *Cache) (*Result, error) {
	injection := netInjections(n)
	angles := make(map[int]float64)
	zones := make(map[int]bool)
	for _, node := range n.Nodes {
		if node.Kind == network.NodeFictive && node.Zone < 0 {
			continue
		}
		zones[node.Zone] = true
	}
	for zone := range zones {
		if zone < 0 {
			continue
		}
		ic, err := cache.Get(n, zone)
		if err != nil {
			return nil, err
		}
		for k, v := range ic.Angles(n, injection) {
			angles[k] = v
		}
	}

	flows := branchFlows(n, angles)
	violations := checkViolations(n, flows, ThresholdContext{})
	return &Result{Angles: angles, Flows: flows, Violations: violations}, nil
}
