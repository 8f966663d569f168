package network

import (
	"math"

	"github.com/metrix-opf/metrix/diedata"
)

// step 3: for each phase-shifter definition, insert a fictive node and a
// fictive auxiliary branch; split the admittance of the real branch as
// described in §3; attach the phase-shifter; register curative
// eligibility; apply preventive tap bounds.
func (n *Network) buildPhaseShifters(data *diedata.NetworkData) error {
	for _, def := range data.PhaseShifters {
		if def.SplitFactor <= 0 || def.SplitFactor >= 1 {
			return newConfigError(ErrKindMalformed, "phase-shifter %q split factor k=%g must satisfy 0<k<1", def.Name, def.SplitFactor)
		}
		realIdx, ok := n.BranchByName[def.BranchName]
		if !ok {
			return newConfigError(ErrKindMalformed, "phase-shifter %q references unknown branch %q", def.Name, def.BranchName)
		}
		real := n.Branches[realIdx]

		auxY, realY := admittanceSplit(real.Admittance, def.SplitFactor)

		fictiveNode := n.newFictiveNode(def.Name + "_PSN")

		// Insert in series: original From -> fictiveNode (aux branch),
		// fictiveNode -> original To (real branch, now split).
		originalFrom := real.From
		aux := &Branch{
			Name:           def.Name + "_PSB",
			Kind:           BranchPhaseShifterAux,
			From:           originalFrom,
			To:             fictiveNode,
			Admittance:     auxY,
			ClosedFrom:     real.ClosedFrom,
			ClosedTo:       true,
			MonitoredIndex: -1,
		}
		aux.uSquaredY = n.Cfg.AdmittanceScaling() * aux.Admittance
		auxIdx := n.addBranch(aux)

		real.From = fictiveNode
		fromBranches := n.Nodes[originalFrom].Branches
		for i, bi := range fromBranches {
			if bi == realIdx {
				n.Nodes[originalFrom].Branches = append(fromBranches[:i:i], fromBranches[i+1:]...)
				break
			}
		}
		real.Admittance = realY
		real.uSquaredY = n.Cfg.AdmittanceScaling() * real.Admittance
		real.ClosedFrom = true
		n.addNodeBranch(fictiveNode, realIdx)

		aux.enforceNoSelfLoop()
		real.enforceNoSelfLoop()

		ps := &PhaseShifter{
			Name:                def.Name,
			RealBranch:          realIdx,
			AuxBranch:           auxIdx,
			AuxNode:             fictiveNode,
			SplitFactor:         def.SplitFactor,
			Mode:                PhaseShifterMode(def.Mode),
			TapAngles:           append([]float64(nil), def.TapAngles...),
			BaseTapIndex:        def.BaseTapIndex,
			PreventiveLow:       def.PreventiveLow,
			PreventiveHigh:      def.PreventiveHigh,
			HasPreventiveLimits: def.HasPreventive,
			CurativeTargetNames: append([]string(nil), def.CurativeTargets...),
			CurativeEligible:    make(map[int]bool),
		}
		ps.Setpoint = n.Cfg.AngleToPower(ps.BaseTapAngle(), real.Admittance)
		idx := len(n.PhaseShifters)
		ps.Index = idx
		n.PhaseShifters = append(n.PhaseShifters, ps)
		if _, dup := n.PhaseShifterByName[ps.Name]; dup {
			return newConfigError(ErrKindMalformed, "duplicate phase-shifter name %q", ps.Name)
		}
		n.PhaseShifterByName[ps.Name] = idx
	}
	return nil
}

// step 4: for each HVDC link, register endpoints; if AC-emulation, insert
// a second fictive node and branch representing the emulated AC
// susceptance, create a fictive phase-shifter on that branch with
// curative eligibility for all contingencies, and install an asymmetric
// monitored element on it with thresholds [-Pmin, Pmax].
func (n *Network) buildHvdcs(data *diedata.NetworkData) error {
	for _, def := range data.Hvdcs {
		if def.From < 0 || def.From >= len(n.Nodes) || def.To < 0 || def.To >= len(n.Nodes) {
			return newConfigError(ErrKindMalformed, "hvdc %q references out-of-range node", def.Name)
		}
		h := &Hvdc{
			Name:                def.Name,
			From:                def.From,
			To:                  def.To,
			PMin:                def.PMin,
			PMax:                def.PMax,
			Setpoint:            def.Setpoint,
			Mode:                HvdcMode(def.Mode),
			ACEmulationK:        def.ACEmulationK,
			LossCoefficient:     def.LossCoefficient,
			CurativeTargetNames: append([]string(nil), def.CurativeTargets...),
			CurativeEligible:    make(map[int]bool),
			FictiveBranch:       -1,
			FictivePhaseShifter: -1,
			FictiveMonitorIndex: -1,
		}
		n.Nodes[def.From].HvdcEndpoints = append(n.Nodes[def.From].HvdcEndpoints, len(n.Hvdcs))
		n.Nodes[def.To].HvdcEndpoints = append(n.Nodes[def.To].HvdcEndpoints, len(n.Hvdcs))

		if h.Mode.IsACEmulation() {
			if def.ACEmulationK <= 0 {
				return newConfigError(ErrKindMalformed, "AC-emulation hvdc %q requires a positive k coefficient", def.Name)
			}
			fictiveNode := n.newFictiveNode(def.Name + "_ACN")
			// Emulated AC susceptance: k*180/(pi*u_ref^2), §3.
			emulatedY := def.ACEmulationK * 180 / (math.Pi * n.Cfg.AdmittanceScaling())
			branch := &Branch{
				Name:           def.Name + "_ACB",
				Kind:           BranchACEmulationFictive,
				From:           def.From,
				To:             fictiveNode,
				Admittance:     emulatedY,
				ClosedFrom:     true,
				ClosedTo:       true,
				MonitoredIndex: -1,
			}
			branch.uSquaredY = n.Cfg.AdmittanceScaling() * branch.Admittance
			branchIdx := n.addBranch(branch)
			n.addNodeBranch(fictiveNode, branchIdx)
			h.FictiveNode = fictiveNode
			h.FictiveBranch = branchIdx

			lower, upper := h.ACEmulationThresholds()
			fwd := ThresholdSet{}
			fwd.Set(Basecase, upper)
			rev := ThresholdSet{}
			rev.Set(Basecase, -lower)
			mon := &MonitoredElement{Name: def.Name + "_ACM", Branch: branchIdx, Forward: fwd, Reverse: &rev}
			mi := len(n.Monitored)
			mon.Index = mi
			n.Monitored = append(n.Monitored, mon)
			n.MonitoredByName[mon.Name] = mi
			branch.MonitoredIndex = mi
			h.FictiveMonitorIndex = mi

			fictivePS := &PhaseShifter{
				Name:                def.Name + "_ACPS",
				RealBranch:          branchIdx,
				AuxBranch:           -1,
				AuxNode:             -1,
				SplitFactor:         0.5,
				Mode:                PSAngleOptimized,
				CurativeEligible:    make(map[int]bool),
			}
			psIdx := len(n.PhaseShifters)
			fictivePS.Index = psIdx
			n.PhaseShifters = append(n.PhaseShifters, fictivePS)
			n.PhaseShifterByName[fictivePS.Name] = psIdx
			h.FictivePhaseShifter = psIdx
			// Curative eligibility for all contingencies is wired once
			// contingencies exist, in wireCuratives via a wildcard marker.
			fictivePS.CurativeTargetNames = []string{allContingenciesMarker}
		}

		idx := len(n.Hvdcs)
		h.Index = idx
		n.Hvdcs = append(n.Hvdcs, h)
		if _, dup := n.HvdcByName[h.Name]; dup {
			return newConfigError(ErrKindMalformed, "duplicate hvdc name %q", h.Name)
		}
		n.HvdcByName[h.Name] = idx
	}
	return nil
}

// allContingenciesMarker is a sentinel CurativeTargetNames entry meaning
// "eligible for every contingency", used for AC-emulation fictive
// phase-shifters (§4.2 step 4: "curative eligibility for all
// contingencies").
const allContingenciesMarker = "*"
