package network

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/metrix-opf/metrix/config"
	"github.com/metrix-opf/metrix/connectivity"
	"github.com/metrix-opf/metrix/diedata"
)

// Network is the typed graph owned exclusively by the engine: nodes,
// branches, phase-shifters, HVDCs, generators, loads, monitored elements,
// contingencies, and remedial-action parades, all arena-indexed (design
// notes: cyclic graph references are represented as index back-references,
// never pointer cycles).
type Network struct {
	Cfg *config.Configuration

	Nodes         []*Node
	Branches      []*Branch
	PhaseShifters []*PhaseShifter
	Hvdcs         []*Hvdc
	Generators    []*Generator
	Loads         []*Load
	Monitored     []*MonitoredElement
	Contingencies []*Contingency
	CouplingGroups []*CouplingGroup

	BranchByName       map[string]int
	GeneratorByName    map[string]int
	LoadByName         map[string]int
	PhaseShifterByName map[string]int
	HvdcByName         map[string]int
	ContingencyByName  map[string]int
	MonitoredByName    map[string]int

	// Generation counts topology changes (branch open/close sets,
	// connectivity-affecting deltas); the solver package caches influence
	// coefficients keyed on this counter (§4.6).
	Generation int

	log zerolog.Logger
}

// New builds a Network from a Configuration and a decoded DIE payload,
// running the nine-step constructor algorithm of §4.2 in order.
func New(cfg *config.Configuration, data *diedata.NetworkData, log zerolog.Logger) (*Network, error) {
	if cfg == nil {
		return nil, newConfigError(ErrKindMalformed, "nil configuration")
	}
	if data == nil {
		return nil, newConfigError(ErrKindMalformed, "nil network data")
	}

	n := &Network{
		Cfg:                cfg,
		BranchByName:       make(map[string]int),
		GeneratorByName:    make(map[string]int),
		LoadByName:         make(map[string]int),
		PhaseShifterByName: make(map[string]int),
		HvdcByName:         make(map[string]int),
		ContingencyByName:  make(map[string]int),
		MonitoredByName:    make(map[string]int),
		log:                log,
	}

	n.buildNodes(data)
	if err := n.buildBranches(data); err != nil {
		return nil, err
	}
	if err := n.buildPhaseShifters(data); err != nil {
		return nil, err
	}
	if err := n.buildHvdcs(data); err != nil {
		return nil, err
	}
	if err := n.buildGeneratorsAndLoads(data); err != nil {
		return nil, err
	}

	slackAssigned, err := n.runInitialConnectivity(data.SlackPerZone)
	if err != nil {
		return nil, err
	}
	if !slackAssigned {
		return nil, newConfigError(ErrKindDisconnected, "network is islanded and no slack-per-zone selection was requested")
	}

	if err := n.buildCouplingGroups(data); err != nil {
		return nil, err
	}
	if err := n.buildContingencies(data); err != nil {
		return nil, err
	}
	if err := n.buildWatchedSections(data); err != nil {
		return nil, err
	}
	n.wireCuratives()
	n.UpdateBase()

	return n, nil
}

// UpdateBase writes every mutable entity's live fields into its shadow
// ("update base", §4.4 and §9 "mutable base snapshots"). Called once at
// construction and again whenever a base-variant (number -1) is applied.
func (n *Network) UpdateBase() {
	for _, b := range n.Branches {
		b.updateBase()
	}
	for _, p := range n.PhaseShifters {
		p.updateBase()
	}
	for _, h := range n.Hvdcs {
		h.updateBase()
	}
	for _, g := range n.Generators {
		g.updateBase()
	}
	for _, l := range n.Loads {
		l.updateBase()
	}
}

// ResetToBase restores every mutable entity's live fields from its shadow
// (§4.4 "reset"). It does not touch connectivity or curative-activation
// state; callers pair it with ClearSolveState.
func (n *Network) ResetToBase() {
	for _, b := range n.Branches {
		b.resetToBase()
	}
	for _, p := range n.PhaseShifters {
		p.resetToBase()
	}
	for _, h := range n.Hvdcs {
		h.resetToBase()
	}
	for _, g := range n.Generators {
		g.resetToBase()
	}
	for _, l := range n.Loads {
		l.resetToBase()
	}
}

// ClearSolveState clears every element's curative-activation state,
// solver variable indices, and node slack/zone assignments (§4.4 "after
// reset, every element's curative-activation state, variable indices, and
// slack-variable maps must be cleared").
func (n *Network) ClearSolveState() {
	for _, node := range n.Nodes {
		node.clearSolveState()
	}
	for _, c := range n.Contingencies {
		for _, ca := range c.Curatives {
			ca.clearSolveState()
		}
	}
}

// step 1: allocate nodes 0..N-1 with their region indices.
func (n *Network) buildNodes(data *diedata.NetworkData) {
	n.Nodes = make([]*Node, data.NodeCount)
	for i := 0; i < data.NodeCount; i++ {
		region := 0
		if i < len(data.NodeRegion) {
			region = data.NodeRegion[i]
		}
		n.Nodes[i] = newNode(i, region, NodeReal, fmt.Sprintf("N%d", i))
	}
}

func (n *Network) addNodeBranch(nodeIdx, branchIdx int) {
	n.Nodes[nodeIdx].Branches = append(n.Nodes[nodeIdx].Branches, branchIdx)
}

// newFictiveNode appends a fictive node (phase-shifter / AC-emulation
// insertion) and returns its index.
func (n *Network) newFictiveNode(name string) int {
	idx := len(n.Nodes)
	node := newNode(idx, -1, NodeFictive, name)
	n.Nodes = append(n.Nodes, node)
	return idx
}

func (n *Network) addBranch(b *Branch) int {
	idx := len(n.Branches)
	b.Index = idx
	n.Branches = append(n.Branches, b)
	n.BranchByName[b.Name] = idx
	n.addNodeBranch(b.From, idx)
	if b.To != b.From {
		n.addNodeBranch(b.To, idx)
	}
	return idx
}

func (n *Network) addMonitored(def *diedata.MonitorDef, branchIdx int) (int, error) {
	if def == nil {
		return -1, nil
	}
	m := &MonitoredElement{Name: def.Name, Branch: branchIdx, IsSection: def.IsSection}
	setThresholds(&m.Forward, def.Forward)
	if def.Reverse != nil {
		r := &ThresholdSet{}
		setThresholds(r, *def.Reverse)
		m.Reverse = r
	}
	if def.IsSection {
		for _, term := range def.SectionTerm {
			bi, ok := n.BranchByName[term.BranchName]
			if !ok {
				return -1, newConfigError(ErrKindMalformed, "watched section %q references unknown branch %q", def.Name, term.BranchName)
			}
			m.Section = append(m.Section, SectionTerm{Branch: bi, Coefficient: term.Coefficient})
		}
	}
	idx := len(n.Monitored)
	m.Index = idx
	n.Monitored = append(n.Monitored, m)
	n.MonitoredByName[m.Name] = idx
	return idx, nil
}

func setThresholds(dst *ThresholdSet, src diedata.ThresholdSet) {
	if src.HasBasecase {
		dst.Set(Basecase, src.Basecase)
	}
	if src.HasSingleOutage {
		dst.Set(SingleOutage, src.SingleOutage)
	}
	if src.HasComplexOutage {
		dst.Set(ComplexOutage, src.ComplexOutage)
	}
	if src.HasPreCurative {
		dst.Set(PreCurative, src.PreCurative)
	}
	if src.HasPreCurativeComplex {
		dst.Set(PreCurativeComplex, src.PreCurativeComplex)
	}
}

// step 2: build branches, attach monitored elements, apply initially-open.
func (n *Network) buildBranches(data *diedata.NetworkData) error {
	for _, def := range data.Branches {
		if def.From.NodeIndex < 0 || def.From.NodeIndex >= len(n.Nodes) ||
			def.To.NodeIndex < 0 || def.To.NodeIndex >= len(n.Nodes) {
			return newConfigError(ErrKindMalformed, "branch %q references out-of-range node", def.Name)
		}
		if _, dup := n.BranchByName[def.Name]; dup {
			return newConfigError(ErrKindMalformed, "duplicate branch name %q", def.Name)
		}
		b := &Branch{
			Name:           def.Name,
			Kind:           BranchReal,
			From:           def.From.NodeIndex,
			To:             def.To.NodeIndex,
			Admittance:     def.Admittance,
			Resistance:     def.Resistance,
			ClosedFrom:     def.From.Closed,
			ClosedTo:       def.To.Closed,
			MonitoredIndex: -1,
		}
		if def.InitialOpen {
			b.ClosedFrom = false
			b.ClosedTo = false
		}
		b.uSquaredY = n.Cfg.AdmittanceScaling() * b.Admittance
		idx := n.addBranch(b)

		mi, err := n.addMonitored(def.Monitored, idx)
		if err != nil {
			return err
		}
		b.MonitoredIndex = mi
	}
	return nil
}
