package parade

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/metrix-opf/metrix/network"
)

// Build runs the remedial-action builder of §4.5 over a set of decoded
// parades-file entries, attaching the resulting parades (plus a synthetic
// "do-nothing" parade per incident) to the network's contingencies.
// Malformed or unresolvable entries are logged and skipped; Build itself
// only fails on a genuine invariant breach (I6).
func Build(n *network.Network, entries []Entry, log zerolog.Logger) error {
	byIncident := make(map[string][]Entry)
	var order []string
	for _, e := range entries {
		if _, seen := byIncident[e.Incident]; !seen {
			order = append(order, e.Incident)
		}
		byIncident[e.Incident] = append(byIncident[e.Incident], e)
	}

	for _, name := range order {
		ci, ok := n.ContingencyByName[name]
		if !ok {
			log.Warn().Str("incident", name).Msg("parade references unknown incident, skipped")
			continue
		}
		incident := n.Contingencies[ci]
		if !incident.Valid {
			log.Warn().Str("incident", name).Msg("parade references invalid incident, skipped")
			continue
		}
		for _, e := range byIncident[name] {
			p, err := buildOne(n, incident, e, log)
			if err != nil {
				return err
			}
			if p != nil {
				incident.Parades = append(incident.Parades, p)
			}
		}
		if len(incident.Parades) > 0 {
			moveCuratives(n, incident)
			prependDoNothing(incident)
		}
	}
	return nil
}

func buildOne(n *network.Network, incident *network.Contingency, e Entry, log zerolog.Logger) (*network.Parade, error) {
	p := &network.Parade{
		Contingency: network.Contingency{
			ID:          incident.ID,
			Name:        fmt.Sprintf("%s_P%d", incident.Name, len(incident.Parades)+1),
			Probability: incident.Probability,
			Complex:     incident.Complex,
			Valid:       true,
		},
		Parent:   incident,
		IsParade: true,
	}

	parentOpen := make(map[int]bool, len(incident.Branches))
	for _, b := range incident.Branches {
		parentOpen[b] = true
	}

	var extraOpen, extraClose []int
	for _, op := range e.Couplings {
		bi, ok := n.BranchByName[op.Branch]
		if !ok {
			log.Warn().Str("incident", incident.Name).Str("branch", op.Branch).Msg("parade coupling references unknown branch, skipped")
			continue
		}
		b := n.Branches[bi]
		if b.From == b.To {
			log.Warn().Str("incident", incident.Name).Str("branch", op.Branch).Msg("parade coupling rejected: self-loop branch")
			continue
		}
		if op.Close {
			if parentOpen[bi] || containsInt(extraClose, bi) {
				continue
			}
			extraClose = append(extraClose, bi)
		} else {
			if parentOpen[bi] || containsInt(extraOpen, bi) {
				continue
			}
			extraOpen = append(extraOpen, bi)
		}
	}
	p.ExtraOpen = extraOpen
	p.ExtraClose = extraClose

	combined := append(append([]int(nil), incident.Branches...), extraOpen...)
	p.Branches = combined
	p.Generators = incident.Generators
	p.Hvdcs = incident.Hvdcs
	p.Class = incident.Class

	for _, cname := range e.AllowedConstraints {
		mi, ok := n.MonitoredByName[cname]
		if !ok {
			log.Warn().Str("incident", incident.Name).Str("constraint", cname).Msg("parade allowed-constraint references unknown monitored element, skipped")
			continue
		}
		p.AllowedConstraints = append(p.AllowedConstraints, mi)
	}

	if len(extraOpen) > 0 || len(extraClose) > 0 {
		pocket, modified, err := n.TestBranchConnectivity(combined)
		if err != nil {
			return nil, err
		}
		if pocket != nil {
			pocket.ModifiedBranches = modified
		}
		p.Pocket = pocket
		p.RecoversPocket = recoversPocket(incident.Pocket, pocket)
	} else {
		p.Pocket = incident.Pocket
		p.RecoversPocket = incident.Pocket == nil
	}

	if !p.InheritsParent() {
		return nil, fmt.Errorf("parade: %q violates parent inheritance invariant", p.Name)
	}
	return p, nil
}

func recoversPocket(parent, current *network.LostPocket) bool {
	if current == nil {
		return true
	}
	if parent == nil || len(current.Nodes) >= len(parent.Nodes) {
		return false
	}
	inParent := make(map[int]bool, len(parent.Nodes))
	for _, nd := range parent.Nodes {
		inParent[nd] = true
	}
	for _, nd := range current.Nodes {
		if !inParent[nd] {
			return false
		}
	}
	return true
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// moveCuratives implements §4.5: curative actions attached to the parent
// incident are moved onto its first parade and shared (same backing slice,
// effectively read-only) with the rest, except AC-emulation fictive
// phase-shifter curatives, which get their own copy per parade because
// their fictive branch is parade-specific.
func moveCuratives(n *network.Network, incident *network.Contingency) {
	if len(incident.Parades) == 0 {
		return
	}
	first := incident.Parades[0]
	var shared, acOwned []*network.CurativeAction
	for _, ca := range incident.Curatives {
		if isACEmulationFictiveCurative(n, ca) {
			acOwned = append(acOwned, ca)
		} else {
			shared = append(shared, ca)
		}
	}
	first.Curatives = append(first.Curatives, shared...)
	for _, p := range incident.Parades[1:] {
		p.Curatives = shared[:len(shared):len(shared)]
	}
	for _, p := range incident.Parades {
		for _, ca := range acOwned {
			cp := *ca
			p.Curatives = append(p.Curatives, &cp)
		}
	}
	incident.Curatives = nil
}

func isACEmulationFictiveCurative(n *network.Network, ca *network.CurativeAction) bool {
	if ca.Kind != network.CurativePhaseShifter {
		return false
	}
	ps := n.PhaseShifters[ca.Index]
	return n.Branches[ps.RealBranch].Kind == network.BranchACEmulationFictive
}

// prependDoNothing inserts the synthetic "<name>_NRF" parade, which carries
// the parent's pocket unchanged and shares the first parade's curatives
// (§4.5 scenario 6).
func prependDoNothing(incident *network.Contingency) {
	dn := &network.Parade{
		Contingency: network.Contingency{
			ID:          incident.ID,
			Name:        incident.Name + network.DoNothingSuffix,
			Branches:    append([]int(nil), incident.Branches...),
			Generators:  incident.Generators,
			Hvdcs:       incident.Hvdcs,
			Probability: incident.Probability,
			Complex:     incident.Complex,
			Valid:       true,
			Class:       incident.Class,
			Pocket:      incident.Pocket,
		},
		Parent:         incident,
		IsParade:       true,
		IsDoNothing:    true,
		RecoversPocket: incident.Pocket == nil,
	}
	if len(incident.Parades) > 0 {
		dn.Curatives = incident.Parades[0].Curatives
	}
	incident.Parades = append([]*network.Parade{dn}, incident.Parades...)
}
