package network

// NodeKind distinguishes real nodes (present in the DIE file) from fictive
// nodes synthesized by phase-shifter or HVDC AC-emulation insertion (§3).
type NodeKind int

const (
	NodeReal NodeKind = iota
	NodeFictive
)

// BranchKind distinguishes the three quadripole roles of §3.
type BranchKind int

const (
	BranchReal BranchKind = iota
	BranchPhaseShifterAux
	BranchACEmulationFictive
)

// Adjustability mirrors the generator adjustability enumeration of §3.
type Adjustability int

const (
	AdjustNone Adjustability = iota
	AdjustBothPhases
	AdjustWithoutNetworkOnly
	AdjustWithNetworkOnly
)

// PhaseShifterMode mirrors §3's five phase-shifter control modes.
type PhaseShifterMode int

const (
	PSOutOfService PhaseShifterMode = iota
	PSAngleOptimized
	PSAngleImposed
	PSPowerOptimized
	PSPowerImposed
)

// HvdcMode mirrors §3's five HVDC control modes.
type HvdcMode int

const (
	HvdcOutOfService HvdcMode = iota
	HvdcPowerOptimized
	HvdcPowerImposed
	HvdcACEmulation
	HvdcACEmulationOptimized
)

// IsACEmulation reports whether the mode injects the fictive
// susceptance branch described in §3.
func (m HvdcMode) IsACEmulation() bool {
	return m == HvdcACEmulation || m == HvdcACEmulationOptimized
}

// CurativeElementKind tags which of the four element kinds a
// CurativeAction refers to (design note: "polymorphic curative elements").
type CurativeElementKind int

const (
	CurativePhaseShifter CurativeElementKind = iota
	CurativeHvdc
	CurativeGenerator
	CurativeLoad
)

// CurativeAction is the tagged-union replacement for the source's
// subclassing over four curative element kinds (design notes). Index
// refers into the owning Network's corresponding arena slice.
type CurativeAction struct {
	Kind          CurativeElementKind
	Index         int
	ContingencyID int // the contingency this action is conditioned on

	// active records whether the solver has activated this curative
	// action for the variant currently being solved; cleared on reset.
	active bool
	// varIndex is the solver decision-variable index assigned when the
	// influence coefficients were last built; -1 when unassigned.
	varIndex int
}

// IsActive reports the activation state computed by the last solve.
func (c *CurativeAction) IsActive() bool { return c.active }

// VarIndex returns the decision-variable index, or -1 if unassigned.
func (c *CurativeAction) VarIndex() int { return c.varIndex }

func (c *CurativeAction) clearSolveState() {
	c.active = false
	c.varIndex = -1
}

// Threshold is a resolved (lower, upper) thermal-limit pair returned by
// threshold resolution (§4.6).
type Threshold struct {
	Lower, Upper float64
}
