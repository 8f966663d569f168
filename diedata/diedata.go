// Package diedata defines the typed shape of the DIE network-data contract.
//
// The DIE configuration file itself is a fixed-record flat file external to
// this module (parsing it is someone else's job); what this package defines
// is the decoded shape that parser hands to network.New: parallel arrays,
// 0-based after translation from the file's 1-based indexing, grouped the
// way the original flat keys group them. Doc comments name the originating
// flat-record key so a reader can trace a field back to the file format
// described in the design notes (CQNOMQUA, TNNORQUA, ...).
package diedata

// ControlMode mirrors the phase-shifter / HVDC control-mode enumerations of
// the DIE file. Kept as a small int-backed type rather than a string so
// zero-value (ModeOutOfService-equivalent per element kind) is meaningful.
type ControlMode int

// BranchEnd identifies one endpoint of a quadripole by its connection flag.
type BranchEnd struct {
	NodeIndex int  // 0-based, translated from the file's 1-based TNNORQUA/TNNEXQUA
	Closed    bool
}

// BranchDef is one row of the branch arrays (CQNOMQUA/TNNORQUA/TNNEXQUA/CQADMITA/...).
type BranchDef struct {
	Name        string
	From, To    BranchEnd
	Admittance  float64 // per-unit y, CQADMITA
	Resistance  float64 // per-unit r
	InitialOpen bool    // both ends forced open at construction
	Monitored   *MonitorDef
}

// ThresholdSet mirrors the five-column threshold schema of §4.6: basecase,
// single-outage, complex-outage, pre-curative, pre-curative-complex.
// Each HasX flag reports whether the matching value was provided in the
// file; a value whose flag is false is undefined.
type ThresholdSet struct {
	Basecase             float64
	SingleOutage         float64
	ComplexOutage        float64
	PreCurative          float64
	PreCurativeComplex   float64
	HasBasecase          bool
	HasSingleOutage      bool
	HasComplexOutage     bool
	HasPreCurative       bool
	HasPreCurativeComplex bool
}

// MonitorDef describes a monitored branch or watched section (QASURVDI/QASURNMK).
type MonitorDef struct {
	Name        string
	Forward     ThresholdSet
	Reverse     *ThresholdSet // nil unless the element has asymmetric limits
	IsSection   bool
	SectionTerm []SectionTerm // non-empty only when IsSection
}

// SectionTerm is one weighted branch contribution to a watched section.
type SectionTerm struct {
	BranchName  string
	Coefficient float64
}

// PhaseShifterDef is one row of the phase-shifter arrays (DTVALDEP, ...).
type PhaseShifterDef struct {
	Name            string
	BranchName      string  // the real branch it owns
	SplitFactor     float64 // k, 0<k<1
	Mode            ControlMode
	TapAngles       []float64 // ordered tap schedule, degrees
	BaseTapIndex    int
	PreventiveLow   float64
	PreventiveHigh  float64
	HasPreventive   bool
	CurativeTargets []string // contingency names this phase-shifter may react to
}

// HvdcDef is one row of the HVDC arrays (DCMINPUI/DCMAXPUI/...).
type HvdcDef struct {
	Name            string
	From, To        int // 0-based node indices
	PMin, PMax      float64
	Setpoint        float64
	Mode            ControlMode
	ACEmulationK    float64 // MW per degree, only meaningful for AC-emulation modes
	LossCoefficient float64
	CurativeTargets []string
}

// GeneratorDef is one row of the generator arrays.
type GeneratorDef struct {
	Name              string
	NodeIndex         int
	Adjustability     int // see network.Adjustability
	Target            float64
	PMin, PMax        float64
	AvailablePMax     float64
	ReserveHalfBand   float64
	CostRaiseNoNet    float64
	CostLowerNoNet    float64
	CostRaiseWithNet  float64
	CostLowerWithNet  float64
	Unit              string
	CurativeTargets   []string
}

// LoadDef is one row of the load arrays.
type LoadDef struct {
	Name               string
	NodeIndex          int
	Value              float64
	MaxShedFraction    float64
	PreventiveShedCost float64
	CurativeShedFrac   float64
	CurativeShedCost   float64
	CurativeTargets    []string
}

// ContingencyElementKind mirrors the DMDESCRK triplet kind codes.
type ContingencyElementKind int

const (
	ContingencyBranch ContingencyElementKind = iota + 1
	ContingencyGenerator
	ContingencyHvdc
)

// ContingencyElement is one decoded (kind, name) pair from the DMDESCRK
// descriptor stream, already resolved from 1-based id to name.
type ContingencyElement struct {
	Kind ContingencyElementKind
	Name string
}

// ContingencyDef is one contingency from the DMPTDEFK/DMDESCRK stream.
type ContingencyDef struct {
	ID          int
	Name        string
	Elements    []ContingencyElement
	Probability float64
	Complex     bool
}

// CouplingGroupDef is one element-coupling group (generators or loads linked
// through a reference variable).
type CouplingGroupDef struct {
	Name        string
	IsGenerator bool
	Members     []string
	Reference   string // one of "Pmax", "Pmin", "Pobj", "Pmax-Pobj"
}

// NetworkData is the full decoded DIE payload handed to network.New.
type NetworkData struct {
	NodeCount     int
	NodeRegion    []int // len == NodeCount
	SlackPerZone  bool  // operator requested automatic slack selection

	Branches       []BranchDef
	PhaseShifters  []PhaseShifterDef
	Hvdcs          []HvdcDef
	Generators     []GeneratorDef
	Loads          []LoadDef
	Contingencies  []ContingencyDef
	CouplingGroups []CouplingGroupDef

	// WatchedSections holds standalone monitored elements that are not
	// attached to a single branch definition (§4.2 step 8): weighted
	// sums of branch flows declared independently of any one branch row.
	WatchedSections []MonitorDef
}
