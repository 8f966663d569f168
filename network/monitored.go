package network

// ThresholdColumn selects one of the five threshold columns of §3/§4.6.
type ThresholdColumn int

const (
	Basecase ThresholdColumn = iota
	SingleOutage
	ComplexOutage
	PreCurative
	PreCurativeComplex
	thresholdColumnCount
)

// ThresholdSet holds the five threshold columns of §3, each independently
// possibly UNDEFINED. The zero value is "nothing defined".
type ThresholdSet struct {
	values  [thresholdColumnCount]float64
	defined [thresholdColumnCount]bool
}

// Set records a value for the given column.
func (t *ThresholdSet) Set(col ThresholdColumn, v float64) {
	t.values[col] = v
	t.defined[col] = true
}

// Get returns the raw column value with no fallback.
func (t *ThresholdSet) Get(col ThresholdColumn) (float64, bool) {
	return t.values[col], t.defined[col]
}

// Resolve returns the value for col, falling back to Basecase when col is
// UNDEFINED (I5: "For an element with only basecase defined, queries in
// any contingency context fall back to basecase").
func (t *ThresholdSet) Resolve(col ThresholdColumn) (float64, bool) {
	if v, ok := t.Get(col); ok {
		return v, true
	}
	if col != Basecase {
		return t.Get(Basecase)
	}
	return 0, false
}

// SectionTerm is one weighted branch contribution to a watched section.
type SectionTerm struct {
	Branch      int // index into Network.Branches
	Coefficient float64
}

// MonitoredElement is either a single branch or a watched section: a
// weighted sum of branch flows with coefficients (§3).
type MonitoredElement struct {
	Index int
	Name  string

	// Branch is the monitored branch index, or -1 when IsSection.
	Branch int

	IsSection bool
	Section   []SectionTerm

	Forward ThresholdSet
	// Reverse is nil unless the element has an asymmetric (reverse-
	// direction) threshold set.
	Reverse *ThresholdSet
}

// Asymmetric reports whether this element carries a separate
// reverse-direction threshold set (§3, §4.6, I5).
func (m *MonitoredElement) Asymmetric() bool {
	return m.Reverse != nil
}

// DirectionalSet returns the threshold set that applies for the sign of
// flow: Reverse for negative flow when asymmetric, Forward otherwise (I5).
func (m *MonitoredElement) DirectionalSet(flow float64) *ThresholdSet {
	if flow < 0 && m.Asymmetric() {
		return m.Reverse
	}
	return &m.Forward
}
