package network

// Load is a demand hosted at a node (§3).
type Load struct {
	Index int
	Name  string

	Node int

	Value     float64
	valueBase float64

	MaxShedFraction    float64
	PreventiveShedCost float64

	CurativeShedFraction float64
	CurativeShedCost     float64

	curativeShedCostBase float64

	CurativeTargetNames []string
	CurativeEligible    map[int]bool
}

func (l *Load) updateBase() {
	l.valueBase = l.Value
	l.curativeShedCostBase = l.CurativeShedCost
}

func (l *Load) resetToBase() {
	l.Value = l.valueBase
	l.CurativeShedCost = l.curativeShedCostBase
}

// MaxShedMW returns the maximum preventive load-shed in MW.
func (l *Load) MaxShedMW() float64 {
	return l.Value * l.MaxShedFraction
}
