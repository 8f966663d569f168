package network

// PhaseShifter owns a real branch and an auxiliary fictive branch + fictive
// node inserted in series (§3). Admittance is split by SplitFactor k:
// the auxiliary branch carries y/k, the real branch carries y/(1-k).
type PhaseShifter struct {
	Index int
	Name  string

	RealBranch int // index into Network.Branches
	AuxBranch  int // index into Network.Branches
	AuxNode    int // index into Network.Nodes

	SplitFactor float64 // k, 0<k<1

	Mode PhaseShifterMode

	TapAngles    []float64
	BaseTapIndex int

	// Setpoint is expressed internally in apparent power (§3): "angle to
	// power = angle*pi/180*u^2*y" gives the conversion used whenever the
	// tap schedule's angle value needs to become this field.
	Setpoint     float64
	setpointBase float64

	PreventiveLow, PreventiveHigh float64
	HasPreventiveLimits           bool

	// CurativeTargetNames is the pending, unresolved list of contingency
	// names this phase-shifter may react to, copied from the DIE payload
	// at construction; network.New's curative-wiring pass (step 9)
	// resolves it into CurativeEligible and into each contingency's
	// Curatives list.
	CurativeTargetNames []string
	CurativeEligible    map[int]bool // contingency id -> eligible, set by step 9
}

// BaseTapAngle returns the angle (degrees) of the configured base tap.
func (p *PhaseShifter) BaseTapAngle() float64 {
	if p.BaseTapIndex < 0 || p.BaseTapIndex >= len(p.TapAngles) {
		return 0
	}
	return p.TapAngles[p.BaseTapIndex]
}

func (p *PhaseShifter) updateBase() {
	p.setpointBase = p.Setpoint
}

func (p *PhaseShifter) resetToBase() {
	p.Setpoint = p.setpointBase
}

// admittanceSplit returns (auxAdmittance, realAdmittance) given the
// original branch admittance y and split factor k: y/k and y/(1-k). The
// invariant 1/y_aux + 1/y_real == 1/y is exact to numerical precision (I3):
// 1/(y/k) + 1/(y/(1-k)) = k/y + (1-k)/y = 1/y.
func admittanceSplit(y, k float64) (auxY, realY float64) {
	return y / k, y / (1 - k)
}
