package solver

import "github.com/metrix-opf/metrix/network"

// ThresholdContext is the contingency/parade context a flow is evaluated
// under; the zero value is the base case.
type ThresholdContext struct {
	// Outage marks a post-contingency context. With Outage false and no
	// Parade, the basecase column is used.
	Outage bool

	// Parade, when non-nil, takes precedence over everything else (§4.6
	// "explicit parade" is first in the precedence chain): an
	// AllowedConstraints-filtered parade context supplies its own
	// threshold column directly rather than falling through.
	Parade *network.Parade

	// Complex selects the complex-outage column over the plain
	// single-outage column when no parade context applies.
	Complex bool

	// PreCurative requests the pre-curative column (subject to the
	// Configuration's ITAM precedence against single/complex-outage).
	PreCurative bool
}

// ResolveThreshold returns (lower, upper) for mon under ctx and the given
// signed flow. The base case (no Parade, Outage false) uses the basecase
// column; otherwise the precedence of §4.6 applies: explicit parade
// constraint → complex/normal outage → pre-curative (if ITAM enabled). In
// both cases the reverse-direction set is used when the element is
// asymmetric and flow is negative.
func ResolveThreshold(cfg *network.ThresholdSet, asym bool, reverse *network.ThresholdSet, cfgItam func(pc, so float64, hasPC, hasSO bool) (float64, bool), ctx ThresholdContext, flow float64) (lower, upper float64, ok bool) {
	set := cfg
	if asym && flow < 0 && reverse != nil {
		set = reverse
	}

	if ctx.Parade == nil && !ctx.Outage {
		if v, has := set.Get(network.Basecase); has {
			return signedBound(v, asym, flow)
		}
		return 0, 0, false
	}

	if ctx.Parade != nil {
		col := network.SingleOutage
		if ctx.Parade.Complex {
			col = network.ComplexOutage
		}
		if v, has := set.Resolve(col); has {
			return signedBound(v, asym, flow)
		}
	}

	outageCol := network.SingleOutage
	if ctx.Complex {
		outageCol = network.ComplexOutage
	}
	outageVal, hasOutage := set.Get(outageCol)
	if !hasOutage {
		outageVal, hasOutage = set.Resolve(outageCol)
	}

	if ctx.PreCurative {
		pcVal, hasPC := set.Get(network.PreCurative)
		resolved, ok := cfgItam(pcVal, outageVal, hasPC, hasOutage)
		if ok {
			return signedBound(resolved, asym, flow)
		}
	}

	if hasOutage {
		return signedBound(outageVal, asym, flow)
	}
	if v, has := set.Resolve(outageCol); has {
		return signedBound(v, asym, flow)
	}
	return 0, 0, false
}

// signedBound turns a single resolved magnitude into a (lower, upper) pair:
// symmetric elements get [-v, v]; an asymmetric element whose reverse set
// supplied the value is already signed correctly by the caller's direction
// selection, so it bounds only the side matching the flow's sign.
func signedBound(v float64, asym bool, flow float64) (lower, upper float64, ok bool) {
	if !asym {
		return -v, v, true
	}
	if flow < 0 {
		return -v, 0, true
	}
	return 0, v, true
}
