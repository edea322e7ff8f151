package eos

import (
	"math"

	"github.com/wippyai/feos-abi/errors"
	"github.com/wippyai/feos-abi/parameter"
	"github.com/wippyai/feos-abi/si"
)

// IdealGasKind selects the ideal-gas variant.
type IdealGasKind uint8

const (
	// NoModel only carries the component count. The ideal-gas pressure
	// ρk_BT is still available; caloric properties are not.
	NoModel IdealGasKind = iota
	// Joback uses the Joback heat capacity polynomial.
	Joback
)

func (k IdealGasKind) String() string {
	if k == Joback {
		return "joback"
	}
	return "no model"
}

// Reference state of the Joback entropy.
const (
	jobackT0 = 298.15 // K
	jobackP0 = 1.0    // bar
)

// IdealGas is the ideal-gas part of an equation of state.
type IdealGas struct {
	kind    IdealGasKind
	n       int
	records []parameter.JobackRecord
}

// NoIdealGas returns the placeholder variant for n components.
func NoIdealGas(n int) *IdealGas {
	return &IdealGas{kind: NoModel, n: n}
}

// NewJoback returns a Joback ideal-gas model, one record per component.
func NewJoback(records []parameter.JobackRecord) *IdealGas {
	return &IdealGas{kind: Joback, n: len(records), records: append([]parameter.JobackRecord(nil), records...)}
}

func (ig *IdealGas) Kind() IdealGasKind { return ig.kind }

func (ig *IdealGas) Components() int { return ig.n }

// entropy returns S^ig/k_B for mole numbers n (molecules) at temperature t
// and partial densities rho (molecules/Å³).
func (ig *IdealGas) entropy(t float64, n, rho []float64) (float64, error) {
	if ig.kind != Joback {
		return math.NaN(), errors.Unsupported(errors.PhaseEvaluate, "ideal gas entropy requires a Joback ideal gas model")
	}
	p0, err := si.ReducedPressure(si.Bar(jobackP0))
	if err != nil {
		return math.NaN(), err
	}
	var s float64
	for i, r := range ig.records {
		if n[i] == 0 {
			continue
		}
		s += n[i] * (cpIntegral(r, t)/si.Gas - math.Log(rho[i]*t/p0))
	}
	return s, nil
}

// cpIntegral returns ∫cp/T dT from the reference temperature, J/(mol·K).
func cpIntegral(r parameter.JobackRecord, t float64) float64 {
	t0 := jobackT0
	return r.A*math.Log(t/t0) +
		r.B*(t-t0) +
		r.C/2*(t*t-t0*t0) +
		r.D/3*(t*t*t-t0*t0*t0) +
		r.E/4*(t*t*t*t-t0*t0*t0*t0)
}
