package eos

import (
	"math"
	"sync"

	"github.com/ctessum/unit"

	feos "github.com/wippyai/feos-abi"
	"github.com/wippyai/feos-abi/si"
)

// State is a point (T, ρ, n) resolved against an equation of state. It is
// immutable; the derivative cache is filled once on first use.
type State struct {
	eos   *EquationOfState
	t     float64   // K
	rho   float64   // molecules/Å³
	moles []float64 // molecules
	x     []float64
	total float64

	once sync.Once
	d    Derivatives
}

func newState(e *EquationOfState, t, rho float64, moles []float64) *State {
	x, total := normalize(moles)
	return &State{eos: e, t: t, rho: rho, moles: moles, x: x, total: total}
}

func (s *State) EOS() *EquationOfState { return s.eos }

func (s *State) Temperature() *unit.Unit { return si.Kelvin(s.t) }

// Density returns the molar density.
func (s *State) Density() *unit.Unit { return si.DensityFromReduced(s.rho) }

// Molefracs returns a copy of the composition.
func (s *State) Molefracs() []float64 { return append([]float64(nil), s.x...) }

// TotalMoles returns the total amount of substance.
func (s *State) TotalMoles() *unit.Unit { return si.Mol(s.total / si.Avogadro) }

// Derivatives returns α and its derivatives in τ and v at this state.
func (s *State) Derivatives() Derivatives {
	s.once.Do(func() {
		s.d = s.eos.derivatives(s.t, 1/s.rho, s.x)
	})
	return s.d
}

func (s *State) pressure(c feos.Contributions) float64 {
	ideal := s.rho * s.t
	residual := -s.t * s.Derivatives().AlphaV
	switch c {
	case feos.IdealGas:
		return ideal
	case feos.Residual:
		return residual
	default:
		return ideal + residual
	}
}

// Pressure returns the selected pressure contribution.
func (s *State) Pressure(c feos.Contributions) *unit.Unit {
	return si.PressureFromReduced(s.pressure(c))
}

// MassDensity returns the mass density in kg/m³.
func (s *State) MassDensity() *unit.Unit {
	mw := s.eos.MolarWeight()
	var m float64
	for i, xi := range s.x {
		m += xi * mw[i]
	}
	rho, _ := si.In(s.Density(), si.MolarDensityDims)
	return si.KgPerCubicMeter(rho * m * 1e-3)
}

// Entropy returns the selected entropy contribution. Ideal-gas and total
// entropies need a Joback ideal-gas model.
func (s *State) Entropy(c feos.Contributions) (*unit.Unit, error) {
	d := s.Derivatives()
	residual := s.total * (d.AlphaTau/s.t - d.Alpha)
	if c == feos.Residual {
		return si.EntropyFromReduced(residual), nil
	}
	partial := make([]float64, len(s.x))
	for i, xi := range s.x {
		partial[i] = xi * s.rho
	}
	ideal, err := s.eos.ideal.entropy(s.t, s.moles, partial)
	if err != nil {
		return nil, err
	}
	if c == feos.IdealGas {
		return si.EntropyFromReduced(ideal), nil
	}
	return si.EntropyFromReduced(ideal + residual), nil
}

// dpdrho returns ∂p/∂ρ at constant T and n in reduced units.
func (s *State) dpdrho() float64 {
	return s.t + s.t*s.Derivatives().AlphaVV/(s.rho*s.rho)
}

// IsStable reports mechanical stability and the absence of a density root
// with lower Gibbs energy at the same T, p and composition. Diffusional
// stability of mixtures is not tested.
func (s *State) IsStable() bool {
	if !(s.dpdrho() > 0) {
		return false
	}
	p := s.pressure(feos.Total)
	if !(p > 0) {
		return true
	}
	g := s.eos.gibbsResidual(s.t, s.rho, s.x)
	for _, r := range s.eos.alternativeRoots(s.t, p, s.rho, s.x) {
		if s.eos.gibbsResidual(s.t, r, s.x) < g-rootTolerance {
			return false
		}
	}
	return true
}

func barOf(p float64) float64 {
	v, err := si.ToBar(si.PressureFromReduced(p))
	if err != nil {
		return math.NaN()
	}
	return v
}
