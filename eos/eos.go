package eos

import (
	"github.com/wippyai/feos-abi/dual"
	"github.com/wippyai/feos-abi/errors"
)

// ResidualModel is a residual Helmholtz energy model.
type ResidualModel interface {
	Components() int
	// MolarWeight returns molar weights in g/mol.
	MolarWeight() []float64
	// MaxDensity returns the largest admissible number density in
	// molecules/Å³ for the given composition.
	MaxDensity(moles []float64) float64
	// HelmholtzEnergy returns A^res/k_B in K at temperature t (K), volume
	// v (Å³) and mole numbers n (molecules).
	HelmholtzEnergy(t, v dual.HD, n []float64) dual.HD
}

// EquationOfState is an immutable pairing of an ideal-gas model with a
// residual model of the same component count. It is safe for concurrent use.
type EquationOfState struct {
	ideal    *IdealGas
	residual ResidualModel
}

// New composes an equation of state.
func New(ideal *IdealGas, residual ResidualModel) (*EquationOfState, error) {
	if ideal == nil {
		return nil, errors.NilPointer(errors.PhaseBuild, "ideal gas model")
	}
	if residual == nil {
		return nil, errors.NilPointer(errors.PhaseBuild, "residual model")
	}
	if ideal.Components() != residual.Components() {
		return nil, errors.New(errors.PhaseBuild, errors.KindLengthMismatch).
			Value(ideal.Components()).
			Detail("ideal gas model has %d components, residual model has %d",
				ideal.Components(), residual.Components()).
			Build()
	}
	return &EquationOfState{ideal: ideal, residual: residual}, nil
}

func (e *EquationOfState) Components() int { return e.residual.Components() }

func (e *EquationOfState) IdealGas() *IdealGas { return e.ideal }

func (e *EquationOfState) Residual() ResidualModel { return e.residual }

// MolarWeight returns molar weights in g/mol.
func (e *EquationOfState) MolarWeight() []float64 { return e.residual.MolarWeight() }

// alpha evaluates A^res/(N k_B T) per molecule at mole fractions x.
func (e *EquationOfState) alpha(tau, v dual.HD, x []float64) dual.HD {
	return e.residual.HelmholtzEnergy(tau.Inv(), v, x).Mul(tau)
}

// Derivatives holds α = A^res/(N k_B T) and its derivatives up to second
// order in τ = 1/T [1/K] and v = V/N [Å³].
type Derivatives struct {
	Alpha       float64
	AlphaTau    float64
	AlphaV      float64
	AlphaTauTau float64
	AlphaVV     float64
	AlphaTauV   float64
}

// derivatives runs the three hyper-dual evaluations needed for every
// second-order derivative.
func (e *EquationOfState) derivatives(t, v float64, x []float64) Derivatives {
	tau := 1 / t
	tt := e.alpha(dual.Var12(tau), dual.Real(v), x)
	vv := e.alpha(dual.Real(tau), dual.Var12(v), x)
	tv := e.alpha(dual.Var1(tau), dual.Var2(v), x)
	return Derivatives{
		Alpha:       tt.Re,
		AlphaTau:    tt.E1,
		AlphaV:      vv.E1,
		AlphaTauTau: tt.E12,
		AlphaVV:     vv.E12,
		AlphaTauV:   tv.E12,
	}
}
