package eos

import (
	"math"

	feos "github.com/wippyai/feos-abi"
	"github.com/wippyai/feos-abi/dual"
	"github.com/wippyai/feos-abi/errors"
)

const (
	maxIterations    = 50
	densityTolerance = 1e-11
	// Roots closer than this (relative) are the same root.
	rootTolerance = 1e-8
	// Initial liquid packing fraction, relative to MaxDensity.
	liquidGuess = 0.5
	// Upper bound of the ideal-gas start, relative to MaxDensity.
	vaporGuessLimit = 0.9
)

// vaporGuess is the ideal-gas density p/t, kept below the packing limit.
func vaporGuess(t, p, rhoMax float64) float64 {
	return math.Min(p/t, vaporGuessLimit*rhoMax)
}

// pressureAt returns the reduced pressure and ∂p/∂ρ at (t, ρ, x).
func (e *EquationOfState) pressureAt(t, rho float64, x []float64) (p, dpdrho float64) {
	v := 1 / rho
	a := e.alpha(dual.Real(1/t), dual.Var12(v), x)
	p = rho*t - t*a.E1
	dpdrho = t + t*a.E12*v*v
	return p, dpdrho
}

// gibbsResidual returns g^res/(k_B T) per molecule at (t, ρ, x) with
// compressibility z.
func (e *EquationOfState) gibbsResidual(t, rho float64, x []float64) float64 {
	v := 1 / rho
	a := e.alpha(dual.Real(1/t), dual.Var1(v), x)
	z := (rho*t - t*a.E1) / (rho * t)
	return a.Re + z - 1 - math.Log(z)
}

// densityIteration solves p(ρ) = p for one root by Newton's method in ln ρ.
func (e *EquationOfState) densityIteration(t, p float64, x []float64, rho0, rhoMax float64) (float64, error) {
	rho := rho0
	for i := 0; i < maxIterations; i++ {
		pi, dp := e.pressureAt(t, rho, x)
		if !(dp > 0) {
			return 0, errors.NoSolution("density iteration entered a mechanically unstable region at %g molecules/Å³", rho)
		}
		step := (pi - p) / (rho * dp)
		next := rho * math.Exp(-step)
		if next >= rhoMax {
			next = 0.5 * (rho + rhoMax)
		}
		if math.IsNaN(next) || !(next > 0) {
			return 0, errors.NoSolution("density iteration diverged")
		}
		if math.Abs(math.Log(next/rho)) < densityTolerance {
			return next, nil
		}
		rho = next
	}
	return 0, errors.NoSolution("density iteration did not converge in %d iterations", maxIterations)
}

// density resolves the number density at (t, p, moles) honoring the phase
// hint. Without a hint both roots are tried and the one with the lower
// Gibbs energy wins.
func (e *EquationOfState) density(t, p float64, moles []float64, hint feos.PhaseHint) (float64, error) {
	x, _ := normalize(moles)
	rhoMax := e.residual.MaxDensity(x)
	vapor := func() (float64, error) { return e.densityIteration(t, p, x, vaporGuess(t, p, rhoMax), rhoMax) }
	liquid := func() (float64, error) { return e.densityIteration(t, p, x, liquidGuess*rhoMax, rhoMax) }

	switch hint {
	case feos.Vapor:
		rho, err := vapor()
		if err != nil {
			return 0, errors.NoSolution("no vapor density at %g K and %g bar: %v", t, barOf(p), err)
		}
		return rho, nil
	case feos.Liquid:
		rho, err := liquid()
		if err != nil {
			return 0, errors.NoSolution("no liquid density at %g K and %g bar: %v", t, barOf(p), err)
		}
		return rho, nil
	}

	rhoV, errV := vapor()
	rhoL, errL := liquid()
	switch {
	case errV != nil && errL != nil:
		return 0, errors.NoSolution("no density at %g K and %g bar: %v", t, barOf(p), errV)
	case errV != nil:
		return rhoL, nil
	case errL != nil:
		return rhoV, nil
	}
	if e.gibbsResidual(t, rhoL, x) < e.gibbsResidual(t, rhoV, x) {
		return rhoL, nil
	}
	return rhoV, nil
}

// alternativeRoots returns the converged density roots at (t, p, x) other
// than rho.
func (e *EquationOfState) alternativeRoots(t, p, rho float64, x []float64) []float64 {
	rhoMax := e.residual.MaxDensity(x)
	var roots []float64
	for _, guess := range []float64{vaporGuess(t, p, rhoMax), liquidGuess * rhoMax} {
		r, err := e.densityIteration(t, p, x, guess, rhoMax)
		if err != nil || math.Abs(r-rho) <= rootTolerance*rho {
			continue
		}
		roots = append(roots, r)
	}
	return roots
}
