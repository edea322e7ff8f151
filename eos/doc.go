// Package eos composes an ideal-gas model and a residual Helmholtz energy
// model into an equation of state and resolves thermodynamic states on it.
//
// States are built with a Builder from either (T, ρ, n) or (T, p, n) with an
// optional phase hint:
//
//	state, err := eos.NewBuilder(e).
//		Temperature(si.Kelvin(300)).
//		Pressure(si.Bar(1)).
//		Moles([]float64{1}).
//		Phase(feos.Vapor).
//		Build()
//
// Internally all quantities are reduced: temperature in K, volume in Å³,
// amounts in molecules and energies in k_B·K. The residual model is
// differentiated with hyper-dual numbers in the variables τ = 1/T and
// v = V/N; ResidualDerivative maps those onto physical derivatives with
// respect to T and ρ.
package eos
