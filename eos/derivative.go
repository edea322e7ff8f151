package eos

import (
	"math"

	"github.com/wippyai/feos-abi/errors"
	"github.com/wippyai/feos-abi/si"
)

// Highest implemented derivative orders.
const (
	MaxOrderTemperature = 2
	MaxOrderDensity     = 2
)

// order is a (temperature, density) derivative order pair.
type order [2]int

// scaling maps the τ/v derivatives onto ∂^{i+j}α/∂T^i∂ρ^j. tau is 1/T,
// v the volume per molecule and rho the molar density the result is
// differentiated by.
type scaling func(d Derivatives, tau, v, rho float64) float64

var dispatch = map[order]scaling{
	{0, 0}: func(d Derivatives, _, _, _ float64) float64 {
		return d.Alpha
	},
	{1, 0}: func(d Derivatives, tau, _, _ float64) float64 {
		return -tau * tau * d.AlphaTau
	},
	{0, 1}: func(d Derivatives, _, v, rho float64) float64 {
		return -v / rho * d.AlphaV
	},
	{1, 1}: func(d Derivatives, tau, v, rho float64) float64 {
		return tau * tau * v / rho * d.AlphaTauV
	},
	{2, 0}: func(d Derivatives, tau, _, _ float64) float64 {
		tau2 := tau * tau
		return tau2*tau2*d.AlphaTauTau + 2*tau2*tau*d.AlphaTau
	},
	{0, 2}: func(d Derivatives, _, v, rho float64) float64 {
		w := v / rho
		return w*w*d.AlphaVV + 2*v*d.AlphaV/(rho*rho)
	},
}

// Orders lists the implemented (temperature, density) order pairs.
func Orders() [][2]int {
	return [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 0}, {0, 2}}
}

// ResidualDerivative returns ∂^{oT+oRho}α/∂T^oT∂ρ^oRho with
// α = A^res/(N k_B T), T in K and ρ in mol/m³.
func (s *State) ResidualDerivative(orderT, orderRho int) (float64, error) {
	f, ok := dispatch[order{orderT, orderRho}]
	if !ok {
		return math.NaN(), errors.UnimplementedDerivative(orderT, orderRho, MaxOrderTemperature, MaxOrderDensity)
	}
	rho, err := si.In(s.Density(), si.MolarDensityDims)
	if err != nil {
		return math.NaN(), err
	}
	return f(s.Derivatives(), 1/s.t, 1/s.rho, rho), nil
}

// HelmholtzVolumeDerivative returns ∂(A^res/k_B T)/∂V at constant T and
// n in 1/Å³.
func (s *State) HelmholtzVolumeDerivative() float64 {
	return s.Derivatives().AlphaV
}
