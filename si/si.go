// Package si converts between SI quantities at the boundary and the reduced
// units the equation-of-state engine works in.
//
// Reduced units: temperature in K, length in Å, amount in molecules and
// energy in k_B·K. Boundary values arrive as plain floats in K, bar, mol/m³;
// they are lifted into dimensioned quantities first so every conversion is
// checked against the dimension it claims to convert.
package si

import (
	"fmt"
	"math"

	"github.com/ctessum/unit"
)

// CODATA 2018 exact values.
const (
	Boltzmann = 1.380649e-23         // J/K
	Avogadro  = 6.02214076e23        // 1/mol
	Gas       = Boltzmann * Avogadro // J/(mol·K)
	BarInPa   = 1e5
	Angstrom  = 1e-10 // m
)

// amountDim stands in for amount of substance, which the unit library does
// not define as a base dimension.
var amountDim = unit.NewDimension("amount")

var (
	TemperatureDims  = unit.Dimensions{unit.TemperatureDim: 1}
	PressureDims     = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2}
	MolarDensityDims = unit.Dimensions{amountDim: 1, unit.LengthDim: -3}
	MassDensityDims  = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -3}
	AmountDims       = unit.Dimensions{amountDim: 1}
	EntropyDims      = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -2, unit.TemperatureDim: -1}
)

// Reference values of one reduced unit expressed in SI.
const (
	refTemperature = 1.0                                             // K
	refPressure    = Boltzmann / (Angstrom * Angstrom * Angstrom)    // Pa
	refDensity     = 1 / (Angstrom * Angstrom * Angstrom * Avogadro) // mol/m³
	refAmount      = 1 / Avogadro                                    // mol
)

// Kelvin returns a temperature in K.
func Kelvin(v float64) *unit.Unit {
	return unit.New(v, TemperatureDims)
}

// Pascal returns a pressure in Pa.
func Pascal(v float64) *unit.Unit {
	return unit.New(v, PressureDims)
}

// Bar returns a pressure given in bar.
func Bar(v float64) *unit.Unit {
	return unit.New(v*BarInPa, PressureDims)
}

func MolPerCubicMeter(v float64) *unit.Unit {
	return unit.New(v, MolarDensityDims)
}

func KgPerCubicMeter(v float64) *unit.Unit {
	return unit.New(v, MassDensityDims)
}

// Mol returns an amount of substance in mol.
func Mol(v float64) *unit.Unit {
	return unit.New(v, AmountDims)
}

func JoulePerKelvin(v float64) *unit.Unit {
	return unit.New(v, EntropyDims)
}

// Check fails unless q has exactly the dimensions want.
func Check(q *unit.Unit, want unit.Dimensions) error {
	if q == nil {
		return fmt.Errorf("si: nil quantity")
	}
	if !sameDimensions(q.Dimensions(), want) {
		return fmt.Errorf("si: quantity has dimensions %v, want %v", q.Dimensions(), want)
	}
	return nil
}

func sameDimensions(a, b unit.Dimensions) bool {
	for d, p := range a {
		if p != b[d] {
			return false
		}
	}
	for d, p := range b {
		if p != a[d] {
			return false
		}
	}
	return true
}

// In returns q expressed in the SI unit of dims.
func In(q *unit.Unit, dims unit.Dimensions) (float64, error) {
	if err := Check(q, dims); err != nil {
		return 0, err
	}
	return q.Value(), nil
}

func reduce(q *unit.Unit, dims unit.Dimensions, ref float64) (float64, error) {
	v, err := In(q, dims)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("si: non-finite quantity %v", v)
	}
	return v / ref, nil
}

// ReducedTemperature converts a temperature to K.
func ReducedTemperature(q *unit.Unit) (float64, error) {
	return reduce(q, TemperatureDims, refTemperature)
}

// ReducedPressure converts a pressure to k_B·K/Å³.
func ReducedPressure(q *unit.Unit) (float64, error) {
	return reduce(q, PressureDims, refPressure)
}

// ReducedDensity converts a molar density to molecules/Å³.
func ReducedDensity(q *unit.Unit) (float64, error) {
	return reduce(q, MolarDensityDims, refDensity)
}

// ReducedAmount converts an amount of substance to molecules.
func ReducedAmount(q *unit.Unit) (float64, error) {
	return reduce(q, AmountDims, refAmount)
}

// PressureFromReduced lifts a reduced pressure back into Pa.
func PressureFromReduced(p float64) *unit.Unit { return Pascal(p * refPressure) }

// DensityFromReduced lifts a reduced density back into mol/m³.
func DensityFromReduced(rho float64) *unit.Unit { return MolPerCubicMeter(rho * refDensity) }

// EntropyFromReduced lifts an entropy in k_B into J/K.
func EntropyFromReduced(s float64) *unit.Unit { return JoulePerKelvin(s * Boltzmann) }

// ToBar reads a pressure quantity in bar.
func ToBar(q *unit.Unit) (float64, error) {
	v, err := In(q, PressureDims)
	return v / BarInPa, err
}
