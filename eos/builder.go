package eos

import (
	"math"

	"github.com/ctessum/unit"

	feos "github.com/wippyai/feos-abi"
	"github.com/wippyai/feos-abi/errors"
	"github.com/wippyai/feos-abi/si"
)

// Builder collects a state specification. Setters record the first error;
// Build reports it.
type Builder struct {
	eos       *EquationOfState
	err       error
	t         float64
	rho       float64
	p         float64
	moles     []float64 // molecules
	molefracs []float64
	hasT      bool
	hasRho    bool
	hasP      bool
	phase     feos.PhaseHint
}

// NewBuilder starts a state specification on e.
func NewBuilder(e *EquationOfState) *Builder {
	return &Builder{eos: e}
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Temperature sets the temperature.
func (b *Builder) Temperature(q *unit.Unit) *Builder {
	t, err := si.ReducedTemperature(q)
	if err != nil {
		return b.fail(errors.Wrap(errors.PhaseState, errors.KindInvalidInput, err, "temperature"))
	}
	if !(t > 0) {
		return b.fail(errors.New(errors.PhaseState, errors.KindInvalidInput).
			Value(t).Detail("temperature must be positive, got %g K", t).Build())
	}
	b.t, b.hasT = t, true
	return b
}

// Density sets the molar density.
func (b *Builder) Density(q *unit.Unit) *Builder {
	rho, err := si.ReducedDensity(q)
	if err != nil {
		return b.fail(errors.Wrap(errors.PhaseState, errors.KindInvalidInput, err, "density"))
	}
	if !(rho > 0) {
		return b.fail(errors.New(errors.PhaseState, errors.KindInvalidInput).
			Value(rho).Detail("density must be positive").Build())
	}
	b.rho, b.hasRho = rho, true
	return b
}

// Pressure sets the pressure.
func (b *Builder) Pressure(q *unit.Unit) *Builder {
	p, err := si.ReducedPressure(q)
	if err != nil {
		return b.fail(errors.Wrap(errors.PhaseState, errors.KindInvalidInput, err, "pressure"))
	}
	if !(p > 0) {
		return b.fail(errors.New(errors.PhaseState, errors.KindInvalidInput).
			Value(p).Detail("pressure must be positive").Build())
	}
	b.p, b.hasP = p, true
	return b
}

// Moles sets the mole numbers in mol.
func (b *Builder) Moles(n []float64) *Builder {
	if err := b.checkComposition("moles", n); err != nil {
		return b.fail(err)
	}
	moles := make([]float64, len(n))
	for i, v := range n {
		r, err := si.ReducedAmount(si.Mol(v))
		if err != nil {
			return b.fail(errors.Wrap(errors.PhaseState, errors.KindInvalidInput, err, "moles"))
		}
		moles[i] = r
	}
	b.moles = moles
	return b
}

// Molefracs sets the composition; the total amount defaults to 1 mol.
func (b *Builder) Molefracs(x []float64) *Builder {
	if err := b.checkComposition("molefracs", x); err != nil {
		return b.fail(err)
	}
	b.molefracs = append([]float64(nil), x...)
	return b
}

// Phase sets the density root preference of a pressure specification.
func (b *Builder) Phase(hint feos.PhaseHint) *Builder {
	b.phase = hint
	return b
}

func (b *Builder) checkComposition(what string, v []float64) error {
	if len(v) != b.eos.Components() {
		return errors.LengthMismatch(errors.PhaseState, what, len(v), b.eos.Components())
	}
	var sum float64
	for _, vi := range v {
		if math.IsNaN(vi) || math.IsInf(vi, 0) || vi < 0 {
			return errors.New(errors.PhaseState, errors.KindInvalidInput).
				Value(v).Detail("%s must be finite and non-negative", what).Build()
		}
		sum += vi
	}
	if sum == 0 {
		return errors.InvalidInput(errors.PhaseState, what+" sum to zero")
	}
	return nil
}

// Build resolves the state.
func (b *Builder) Build() (*State, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.hasT {
		return nil, errors.FieldMissing(errors.PhaseState, nil, "temperature")
	}
	moles, err := b.amounts()
	if err != nil {
		return nil, err
	}

	switch {
	case b.hasRho && b.hasP:
		return nil, errors.InvalidInput(errors.PhaseState, "density and pressure are mutually exclusive")
	case b.hasRho:
		return newState(b.eos, b.t, b.rho, moles), nil
	case b.hasP:
		rho, err := b.eos.density(b.t, b.p, moles, b.phase)
		if err != nil {
			return nil, err
		}
		return newState(b.eos, b.t, rho, moles), nil
	default:
		return nil, errors.FieldMissing(errors.PhaseState, nil, "density or pressure")
	}
}

func (b *Builder) amounts() ([]float64, error) {
	switch {
	case b.moles != nil && b.molefracs != nil:
		return nil, errors.InvalidInput(errors.PhaseState, "moles and molefracs are mutually exclusive")
	case b.moles != nil:
		return b.moles, nil
	case b.molefracs != nil:
		total, err := si.ReducedAmount(si.Mol(1))
		if err != nil {
			return nil, err
		}
		x, _ := normalize(b.molefracs)
		moles := make([]float64, len(x))
		for i := range x {
			moles[i] = x[i] * total
		}
		return moles, nil
	case b.eos.Components() == 1:
		return b.amountsFor([]float64{1})
	default:
		return nil, errors.FieldMissing(errors.PhaseState, nil, "moles or molefracs")
	}
}

func (b *Builder) amountsFor(x []float64) ([]float64, error) {
	b.molefracs = x
	return b.amounts()
}

func normalize(n []float64) ([]float64, float64) {
	var total float64
	for _, v := range n {
		total += v
	}
	x := make([]float64, len(n))
	for i, v := range n {
		x[i] = v / total
	}
	return x, total
}
