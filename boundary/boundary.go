package boundary

import (
	"math"

	"go.uber.org/zap"

	feos "github.com/wippyai/feos-abi"
	"github.com/wippyai/feos-abi/eos"
	"github.com/wippyai/feos-abi/errors"
	"github.com/wippyai/feos-abi/factory"
	"github.com/wippyai/feos-abi/parameter"
	"github.com/wippyai/feos-abi/pcsaft"
	"github.com/wippyai/feos-abi/resource"
	"github.com/wippyai/feos-abi/si"
)

// Handle is the opaque value handed across the boundary.
type Handle = resource.Handle

var registry = resource.NewRegistry()

// lifecycle logs registry events.
type lifecycle struct{}

func (lifecycle) OnResourceEvent(e resource.Event) {
	Logger().Debug("handle "+e.Type.String(),
		zap.Stringer("handle", e.Handle),
		zap.Stringer("kind", e.Kind))
}

func init() {
	registry.Subscribe(lifecycle{})
}

// Registry returns the process-wide handle registry.
func Registry() *resource.Registry { return registry }

// guard runs fn, converting a panic into an internal error.
func guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("recovered panic at the boundary",
				zap.String("op", op),
				zap.Any("panic", r))
			err = errors.New(errors.PhaseBoundary, errors.KindInternal).
				Value(r).Detail("%s: internal error: %v", op, r).Build()
		}
		if err != nil {
			Logger().Debug("boundary call failed", zap.String("op", op), zap.Error(err))
		}
	}()
	return fn()
}

func eosOf(h Handle) (*eos.EquationOfState, error) {
	return resource.Lookup[*eos.EquationOfState](registry, h, resource.KindEOS)
}

func stateOf(h Handle) (*eos.State, error) {
	return resource.Lookup[*eos.State](registry, h, resource.KindState)
}

// EosFromJSON builds an equation of state from a configuration document.
// Any failure yields the null handle.
func EosFromJSON(doc []byte) Handle {
	var h Handle
	_ = guard("eos_from_json", func() error {
		e, err := factory.FromJSON(doc)
		if err != nil {
			return err
		}
		h = registry.Insert(resource.KindEOS, e)
		return nil
	})
	return h
}

// FreeEOS releases an equation-of-state handle. States built from it stay
// valid.
func FreeEOS(h Handle) error {
	return guard("eos_free", func() error {
		return registry.Release(h, resource.KindEOS)
	})
}

// EosComponents returns the component count of an equation of state.
func EosComponents(h Handle) (int, error) {
	var n int
	err := guard("eos_components", func() error {
		e, err := eosOf(h)
		if err != nil {
			return err
		}
		n = e.Components()
		return nil
	})
	return n, err
}

// PcSaftParametersFromFiles reads PC-SAFT parameters for substances from a
// pure-record file and an optional binary-record file (empty path for
// none), matching by identifierOption.
func PcSaftParametersFromFiles(substances []string, pureFile, binaryFile, identifierOption string) (Handle, error) {
	var h Handle
	err := guard("pcsaft_parameters_from_json", func() error {
		if pureFile == "" {
			return errors.InvalidInput(errors.PhaseBoundary, "pure parameter file path is empty")
		}
		opt, err := parameter.ParseIdentifierOption(identifierOption)
		if err != nil {
			return err
		}
		p, err := pcsaft.FromFiles(substances, pureFile, binaryFile, opt)
		if err != nil {
			return err
		}
		h = registry.Insert(resource.KindParameters, p)
		return nil
	})
	return h, err
}

// FreePcSaftParameters releases a parameter handle.
func FreePcSaftParameters(h Handle) error {
	return guard("pcsaft_parameters_free", func() error {
		return registry.Release(h, resource.KindParameters)
	})
}

// EosPcSaft composes a PC-SAFT equation of state from a parameter handle,
// with a Joback ideal-gas part when every record has one. The parameter
// handle stays valid.
func EosPcSaft(params Handle) (Handle, error) {
	var h Handle
	err := guard("eos_pcsaft", func() error {
		p, err := resource.Lookup[*pcsaft.Parameters](registry, params, resource.KindParameters)
		if err != nil {
			return err
		}
		e, err := factory.PcSaftEOS(p)
		if err != nil {
			return err
		}
		h = registry.Insert(resource.KindEOS, e)
		return nil
	})
	return h, err
}

// StateNewNPT builds a state from temperature (K), pressure (bar) and mole
// numbers (mol). phase is "liquid", "vapor" or anything else for no hint.
func StateNewNPT(eosHandle Handle, temperature, pressure float64, moles []float64, phase string) (Handle, error) {
	var h Handle
	err := guard("state_new_npt", func() error {
		e, err := eosOf(eosHandle)
		if err != nil {
			return err
		}
		s, err := eos.NewBuilder(e).
			Temperature(si.Kelvin(temperature)).
			Pressure(si.Bar(pressure)).
			Moles(moles).
			Phase(feos.ParsePhaseHint(phase)).
			Build()
		if err != nil {
			return err
		}
		h = registry.Insert(resource.KindState, s)
		return nil
	})
	return h, err
}

// StateNewTDX builds a state from temperature (K), molar density (mol/m³)
// and mole fractions; the total amount is 1 mol.
func StateNewTDX(eosHandle Handle, temperature, density float64, molefracs []float64) (Handle, error) {
	var h Handle
	err := guard("state_new_tdx", func() error {
		s, err := tdx(eosHandle, temperature, density, molefracs)
		if err != nil {
			return err
		}
		h = registry.Insert(resource.KindState, s)
		return nil
	})
	return h, err
}

func tdx(eosHandle Handle, temperature, density float64, molefracs []float64) (*eos.State, error) {
	e, err := eosOf(eosHandle)
	if err != nil {
		return nil, err
	}
	return eos.NewBuilder(e).
		Temperature(si.Kelvin(temperature)).
		Density(si.MolPerCubicMeter(density)).
		Molefracs(molefracs).
		Build()
}

// FreeState releases a state handle.
func FreeState(h Handle) error {
	return guard("state_free", func() error {
		return registry.Release(h, resource.KindState)
	})
}

// stateValue reads a float property of a state.
func stateValue(op string, h Handle, fn func(*eos.State) (float64, error)) (float64, error) {
	v := math.NaN()
	err := guard(op, func() error {
		s, err := stateOf(h)
		if err != nil {
			return err
		}
		v, err = fn(s)
		return err
	})
	if err != nil {
		return math.NaN(), err
	}
	return v, nil
}

// StateTemperature returns the temperature in K.
func StateTemperature(h Handle) (float64, error) {
	return stateValue("state_temperature", h, func(s *eos.State) (float64, error) {
		return si.In(s.Temperature(), si.TemperatureDims)
	})
}

// StatePressure returns a pressure contribution in bar: 0 ideal gas,
// 1 residual, anything else total.
func StatePressure(h Handle, contributions int32) (float64, error) {
	return stateValue("state_pressure", h, func(s *eos.State) (float64, error) {
		return si.ToBar(s.Pressure(feos.ContributionsFromCode(contributions)))
	})
}

// StateDensity returns the molar density in mol/m³.
func StateDensity(h Handle) (float64, error) {
	return stateValue("state_density", h, func(s *eos.State) (float64, error) {
		return si.In(s.Density(), si.MolarDensityDims)
	})
}

// StateMassDensity returns the mass density in kg/m³.
func StateMassDensity(h Handle) (float64, error) {
	return stateValue("state_mass_density", h, func(s *eos.State) (float64, error) {
		return si.In(s.MassDensity(), si.MassDensityDims)
	})
}

// StateEntropy returns an entropy contribution in J/K, selected like
// StatePressure.
func StateEntropy(h Handle, contributions int32) (float64, error) {
	return stateValue("state_entropy", h, func(s *eos.State) (float64, error) {
		q, err := s.Entropy(feos.ContributionsFromCode(contributions))
		if err != nil {
			return 0, err
		}
		return si.In(q, si.EntropyDims)
	})
}

// StateIsStable reports whether the state is stable.
func StateIsStable(h Handle) (bool, error) {
	var stable bool
	err := guard("state_is_stable", func() error {
		s, err := stateOf(h)
		if err != nil {
			return err
		}
		stable = s.IsStable()
		return nil
	})
	return stable, err
}

// StateResidualDerivative evaluates ∂^{oT+oRho}(A^res/NkT)/∂T^oT∂ρ^oRho at
// a state, T in K and ρ in mol/m³.
func StateResidualDerivative(h Handle, orderT, orderRho int) (float64, error) {
	return stateValue("state_residual_derivative", h, func(s *eos.State) (float64, error) {
		return s.ResidualDerivative(orderT, orderRho)
	})
}

// EosResidualDerivative evaluates the same derivative at (T, ρ, x) without
// a state handle.
func EosResidualDerivative(eosHandle Handle, temperature, density float64, molefracs []float64, orderT, orderRho int) (float64, error) {
	return eosValue("eos_residual_derivative", eosHandle, temperature, density, molefracs,
		func(s *eos.State) (float64, error) { return s.ResidualDerivative(orderT, orderRho) })
}

// PressureBar returns the total pressure in bar at (T, ρ, x).
func PressureBar(eosHandle Handle, temperature, density float64, molefracs []float64) (float64, error) {
	return eosValue("pressure_bar", eosHandle, temperature, density, molefracs,
		func(s *eos.State) (float64, error) { return si.ToBar(s.Pressure(feos.Total)) })
}

// DaDv returns ∂(A^res/k_BT)/∂V in 1/Å³ at (T, ρ, x).
func DaDv(eosHandle Handle, temperature, density float64, molefracs []float64) (float64, error) {
	return eosValue("da_dv", eosHandle, temperature, density, molefracs,
		func(s *eos.State) (float64, error) { return s.HelmholtzVolumeDerivative(), nil })
}

func eosValue(op string, h Handle, temperature, density float64, molefracs []float64, fn func(*eos.State) (float64, error)) (float64, error) {
	v := math.NaN()
	err := guard(op, func() error {
		s, err := tdx(h, temperature, density, molefracs)
		if err != nil {
			return err
		}
		v, err = fn(s)
		return err
	})
	if err != nil {
		return math.NaN(), err
	}
	return v, nil
}
