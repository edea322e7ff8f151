package eos

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	feos "github.com/wippyai/feos-abi"
	"github.com/wippyai/feos-abi/dual"
	feoserrors "github.com/wippyai/feos-abi/errors"
	"github.com/wippyai/feos-abi/parameter"
	"github.com/wippyai/feos-abi/pcsaft"
	"github.com/wippyai/feos-abi/si"
)

// meanField is α = −aρ/T: attraction without repulsion. Its pressure
// p = ρT − aρ² has a maximum T²/(4a), above which no density exists.
type meanField struct{ a float64 }

func (meanField) Components() int { return 1 }

func (meanField) MolarWeight() []float64 { return []float64{10} }

func (meanField) MaxDensity([]float64) float64 { return 0.1 }

func (m meanField) HelmholtzEnergy(_, v dual.HD, n []float64) dual.HD {
	var total float64
	for _, ni := range n {
		total += ni
	}
	return v.Inv().Scale(-m.a * total)
}

// perMolarDensity converts molecules/Å³ per mol/m³.
var perMolarDensity = si.Avogadro * 1e-30

func closeTo(t *testing.T, msg string, rel, got, want float64) {
	t.Helper()
	chk.Float64(t, msg, rel*math.Abs(want)+1e-300, got, want)
}

func record(name string, mw, m, sigma, eps float64) parameter.PureRecord[pcsaft.Record] {
	return parameter.PureRecord[pcsaft.Record]{
		Identifier:  parameter.Identifier{Name: name},
		MolarWeight: mw,
		ModelRecord: pcsaft.Record{M: m, Sigma: sigma, EpsilonK: eps},
	}
}

func methane() parameter.PureRecord[pcsaft.Record] {
	return record("methane", 16.043, 1.0, 3.7039, 150.03)
}

func cyclohexane() parameter.PureRecord[pcsaft.Record] {
	return record("cyclohexane", 84.147, 2.5303, 3.8499, 278.11)
}

func pcsaftEOS(t *testing.T, records ...parameter.PureRecord[pcsaft.Record]) *EquationOfState {
	t.Helper()
	p, err := pcsaft.NewParameters(records, nil)
	if err != nil {
		t.Fatalf("NewParameters: %v", err)
	}
	e, err := New(NoIdealGas(len(records)), pcsaft.New(p))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func mixture(t *testing.T) *EquationOfState {
	t.Helper()
	p, err := pcsaft.NewParameters(
		[]parameter.PureRecord[pcsaft.Record]{methane(), cyclohexane()},
		[][]pcsaft.BinaryRecord{{{}, {KIJ: 0.051}}, {{KIJ: 0.051}, {}}},
	)
	if err != nil {
		t.Fatalf("NewParameters: %v", err)
	}
	e, err := New(NoIdealGas(2), pcsaft.New(p))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func tvx(t *testing.T, e *EquationOfState, temp, rho float64, x []float64) *State {
	t.Helper()
	s, err := NewBuilder(e).
		Temperature(si.Kelvin(temp)).
		Density(si.MolPerCubicMeter(rho)).
		Molefracs(x).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func value(t *testing.T, s *State, orderT, orderRho int) float64 {
	t.Helper()
	v, err := s.ResidualDerivative(orderT, orderRho)
	if err != nil {
		t.Fatalf("ResidualDerivative(%d, %d): %v", orderT, orderRho, err)
	}
	return v
}

func bar(t *testing.T, s *State, c feos.Contributions) float64 {
	t.Helper()
	p, err := si.ToBar(s.Pressure(c))
	if err != nil {
		t.Fatalf("ToBar: %v", err)
	}
	return p
}

func molar(t *testing.T, s *State) float64 {
	t.Helper()
	rho, err := si.In(s.Density(), si.MolarDensityDims)
	if err != nil {
		t.Fatalf("density: %v", err)
	}
	return rho
}

func TestNew_ComponentMismatch(t *testing.T) {
	_, err := New(NoIdealGas(2), meanField{a: 1})
	if !errors.Is(err, feoserrors.Of(feoserrors.KindLengthMismatch)) {
		t.Errorf("err = %v", err)
	}
	if _, err := New(nil, meanField{a: 1}); err == nil {
		t.Error("nil ideal gas accepted")
	}
}

func TestResidualDerivative_Analytic(t *testing.T) {
	const a, temp, rho = 1e6, 300.0, 1000.0
	e, err := New(NoIdealGas(1), meanField{a: a})
	if err != nil {
		t.Fatal(err)
	}
	s := tvx(t, e, temp, rho, []float64{1})
	c := a * perMolarDensity

	want := map[[2]int]float64{
		{0, 0}: -c * rho / temp,
		{1, 0}: c * rho / (temp * temp),
		{0, 1}: -c / temp,
		{1, 1}: c / (temp * temp),
		{2, 0}: -2 * c * rho / (temp * temp * temp),
		{0, 2}: 0,
	}
	for _, o := range Orders() {
		got := value(t, s, o[0], o[1])
		if o == [2]int{0, 2} {
			if math.Abs(got) > 1e-18 {
				t.Errorf("(0, 2) = %g, want 0", got)
			}
			continue
		}
		closeTo(t, "order", 1e-10, got, want[o])
	}
}

func TestResidualDerivative_FiniteDifferences(t *testing.T) {
	e := mixture(t)
	x := []float64{0.1, 0.9}
	const temp, rho, hT, hRho = 300.0, 10000.0, 1e-2, 1.0

	alpha := func(tt, rr float64) float64 { return value(t, tvx(t, e, tt, rr, x), 0, 0) }
	s := tvx(t, e, temp, rho, x)

	dT := (alpha(temp+hT, rho) - alpha(temp-hT, rho)) / (2 * hT)
	dRho := (alpha(temp, rho+hRho) - alpha(temp, rho-hRho)) / (2 * hRho)
	dTT := (alpha(temp+hT, rho) - 2*alpha(temp, rho) + alpha(temp-hT, rho)) / (hT * hT)
	dRR := (alpha(temp, rho+hRho) - 2*alpha(temp, rho) + alpha(temp, rho-hRho)) / (hRho * hRho)
	dTR := (alpha(temp+hT, rho+hRho) - alpha(temp+hT, rho-hRho) -
		alpha(temp-hT, rho+hRho) + alpha(temp-hT, rho-hRho)) / (4 * hT * hRho)

	closeTo(t, "(1, 0)", 1e-6, value(t, s, 1, 0), dT)
	closeTo(t, "(0, 1)", 1e-6, value(t, s, 0, 1), dRho)
	closeTo(t, "(2, 0)", 1e-4, value(t, s, 2, 0), dTT)
	closeTo(t, "(0, 2)", 1e-4, value(t, s, 0, 2), dRR)
	closeTo(t, "(1, 1)", 1e-4, value(t, s, 1, 1), dTR)
}

func TestResidualDerivative_Unimplemented(t *testing.T) {
	s := tvx(t, pcsaftEOS(t, methane()), 300, 100, []float64{1})
	for _, o := range [][2]int{{3, 0}, {0, 3}, {1, 2}, {2, 1}, {2, 2}, {-1, 0}} {
		v, err := s.ResidualDerivative(o[0], o[1])
		if !errors.Is(err, feoserrors.Of(feoserrors.KindUnimplemented)) {
			t.Errorf("order %v: err = %v", o, err)
		}
		if !math.IsNaN(v) {
			t.Errorf("order %v: value = %g, want NaN", o, v)
		}
	}
}

func TestPressureIdentity(t *testing.T) {
	e := mixture(t)
	s := tvx(t, e, 300, 10000, []float64{0.1, 0.9})
	rho := molar(t, s)

	dAlpha := value(t, s, 0, 1)
	want := rho * si.Gas * 300 * (1 + rho*dAlpha) / si.BarInPa
	closeTo(t, "total pressure", 1e-10, bar(t, s, feos.Total), want)
	closeTo(t, "residual pressure", 1e-10, bar(t, s, feos.Residual), rho*rho*si.Gas*300*dAlpha/si.BarInPa)
	closeTo(t, "ideal pressure", 1e-10, bar(t, s, feos.IdealGas), rho*si.Gas*300/si.BarInPa)
}

func TestNPTRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		eos   func(*testing.T) *EquationOfState
		temp  float64
		p     float64
		moles []float64
		phase feos.PhaseHint
	}{
		{"methane vapor", func(t *testing.T) *EquationOfState { return pcsaftEOS(t, methane()) }, 300, 1, []float64{1}, feos.Vapor},
		{"methane no hint", func(t *testing.T) *EquationOfState { return pcsaftEOS(t, methane()) }, 300, 1, []float64{1}, feos.NoHint},
		{"methane supercritical", func(t *testing.T) *EquationOfState { return pcsaftEOS(t, methane()) }, 300, 200, []float64{2}, feos.NoHint},
		{"cyclohexane liquid", func(t *testing.T) *EquationOfState { return pcsaftEOS(t, cyclohexane()) }, 300, 1, []float64{1}, feos.Liquid},
		{"mixture liquid", mixture, 300, 10, []float64{0.1, 0.9}, feos.Liquid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewBuilder(tt.eos(t)).
				Temperature(si.Kelvin(tt.temp)).
				Pressure(si.Bar(tt.p)).
				Moles(tt.moles).
				Phase(tt.phase).
				Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			closeTo(t, "pressure", 1e-8, bar(t, s, feos.Total), tt.p)
		})
	}
}

func TestPhaseSelection(t *testing.T) {
	e := pcsaftEOS(t, cyclohexane())
	build := func(p float64, hint feos.PhaseHint) *State {
		s, err := NewBuilder(e).Temperature(si.Kelvin(300)).Pressure(si.Bar(p)).Phase(hint).Build()
		if err != nil {
			t.Fatalf("Build(%g bar, %v): %v", p, hint, err)
		}
		return s
	}

	liquid := build(0.05, feos.Liquid)
	vapor := build(0.05, feos.Vapor)
	if molar(t, liquid) < 5000 {
		t.Errorf("liquid density = %g mol/m³", molar(t, liquid))
	}
	if molar(t, vapor) > 10 {
		t.Errorf("vapor density = %g mol/m³", molar(t, vapor))
	}
	if !vapor.IsStable() {
		t.Error("vapor below the vapor pressure should be stable")
	}
	if liquid.IsStable() {
		t.Error("liquid below the vapor pressure should be metastable")
	}

	closeTo(t, "no hint picks vapor", 1e-9, molar(t, build(0.05, feos.NoHint)), molar(t, vapor))
	if molar(t, build(1, feos.NoHint)) < 5000 {
		t.Error("no hint above the vapor pressure should pick the liquid")
	}
	if !build(1, feos.Liquid).IsStable() {
		t.Error("liquid above the vapor pressure should be stable")
	}
}

func TestPhaseHint_DenseSupercritical(t *testing.T) {
	// At 2000 bar the ideal-gas density p/(k_B T) lies beyond close packing.
	e := pcsaftEOS(t, methane())
	var densities []float64
	for _, hint := range []feos.PhaseHint{feos.Vapor, feos.Liquid, feos.NoHint} {
		s, err := NewBuilder(e).
			Temperature(si.Kelvin(300)).
			Pressure(si.Bar(2000)).
			Moles([]float64{1}).
			Phase(hint).
			Build()
		if err != nil {
			t.Fatalf("Build(%v): %v", hint, err)
		}
		closeTo(t, "pressure", 1e-8, bar(t, s, feos.Total), 2000)
		densities = append(densities, molar(t, s))
	}
	closeTo(t, "density", 1e-2, densities[0], 25743)
	closeTo(t, "vapor = liquid", 1e-8, densities[0], densities[1])
	closeTo(t, "vapor = no hint", 1e-8, densities[0], densities[2])
}

func TestMechanicallyUnstable(t *testing.T) {
	e := pcsaftEOS(t, cyclohexane())
	// inside the spinodal region at 300 K
	s := tvx(t, e, 300, 2000, []float64{1})
	if s.IsStable() {
		t.Error("state inside the spinodal reported stable")
	}
}

func TestNoSolution(t *testing.T) {
	e, err := New(NoIdealGas(1), meanField{a: 1e6})
	if err != nil {
		t.Fatal(err)
	}
	build := func(p float64, hint feos.PhaseHint) (*State, error) {
		return NewBuilder(e).Temperature(si.Kelvin(300)).Pressure(si.Bar(p)).Phase(hint).Build()
	}

	s, err := build(1, feos.Vapor)
	if err != nil {
		t.Fatalf("vapor at 1 bar: %v", err)
	}
	closeTo(t, "pressure", 1e-8, bar(t, s, feos.Total), 1)

	if _, err := build(1, feos.Liquid); !errors.Is(err, feoserrors.Of(feoserrors.KindNoSolution)) {
		t.Errorf("liquid: err = %v", err)
	}
	if _, err := build(10, feos.NoHint); !errors.Is(err, feoserrors.Of(feoserrors.KindNoSolution)) {
		t.Errorf("above the pressure maximum: err = %v", err)
	}
}

func TestBuilder_Errors(t *testing.T) {
	e := mixture(t)
	tests := []struct {
		name  string
		build func() (*State, error)
		kind  feoserrors.Kind
	}{
		{"missing temperature", func() (*State, error) {
			return NewBuilder(e).Density(si.MolPerCubicMeter(100)).Molefracs([]float64{0.5, 0.5}).Build()
		}, feoserrors.KindFieldMissing},
		{"missing density", func() (*State, error) {
			return NewBuilder(e).Temperature(si.Kelvin(300)).Molefracs([]float64{0.5, 0.5}).Build()
		}, feoserrors.KindFieldMissing},
		{"missing composition", func() (*State, error) {
			return NewBuilder(e).Temperature(si.Kelvin(300)).Density(si.MolPerCubicMeter(100)).Build()
		}, feoserrors.KindFieldMissing},
		{"short molefracs", func() (*State, error) {
			return NewBuilder(e).Temperature(si.Kelvin(300)).Density(si.MolPerCubicMeter(100)).Molefracs([]float64{1}).Build()
		}, feoserrors.KindLengthMismatch},
		{"long moles", func() (*State, error) {
			return NewBuilder(e).Temperature(si.Kelvin(300)).Pressure(si.Bar(1)).Moles([]float64{1, 1, 1}).Build()
		}, feoserrors.KindLengthMismatch},
		{"negative molefrac", func() (*State, error) {
			return NewBuilder(e).Temperature(si.Kelvin(300)).Density(si.MolPerCubicMeter(100)).Molefracs([]float64{1.5, -0.5}).Build()
		}, feoserrors.KindInvalidInput},
		{"zero moles", func() (*State, error) {
			return NewBuilder(e).Temperature(si.Kelvin(300)).Pressure(si.Bar(1)).Moles([]float64{0, 0}).Build()
		}, feoserrors.KindInvalidInput},
		{"negative temperature", func() (*State, error) {
			return NewBuilder(e).Temperature(si.Kelvin(-1)).Pressure(si.Bar(1)).Moles([]float64{1, 1}).Build()
		}, feoserrors.KindInvalidInput},
		{"wrong dimension", func() (*State, error) {
			return NewBuilder(e).Temperature(si.Bar(1)).Pressure(si.Bar(1)).Moles([]float64{1, 1}).Build()
		}, feoserrors.KindInvalidInput},
		{"density and pressure", func() (*State, error) {
			return NewBuilder(e).Temperature(si.Kelvin(300)).Pressure(si.Bar(1)).Density(si.MolPerCubicMeter(1)).Moles([]float64{1, 1}).Build()
		}, feoserrors.KindInvalidInput},
		{"moles and molefracs", func() (*State, error) {
			return NewBuilder(e).Temperature(si.Kelvin(300)).Density(si.MolPerCubicMeter(1)).Moles([]float64{1, 1}).Molefracs([]float64{0.5, 0.5}).Build()
		}, feoserrors.KindInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.build()
			if s != nil {
				t.Error("state returned with error")
			}
			if !errors.Is(err, feoserrors.Of(tt.kind)) {
				t.Errorf("err = %v, want kind %s", err, tt.kind)
			}
		})
	}
}

func TestStateProperties(t *testing.T) {
	e := mixture(t)
	s := tvx(t, e, 300, 10000, []float64{0.1, 0.9})

	n, err := si.In(s.TotalMoles(), si.AmountDims)
	if err != nil {
		t.Fatal(err)
	}
	closeTo(t, "default amount", 1e-12, n, 1)

	md, err := si.In(s.MassDensity(), si.MassDensityDims)
	if err != nil {
		t.Fatal(err)
	}
	closeTo(t, "mass density", 1e-12, md, 10000*(0.1*16.043+0.9*84.147)*1e-3)

	x := s.Molefracs()
	x[0] = 42
	if s.Molefracs()[0] != 0.1 {
		t.Error("Molefracs exposes internal state")
	}

	temp, err := si.In(s.Temperature(), si.TemperatureDims)
	if err != nil || temp != 300 {
		t.Errorf("temperature = %v, %v", temp, err)
	}
}

func TestMolesScaleExtensiveProperties(t *testing.T) {
	e := pcsaftEOS(t, methane())
	one, err := NewBuilder(e).Temperature(si.Kelvin(300)).Density(si.MolPerCubicMeter(500)).Moles([]float64{1}).Build()
	if err != nil {
		t.Fatal(err)
	}
	three, err := NewBuilder(e).Temperature(si.Kelvin(300)).Density(si.MolPerCubicMeter(500)).Moles([]float64{3}).Build()
	if err != nil {
		t.Fatal(err)
	}
	closeTo(t, "pressure is intensive", 1e-12, bar(t, three, feos.Total), bar(t, one, feos.Total))

	s1, _ := one.Entropy(feos.Residual)
	s3, _ := three.Entropy(feos.Residual)
	v1, _ := si.In(s1, si.EntropyDims)
	v3, _ := si.In(s3, si.EntropyDims)
	closeTo(t, "entropy is extensive", 1e-10, v3, 3*v1)
}

func TestResidualEntropy(t *testing.T) {
	e := mixture(t)
	s := tvx(t, e, 300, 10000, []float64{0.1, 0.9})

	q, err := s.Entropy(feos.Residual)
	if err != nil {
		t.Fatalf("Entropy: %v", err)
	}
	got, err := si.In(q, si.EntropyDims)
	if err != nil {
		t.Fatal(err)
	}
	// S^res = −nR(α + T ∂α/∂T)
	want := -si.Gas * (value(t, s, 0, 0) + 300*value(t, s, 1, 0))
	closeTo(t, "residual entropy", 1e-10, got, want)
	if got >= 0 {
		t.Errorf("residual entropy of a dense fluid = %g J/K, want negative", got)
	}

	for _, c := range []feos.Contributions{feos.IdealGas, feos.Total} {
		if _, err := s.Entropy(c); !errors.Is(err, feoserrors.Of(feoserrors.KindUnsupported)) {
			t.Errorf("%v entropy without ideal gas model: err = %v", c, err)
		}
	}
}

func TestJobackEntropy(t *testing.T) {
	p, err := pcsaft.NewParameters([]parameter.PureRecord[pcsaft.Record]{methane()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	a := 3.5 * si.Gas
	e, err := New(NewJoback([]parameter.JobackRecord{{A: a}}), pcsaft.New(p))
	if err != nil {
		t.Fatal(err)
	}
	if e.IdealGas().Kind() != Joback {
		t.Fatalf("kind = %v", e.IdealGas().Kind())
	}
	ideal := func(temp, rho float64) float64 {
		q, err := tvx(t, e, temp, rho, []float64{1}).Entropy(feos.IdealGas)
		if err != nil {
			t.Fatalf("Entropy: %v", err)
		}
		v, _ := si.In(q, si.EntropyDims)
		return v
	}

	rho0 := si.BarInPa / (si.Gas * 298.15)
	if s := ideal(298.15, rho0); math.Abs(s) > 1e-9 {
		t.Errorf("entropy at the reference state = %g J/K", s)
	}
	// at constant density the ideal gas gains cv ln(T2/T1)
	closeTo(t, "isochoric heating", 1e-9, ideal(600, 40)-ideal(300, 40), 2.5*si.Gas*math.Ln2)

	st := tvx(t, e, 300, 40, []float64{1})
	total, err := st.Entropy(feos.Total)
	if err != nil {
		t.Fatal(err)
	}
	res, _ := st.Entropy(feos.Residual)
	vt, _ := si.In(total, si.EntropyDims)
	vr, _ := si.In(res, si.EntropyDims)
	closeTo(t, "total = ideal + residual", 1e-10, vt, ideal(300, 40)+vr)
}

func TestDerivativesCached(t *testing.T) {
	s := tvx(t, pcsaftEOS(t, methane()), 300, 100, []float64{1})
	d1 := s.Derivatives()
	d2 := s.Derivatives()
	if d1 != d2 {
		t.Error("derivatives changed between calls")
	}
	closeTo(t, "legacy volume derivative", 1e-14, s.HelmholtzVolumeDerivative(), d1.AlphaV)
}
