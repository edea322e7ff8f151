// Package config loads YAML batch scenarios for the feos command.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	feos "github.com/wippyai/feos-abi"
	"github.com/wippyai/feos-abi/eos"
	"github.com/wippyai/feos-abi/errors"
	"github.com/wippyai/feos-abi/si"
)

const (
	DefaultTemperature = 298.15 // K
	DefaultPressure    = 1.0    // bar
	DefaultTotalMoles  = 1.0    // mol
)

// Scenario is a batch of state points evaluated with one model document.
type Scenario struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Model       string       `yaml:"model"`
	Defaults    StatePoint   `yaml:"defaults"`
	Derivatives [][2]int     `yaml:"derivatives"`
	States      []StatePoint `yaml:"states"`

	dir string
}

// StatePoint specifies one state either by (T, p, moles, phase) or by
// (T, ρ, molefracs). Temperature is in K, pressure in bar and density in
// mol/m³.
type StatePoint struct {
	Name        string    `yaml:"name,omitempty"`
	Temperature float64   `yaml:"temperature,omitempty"`
	Pressure    float64   `yaml:"pressure,omitempty"`
	Density     float64   `yaml:"density,omitempty"`
	Moles       []float64 `yaml:"moles,omitempty"`
	Molefracs   []float64 `yaml:"molefracs,omitempty"`
	Phase       string    `yaml:"phase,omitempty"`
}

// DefaultScenario returns the values a scenario file overrides.
func DefaultScenario() *Scenario {
	return &Scenario{
		Defaults: StatePoint{
			Temperature: DefaultTemperature,
		},
		Derivatives: eos.Orders(),
	}
}

// Load reads a scenario file. The model path is resolved against the
// scenario's directory.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindNotFound, err, "read scenario")
	}
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	s := DefaultScenario()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.ParseFailed("scenario", err)
	}
	for i := range s.States {
		s.States[i] = s.States[i].inherit(s.Defaults)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes a scenario as YAML.
func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ModelPath returns the model document path.
func (s *Scenario) ModelPath() string {
	if s.Model == "" || filepath.IsAbs(s.Model) || s.dir == "" {
		return s.Model
	}
	return filepath.Join(s.dir, s.Model)
}

// Validate checks the scenario for missing or contradictory fields.
func (s *Scenario) Validate() error {
	if s.Model == "" {
		return errors.FieldMissing(errors.PhaseParse, nil, "model")
	}
	if len(s.States) == 0 {
		return errors.FieldMissing(errors.PhaseParse, nil, "states")
	}
	for i, o := range s.Derivatives {
		if o[0] < 0 || o[1] < 0 {
			return errors.InvalidData(errors.PhaseParse, []string{"derivatives", strconv.Itoa(i)}, "derivative orders must be non-negative")
		}
	}
	for i, p := range s.States {
		if err := p.validate([]string{"states", strconv.Itoa(i)}); err != nil {
			return err
		}
	}
	return nil
}

// inherit fills unset fields from d.
func (p StatePoint) inherit(d StatePoint) StatePoint {
	if p.Temperature == 0 {
		p.Temperature = d.Temperature
	}
	if p.Pressure == 0 && p.Density == 0 {
		p.Pressure = d.Pressure
		p.Density = d.Density
	}
	if p.Moles == nil && p.Molefracs == nil {
		p.Moles = d.Moles
		p.Molefracs = d.Molefracs
	}
	if p.Phase == "" {
		p.Phase = d.Phase
	}
	return p
}

func (p StatePoint) validate(path []string) error {
	switch {
	case p.Temperature <= 0:
		return errors.InvalidData(errors.PhaseParse, append(path, "temperature"), "temperature must be positive")
	case p.Pressure > 0 && p.Density > 0:
		return errors.InvalidData(errors.PhaseParse, path, "give pressure or density, not both")
	case p.Pressure < 0 || p.Density < 0:
		return errors.InvalidData(errors.PhaseParse, path, "pressure and density must be positive")
	case p.Moles != nil && p.Molefracs != nil:
		return errors.InvalidData(errors.PhaseParse, path, "give moles or molefracs, not both")
	case p.Density > 0 && p.Moles != nil:
		return errors.InvalidData(errors.PhaseParse, append(path, "moles"), "density states take molefracs")
	}
	return nil
}

// Label names the point for reports.
func (p StatePoint) Label(i int) string {
	if p.Name != "" {
		return p.Name
	}
	return "state " + strconv.Itoa(i+1)
}

// Build constructs the state. A point without pressure or density uses
// DefaultPressure; a pressure point without amounts uses DefaultTotalMoles
// of the molefracs (or of the single component).
func (p StatePoint) Build(e *eos.EquationOfState) (*eos.State, error) {
	b := eos.NewBuilder(e).Temperature(si.Kelvin(p.Temperature))
	if p.Density > 0 {
		b = b.Density(si.MolPerCubicMeter(p.Density))
		if p.Molefracs != nil {
			b = b.Molefracs(p.Molefracs)
		}
		return b.Build()
	}

	pressure := p.Pressure
	if pressure == 0 {
		pressure = DefaultPressure
	}
	moles := p.Moles
	if moles == nil {
		x := p.Molefracs
		if x == nil && e.Components() == 1 {
			x = []float64{1}
		}
		moles = make([]float64, len(x))
		for i, xi := range x {
			moles[i] = xi * DefaultTotalMoles
		}
	}
	return b.Pressure(si.Bar(pressure)).
		Moles(moles).
		Phase(feos.ParsePhaseHint(p.Phase)).
		Build()
}
