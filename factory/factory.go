package factory

import (
	"sort"
	"strings"
	"sync"

	"github.com/wippyai/feos-abi/eos"
	"github.com/wippyai/feos-abi/errors"
)

// ModelKind enumerates the residual models the factory can build.
type ModelKind uint8

const (
	PcSaft ModelKind = iota
)

func (k ModelKind) String() string {
	switch k {
	case PcSaft:
		return "PC-SAFT"
	default:
		return "unknown"
	}
}

// BuildFunc builds an equation of state from a parsed document.
type BuildFunc func(doc *Document) (*eos.EquationOfState, error)

// Registration binds model name aliases to a builder.
type Registration struct {
	Build   BuildFunc
	Aliases []string
	Kind    ModelKind
}

var (
	mu       sync.RWMutex
	registry = make(map[string]*Registration)
)

// Register adds a model. Aliases are matched case-insensitively and must
// not collide with registered ones.
func Register(r Registration) error {
	if r.Build == nil || len(r.Aliases) == 0 {
		return errors.InvalidInput(errors.PhaseBuild, "registration needs a builder and at least one alias")
	}
	mu.Lock()
	defer mu.Unlock()

	for _, a := range r.Aliases {
		if _, dup := registry[strings.ToLower(a)]; dup {
			return errors.New(errors.PhaseBuild, errors.KindInvalidInput).
				Value(a).Detail("model alias %q already registered", a).Build()
		}
	}
	reg := r
	for _, a := range r.Aliases {
		registry[strings.ToLower(a)] = &reg
	}
	return nil
}

// Lookup finds the registration for a model name.
func Lookup(name string) (Registration, bool) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Registration{}, false
	}
	return *r, true
}

// Models lists the registered aliases.
func Models() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for a := range registry {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// FromJSON parses a configuration document and builds its equation of
// state.
func FromJSON(raw []byte) (*eos.EquationOfState, error) {
	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, err
	}
	r, ok := Lookup(doc.Model)
	if !ok {
		return nil, errors.New(errors.PhaseParse, errors.KindUnsupported).
			Path("model").
			Value(doc.Model).
			Detail("unknown model %q", doc.Model).
			Build()
	}
	return r.Build(doc)
}
