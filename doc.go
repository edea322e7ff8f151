// Package feos exposes equation-of-state calculations through a C and
// WebAssembly ABI built on opaque handles and status codes.
//
// A model configuration document selects a residual Helmholtz energy model
// (PC-SAFT) and its parameters; the resulting equation of state builds
// thermodynamic states from (T, ρ, x) or (T, p, n) with a phase hint, and
// states evaluate pressure, density, entropy, stability and derivatives of
// the reduced residual Helmholtz energy A^res/(N k_B T).
//
// # Architecture Overview
//
//	feos/              Root package with Contributions and PhaseHint
//	├── errors/        Structured error types (Phase, Kind, Builder)
//	├── si/            Dimension-checked SI quantities and reduced units
//	├── dual/          Hyper-dual numbers for exact second derivatives
//	├── parameter/     Identifiers, pure and binary records, file loading
//	├── pcsaft/        PC-SAFT parameters and residual Helmholtz energy
//	├── eos/           Equation of state, state builder, properties, derivatives
//	├── factory/       Model registry and JSON configuration documents
//	├── resource/      Generation-tagged handle registry
//	├── boundary/      ABI operations: null sentinels, status codes, messages
//	├── wasmhost/      The boundary as a wazero host module "feos"
//	├── config/        YAML batch scenarios
//	└── cmd/
//	    ├── libfeos/   C shared library (cgo exports)
//	    └── feos/      Command-line tool
//
// # Quick Start
//
// Build an equation of state and a state from Go:
//
//	e, err := factory.FromJSON(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, err := eos.NewBuilder(e).
//	    Temperature(si.Kelvin(300)).
//	    Pressure(si.Bar(1)).
//	    Moles([]float64{0.9, 0.1}).
//	    Phase(feos.Vapor).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	dadrho, err := s.ResidualDerivative(0, 1)
//
// The same calls through handles:
//
//	h := boundary.EosFromJSON(doc)
//	st, err := boundary.StateNewNPT(h, 300, 1, []float64{0.9, 0.1}, "vapor")
//	p, err := boundary.StatePressure(st, 2) // bar
//
// # Handles
//
// Handles are uint64 values; 0 is null. Releasing a handle twice, using a
// released handle, or passing a handle of the wrong kind is reported as an
// error, never a crash. A state keeps its equation of state alive: freeing
// the equation-of-state handle leaves existing states valid.
//
// # Thread Safety
//
// Equations of state and states are immutable after construction and safe
// for concurrent use. The handle registry is safe for concurrent use.
package feos
