// Package resource provides the handle registry behind the C and wasm
// boundaries.
//
// Callers outside Go never see Go pointers. Every object handed out (an
// equation of state, a state, a parameter set) is stored in a Registry and
// represented by a 64-bit Handle:
//
//	reg := resource.NewRegistry()
//
//	// Insert a value, get a handle
//	h := reg.Insert(resource.KindEOS, eos)
//
//	// Type-checked retrieval
//	e, err := resource.Lookup[*eos.EquationOfState](reg, h, resource.KindEOS)
//
//	// Release; a second release reports a double free
//	err = reg.Release(h, resource.KindEOS)
//
// # Handle Layout
//
// The low 32 bits of a handle are the slot index plus one, the high 32 bits
// the generation of that slot. Releasing a slot bumps its generation, so a
// handle used after release is detected as stale instead of silently
// resolving to whatever reuses the slot. Handle 0 is null; releasing it is a
// no-op and every other operation reports it as a nil pointer.
//
// # Failure Classes
//
//	nil_pointer      null handle
//	not_found        handle never issued by this registry
//	type_mismatch    handle of another kind (a state passed as an EOS)
//	stale_handle     slot released and possibly reused since
//	double_free      release of an already released handle
//
// Generations wrap after 2^32 reuses of a single slot; beyond that stale
// detection is best effort.
//
// # Shared Ownership
//
// Values are ordinary Go references. A state keeps its equation of state
// reachable, so releasing the equation-of-state handle never invalidates
// states built from it; the garbage collector reclaims both once neither
// is registered nor referenced.
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	reg.Subscribe(obs) // obs.OnResourceEvent(resource.Event{...})
package resource
