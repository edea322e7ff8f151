// Package boundary implements the foreign-function surface in plain Go.
//
// cmd/libfeos exports these operations through cgo and wasmhost exports
// them to WebAssembly guests; both only translate pointers and strings.
// Everything that crosses the boundary is a Handle from the process-wide
// registry, a fixed-width integer, a float64 or a byte string.
//
// Failure channels:
//
//   - EosFromJSON signals failure only through the null handle; the cause
//     is logged at debug level.
//   - Every other operation returns an error, which the exporters turn into
//     a Status code plus a message written with WriteMessage, NaN for
//     float results or -1 for IsStable.
//
// Panics never escape: each operation recovers and reports StatusInternal.
//
// Handles must be released exactly once with the matching Free function.
// Misuse is detected rather than undefined: a released handle reports
// stale_handle, a second release double_free and a handle of the wrong
// kind type_mismatch. Leaking a handle by never freeing it cannot be
// detected.
package boundary
