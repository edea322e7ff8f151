// Package wasmhost exposes the feos boundary to WebAssembly guests as a
// wazero host module.
//
// Handles travel as i64, pointers and lengths as i32, floats as f64.
// Strings are (ptr, len) pairs in guest memory; error messages are written
// to a caller-provided (ptr, cap) buffer and null-terminated. A guest
// pointer outside its memory yields an error result, never a trap.
//
// Usage:
//
//	rt := wazero.NewRuntime(ctx)
//	defer rt.Close(ctx)
//	if _, err := wasmhost.New().Instantiate(ctx, rt); err != nil {
//		return err
//	}
//	// instantiate guests importing from the "feos" module
package wasmhost
