// Package errors provides structured error types for the feos boundary.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes field path, offending value and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParameters, errors.KindIdentifierMismatch).
//		Path("binary_parameters", "0", "id1").
//		Detail("no pure record with name %q", "methanol").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.LengthMismatch(errors.PhaseEvaluate, "molefracs", 3, 2)
//	err := errors.UnimplementedDerivative(3, 0, 2, 2)
//
// All errors implement the standard error interface and support errors.Is/As.
// errors.Of(kind) builds a target that matches any phase.
package errors
