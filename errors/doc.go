// Package errors provides structured error types for the bytestreamsplit module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// Out-of-spec errors also carry the Rule that failed together with the wanted and
// actual values, so callers can report an actionable message.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindOutOfBounds).
//		GoType("float32").
//		Value(12).
//		Detail("range end %d beyond %d elements", 12, 10).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.WidthMismatch("float32", 4, 8)
//	err := errors.LengthNotMultiple("float32", 7, 4)
//
// All errors implement the standard error interface and support errors.Is/As:
//
//	if errors.Is(err, errors.ErrOutOfSpec) { ... }
package errors
