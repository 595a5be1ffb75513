// Package errors provides structured error types for the volume-bridge library.
//
// Errors are categorized by Phase (where in the bridge lifecycle the
// error occurred) and Kind (error category). Per-bridge errors
// (handle_resolution, registration, dispatch) are contained at the
// call site; only process_init escalates and aborts subsystem
// initialization.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseSetup, errors.KindHandleResolution).
//		Detail("owner %T has no descriptor", owner).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Registration(cause)
//	err := errors.ProcessInit("dispatch entry point", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
