package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the bridge lifecycle the error occurred
type Phase string

const (
	PhaseInit     Phase = "init"     // subsystem/class registration
	PhaseSetup    Phase = "setup"    // per-bridge construction
	PhaseRegister Phase = "register" // event source registration
	PhaseDispatch Phase = "dispatch" // cross-boundary delivery
	PhaseRuntime  Phase = "runtime"  // everything else
)

// Kind categorizes the error
type Kind string

const (
	KindHandleResolution Kind = "handle_resolution"
	KindRegistration     Kind = "registration"
	KindDispatch         Kind = "dispatch"
	KindProcessInit      Kind = "process_init"
	KindInvalidInput     Kind = "invalid_input"
	KindNotInitialized   Kind = "not_initialized"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for the bridge taxonomy

// HandleResolution creates an error for an owner or observer handle
// that could not be resolved. Contained per bridge; never fatal.
func HandleResolution(phase Phase, what string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindHandleResolution,
		Detail: fmt.Sprintf("resolve %s", what),
		Cause:  cause,
	}
}

// Registration creates an error for a rejected event source registration
func Registration(cause error) *Error {
	return &Error{
		Phase: PhaseRegister,
		Kind:  KindRegistration,
		Cause: cause,
	}
}

// Dispatch creates an error for a failed observer-side delivery
func Dispatch(cause error) *Error {
	return &Error{
		Phase: PhaseDispatch,
		Kind:  KindDispatch,
		Cause: cause,
	}
}

// ProcessInit creates a fatal subsystem initialization error. Unlike
// the per-bridge errors above this one escalates: no bridges can be
// created once it is returned.
func ProcessInit(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseInit,
		Kind:   KindProcessInit,
		Detail: what,
		Cause:  cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(detail string) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotInitialized creates a not-initialized error for a missing component
func NotInitialized(component string) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}
