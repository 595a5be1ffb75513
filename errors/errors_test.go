package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseSetup,
				Kind:   KindHandleResolution,
				Detail: "resolve owner type",
				Cause:  errors.New("unknown owner"),
			},
			contains: []string{"[setup]", "handle_resolution", "resolve owner type", "caused by", "unknown owner"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseRegister,
				Kind:  KindRegistration,
			},
			contains: []string{"[register]", "registration"},
		},
		{
			name: "fatal init error",
			err: &Error{
				Phase:  PhaseInit,
				Kind:   KindProcessInit,
				Detail: "dispatch entry point",
			},
			contains: []string{"[init]", "process_init", "dispatch entry point"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Registration(cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:  PhaseDispatch,
		Kind:   KindDispatch,
		Detail: "guest trap",
	}

	// Matches on (Phase, Kind) regardless of detail
	if !errors.Is(err, &Error{Phase: PhaseDispatch, Kind: KindDispatch}) {
		t.Error("expected match on same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseSetup, Kind: KindDispatch}) {
		t.Error("unexpected match on different phase")
	}
	if errors.Is(err, &Error{Phase: PhaseDispatch, Kind: KindRegistration}) {
		t.Error("unexpected match on different kind")
	}
	if errors.Is(err, errors.New("plain")) {
		t.Error("unexpected match on non-structured error")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseSetup, KindHandleResolution).
		Detail("owner %d", 7).
		Cause(cause).
		Build()

	if err.Phase != PhaseSetup || err.Kind != KindHandleResolution {
		t.Fatalf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if err.Detail != "owner 7" {
		t.Fatalf("unexpected detail: %q", err.Detail)
	}
	if !errors.Is(err, &Error{Phase: PhaseSetup, Kind: KindHandleResolution}) {
		t.Error("built error does not match its phase/kind")
	}
	if !errors.Is(err, cause) {
		t.Error("built error does not wrap its cause")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
	}{
		{"handle resolution", HandleResolution(PhaseSetup, "observer proxy", nil), PhaseSetup, KindHandleResolution},
		{"registration", Registration(errors.New("rejected")), PhaseRegister, KindRegistration},
		{"dispatch", Dispatch(errors.New("trap")), PhaseDispatch, KindDispatch},
		{"process init", ProcessInit("slot field", nil), PhaseInit, KindProcessInit},
		{"invalid input", InvalidInput("nil source"), PhaseRuntime, KindInvalidInput},
		{"not initialized", NotInitialized("bridge"), PhaseRuntime, KindNotInitialized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("expected phase %s, got %s", tt.phase, tt.err.Phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, tt.err.Kind)
			}
			if tt.err.Error() == "" {
				t.Error("empty error message")
			}
		})
	}
}
