// Package volumebridge connects a native-side volume-group event
// source to a single registered observer living in a managed execution
// environment.
//
// The hard part is not the audio domain but the bridge discipline:
// exactly one callback registration per owner, atomic replace/clear of
// that registration with exactly-once release of the displaced
// callback, a non-owning hold on the observer so its lifecycle is
// unaffected by the bridge, and containment of observer-side failures
// so they never reach the event source's delivery goroutine.
//
// # Architecture Overview
//
//	volumebridge/        Root package with the EventSource and GroupListener interfaces
//	├── bridge/          Registration protocol: slot swap, refcounted callbacks, delivery
//	├── handle/          Opaque refcounted handle table and cross-boundary dispatch
//	├── guest/           Managed observer environment backed by a wazero wasm guest
//	├── notify/          In-process observer environment with a handler queue and listener broadcast
//	├── source/          Simulated event source for demos and integration tests
//	├── errors/          Structured error types for the bridge taxonomy
//	└── cmd/             volume-bridge demo binary
//
// # Quick Start
//
// Wire an in-process handler to an event source:
//
//	h, err := notify.New(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := h.Init(); err != nil {
//	    log.Fatal(err)
//	}
//	defer h.Close()
//
//	h.RegisterListener(myDispatcher)
//
// Events fired by the source are queued on the handler's goroutine and
// broadcast to registered listeners; a listener failure is logged and
// contained, never propagated back to the source.
package volumebridge
