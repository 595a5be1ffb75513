// Package bridge implements the callback registration protocol between
// an event source and a managed observer environment.
//
// A Callback is the unit of registration: it owns a strongly-held type
// descriptor handle and a non-owning observer proxy handle, and it is
// reference counted because it is shared between the owner's
// registration slot and in-flight deliveries. The event source's hold
// is not counted: after a supersede the source may keep delivering to
// a callback whose last reference is gone, and those deliveries are
// dropped before any handle is resolved.
//
// Each Owner has exactly one registration Slot. Setup builds a
// Callback, registers it with the source, and installs it into the
// slot, silently superseding and releasing whatever was installed
// before. Teardown swaps the slot empty, unregisters the displaced
// callback from the source, and drops its last reference. The slot
// lock covers only the pointer swap and refcount transitions, never a
// source call and never a dispatch.
//
// Delivery runs on the event source's goroutine, concurrently with
// owner-side Setup and Teardown. After Teardown returns no delivery
// reaches the torn-down callback; events racing a swap may land on
// either the old or the new callback.
package bridge
