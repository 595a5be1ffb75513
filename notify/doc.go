// Package notify provides the in-process managed observer environment:
// a Handler that owns one bridge registration, drains posted events on
// its own goroutine and broadcasts them to registered listeners.
//
// The handler registers itself through the bridge with a weak
// self-reference as the observer proxy, so an abandoned Handler can be
// collected even while the registration is still live; events arriving
// for a collected handler are dropped. Listener failures are logged
// and contained per listener and never reach the event source's
// delivery goroutine.
package notify
