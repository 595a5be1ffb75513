// Package source provides a simulated volume-group event source. It
// honors the contract the bridge depends on: listeners are invoked on
// the source's own goroutine, and once RemoveCallback returns the
// listener is never invoked again.
package source
