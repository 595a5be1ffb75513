// Package handle implements the opaque, refcounted handle table used
// to carry references across the dispatch boundary.
//
// The bridge stores exactly two kinds of values per registration: a
// type descriptor (strongly held for the callback's lifetime) and an
// observer proxy (held as an opaque value, semantically non-owning of
// the observer; the table never resolves it to a live observer).
//
// InvokeDispatch performs the cross-boundary call itself. It is the
// one place where observer-side failures are absorbed: a returned
// error or a panic is logged and suppressed so the caller, the event
// source's delivery goroutine, always returns normally.
package handle
