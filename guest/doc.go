// Package guest provides a managed observer environment backed by a
// WebAssembly guest module running under wazero.
//
// The guest exports the class-level dispatch entry point:
//
//	(func (export "dispatch")
//	    (param $observer i64) (param $kind i32)
//	    (param $arg1 i32) (param $arg2 i32) (param $arg3 i32)
//	    (param $extra i64))
//
// The export is resolved once at Load; a module without it (or with
// the wrong arity) fails loading with a process_init error, and no
// bridges can be created against it. Observer proxies crossing into
// the guest are opaque ObserverRef tokens minted by the embedder; the
// host never resolves them. A guest trap during dispatch surfaces as
// an error to the caller, where it is logged and suppressed.
package guest
