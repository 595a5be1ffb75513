package handle

// Handle is an opaque reference to a value in a table.
// Handle 0 is reserved and always invalid.
type Handle uint64

// Kinds of values the bridge stores in a table.
const (
	// KindType marks a type descriptor, strongly held for the
	// lifetime of its callback.
	KindType uint32 = iota + 1

	// KindProxy marks an observer proxy. The stored value is opaque
	// and non-owning: releasing it never affects the observer itself.
	KindProxy
)

// DispatchFunc is the class-level dispatch entry point of the managed
// observer environment. It receives the resolved type descriptor and
// observer proxy values, never table handles. Resolved once at
// subsystem initialization and read-only afterwards.
type DispatchFunc func(class, observer any, kind, arg1, arg2, arg3 int32, extra any) error
