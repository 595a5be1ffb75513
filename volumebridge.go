package volumebridge

// Event kinds forwarded through the dispatch boundary.
const (
	// EventVolumeChanged is posted when a volume group's configuration
	// changes. arg1 carries the group id, arg2 the change flags.
	EventVolumeChanged int32 = 1000
)

// GroupListener receives volume-group change events. The event source
// invokes it on its own goroutine; implementations must not block and
// must not panic across the call.
type GroupListener interface {
	OnVolumeGroupChanged(group int32, flags int32)
}

// EventSource accepts callback registrations for volume-group change
// notifications. After RemoveCallback returns, the source must not
// invoke the listener again.
type EventSource interface {
	AddCallback(l GroupListener) error
	RemoveCallback(l GroupListener)
}
