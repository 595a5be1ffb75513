package bridge

import (
	"sync/atomic"

	volumebridge "github.com/wippyai/volume-bridge"
	"github.com/wippyai/volume-bridge/handle"
)

// Callback connects the event source to one observer. It holds the
// observer's type descriptor strongly and the observer proxy as an
// opaque value; the proxy never keeps the observer alive.
//
// A new Callback starts with one reference, owned by its creator.
// Each in-flight delivery takes its own reference for the duration of
// the dispatch, so the handles cannot be released mid-call. The event
// source's hold is not counted: a superseded callback may stay
// registered with the source after its last reference is gone, and its
// deliveries are dropped.
type Callback struct {
	table    *handle.Table
	dispatch handle.DispatchFunc
	class    handle.Handle
	proxy    handle.Handle
	refs     atomic.Int64
}

func newCallback(table *handle.Table, dispatch handle.DispatchFunc, class, proxy handle.Handle) *Callback {
	cb := &Callback{
		table:    table,
		dispatch: dispatch,
		class:    class,
		proxy:    proxy,
	}
	cb.refs.Store(1)
	return cb
}

// Retain increments the callback's reference count.
func (c *Callback) Retain() {
	c.refs.Add(1)
}

// tryRetain takes a reference only while the callback is still live.
// Once the count has reached zero the handles are released and their
// table slots may already carry other registrations, so a delivery
// losing this race must be dropped, never resolved.
func (c *Callback) tryRetain() bool {
	for {
		n := c.refs.Load()
		if n <= 0 {
			return false
		}
		if c.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Release decrements the reference count. Dropping the last reference
// releases both handles exactly once.
func (c *Callback) Release() {
	if c.refs.Add(-1) == 0 {
		c.table.Release(c.class)
		c.table.Release(c.proxy)
	}
}

// OnVolumeGroupChanged implements volumebridge.GroupListener. It is
// invoked on the event source's goroutine and forwards the event
// through the dispatch boundary; any observer-side failure is logged
// and suppressed inside InvokeDispatch, so this never panics and never
// disturbs delivery of subsequent events.
func (c *Callback) OnVolumeGroupChanged(group, flags int32) {
	if !c.tryRetain() {
		Logger().Debug("dropping event for a released callback")
		return
	}
	defer c.Release()

	c.table.InvokeDispatch(c.dispatch, c.class, c.proxy,
		volumebridge.EventVolumeChanged, group, flags, 0, nil)
}
