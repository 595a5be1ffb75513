package bridge

import (
	"go.uber.org/zap"

	volumebridge "github.com/wippyai/volume-bridge"
	"github.com/wippyai/volume-bridge/errors"
	"github.com/wippyai/volume-bridge/handle"
)

// Env is the managed observer environment the bridge dispatches into.
type Env interface {
	// Dispatch resolves the class-level dispatch entry point. Called
	// exactly once, at subsystem construction; the resolved function is
	// read-only afterwards and shared by every callback.
	Dispatch() (handle.DispatchFunc, error)

	// TypeOf resolves an owner value to its type descriptor.
	TypeOf(owner any) (any, error)
}

// Owner holds the single registration slot for one callback owner.
// The zero value is ready to use.
type Owner struct {
	slot Slot[*Callback]
}

// Bridge is the registration subsystem: it binds a managed observer
// environment to an event source and performs the per-owner
// setup/teardown protocol.
type Bridge struct {
	env      Env
	source   volumebridge.EventSource
	table    *handle.Table
	dispatch handle.DispatchFunc
}

// New creates a Bridge, resolving the environment's dispatch entry
// point once. A resolution failure is fatal for the whole subsystem:
// no callbacks can ever be created from the returned error.
func New(env Env, source volumebridge.EventSource) (*Bridge, error) {
	if env == nil {
		return nil, errors.InvalidInput("nil environment")
	}
	if source == nil {
		return nil, errors.InvalidInput("nil event source")
	}

	fn, err := env.Dispatch()
	if err != nil || fn == nil {
		return nil, errors.ProcessInit("dispatch entry point", err)
	}

	return &Bridge{
		env:      env,
		source:   source,
		table:    handle.NewTable(),
		dispatch: fn,
	}, nil
}

// Table exposes the bridge's handle table.
func (b *Bridge) Table() *handle.Table {
	return b.table
}

// Setup constructs a callback for self, registers it with the event
// source and installs it into the owner's slot. An already installed
// callback is silently superseded: it is released but not unregistered
// from the source. weakSelf is stored opaquely as the observer proxy
// and never resolved by the bridge.
//
// Failures are contained to this owner: the slot is left untouched and
// every handle acquired for the attempt is released.
func (b *Bridge) Setup(owner *Owner, self, weakSelf any) error {
	if owner == nil {
		return errors.InvalidInput("nil owner")
	}

	desc, err := b.env.TypeOf(self)
	if err != nil {
		rerr := errors.HandleResolution(errors.PhaseSetup, "owner type", err)
		Logger().Warn("callback setup aborted", zap.Error(rerr))
		return rerr
	}

	class := b.table.Acquire(handle.KindType, desc)
	proxy := b.table.Acquire(handle.KindProxy, weakSelf)
	cb := newCallback(b.table, b.dispatch, class, proxy)

	if err := b.source.AddCallback(cb); err != nil {
		cb.Release() // creation reference; releases both handles
		rerr := errors.Registration(err)
		Logger().Warn("event source rejected callback", zap.Error(rerr))
		return rerr
	}

	if old, had := owner.slot.Swap(cb, true); had {
		// Supersede policy: the displaced callback is released without
		// calling RemoveCallback for it.
		old.Release()
	}
	cb.Release() // creation reference; the slot keeps the callback alive

	Logger().Debug("callback registered")
	return nil
}

// Teardown clears the owner's slot and, if a callback was installed,
// unregisters it from the event source before dropping its last
// reference. Unregistration completes first, so no delivery can reach
// the callback after Teardown returns. Calling Teardown on an empty
// slot is a no-op.
func (b *Bridge) Teardown(owner *Owner) {
	if owner == nil {
		return
	}

	old, had := owner.slot.Swap(nil, false)
	if !had {
		return
	}

	b.source.RemoveCallback(old)
	old.Release()

	Logger().Debug("callback unregistered")
}
