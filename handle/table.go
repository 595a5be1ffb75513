package handle

import (
	"sync"

	"go.uber.org/zap"
)

// Table is an in-memory handle table with per-entry reference counts.
// Handles index into an entries slice; released slots are recycled
// through a free list.
type Table struct {
	entries  []entry
	freeList []Handle
	mu       sync.RWMutex
}

type entry struct {
	value any
	kind  uint32
	refs  uint32
	valid bool
}

// NewTable creates a new handle table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 8),
		freeList: make([]Handle, 0, 4),
	}
}

// Acquire stores a value and returns its handle with a reference count
// of one. The caller owns that reference and must Release it exactly
// once.
func (t *Table) Acquire(kind uint32, value any) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := entry{
		kind:  kind,
		value: value,
		refs:  1,
		valid: true,
	}

	if len(t.freeList) > 0 {
		h := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[h-1] = e
		return h
	}

	t.entries = append(t.entries, e)
	return Handle(len(t.entries))
}

// Retain increments a handle's reference count.
func (t *Table) Retain(h Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.lookup(h)
	if e == nil {
		return false
	}
	e.refs++
	return true
}

// Release decrements a handle's reference count. When the count
// reaches zero the entry is dropped and its slot recycled.
func (t *Table) Release(h Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.lookup(h)
	if e == nil {
		return false
	}

	e.refs--
	if e.refs == 0 {
		e.valid = false
		e.value = nil
		t.freeList = append(t.freeList, h)
	}
	return true
}

// Get retrieves a value by handle without affecting its count.
func (t *Table) Get(h Handle) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.lookup(h)
	if e == nil {
		return nil, false
	}
	return e.value, true
}

// GetKind retrieves a value only if it matches the expected kind.
func (t *Table) GetKind(h Handle, kind uint32) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.lookup(h)
	if e == nil || e.kind != kind {
		return nil, false
	}
	return e.value, true
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for i := range t.entries {
		if t.entries[i].valid {
			count++
		}
	}
	return count
}

// lookup returns the entry for h, or nil. Caller holds t.mu.
func (t *Table) lookup(h Handle) *entry {
	if h == 0 || int(h) > len(t.entries) {
		return nil
	}
	e := &t.entries[h-1]
	if !e.valid {
		return nil
	}
	return e
}

// InvokeDispatch resolves both handles and performs the cross-boundary
// call. Every failure mode is logged and suppressed, whether an
// unresolvable handle, an error returned by fn, or a panic raised by
// fn: the method always returns normally so the event source's
// delivery goroutine is never destabilized.
func (t *Table) InvokeDispatch(fn DispatchFunc, class, proxy Handle, kind, arg1, arg2, arg3 int32, extra any) {
	classVal, ok := t.GetKind(class, KindType)
	if !ok {
		Logger().Debug("dropping event: type descriptor handle no longer valid",
			zap.Uint64("class", uint64(class)),
			zap.Int32("kind", kind))
		return
	}
	observerVal, ok := t.GetKind(proxy, KindProxy)
	if !ok {
		Logger().Debug("dropping event: observer proxy handle no longer valid",
			zap.Uint64("proxy", uint64(proxy)),
			zap.Int32("kind", kind))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("panic occurred while notifying an event",
				zap.Any("panic", r),
				zap.Int32("kind", kind))
		}
	}()

	if err := fn(classVal, observerVal, kind, arg1, arg2, arg3, extra); err != nil {
		Logger().Warn("an error occurred while notifying an event",
			zap.Error(err),
			zap.Int32("kind", kind))
	}
}
