package bridge

import "sync"

// Counted is a reference-counted value that a Slot can hold.
// Release dropping the last reference destroys the value; destruction
// must not re-enter the slot lock.
type Counted interface {
	Retain()
	Release()
}

// Slot is a single-occupancy, mutex-guarded cell with
// retain-on-install, release-on-displace semantics. The zero value is
// ready to use. The slot is the sole source of truth for whether a
// value is currently installed.
type Slot[T Counted] struct {
	mu  sync.Mutex
	cur T
	set bool
}

// Swap installs next (when install is true) or clears the slot (when
// false) and returns the displaced value, if any.
//
// The returned value carries a caller-owned reference: the slot
// retains it before dropping its own reference, so the displaced value
// is never destroyed while still visible in the slot and the caller
// can unregister it outside the lock. The caller must Release the
// returned value exactly once.
func (s *Slot[T]) Swap(next T, install bool) (old T, had bool) {
	s.mu.Lock()
	old, had = s.cur, s.set

	if had {
		old.Retain() // reference owned by the returned value
	}
	if install {
		next.Retain() // the slot's reference
	}
	if had {
		// Cannot reach zero: the caller's reference is outstanding.
		old.Release()
	}

	if install {
		s.cur, s.set = next, true
	} else {
		var zero T
		s.cur, s.set = zero, false
	}
	s.mu.Unlock()

	return old, had
}
