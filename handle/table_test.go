package handle

import (
	"errors"
	"testing"
)

func TestTable_AcquireGetRelease(t *testing.T) {
	table := NewTable()

	h := table.Acquire(KindType, "descriptor")
	if h == 0 {
		t.Fatal("expected non-zero handle")
	}

	val, ok := table.Get(h)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "descriptor" {
		t.Fatalf("expected 'descriptor', got %v", val)
	}

	if !table.Release(h) {
		t.Fatal("Release failed")
	}
	if _, ok := table.Get(h); ok {
		t.Fatal("Get succeeded on released handle")
	}
	if table.Len() != 0 {
		t.Fatalf("expected empty table, got %d entries", table.Len())
	}
}

func TestTable_GetKind(t *testing.T) {
	table := NewTable()
	h := table.Acquire(KindProxy, "proxy")

	if _, ok := table.GetKind(h, KindProxy); !ok {
		t.Fatal("GetKind with correct kind failed")
	}
	if _, ok := table.GetKind(h, KindType); ok {
		t.Fatal("GetKind with wrong kind should fail")
	}
}

func TestTable_ZeroHandle(t *testing.T) {
	table := NewTable()

	if _, ok := table.Get(0); ok {
		t.Fatal("Get(0) should fail")
	}
	if table.Retain(0) {
		t.Fatal("Retain(0) should fail")
	}
	if table.Release(0) {
		t.Fatal("Release(0) should fail")
	}
}

func TestTable_RetainRelease(t *testing.T) {
	table := NewTable()
	h := table.Acquire(KindType, "descriptor")

	if !table.Retain(h) {
		t.Fatal("Retain failed")
	}

	// First release: count drops to one, entry survives.
	table.Release(h)
	if _, ok := table.Get(h); !ok {
		t.Fatal("entry dropped while references remain")
	}

	// Second release drops the entry.
	table.Release(h)
	if _, ok := table.Get(h); ok {
		t.Fatal("entry survived its last release")
	}
}

func TestTable_SlotReuse(t *testing.T) {
	table := NewTable()

	h1 := table.Acquire(KindType, "a")
	table.Release(h1)

	h2 := table.Acquire(KindProxy, "b")
	if h2 != h1 {
		t.Fatalf("expected recycled handle %d, got %d", h1, h2)
	}

	// The recycled slot must carry the new kind and value.
	if _, ok := table.GetKind(h2, KindType); ok {
		t.Fatal("recycled slot kept stale kind")
	}
	val, ok := table.GetKind(h2, KindProxy)
	if !ok || val != "b" {
		t.Fatalf("expected 'b', got %v (ok=%v)", val, ok)
	}
}

func TestInvokeDispatch_Forwards(t *testing.T) {
	table := NewTable()
	class := table.Acquire(KindType, "class")
	proxy := table.Acquire(KindProxy, "observer")

	var gotClass, gotObserver any
	var gotArgs [4]int32
	calls := 0
	fn := func(c, o any, kind, a1, a2, a3 int32, extra any) error {
		calls++
		gotClass, gotObserver = c, o
		gotArgs = [4]int32{kind, a1, a2, a3}
		if extra != nil {
			t.Errorf("expected nil extra, got %v", extra)
		}
		return nil
	}

	table.InvokeDispatch(fn, class, proxy, 1000, 3, 1, 0, nil)

	if calls != 1 {
		t.Fatalf("expected 1 dispatch, got %d", calls)
	}
	if gotClass != "class" || gotObserver != "observer" {
		t.Fatalf("dispatch received %v/%v", gotClass, gotObserver)
	}
	if gotArgs != [4]int32{1000, 3, 1, 0} {
		t.Fatalf("dispatch received args %v", gotArgs)
	}
}

func TestInvokeDispatch_SuppressesError(t *testing.T) {
	table := NewTable()
	class := table.Acquire(KindType, "class")
	proxy := table.Acquire(KindProxy, "observer")

	fn := func(c, o any, kind, a1, a2, a3 int32, extra any) error {
		return errors.New("observer side failed")
	}

	// Must return normally.
	table.InvokeDispatch(fn, class, proxy, 1000, 1, 0, 0, nil)
}

func TestInvokeDispatch_SuppressesPanic(t *testing.T) {
	table := NewTable()
	class := table.Acquire(KindType, "class")
	proxy := table.Acquire(KindProxy, "observer")

	fn := func(c, o any, kind, a1, a2, a3 int32, extra any) error {
		panic("observer side exploded")
	}

	table.InvokeDispatch(fn, class, proxy, 1000, 1, 0, 0, nil)

	// A subsequent dispatch still goes through.
	calls := 0
	ok := func(c, o any, kind, a1, a2, a3 int32, extra any) error {
		calls++
		return nil
	}
	table.InvokeDispatch(ok, class, proxy, 1000, 2, 0, 0, nil)
	if calls != 1 {
		t.Fatalf("expected dispatch after panic, got %d calls", calls)
	}
}

func TestInvokeDispatch_DropsReleasedHandles(t *testing.T) {
	table := NewTable()
	class := table.Acquire(KindType, "class")
	proxy := table.Acquire(KindProxy, "observer")
	table.Release(proxy)

	calls := 0
	fn := func(c, o any, kind, a1, a2, a3 int32, extra any) error {
		calls++
		return nil
	}

	table.InvokeDispatch(fn, class, proxy, 1000, 1, 0, 0, nil)
	if calls != 0 {
		t.Fatal("dispatch reached a released observer proxy")
	}

	table.Release(class)
	table.InvokeDispatch(fn, class, proxy, 1000, 1, 0, 0, nil)
	if calls != 0 {
		t.Fatal("dispatch reached a released type descriptor")
	}
}
