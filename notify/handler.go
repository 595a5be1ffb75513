package notify

import (
	"sync"
	"weak"

	"go.uber.org/zap"

	volumebridge "github.com/wippyai/volume-bridge"
	"github.com/wippyai/volume-bridge/bridge"
	"github.com/wippyai/volume-bridge/errors"
	"github.com/wippyai/volume-bridge/handle"
)

// VolumeChangeDispatcher receives volume-group changes on the
// handler's goroutine. A returned error is logged and contained; it
// does not affect other listeners or subsequent events.
type VolumeChangeDispatcher interface {
	OnAudioVolumeGroupChanged(group, flags int32) error
}

// DispatcherFunc adapts a function to the VolumeChangeDispatcher interface.
type DispatcherFunc func(group, flags int32) error

func (f DispatcherFunc) OnAudioVolumeGroupChanged(group, flags int32) error {
	return f(group, flags)
}

const defaultQueueDepth = 64

type message struct {
	kind int32
	arg1 int32
	arg2 int32
}

// Handler owns one bridge registration and fans posted events out to
// registered listeners from its own goroutine.
type Handler struct {
	bridge *bridge.Bridge
	owner  bridge.Owner

	events chan message
	quit   chan struct{}
	done   chan struct{}

	mu        sync.Mutex
	listeners []VolumeChangeDispatcher
	started   bool
	closed    bool
}

// Option configures a Handler.
type Option func(*Handler)

// WithQueueDepth sets the event queue capacity. Posting to a full
// queue drops the event rather than blocking the delivery goroutine.
func WithQueueDepth(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.events = make(chan message, n)
		}
	}
}

// New creates a Handler bound to the given event source. The bridge
// subsystem is initialized here; a dispatch resolution failure is
// fatal and no handler is returned.
func New(source volumebridge.EventSource, opts ...Option) (*Handler, error) {
	h := &Handler{
		events: make(chan message, defaultQueueDepth),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}

	b, err := bridge.New(handlerEnv{}, source)
	if err != nil {
		return nil, err
	}
	h.bridge = b
	return h, nil
}

// Init starts the handler goroutine and registers with the event
// source. Idempotent: a second call on a running handler is a no-op.
// A registration failure is retryable; Init on a closed handler fails.
func (h *Handler) Init() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return errors.InvalidInput("handler already closed")
	}
	if h.started {
		h.mu.Unlock()
		return nil
	}
	h.started = true
	quit, done := h.quit, h.done
	h.mu.Unlock()

	go h.loop(quit, done)

	// The weak self-reference is the observer proxy: the bridge holds
	// it opaquely and it does not keep this handler alive.
	if err := h.bridge.Setup(&h.owner, h, weak.Make(h)); err != nil {
		h.mu.Lock()
		if h.closed {
			// A concurrent Close observed started and owns the loop
			// shutdown; touching quit here would close it twice.
			h.mu.Unlock()
			return err
		}
		h.started = false
		h.quit = make(chan struct{})
		h.done = make(chan struct{})
		h.mu.Unlock()
		close(quit)
		<-done
		return err
	}

	h.mu.Lock()
	if h.closed {
		// Close ran while Setup was in flight and saw an empty slot;
		// the registration that just completed is torn down here.
		h.mu.Unlock()
		h.bridge.Teardown(&h.owner)
		return errors.InvalidInput("handler already closed")
	}
	h.mu.Unlock()
	return nil
}

// Close unregisters from the event source and stops the handler
// goroutine. Idempotent; safe to call on a handler that never
// initialized.
func (h *Handler) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	started := h.started
	quit, done := h.quit, h.done
	h.mu.Unlock()

	h.bridge.Teardown(&h.owner)

	if started {
		close(quit)
		<-done
	}
}

// RegisterListener adds a listener to the broadcast list.
func (h *Handler) RegisterListener(l VolumeChangeDispatcher) {
	if l == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, l)
}

// UnregisterListener removes a previously registered listener.
// Listeners are matched by interface identity, so listeners that need
// unregistering should be pointer-typed rather than DispatcherFunc.
func (h *Handler) UnregisterListener(l VolumeChangeDispatcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, reg := range h.listeners {
		if reg == l {
			h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
			return
		}
	}
}

// post enqueues an event from the dispatch boundary. Never blocks:
// when the queue is full the event is dropped with a warning.
func (h *Handler) post(m message) {
	select {
	case h.events <- m:
	default:
		Logger().Warn("event queue full, dropping event",
			zap.Int32("kind", m.kind),
			zap.Int32("group", m.arg1))
	}
}

func (h *Handler) loop(quit, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-quit:
			return
		case m := <-h.events:
			switch m.kind {
			case volumebridge.EventVolumeChanged:
				h.broadcast(m.arg1, m.arg2)
			default:
			}
		}
	}
}

func (h *Handler) broadcast(group, flags int32) {
	h.mu.Lock()
	listeners := make([]VolumeChangeDispatcher, len(h.listeners))
	copy(listeners, h.listeners)
	h.mu.Unlock()

	for _, l := range listeners {
		if err := l.OnAudioVolumeGroupChanged(group, flags); err != nil {
			Logger().Warn("volume change listener failed",
				zap.Int32("group", group),
				zap.Error(err))
		}
	}
}

// handlerEnv is the bridge.Env for in-process handlers. The dispatch
// entry point is class-level: it receives the stored weak reference
// and resolves it to a live handler, dropping the event if the handler
// has been collected.
type handlerEnv struct{}

func (handlerEnv) Dispatch() (handle.DispatchFunc, error) {
	return postEvent, nil
}

func (handlerEnv) TypeOf(owner any) (any, error) {
	if _, ok := owner.(*Handler); !ok {
		return nil, errors.InvalidInput("owner is not a notify handler")
	}
	return "notify.Handler", nil
}

func postEvent(class, observer any, kind, arg1, arg2, arg3 int32, extra any) error {
	ref, ok := observer.(weak.Pointer[Handler])
	if !ok {
		return errors.InvalidInput("observer proxy is not a handler reference")
	}
	h := ref.Value()
	if h == nil {
		// Handler collected; the registration outlived its observer.
		return nil
	}
	h.post(message{kind: kind, arg1: arg1, arg2: arg2})
	return nil
}
