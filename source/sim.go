package source

import (
	"math/rand/v2"
	"sync"
	"time"

	volumebridge "github.com/wippyai/volume-bridge"
	"github.com/wippyai/volume-bridge/errors"
)

// Sim produces synthetic volume-group change events on its own
// goroutine. Delivery happens under the registry lock, which is what
// guarantees that no listener is invoked after RemoveCallback returns.
type Sim struct {
	mu        sync.Mutex
	listeners []volumebridge.GroupListener

	groups   int32
	interval time.Duration

	quit    chan struct{}
	done    chan struct{}
	started bool
}

// NewSim creates a simulator emitting events for the given number of
// volume groups at the given interval.
func NewSim(groups int, interval time.Duration) *Sim {
	if groups < 1 {
		groups = 1
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Sim{
		groups:   int32(groups),
		interval: interval,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// AddCallback registers a listener.
func (s *Sim) AddCallback(l volumebridge.GroupListener) error {
	if l == nil {
		return errors.InvalidInput("nil listener")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
	return nil
}

// RemoveCallback unregisters a listener. Once it returns the listener
// will not be invoked again.
func (s *Sim) RemoveCallback(l volumebridge.GroupListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, reg := range s.listeners {
		if reg == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Fire delivers one event to every registered listener.
func (s *Sim) Fire(group, flags int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listeners {
		l.OnVolumeGroupChanged(group, flags)
	}
}

// Start launches the emitter goroutine. A second Start is a no-op.
func (s *Sim) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	quit, done := s.quit, s.done
	s.mu.Unlock()

	go s.loop(quit, done)
}

// Stop halts the emitter goroutine and waits for it to exit.
// Listeners remain registered.
func (s *Sim) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	quit := s.quit
	s.quit = make(chan struct{})
	done := s.done
	s.done = make(chan struct{})
	s.mu.Unlock()

	close(quit)
	<-done
}

func (s *Sim) loop(quit, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			s.Fire(rand.Int32N(s.groups), 1)
		}
	}
}
