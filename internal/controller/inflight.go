package controller

import (
	"sync"

	"github.com/merute/welcome/internal/logging"
	"github.com/merute/welcome/internal/utils"
)

// InFlightRegistry tracks one running operation per key. Later callers for
// the same key get a channel closed when the running operation finishes.
type InFlightRegistry struct {
	mu       sync.Mutex
	channels map[string]chan struct{}
}

func NewInFlightRegistry() *InFlightRegistry {
	return &InFlightRegistry{
		channels: make(map[string]chan struct{}),
	}
}

// Acquire claims key. When the key is free it returns a release func and
// ok=true; release must be called exactly once. When the key is taken it
// returns the running operation's done channel and ok=false.
func (r *InFlightRegistry) Acquire(key string) (release func(), done <-chan struct{}, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, exists := r.channels[key]; exists {
		logging.DebugLog("InFlight: key busy [%s]", utils.HashID(key))
		return nil, ch, false
	}

	ch := make(chan struct{})
	r.channels[key] = ch
	logging.DebugLog("InFlight: acquired [%s]", utils.HashID(key))

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.channels, key)
			r.mu.Unlock()
			// Close the channel to unblock any waiting goroutines
			close(ch)
			logging.DebugLog("InFlight: released [%s]", utils.HashID(key))
		})
	}, ch, true
}

// Count returns the number of running operations.
func (r *InFlightRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.channels)
}
