package ephemeral

import (
	"errors"
	"sync"
	"time"

	"github.com/merute/welcome/internal/logging"
	"github.com/merute/welcome/internal/utils"
)

var (
	ErrTooLong   = errors.New("key too long")
	ErrStoreFull = errors.New("ephemeral store full")
)

const (
	maxKeyLength    = 255
	defaultMaxSize  = 10000
	defaultGCPeriod = 1 * time.Minute
)

type item[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is an in-memory map whose entries expire after their TTL. Expired
// entries are invisible immediately and reclaimed by a background sweep.
type Store[V any] struct {
	data    map[string]*item[V]
	mu      sync.RWMutex
	maxSize int
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore starts a store holding at most maxSize live entries and sweeping
// every gcPeriod. Zero values pick the defaults.
func NewStore[V any](maxSize int, gcPeriod time.Duration) *Store[V] {
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	if gcPeriod <= 0 {
		gcPeriod = defaultGCPeriod
	}
	s := &Store[V]{
		data:    make(map[string]*item[V]),
		maxSize: maxSize,
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	go s.cleanup(gcPeriod)

	logging.DebugLog("Ephemeral store initialized (max=%d)", maxSize)
	return s
}

// Set stores value under key for ttl. Replacing a live key never fails on
// capacity.
func (s *Store[V]) Set(key string, value V, ttl time.Duration) error {
	if len(key) > maxKeyLength {
		logging.DebugLog("Store set failed: key too long [%s] (length: %d)", utils.HashID(key), len(key))
		return ErrTooLong
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[key]; !exists && len(s.data) >= s.maxSize {
		s.sweepLocked()
		if len(s.data) >= s.maxSize {
			logging.WarnLog("Store set failed: store full (size: %d)", len(s.data))
			return ErrStoreFull
		}
	}

	s.data[key] = &item[V]{value: value, expiresAt: s.now().Add(ttl)}
	logging.DebugLog("Store set success [%s] ttl=%v", utils.HashID(key), ttl)
	return nil
}

// Get returns the live value under key.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero V
	it, ok := s.data[key]
	if !ok || s.now().After(it.expiresAt) {
		return zero, false
	}
	return it.value, true
}

// Touch extends a live entry's expiry to now+ttl and returns its value.
func (s *Store[V]) Touch(key string, ttl time.Duration) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	it, ok := s.data[key]
	if !ok {
		return zero, false
	}
	now := s.now()
	if now.After(it.expiresAt) {
		delete(s.data, key)
		return zero, false
	}
	it.expiresAt = now.Add(ttl)
	return it.value, true
}

// Delete removes key.
func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, existed := s.data[key]; existed {
		delete(s.data, key)
		logging.DebugLog("Store delete success [%s]", utils.HashID(key))
	}
}

// Len counts live entries. Expired entries awaiting the sweep are skipped.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	n := 0
	for _, it := range s.data {
		if !now.After(it.expiresAt) {
			n++
		}
	}
	return n
}

// Close stops the background sweep.
func (s *Store[V]) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store[V]) sweepLocked() int {
	now := s.now()
	expired := 0
	for k, v := range s.data {
		if now.After(v.expiresAt) {
			delete(s.data, k)
			expired++
		}
	}
	return expired
}

func (s *Store[V]) cleanup(period time.Duration) {
	logging.DebugLog("Store cleanup goroutine started")
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		expired := s.sweepLocked()
		size := len(s.data)
		s.mu.Unlock()

		if expired > 0 {
			logging.InfoLog("Store cleanup: removed %d expired items (current size: %d)", expired, size)
		}
	}
}
