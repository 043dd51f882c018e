package ephemeral

import (
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T, maxSize int) (*Store[string], *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore[string](maxSize, time.Hour)
	s.now = clock.Now
	t.Cleanup(s.Close)
	return s, clock
}

func TestStoreSetGet(t *testing.T) {
	s, clock := newTestStore(t, 0)

	if err := s.Set("k", "v", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, ok := s.Get("k"); !ok || got != "v" {
		t.Fatalf("Get = %q, %v; want v, true", got, ok)
	}

	clock.Advance(time.Minute + time.Second)
	if _, ok := s.Get("k"); ok {
		t.Error("expired entry still visible")
	}
}

func TestStoreKeyTooLong(t *testing.T) {
	s, _ := newTestStore(t, 0)
	if err := s.Set(strings.Repeat("x", 256), "v", time.Minute); err != ErrTooLong {
		t.Errorf("expected ErrTooLong, got %v", err)
	}
}

func TestStoreFull(t *testing.T) {
	s, clock := newTestStore(t, 2)

	_ = s.Set("a", "1", time.Minute)
	_ = s.Set("b", "2", 2*time.Minute)
	if err := s.Set("c", "3", time.Minute); err != ErrStoreFull {
		t.Fatalf("expected ErrStoreFull, got %v", err)
	}
	if err := s.Set("a", "1b", time.Minute); err != nil {
		t.Errorf("overwriting a live key should succeed: %v", err)
	}

	// Expired entries make room.
	clock.Advance(90 * time.Second)
	if err := s.Set("c", "3", time.Minute); err != nil {
		t.Errorf("Set after expiry failed: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestStoreTouch(t *testing.T) {
	s, clock := newTestStore(t, 0)
	_ = s.Set("k", "v", time.Minute)

	clock.Advance(50 * time.Second)
	if _, ok := s.Touch("k", time.Minute); !ok {
		t.Fatal("Touch on live key failed")
	}
	clock.Advance(50 * time.Second)
	if _, ok := s.Get("k"); !ok {
		t.Error("touched entry expired early")
	}

	clock.Advance(2 * time.Minute)
	if _, ok := s.Touch("k", time.Minute); ok {
		t.Error("Touch revived an expired entry")
	}
	if n := s.stored(); n != 0 {
		t.Errorf("expired entry not dropped by Touch, %d stored", n)
	}
}

func TestStoreLenSkipsExpired(t *testing.T) {
	s, clock := newTestStore(t, 0)
	_ = s.Set("short", "v", time.Minute)
	_ = s.Set("long", "v", 3*time.Minute)

	clock.Advance(2 * time.Minute)
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	if n := s.stored(); n != 2 {
		t.Errorf("expired entry swept early, %d stored", n)
	}
}

func TestStoreDelete(t *testing.T) {
	s, _ := newTestStore(t, 0)
	_ = s.Set("k", "v", time.Minute)
	s.Delete("k")
	s.Delete("missing")
	if _, ok := s.Get("k"); ok {
		t.Error("deleted entry still visible")
	}
}

func TestStoreSweep(t *testing.T) {
	s := NewStore[int](0, 5*time.Millisecond)
	defer s.Close()

	_ = s.Set("k", 1, time.Millisecond)
	deadline := time.Now().Add(time.Second)
	for s.stored() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("expired entry was never swept")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSessionStore(t *testing.T) {
	s := NewSessionStore(time.Minute, 10)
	defer s.Close()

	sess, err := s.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sess.ID == "" || sess.Dialog == nil || sess.Toasts == nil {
		t.Fatalf("incomplete session: %+v", sess)
	}

	got, ok := s.Get(sess.ID)
	if !ok || got != sess {
		t.Fatal("Get did not return the created session")
	}
	if s.Len() != 1 || s.TTL() != time.Minute {
		t.Errorf("Len = %d, TTL = %v", s.Len(), s.TTL())
	}

	s.Delete(sess.ID)
	if _, ok := s.Get(sess.ID); ok {
		t.Error("deleted session still visible")
	}
}

// stored counts entries including those awaiting the sweep.
func (s *Store[V]) stored() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
