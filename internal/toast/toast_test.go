package toast

import (
	"errors"
	"testing"
	"time"
)

func TestQueue_DrainEmptiesQueue(t *testing.T) {
	q := NewQueue(time.Minute)
	q.Push(Success, "ok")
	q.Push(Failure, "ko")

	got := q.Drain()
	if len(got) != 2 {
		t.Fatalf("expected 2 toasts, got %d", len(got))
	}
	if got[0].Kind != Success || got[1].Kind != Failure {
		t.Errorf("unexpected order: %+v", got)
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue after drain, got %d", q.Len())
	}
	if again := q.Drain(); len(again) != 0 {
		t.Errorf("expected toasts to be shown once, got %d", len(again))
	}
}

func TestQueue_DropsExpiredToasts(t *testing.T) {
	now := time.Now()
	q := NewQueue(time.Minute)
	q.now = func() time.Time { return now }
	q.Push(Success, "old")

	q.now = func() time.Time { return now.Add(2 * time.Minute) }
	q.Push(Success, "fresh")

	got := q.Drain()
	if len(got) != 1 || got[0].Message != "fresh" {
		t.Errorf("expected only the fresh toast, got %+v", got)
	}
}

func TestForSubmit(t *testing.T) {
	if got := ForSubmit(nil); got.Kind != Success || got.Message != SubmitSucceeded {
		t.Errorf("unexpected success toast: %+v", got)
	}
	if got := ForSubmit(errors.New("down")); got.Kind != Failure || got.Message != SubmitFailed {
		t.Errorf("unexpected failure toast: %+v", got)
	}
}
