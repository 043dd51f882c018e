// Package toast holds short-lived, non-blocking notifications shown once on
// the next page render.
package toast

import (
	"sync"
	"time"
)

type Kind string

const (
	Success Kind = "success"
	Failure Kind = "error"
)

// Copy shown for a partner application outcome.
const (
	SubmitSucceeded = "Votre demande a été envoyée avec succès !"
	SubmitFailed    = "Une erreur est survenue lors de l'envoi du formulaire"
)

// Toast is a single notification.
type Toast struct {
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"-"`
}

// Queue collects toasts until they are drained by a render. Toasts older
// than maxAge are dropped on drain.
type Queue struct {
	mu     sync.Mutex
	items  []Toast
	maxAge time.Duration
	now    func() time.Time
}

// NewQueue returns a queue keeping toasts for at most maxAge.
func NewQueue(maxAge time.Duration) *Queue {
	return &Queue{maxAge: maxAge, now: time.Now}
}

func (q *Queue) Push(kind Kind, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, Toast{Kind: kind, Message: message, At: q.now()})
}

// Drain returns pending toasts and empties the queue.
func (q *Queue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	out := q.items[:0:0]
	for _, t := range q.items {
		if q.maxAge > 0 && now.Sub(t.At) > q.maxAge {
			continue
		}
		out = append(out, t)
	}
	q.items = nil
	return out
}

// Len reports the number of pending toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// ForSubmit maps a submission outcome to its toast.
func ForSubmit(err error) Toast {
	if err != nil {
		return Toast{Kind: Failure, Message: SubmitFailed, At: time.Now()}
	}
	return Toast{Kind: Success, Message: SubmitSucceeded, At: time.Now()}
}
