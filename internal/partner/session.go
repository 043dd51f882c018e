package partner

import (
	"time"

	"github.com/merute/welcome/internal/toast"
)

// toastMaxAge bounds how long an unseen notification is kept.
const toastMaxAge = 2 * time.Minute

// Session is the per-browser state: the partner dialog and the pending
// notifications shown on the next render.
type Session struct {
	ID     string
	Dialog *Dialog
	Toasts *toast.Queue
}

// NewSession returns a session with a closed, default dialog.
func NewSession(id string) *Session {
	return &Session{
		ID:     id,
		Dialog: NewDialog(),
		Toasts: toast.NewQueue(toastMaxAge),
	}
}
