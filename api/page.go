package api

import (
	"bytes"
	"net/http"

	"github.com/merute/welcome/internal/logging"
	"github.com/merute/welcome/internal/view"
)

// PageHandler renders the landing page. The menu and dialogs are driven by
// the menu and dialog query parameters; opening the partner dialog binds a
// session.
func PageHandler(sessions *Sessions, links []view.NavLink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		data := view.PageData{
			Links:    links,
			MenuOpen: q.Get("menu") == "open",
		}

		sess, haveSession := sessions.Lookup(r)
		switch q.Get("dialog") {
		case view.DialogLogin:
			data.Dialog = view.DialogLogin
		case view.DialogPartner:
			var err error
			if sess, err = sessions.Ensure(w, r); err != nil {
				logging.ErrorLog("Partner dialog unavailable: %v", err)
				http.Error(w, "Service temporairement indisponible", http.StatusServiceUnavailable)
				return
			}
			haveSession = true
			sess.Dialog.Open()
			data.Dialog = view.DialogPartner
		}
		if haveSession {
			data.Partner = sess.Dialog.Snapshot()
			data.Toasts = sess.Toasts.Drain()
		}

		var buf bytes.Buffer
		if err := view.Render(&buf, data); err != nil {
			logging.ErrorLog("Page render failed: %v", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = buf.WriteTo(w)
	}
}
