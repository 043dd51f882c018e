package api

import (
	"net/http"

	"github.com/merute/welcome/internal/qr"
)

// QRHandler serves the login QR code.
func QRHandler(gen *qr.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		png, err := gen.PNG()
		if err != nil {
			http.Error(w, "QR code unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=300")
		_, _ = w.Write(png)
	}
}
