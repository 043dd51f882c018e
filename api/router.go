package api

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/merute/welcome/internal/logging"
	"github.com/merute/welcome/internal/metrics"
	"github.com/merute/welcome/internal/models"
	"github.com/merute/welcome/internal/partner"
	"github.com/merute/welcome/internal/qr"
	"github.com/merute/welcome/internal/view"
	"go.uber.org/zap"
)

const defaultMaxBodyBytes = 12 << 20

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Sessions       *Sessions
	Partner        *partner.Service
	QR             *qr.Generator
	Metrics        *metrics.Metrics
	Links          []view.NavLink
	AssetsDir      string
	MaxBodyBytes   int64
	AllowedOrigins []string
	RateLimiter    *IPRateLimiter
}

// NewRouter builds the HTTP routes.
func NewRouter(d Deps) http.Handler {
	if d.MaxBodyBytes <= 0 {
		d.MaxBodyBytes = defaultMaxBodyBytes
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, models.StatusResponse{Status: "ok"})
	})
	if d.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	router.Get("/", PageHandler(d.Sessions, d.Links))
	router.Get("/login/qr.png", QRHandler(d.QR))
	if d.AssetsDir != "" {
		pictures := http.Dir(filepath.Join(d.AssetsDir, "pictures"))
		router.Handle("/pictures/*", http.StripPrefix("/pictures/", http.FileServer(pictures)))
	}

	router.Route("/partner", func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Middleware)
		}
		r.Use(middleware.RequestSize(d.MaxBodyBytes))
		r.Post("/contact", PartnerContactHandler(d.Sessions, d.Partner))
		r.Post("/uploads/{side}", PartnerUploadHandler(d.Sessions, d.Partner))
		r.Post("/uploads/{side}/remove", PartnerRemoveHandler(d.Sessions))
		r.Post("/submit", PartnerSubmitHandler(d.Sessions, d.Partner))
		r.Post("/close", PartnerCloseHandler(d.Sessions))
	})

	router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: d.AllowedOrigins,
			AllowedMethods: []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}))
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Middleware)
		}
		r.Use(middleware.RequestSize(d.MaxBodyBytes))
		r.Post("/partner-applications", PartnerApplicationHandler(d.Partner))
	})

	return router
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logging.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
