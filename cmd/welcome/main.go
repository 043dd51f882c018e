package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/merute/welcome/api"
	"github.com/merute/welcome/internal/auth"
	"github.com/merute/welcome/internal/config"
	"github.com/merute/welcome/internal/logging"
	"github.com/merute/welcome/internal/manager"
	"github.com/merute/welcome/internal/metrics"
	"github.com/merute/welcome/internal/partner"
	"github.com/merute/welcome/internal/qr"
	"github.com/merute/welcome/internal/view"
	"github.com/merute/welcome/store/ephemeral"
)

func main() {
	f, err := logging.InitLogger(config.LogFile())
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer f.Close()
	defer logging.Sync()

	logging.InfoLog("Starting Merute welcome server")

	if err := auth.InitSigningKey(config.SessionSigningSeed()); err != nil {
		logging.FatalLog("Session signing key: %v", err)
	}

	m := metrics.New()

	work := manager.NewWorkManager()
	defer work.Close()

	submitter, err := partner.NewSubmitterFromConfig()
	if err != nil {
		logging.FatalLog("Partner submitter: %v", err)
	}
	svc := partner.NewService(partner.NewValidator(), submitter, work,
		partner.WithMetrics(m),
		partner.WithMaxUpload(config.MaxUploadBytes()),
	)

	sessionStore := ephemeral.NewSessionStore(config.SessionTTL(), config.MaxSessions())
	defer sessionStore.Close()

	assets := config.AssetsDir()
	router := api.NewRouter(api.Deps{
		Sessions: api.NewSessions(sessionStore, config.SecureCookies(), m),
		Partner:  svc,
		QR:       qr.New(config.QRPayloadURL(), qr.WithLogo(filepath.Join(assets, "pictures", "logo.png"))),
		Metrics:  m,
		Links: []view.NavLink{
			{Title: "Support Technique", Href: config.SupportURL()},
			{Title: "Site web", Href: config.SiteURL()},
		},
		AssetsDir:      assets,
		MaxBodyBytes:   config.MaxRequestBodyBytes(),
		AllowedOrigins: config.CORSAllowedOrigins(),
		RateLimiter:    api.NewIPRateLimiter(config.APIRateLimit(), config.APIRateBurst()),
	})

	srv := &http.Server{
		Addr:              ":" + config.Port(),
		Handler:           router,
		ReadTimeout:       config.ServerReadTimeout(),
		ReadHeaderTimeout: config.ServerReadHeaderTimeout(),
		WriteTimeout:      config.ServerWriteTimeout(),
		IdleTimeout:       config.ServerIdleTimeout(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.InfoLog("Merute welcome server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.FatalLog("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logging.InfoLog("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLog("Graceful shutdown failed: %v", err)
	}
}
