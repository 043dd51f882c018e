package api

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/merute/welcome/internal/logging"
	"github.com/merute/welcome/internal/models"
	"github.com/merute/welcome/internal/partner"
	"github.com/merute/welcome/internal/toast"
	"github.com/merute/welcome/internal/utils"
	"github.com/merute/welcome/internal/workerpool"
	"golang.org/x/sync/errgroup"
)

// PartnerApplicationHandler accepts a whole application as multipart form
// data. Both card faces are encoded concurrently.
func PartnerApplicationHandler(svc *partner.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			if isBodyTooLarge(err) {
				respondJSON(w, http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "Request too large"})
				return
			}
			logging.WarnLog("Partner API failed: invalid form: %v", err)
			respondJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid multipart form"})
			return
		}
		defer cleanupForm(r)

		app := models.PartnerApplication{
			Email: strings.TrimSpace(r.FormValue(models.FieldEmail)),
			Phone: r.FormValue(models.FieldPhone),
		}
		emailHash := utils.HashEmail(app.Email)
		targets := map[partner.Side]*string{partner.Recto: &app.CNIRecto, partner.Verso: &app.CNIVerso}

		var mu sync.Mutex
		uploadErrs := make(map[string]string)
		g, ctx := errgroup.WithContext(r.Context())
		for _, side := range partner.Sides {
			file, header, err := r.FormFile(side.Field())
			if err != nil {
				continue
			}
			side := side
			dst := targets[side]
			g.Go(func() error {
				defer file.Close()
				encoded, err := svc.EncodeFile(ctx, file, header.Size)
				if errors.Is(err, workerpool.ErrQueueFull) || errors.Is(err, workerpool.ErrPoolClosed) {
					return err
				}
				if err != nil {
					mu.Lock()
					uploadErrs[side.Field()] = partner.UploadMessage(err)
					mu.Unlock()
					return nil
				}
				*dst = encoded
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			logging.ErrorLog("Partner API failed: encode [%s]: %v", emailHash, err)
			respondJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "Server busy, try again later"})
			return
		}

		if len(uploadErrs) > 0 {
			fields := svc.Validator().Application(app)
			for f, msg := range uploadErrs {
				fields[f] = msg
			}
			logging.WarnLog("Partner API failed: rejected upload [%s]", emailHash)
			respondJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: "Validation failed", Fields: fields})
			return
		}

		id, fields, err := svc.SubmitApplication(r.Context(), app)
		switch {
		case errors.Is(err, partner.ErrInvalid):
			logging.WarnLog("Partner API failed: validation [%s]", emailHash)
			respondJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: "Validation failed", Fields: fields})
		case err != nil:
			respondJSON(w, http.StatusBadGateway, models.ToastResponse{ID: id, Toast: toast.ForSubmit(err)})
		default:
			logging.InfoLog("Partner API success [%s] %v", emailHash, time.Since(start))
			respondJSON(w, http.StatusOK, models.ToastResponse{ID: id, Toast: toast.ForSubmit(nil)})
		}
	}
}
