package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/merute/welcome/internal/logging"
	"github.com/merute/welcome/internal/models"
	"github.com/merute/welcome/internal/partner"
	"github.com/merute/welcome/internal/utils"
	"github.com/merute/welcome/internal/view"
)

const (
	partnerLocation = "/?dialog=" + view.DialogPartner
	homeLocation    = "/"

	// multipartMemory is kept in memory; larger parts spill to temp files.
	multipartMemory = 1 << 20
)

// parseForm accepts both urlencoded and multipart bodies.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	return err
}

func cleanupForm(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}

func isBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

// applyContact stores email and phone when the request carries them.
func applyContact(r *http.Request, sess *partner.Session) bool {
	if _, ok := r.Form[models.FieldEmail]; !ok {
		if _, ok := r.Form[models.FieldPhone]; !ok {
			return false
		}
	}
	sess.Dialog.SetContact(r.FormValue(models.FieldEmail), r.FormValue(models.FieldPhone))
	return true
}

func sessionOrFail(sessions *Sessions, w http.ResponseWriter, r *http.Request) (*partner.Session, bool) {
	sess, err := sessions.Ensure(w, r)
	if err != nil {
		logging.ErrorLog("Partner session unavailable: %v", err)
		http.Error(w, "Service temporairement indisponible", http.StatusServiceUnavailable)
		return nil, false
	}
	sess.Dialog.Open()
	return sess, true
}

func sideParam(w http.ResponseWriter, r *http.Request) (partner.Side, bool) {
	side, ok := partner.ParseSide(chi.URLParam(r, "side"))
	if !ok {
		http.NotFound(w, r)
	}
	return side, ok
}

// PartnerContactHandler saves the contact fields and validates them.
func PartnerContactHandler(sessions *Sessions, svc *partner.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionOrFail(sessions, w, r)
		if !ok {
			return
		}
		if err := parseForm(r); err != nil {
			logging.WarnLog("Partner contact: bad form [%s]: %v", utils.HashID(sess.ID), err)
			seeOther(w, r, partnerLocation)
			return
		}
		defer cleanupForm(r)

		applyContact(r, sess)
		sess.Dialog.ValidateFields(svc.Validator(), models.FieldEmail, models.FieldPhone)
		seeOther(w, r, partnerLocation)
	}
}

// PartnerUploadHandler encodes one identity card face into the dialog.
func PartnerUploadHandler(sessions *Sessions, svc *partner.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		side, ok := sideParam(w, r)
		if !ok {
			return
		}
		sess, ok := sessionOrFail(sessions, w, r)
		if !ok {
			return
		}

		if err := parseForm(r); err != nil {
			if isBodyTooLarge(err) {
				_ = sess.Dialog.RejectUpload(sess.Dialog.BeginUpload(side), partner.MsgTooLarge)
			} else {
				logging.WarnLog("Partner upload: bad form [%s]: %v", utils.HashID(sess.ID), err)
			}
			seeOther(w, r, partnerLocation)
			return
		}
		defer cleanupForm(r)
		applyContact(r, sess)

		if raw := r.FormValue(view.GenerationField(side)); raw != "" {
			gen, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || gen != sess.Dialog.Snapshot().InputKeys[side] {
				logging.DebugLog("Partner upload ignored: stale form [%s] side=%s", utils.HashID(sess.ID), side)
				seeOther(w, r, partnerLocation)
				return
			}
		}

		file, header, err := formFile(r, "file", side.Field())
		if err != nil {
			seeOther(w, r, partnerLocation)
			return
		}
		defer file.Close()

		if err := svc.Upload(r.Context(), sess, side, file, header.Size); err != nil {
			logging.DebugLog("Partner upload [%s] side=%s: %v", utils.HashID(sess.ID), side, err)
		}
		seeOther(w, r, partnerLocation)
	}
}

// formFile returns the first non-empty file among names.
func formFile(r *http.Request, names ...string) (multipart.File, *multipart.FileHeader, error) {
	for _, name := range names {
		file, header, err := r.FormFile(name)
		if err == nil {
			return file, header, nil
		}
		if !errors.Is(err, http.ErrMissingFile) {
			return nil, nil, err
		}
	}
	return nil, nil, http.ErrMissingFile
}

// PartnerRemoveHandler clears one face so the same file can be picked again.
func PartnerRemoveHandler(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		side, ok := sideParam(w, r)
		if !ok {
			return
		}
		sess, ok := sessionOrFail(sessions, w, r)
		if !ok {
			return
		}
		sess.Dialog.RemoveImage(side)
		seeOther(w, r, partnerLocation)
	}
}

// PartnerCloseHandler resets and closes the dialog.
func PartnerCloseHandler(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := sessions.Lookup(r); ok {
			sess.Dialog.Dismiss()
		}
		seeOther(w, r, homeLocation)
	}
}

// PartnerSubmitHandler takes the whole form at once: contact fields, any
// newly selected files, then validation and delivery.
func PartnerSubmitHandler(sessions *Sessions, svc *partner.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionOrFail(sessions, w, r)
		if !ok {
			return
		}

		if err := parseForm(r); err != nil {
			logging.WarnLog("Partner submit: bad form [%s]: %v", utils.HashID(sess.ID), err)
			if isBodyTooLarge(err) {
				for _, side := range partner.Sides {
					_ = sess.Dialog.RejectUpload(sess.Dialog.BeginUpload(side), partner.MsgTooLarge)
				}
			}
			seeOther(w, r, partnerLocation)
			return
		}
		defer cleanupForm(r)
		applyContact(r, sess)

		uploadFailed := false
		for _, side := range partner.Sides {
			file, header, err := r.FormFile(side.Field())
			if err != nil {
				continue
			}
			if err := svc.Upload(r.Context(), sess, side, file, header.Size); err != nil {
				uploadFailed = true
			}
			file.Close()
		}
		if uploadFailed {
			seeOther(w, r, partnerLocation)
			return
		}

		if _, err := svc.Submit(r.Context(), sess); err != nil {
			logging.DebugLog("Partner submit [%s]: %v", utils.HashID(sess.ID), err)
		}
		if sess.Dialog.IsOpen() {
			seeOther(w, r, partnerLocation)
			return
		}
		seeOther(w, r, homeLocation)
	}
}
