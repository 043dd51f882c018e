package partner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/merute/welcome/internal/controller"
	"github.com/merute/welcome/internal/dataurl"
	"github.com/merute/welcome/internal/logging"
	"github.com/merute/welcome/internal/metrics"
	"github.com/merute/welcome/internal/models"
	"github.com/merute/welcome/internal/toast"
	"github.com/merute/welcome/internal/utils"
)

// ErrSubmitFailed wraps any error returned while delivering an application.
var ErrSubmitFailed = errors.New("partner submission failed")

// Runner executes work off the request goroutine. *manager.WorkManager
// satisfies it.
type Runner interface {
	Encode(ctx context.Context, fn func(ctx context.Context) error) error
	Submit(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service wires the dialog controller to encoding, validation and delivery.
type Service struct {
	validator *Validator
	submitter Submitter
	work      Runner
	inflight  *controller.InFlightRegistry
	metrics   *metrics.Metrics
	maxUpload int64
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records outcomes on m.
func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

// WithMaxUpload overrides the per-file size limit.
func WithMaxUpload(n int64) Option { return func(s *Service) { s.maxUpload = n } }

// NewService builds the partner service.
func NewService(v *Validator, sub Submitter, work Runner, opts ...Option) *Service {
	s := &Service{
		validator: v,
		submitter: sub,
		work:      work,
		inflight:  controller.NewInFlightRegistry(),
		maxUpload: dataurl.DefaultMaxBytes,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics.WatchInFlightSubmits(s.inflight.Count)
	return s
}

// Validator returns the form validator.
func (s *Service) Validator() *Validator { return s.validator }

// Upload encodes r into the side's slot. Oversized and non-image files are
// reported as field errors on the dialog and returned; an encode overtaken by
// a removal, reset or newer selection returns ErrStaleUpload and changes
// nothing.
func (s *Service) Upload(ctx context.Context, sess *Session, side Side, r io.Reader, size int64) error {
	ticket := sess.Dialog.BeginUpload(side)

	encoded, err := s.EncodeFile(ctx, r, size)
	if err != nil {
		msg, outcome := uploadFailure(err)
		if rerr := sess.Dialog.RejectUpload(ticket, msg); rerr != nil {
			outcome = metrics.UploadStale
		}
		s.metrics.ObserveUpload(string(side), outcome)
		logging.DebugLog("Upload rejected session=[%s] side=%s: %v", utils.HashID(sess.ID), side, err)
		return err
	}

	if err := sess.Dialog.CompleteUpload(ticket, encoded); err != nil {
		s.metrics.ObserveUpload(string(side), metrics.UploadStale)
		logging.DebugLog("Upload discarded session=[%s]: %v", utils.HashID(sess.ID), err)
		return err
	}
	s.metrics.ObserveUpload(string(side), metrics.UploadAccepted)
	return nil
}

// EncodeFile turns an upload into a data URL on the encode pool.
func (s *Service) EncodeFile(ctx context.Context, r io.Reader, size int64) (string, error) {
	var encoded string
	err := s.work.Encode(ctx, func(ctx context.Context) error {
		var encErr error
		encoded, encErr = dataurl.Encode(r, size, s.maxUpload)
		return encErr
	})
	if err != nil {
		return "", err
	}
	return encoded, nil
}

// UploadMessage maps an encoding error to its field message.
func UploadMessage(err error) string {
	msg, _ := uploadFailure(err)
	return msg
}

func uploadFailure(err error) (string, string) {
	switch {
	case errors.Is(err, dataurl.ErrTooLarge):
		return MsgTooLarge, metrics.UploadTooLarge
	case errors.Is(err, dataurl.ErrNotImage), errors.Is(err, dataurl.ErrEmpty):
		return MsgNotImage, metrics.UploadNotImage
	default:
		return MsgUploadErr, metrics.UploadError
	}
}

// Submit validates the session's form and delivers it. A second submit of
// the same session while one runs waits for it and returns
// ErrSubmitInProgress without adding a notification. Exactly one toast is
// pushed per delivered attempt.
func (s *Service) Submit(ctx context.Context, sess *Session) (toast.Toast, error) {
	release, done, ok := s.inflight.Acquire(sess.ID)
	if !ok {
		s.metrics.ObserveSubmission(metrics.OutcomeDuplicate, 0)
		select {
		case <-done:
		case <-ctx.Done():
		}
		return toast.Toast{}, ErrSubmitInProgress
	}
	defer release()

	app, err := sess.Dialog.BeginSubmit(s.validator)
	if err != nil {
		if errors.Is(err, ErrInvalid) {
			s.metrics.ObserveSubmission(metrics.OutcomeInvalid, 0)
		}
		return toast.Toast{}, err
	}

	// The attempt outlives a client that navigates away; the submit pool's
	// timeout bounds it instead.
	_, err = s.deliver(context.WithoutCancel(ctx), app)
	sess.Dialog.FinishSubmit(err)

	t := toast.ForSubmit(err)
	sess.Toasts.Push(t.Kind, t.Message)
	return t, err
}

// SubmitApplication validates and delivers an application outside of any
// dialog session. Field errors are returned alongside ErrInvalid.
func (s *Service) SubmitApplication(ctx context.Context, app models.PartnerApplication) (string, map[string]string, error) {
	if errs := s.validator.Application(app); len(errs) > 0 {
		s.metrics.ObserveSubmission(metrics.OutcomeInvalid, 0)
		return "", errs, fmt.Errorf("%w: %d field(s)", ErrInvalid, len(errs))
	}
	id, err := s.deliver(ctx, app)
	return id, nil, err
}

func (s *Service) deliver(ctx context.Context, app models.PartnerApplication) (string, error) {
	sub := Submission{
		ID:          uuid.NewString(),
		Application: app,
		PhoneE164:   NormalizePhone(app.Phone),
		ReceivedAt:  s.now(),
	}

	start := time.Now()
	err := s.work.Submit(ctx, func(ctx context.Context) error {
		return s.submitter.Submit(ctx, sub)
	})
	duration := time.Since(start)

	if err != nil {
		s.metrics.ObserveSubmission(metrics.OutcomeFailure, duration)
		logging.ErrorLog("Partner submission failed id=[%s] email=[%s] %v: %v",
			utils.HashID(sub.ID), utils.HashEmail(app.Email), duration, err)
		return sub.ID, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	s.metrics.ObserveSubmission(metrics.OutcomeSuccess, duration)
	logging.InfoLog("Partner submission delivered id=[%s] email=[%s] %v",
		utils.HashID(sub.ID), utils.HashEmail(app.Email), duration)
	return sub.ID, nil
}
