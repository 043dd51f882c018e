package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/merute/welcome/internal/logging"
	"github.com/merute/welcome/internal/models"
	"github.com/merute/welcome/internal/utils"
)

// Submission is an accepted application ready to leave the site.
type Submission struct {
	ID          string                    `json:"id"`
	Application models.PartnerApplication `json:"application"`
	PhoneE164   string                    `json:"phoneE164"`
	ReceivedAt  time.Time                 `json:"receivedAt"`
}

// Submitter delivers an accepted application. Implementations must honour ctx.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, sub Submission) error

func (f SubmitterFunc) Submit(ctx context.Context, sub Submission) error { return f(ctx, sub) }

// SimulatedSubmitter stands in for the partner backend: it waits Delay and
// reports success.
type SimulatedSubmitter struct {
	Delay time.Duration
}

func (s SimulatedSubmitter) Submit(ctx context.Context, sub Submission) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return ctx.Err()
	}
	logging.InfoLog("Partner application received (simulated) id=[%s] email=[%s] phone=[%s]",
		utils.HashID(sub.ID), utils.HashEmail(sub.Application.Email), utils.HashPhone(sub.PhoneE164))
	return nil
}

// HTTPSubmitter posts the submission as JSON to URL.
type HTTPSubmitter struct {
	URL    string
	Client *http.Client
}

// NewHTTPSubmitter builds a submitter with a bounded client timeout.
func NewHTTPSubmitter(url string, timeout time.Duration) *HTTPSubmitter {
	return &HTTPSubmitter{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, sub Submission) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", sub.ID)

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post submission: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("partner api answered %d", resp.StatusCode)
	}
	return nil
}
