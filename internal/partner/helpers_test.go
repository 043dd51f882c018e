package partner_test

import (
	"context"
	"testing"

	"github.com/merute/welcome/internal/dataurl"
	"github.com/merute/welcome/internal/models"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func pngOfSize(n int) []byte {
	data := make([]byte, n)
	copy(data, pngMagic)
	return data
}

func pngURL(t *testing.T) string {
	t.Helper()
	u, err := dataurl.FromBytes(pngOfSize(64), 0)
	if err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return u
}

func validApplication(t *testing.T) models.PartnerApplication {
	t.Helper()
	return models.PartnerApplication{
		Email:    "awa@example.ci",
		Phone:    "+225 0707070707",
		CNIRecto: pngURL(t),
		CNIVerso: pngURL(t),
	}
}

// inlineRunner runs tasks on the caller's goroutine.
type inlineRunner struct{}

func (inlineRunner) Encode(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (inlineRunner) Submit(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
