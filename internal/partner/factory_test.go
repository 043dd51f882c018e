package partner_test

import (
	"testing"
	"time"

	"github.com/merute/welcome/internal/partner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmitterFromConfig(t *testing.T) {
	t.Run("simulated", func(t *testing.T) {
		t.Setenv("PARTNER_SUBMITTER", "simulated")
		t.Setenv("SUBMIT_DELAY", "250ms")
		sub, err := partner.NewSubmitterFromConfig()
		require.NoError(t, err)
		assert.Equal(t, partner.SimulatedSubmitter{Delay: 250 * time.Millisecond}, sub)
	})

	t.Run("http", func(t *testing.T) {
		t.Setenv("PARTNER_SUBMITTER", "HTTP")
		t.Setenv("PARTNER_API_URL", "https://partners.example/applications")
		sub, err := partner.NewSubmitterFromConfig()
		require.NoError(t, err)
		require.IsType(t, &partner.HTTPSubmitter{}, sub)
		assert.Equal(t, "https://partners.example/applications", sub.(*partner.HTTPSubmitter).URL)
	})

	t.Run("smtp without dkim", func(t *testing.T) {
		t.Setenv("PARTNER_SUBMITTER", "smtp")
		t.Setenv("SMTP_ADDR", "localhost:2525")
		t.Setenv("DKIM_KEY_PATH", "")
		sub, err := partner.NewSubmitterFromConfig()
		require.NoError(t, err)
		assert.IsType(t, &partner.MailSubmitter{}, sub)
	})

	t.Run("smtp with unreadable key", func(t *testing.T) {
		t.Setenv("PARTNER_SUBMITTER", "smtp")
		t.Setenv("SMTP_ADDR", "localhost:2525")
		t.Setenv("DKIM_KEY_PATH", "/nonexistent/dkim.pem")
		_, err := partner.NewSubmitterFromConfig()
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		t.Setenv("PARTNER_SUBMITTER", "carrier-pigeon")
		_, err := partner.NewSubmitterFromConfig()
		assert.ErrorContains(t, err, "carrier-pigeon")
	})
}
