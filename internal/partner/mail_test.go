package partner

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/merute/welcome/internal/dataurl"
	"github.com/merute/welcome/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSubmission(t *testing.T) Submission {
	t.Helper()
	img := make([]byte, 200)
	copy(img, "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	u, err := dataurl.FromBytes(img, 0)
	require.NoError(t, err)
	return Submission{
		ID: "7d1c5a36-2f4e-4b7a-9d59-0f1f0c3b8e21",
		Application: models.PartnerApplication{
			Email: "awa@example.ci", Phone: "+225 0707070707", CNIRecto: u, CNIVerso: u,
		},
		PhoneE164:  "+2250707070707",
		ReceivedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestBuildMessage(t *testing.T) {
	raw, err := BuildMessage("site@merute.dev", "partners@merute.dev", testSubmission(t))
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "partners@merute.dev", msg.Header.Get("To"))
	assert.Contains(t, msg.Header.Get("Message-Id"), "7d1c5a36")

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(msg.Body, params["boundary"])
	var filenames []string
	var body string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if name := part.FileName(); name != "" {
			filenames = append(filenames, name)
			assert.Equal(t, "image/png", part.Header.Get("Content-Type"))
			continue
		}
		b, err := io.ReadAll(part)
		require.NoError(t, err)
		body = string(b)
	}

	assert.Equal(t, []string{"cni-recto.png", "cni-verso.png"}, filenames)
	assert.Contains(t, body, "awa@example.ci")
	assert.Contains(t, body, "+2250707070707")
}

func TestBuildMessageRejectsBadImage(t *testing.T) {
	sub := testSubmission(t)
	sub.Application.CNIVerso = "not a data url"
	_, err := BuildMessage("a@b.c", "d@e.f", sub)
	assert.ErrorIs(t, err, dataurl.ErrMalformed)
}

func TestMailSubmitter(t *testing.T) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	t.Run("signs and relays", func(t *testing.T) {
		var gotTo []string
		var gotMsg []byte
		var gotAuth sasl.Client
		m := NewMailSubmitter(MailConfig{
			Addr: "smtp.example:587", Username: "site", Password: "secret",
			From: "site@merute.dev", To: "partners@merute.dev",
			DKIMDomain: "merute.dev", DKIMSelector: "site", Signer: key,
		})
		m.send = func(addr string, a sasl.Client, from string, to []string, r io.Reader) error {
			gotAuth, gotTo = a, to
			gotMsg, _ = io.ReadAll(r)
			return nil
		}

		require.NoError(t, m.Submit(context.Background(), testSubmission(t)))
		assert.NotNil(t, gotAuth)
		assert.Equal(t, []string{"partners@merute.dev"}, gotTo)
		assert.True(t, strings.HasPrefix(string(gotMsg), "DKIM-Signature:"))
		assert.Contains(t, string(gotMsg), "d=merute.dev")
	})

	t.Run("stops waiting on cancellation", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		m := NewMailSubmitter(MailConfig{Addr: "smtp.example:25", From: "a@b.c", To: "d@e.f"})
		m.send = func(string, sasl.Client, string, []string, io.Reader) error {
			<-release
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, m.Submit(ctx, testSubmission(t)), context.DeadlineExceeded)
	})
}

func TestLoadSigner(t *testing.T) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dkim.pem")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), 0o600))

	signer, err := LoadSigner(path)
	require.NoError(t, err)
	assert.Equal(t, key.Public(), signer.Public())

	_, err = LoadSigner(filepath.Join(t.TempDir(), "missing.pem"))
	assert.Error(t, err)
}
