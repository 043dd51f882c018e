package partner

import (
	"bytes"
	"context"
	"crypto"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"time"

	"github.com/emersion/go-msgauth/dkim"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/merute/welcome/internal/dataurl"
	"github.com/merute/welcome/internal/logging"
	"github.com/merute/welcome/internal/utils"
)

// MailConfig configures MailSubmitter.
type MailConfig struct {
	Addr     string
	Username string
	Password string
	From     string
	To       string

	// DKIM signing is enabled when Signer is set.
	DKIMDomain   string
	DKIMSelector string
	Signer       crypto.Signer
}

// MailSubmitter forwards applications to the partnerships inbox, with both
// identity card faces attached.
type MailSubmitter struct {
	cfg  MailConfig
	send func(addr string, a sasl.Client, from string, to []string, r io.Reader) error
}

// NewMailSubmitter returns a submitter relaying through cfg.Addr.
func NewMailSubmitter(cfg MailConfig) *MailSubmitter {
	return &MailSubmitter{cfg: cfg, send: smtp.SendMail}
}

func (m *MailSubmitter) Submit(ctx context.Context, sub Submission) error {
	msg, err := BuildMessage(m.cfg.From, m.cfg.To, sub)
	if err != nil {
		return err
	}
	if m.cfg.Signer != nil {
		if msg, err = m.sign(msg); err != nil {
			return err
		}
	}

	var auth sasl.Client
	if m.cfg.Username != "" {
		auth = sasl.NewPlainClient("", m.cfg.Username, m.cfg.Password)
	}

	// SendMail is not context aware; run it aside and stop waiting on ctx.
	resultCh := make(chan error, 1)
	go func() {
		resultCh <- m.send(m.cfg.Addr, auth, m.cfg.From, []string{m.cfg.To}, bytes.NewReader(msg))
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-resultCh:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
	}

	logging.InfoLog("Partner application mailed id=[%s] email=[%s]", utils.HashID(sub.ID), utils.HashEmail(sub.Application.Email))
	return nil
}

func (m *MailSubmitter) sign(msg []byte) ([]byte, error) {
	var signed bytes.Buffer
	opts := &dkim.SignOptions{
		Domain:   m.cfg.DKIMDomain,
		Selector: m.cfg.DKIMSelector,
		Signer:   m.cfg.Signer,
	}
	if err := dkim.Sign(&signed, bytes.NewReader(msg), opts); err != nil {
		return nil, fmt.Errorf("dkim sign: %w", err)
	}
	return signed.Bytes(), nil
}

// BuildMessage renders the submission as a multipart/mixed message with CRLF
// line endings.
func BuildMessage(from, to string, sub Submission) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := []struct{ k, v string }{
		{"From", from},
		{"To", to},
		{"Subject", mime.QEncoding.Encode("utf-8", "Nouvelle demande de partenariat Merute Pay")},
		{"Date", sub.ReceivedAt.UTC().Format(time.RFC1123Z)},
		{"Message-ID", fmt.Sprintf("<%s@merute.dev>", sub.ID)},
		{"MIME-Version", "1.0"},
		{"Content-Type", fmt.Sprintf("multipart/mixed; boundary=%q", mw.Boundary())},
	}
	var head bytes.Buffer
	for _, h := range header {
		fmt.Fprintf(&head, "%s: %s\r\n", h.k, h.v)
	}
	head.WriteString("\r\n")

	text, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/plain; charset=utf-8"},
		"Content-Transfer-Encoding": {"8bit"},
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(text, "Référence : %s\r\nEmail : %s\r\nTéléphone : %s\r\nReçue le : %s\r\n",
		sub.ID, sub.Application.Email, sub.PhoneE164, sub.ReceivedAt.UTC().Format(time.RFC3339))

	for _, att := range []struct{ name, data string }{
		{"cni-recto", sub.Application.CNIRecto},
		{"cni-verso", sub.Application.CNIVerso},
	} {
		mediaType, data, err := dataurl.Decode(att.data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", att.name, err)
		}
		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {mediaType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": att.name + dataurl.Extension(mediaType)})},
		})
		if err != nil {
			return nil, err
		}
		if err := writeBase64Lines(part, data); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	return append(head.Bytes(), buf.Bytes()...), nil
}

// writeBase64Lines wraps the encoding at 76 characters per line.
func writeBase64Lines(w io.Writer, data []byte) error {
	enc := base64.StdEncoding.EncodeToString(data)
	for len(enc) > 76 {
		if _, err := io.WriteString(w, enc[:76]+"\r\n"); err != nil {
			return err
		}
		enc = enc[76:]
	}
	_, err := io.WriteString(w, enc+"\r\n")
	return err
}

// LoadSigner reads a PEM encoded RSA or Ed25519 private key.
func LoadSigner(path string) (crypto.Signer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.New("dkim key: no PEM block")
	}
	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		signer, ok := key.(crypto.Signer)
		if !ok {
			return nil, errors.New("dkim key: not a signing key")
		}
		return signer, nil
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("dkim key: %w", err)
	}
	return key, nil
}
