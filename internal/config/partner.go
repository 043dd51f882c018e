package config

import (
	"strings"
	"time"
)

// SubmitDelay is the simulated network latency of the default submitter.
func SubmitDelay() time.Duration {
	return MustParseDuration("SUBMIT_DELAY", "1500ms")
}

// SubmitTimeout caps a single submission attempt.
func SubmitTimeout() time.Duration {
	return MustParseDuration("SUBMIT_TIMEOUT", "15s")
}

// PartnerSubmitter selects the submission collaborator: simulated, http or smtp.
func PartnerSubmitter() string {
	return strings.ToLower(GetEnv("PARTNER_SUBMITTER", "simulated"))
}

// PartnerAPIURL is the endpoint used by the http submitter.
func PartnerAPIURL() string {
	return MustGetEnv("PARTNER_API_URL")
}

// SMTPAddr is the host:port of the relay used by the smtp submitter.
func SMTPAddr() string {
	return MustGetEnv("SMTP_ADDR")
}

// SMTPUsername is optional; PLAIN auth is skipped when empty.
func SMTPUsername() string {
	return GetEnv("SMTP_USERNAME", "")
}

// SMTPPassword pairs with SMTPUsername.
func SMTPPassword() string {
	return GetEnv("SMTP_PASSWORD", "")
}

// SMTPFrom is the envelope and header sender of application mails.
func SMTPFrom() string {
	return GetEnv("SMTP_FROM", "no-reply@merute.dev")
}

// PartnerInbox receives partner applications.
func PartnerInbox() string {
	return GetEnv("PARTNER_INBOX", "partenaires@merute.dev")
}

// DKIMDomain is the signing domain; signing is disabled when DKIM_KEY_PATH is empty.
func DKIMDomain() string {
	return GetEnv("DKIM_DOMAIN", "merute.dev")
}

// DKIMSelector is the DNS selector of the signing key.
func DKIMSelector() string {
	return GetEnv("DKIM_SELECTOR", "default")
}

// DKIMKeyPath points at a PEM encoded private key.
func DKIMKeyPath() string {
	return GetEnv("DKIM_KEY_PATH", "")
}
