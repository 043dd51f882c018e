package config

import "time"

// SessionTTL is how long an idle partner dialog session is kept.
func SessionTTL() time.Duration {
	return MustParseDuration("SESSION_TTL", "30m")
}

// SessionIssuer is the iss claim of dialog session tokens.
func SessionIssuer() string {
	return GetEnv("SESSION_ISSUER", "merute-welcome")
}

// SessionSigningSeed is an optional hex-encoded 32 byte Ed25519 seed. When
// empty a key is generated at startup and sessions do not survive restarts.
func SessionSigningSeed() string {
	return GetEnv("SESSION_SIGNING_SEED", "")
}

// MaxSessions caps the dialog sessions held in memory. Each one may hold two
// image previews, so this bounds upload memory.
func MaxSessions() int {
	return parseIntEnv("MAX_SESSIONS", 1000)
}

// SecureCookies marks the session cookie Secure. Enable it when TLS is
// terminated in front of the server; browsers drop Secure cookies received
// over plain HTTP.
func SecureCookies() bool {
	return GetEnv("SECURE_COOKIES", "false") == "true"
}
