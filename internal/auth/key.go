package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/merute/welcome/internal/logging"
)

type SigningKey struct {
	PrivateKey ed25519.PrivateKey
	PublicKey  ed25519.PublicKey
}

var (
	signingKey *SigningKey
	once       sync.Once
)

// NewSigningKey derives a key from a hex-encoded 32 byte seed, or generates
// a random one when seedHex is empty.
func NewSigningKey(seedHex string) (*SigningKey, error) {
	if seedHex == "" {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("generate Ed25519 key: %w", err)
		}
		return &SigningKey{PrivateKey: priv, PublicKey: pub}, nil
	}

	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, fmt.Errorf("decode signing seed: %w", err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("signing seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &SigningKey{PrivateKey: priv, PublicKey: priv.Public().(ed25519.PublicKey)}, nil
}

// InitSigningKey installs the process-wide session signing key. Only the
// first call has an effect.
func InitSigningKey(seedHex string) error {
	var err error
	once.Do(func() {
		start := time.Now()
		logging.DebugLog("Ed25519 key setup started")

		var key *SigningKey
		key, err = NewSigningKey(seedHex)
		if err != nil {
			logging.ErrorLog("Ed25519 key setup failed: %v", err)
			return
		}
		signingKey = key

		source := "generated"
		if seedHex != "" {
			source = "seed"
		}
		logging.InfoLog("Ed25519 key setup success (%s) %v", source, time.Since(start))
	})
	return err
}

func GetSigningKey() *SigningKey {
	if signingKey == nil {
		logging.WarnLog("Signing key accessed before initialization")
	}
	return signingKey
}
