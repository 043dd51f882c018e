package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/merute/welcome/internal/config"
	"github.com/merute/welcome/internal/logging"
	"github.com/merute/welcome/internal/utils"
)

var ErrKeyNotInitialized = errors.New("Ed25519 key not initialized")

// IssueSessionToken signs a cookie value binding the browser to sessionID.
func IssueSessionToken(sessionID string, ttl time.Duration) (string, error) {
	key := GetSigningKey()
	if key == nil || key.PrivateKey == nil {
		logging.ErrorLog("Session token generation failed [%s]: Ed25519 key not initialized", utils.HashID(sessionID))
		return "", ErrKeyNotInitialized
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		Issuer:    config.SessionIssuer(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(key.PrivateKey)
	if err != nil {
		logging.ErrorLog("Session token signing failed [%s]: %v", utils.HashID(sessionID), err)
		return "", err
	}

	logging.DebugLog("Session token issued [%s]", utils.HashID(sessionID))
	return tokenStr, nil
}

// ParseSessionToken verifies a cookie value and returns its session id.
func ParseSessionToken(tokenStr string) (string, error) {
	key := GetSigningKey()
	if key == nil || key.PublicKey == nil {
		return "", ErrKeyNotInitialized
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (any, error) {
		return key.PublicKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithIssuer(config.SessionIssuer()),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		// Tampered or expired cookies are routine; keep them at debug level.
		logging.DebugLog("Session token rejected: %v", err)
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("session token has no subject")
	}
	return claims.Subject, nil
}
