package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session"

// AuthCachePrefix namespaces session entries in the auth cache.
const AuthCachePrefix = "session:"

// NewSessionToken generates an opaque session token. A fresh token is
// issued on every successful login, rotating any previous session.
func NewSessionToken() string {
	return uuid.New().String()
}

// HashToken computes a SHA-256 hash of the token string. Only the hash
// is persisted; the raw token lives in the client cookie.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
