// Package auth guards the API with a single shared bearer token.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

// BearerTokenMiddleware authenticates API requests against a configured token.
type BearerTokenMiddleware struct {
	hash [sha256.Size]byte
}

// NewBearerTokenMiddleware creates a middleware accepting exactly token.
// Only the SHA-256 digest of the token is retained.
func NewBearerTokenMiddleware(token string) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{hash: HashToken(token)}
}

// HashToken returns the SHA-256 digest of a plaintext token.
func HashToken(plaintext string) [sha256.Size]byte {
	return sha256.Sum256([]byte(plaintext))
}

// Authenticate is an http.Handler middleware that extracts and validates a Bearer token.
// WHEN valid: passes the request through unchanged.
// WHEN invalid/missing: returns 401 with {"error":{"message":"Unauthorized request"}}.
func (m *BearerTokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeUnauthorized(w)
			return
		}
		plaintext := strings.TrimPrefix(authHeader, "Bearer ")
		if plaintext == "" {
			writeUnauthorized(w)
			return
		}

		// Compare digests so the comparison time does not depend on token length.
		got := HashToken(plaintext)
		if subtle.ConstantTimeCompare(got[:], m.hash[:]) != 1 {
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeUnauthorized writes a 401 JSON response in the API error shape.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"message": "Unauthorized request"},
	})
}
