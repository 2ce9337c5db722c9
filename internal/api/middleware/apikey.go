package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/skintrack/skin-ledger-backend/internal/api/response"
)

// APIKeyMiddleware guards mutating endpoints with a shared secret.
// Clients must send the key in the X-API-Key header; the expected value is
// read from the INTERNAL_API_KEY environment variable on every request so
// rotated keys take effect without a restart.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			response.RespondError(w, http.StatusInternalServerError, "internal error", "Authentication not loaded")
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
