package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/radyatamaa/myfuel-transaction-processor/internal/services"
)

const APIKeyHeader = "X-API-Key"

// WebhookAPIKey rejects requests whose X-API-Key header does not match expected.
// An empty expected key disables the check.
func WebhookAPIKey(expected string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expected == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(APIKeyHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
				services.SendErrorResponse(w, "Invalid webhook API key", http.StatusUnauthorized, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
