package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"os"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/Greggwolin/landscape-sub003/internal/api/response"
)

// timeTokenTTL bounds how long a generated time token stays valid. Tokens
// are single-purpose replay protection for internal endpoints, so the window
// is kept short.
const timeTokenTTL = 60 * time.Second

// APIKeyMiddleware guards internal endpoints. Requests must carry the shared
// key in X-API-Key and a fresh fernet time token in X-Time-Token. The token
// is encrypted with a key derived from the API key, so holding the key is
// required both to call and to mint tokens.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := os.Getenv("INTERNAL_API_KEY")
		if apiKey == "" {
			response.RespondError(w, http.StatusInternalServerError, "internal error", "Authentication not loaded")
			return
		}

		providedKey := r.Header.Get("X-API-Key")
		if providedKey == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}

		if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		timeToken := r.Header.Get("X-Time-Token")
		if timeToken == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
			return
		}

		msg := fernet.VerifyAndDecrypt([]byte(timeToken), timeTokenTTL, []*fernet.Key{fernetKeyFromAPIKey(apiKey)})
		if msg == nil {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GenerateTimeToken mints a time token for the given API key. Exposed for
// internal callers (and tests) that drive protected endpoints.
func GenerateTimeToken(apiKey string) string {
	token, err := fernet.EncryptAndSign([]byte(time.Now().UTC().Format(time.RFC3339)), fernetKeyFromAPIKey(apiKey))
	if err != nil {
		return ""
	}
	return string(token)
}

// fernetKeyFromAPIKey derives the 32-byte fernet key from the shared API key.
func fernetKeyFromAPIKey(apiKey string) *fernet.Key {
	sum := sha256.Sum256([]byte(apiKey))
	var key fernet.Key
	copy(key[:], sum[:])
	return &key
}
