package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sidequesthq/sidequest/internal/application/ports"
)

// AuthValidator verifies the bearer token and sets the identity in context
// (see IdentityFromContext). Missing and invalid tokens produce the same
// 401 body; the verification cause is only logged.
type AuthValidator struct {
	issuer ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthValidator(issuer ports.TokenIssuer, log zerolog.Logger) *AuthValidator {
	return &AuthValidator{issuer: issuer, log: log}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			writeUnauthorized(w)
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")
		userID, username, err := m.issuer.Verify(tokenString)
		if err != nil {
			m.log.Debug().Err(err).Str("path", r.URL.Path).Msg("token rejected")
			writeUnauthorized(w)
			return
		}
		ctx := WithIdentity(r.Context(), Identity{ID: userID, Username: username})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "authentication required",
		"code":  "unauthorized",
	})
}
