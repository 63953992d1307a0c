package middleware

import (
	"net/http"
	"strings"

	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/auth"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/http/respond"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/models"
)

// TokenParser verifies a bearer token and returns the identity it asserts.
type TokenParser interface {
	Parse(token string) (models.SessionUser, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// decoded session user in the request context.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "access denied, missing token")
				return
			}
			user, err := tokens.Parse(token)
			if err != nil {
				LoggerFrom(r.Context()).DebugContext(r.Context(), "token rejected", "error", err)
				respond.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

// RequireRole rejects authenticated users whose role differs from role.
// It must run after Authenticate.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "access denied, missing token")
				return
			}
			if user.Role != role {
				respond.Error(w, http.StatusForbidden, "access denied: "+role+" role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
