// internal/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dangerclosesec/directory/internal/auth"
	"github.com/dangerclosesec/directory/internal/model"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type PrincipalContextKey string

var PrincipalKey PrincipalContextKey = "directory_principal"

// APIKeyHeader carries the static key in apikey mode.
const APIKeyHeader = "X-API-Key"

// PrincipalFromContext returns the principal stored by AuthMiddleware.
func PrincipalFromContext(ctx context.Context) (*model.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(*model.Principal)
	return p, ok && p != nil
}

// AuthMiddleware extracts the credential for the guard's scheme and rejects
// the request with 401 unless the guard accepts it.
func AuthMiddleware(guard auth.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential, msg := extractCredential(guard.Scheme(), r)
			if msg != "" {
				unauthorized(w, guard.Scheme(), msg)
				return
			}

			principal, err := guard.Authorize(r.Context(), credential)
			if err != nil {
				slog.WarnContext(r.Context(), "Authorization failed", "error", err, "requestID", chimw.GetReqID(r.Context()))
				unauthorized(w, guard.Scheme(), "Could not validate credentials")
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractCredential(scheme auth.Scheme, r *http.Request) (string, string) {
	if scheme == auth.SchemeAPIKey {
		key := r.Header.Get(APIKeyHeader)
		if key == "" {
			return "", "Missing API key"
		}
		return key, ""
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", "No authorization header"
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "Invalid authorization header"
	}
	return parts[1], ""
}

func unauthorized(w http.ResponseWriter, scheme auth.Scheme, message string) {
	if scheme == auth.SchemeBearer {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	respondWithJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "error": message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
