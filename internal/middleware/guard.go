package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"sheep-dashboard/internal/ports/capabilities"
)

// RequireAuth corta con 401 si no hay sesión.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Require exige sesión (401) y la capability indicada (403).
// El mismo resolver arma el menú de GET /me.
func Require(resolver capabilities.Resolver, c capabilities.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok || strings.TrimSpace(claims.UserID) == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if resolver == nil || !resolver.Has(r.Context(), claims, c) {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
