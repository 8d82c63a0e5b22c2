package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/warehouse-inventory/internal/auth"
)

var tokenIssuer *auth.TokenIssuer

func SetTokenIssuer(t *auth.TokenIssuer) {
	tokenIssuer = t
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "Unauthorized",
		"message": message,
	})
}

// AuthMiddleware requires a valid bearer token and puts its username and role on the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(w, "missing or invalid token")
			return
		}

		if tokenIssuer == nil {
			unauthorized(w, "invalid token")
			return
		}

		claims, err := tokenIssuer.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			unauthorized(w, "invalid token")
			return
		}

		ctx := WithUser(r.Context(), claims.Username, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
