package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/fanilo/ariary-rates/internal/api/problem"
	"github.com/golang-jwt/jwt/v5"
)

var adminSecret []byte

// SetAdminSecret configures the HS256 secret guarding destructive admin
// routes. An empty secret leaves those routes open (local/dev mode).
func SetAdminSecret(secret string) {
	if secret == "" {
		adminSecret = nil
		return
	}
	adminSecret = []byte(secret)
}

// AdminMiddleware validates a bearer token on destructive routes. With no
// secret configured it is a no-op.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(adminSecret) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			problem.Write(w, r, http.StatusUnauthorized, problem.Type("auth/authorization-header-required"), http.StatusText(http.StatusUnauthorized), "Authorization header required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			problem.Write(w, r, http.StatusUnauthorized, problem.Type("auth/invalid-token-format"), http.StatusText(http.StatusUnauthorized), "Invalid token format")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
			}
			return adminSecret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			problem.Write(w, r, http.StatusUnauthorized, problem.Type("auth/invalid-token"), http.StatusText(http.StatusUnauthorized), "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
