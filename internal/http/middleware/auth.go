package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/inventory-manager/internal/auth"
)

type contextKey string

const subjectKey = contextKey("subject")

// Auth rejects requests without a valid bearer token signed with secret.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing or invalid token", http.StatusUnauthorized)
				return
			}

			subject, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func Subject(r *http.Request) string {
	if val, ok := r.Context().Value(subjectKey).(string); ok {
		return val
	}
	return ""
}
