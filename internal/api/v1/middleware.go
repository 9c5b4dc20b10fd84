package v1

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vmunix/medley/internal/userdata"
)

type contextKey string

const userContextKey contextKey = "user"

// userFrom returns the authenticated user stashed by requireUser, nil when
// the request did not pass through it.
func userFrom(r *http.Request) *userdata.User {
	u, _ := r.Context().Value(userContextKey).(*userdata.User)
	return u
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

// requireUsers wraps a handler and returns 503 if the user store is not configured.
func (s *Server) requireUsers(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Users == nil {
			writeError(w, http.StatusServiceUnavailable, "NO_USER_STORE", "User store not configured")
			return
		}
		next(w, r)
	}
}

// requireUser authenticates the bearer token and stashes the resolved user in
// the request context.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Users == nil {
			writeError(w, http.StatusServiceUnavailable, "NO_USER_STORE", "User store not configured")
			return
		}
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required")
			return
		}
		user, err := s.deps.Users.UserForToken(token)
		if err != nil {
			if errors.Is(err, userdata.ErrSessionNotFound) {
				writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Session expired or unknown")
				return
			}
			writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}
