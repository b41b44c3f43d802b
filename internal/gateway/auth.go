package gateway

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
	"github.com/lukaszlap/paragonyOSA/internal/store"
)

type contextKey string

const userContextKey contextKey = "gateway.user"

// userFrom extracts the authenticated user from a request context.
func userFrom(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userContextKey).(*domain.User)
	return u, ok
}

// bearerToken pulls the token out of the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireUser wraps a handler with bearer-token authentication. The token
// maps to a user row; failed attempts are rate limited per IP.
func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authLimiter.allow(r.RemoteAddr) {
			s.log.Warn().Str("remote", r.RemoteAddr).Msg("rate limited — too many failed auth attempts")
			writeError(w, http.StatusTooManyRequests, "too many failed authentication attempts")
			return
		}

		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, err := s.db.UserByToken(r.Context(), token)
		if errors.Is(err, store.ErrNotFound) {
			s.authLimiter.recordFailure(r.RemoteAddr)
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if err != nil {
			s.log.Error().Err(err).Msg("token lookup failed")
			writeError(w, http.StatusInternalServerError, "authentication unavailable")
			return
		}
		if user.Status == "blocked" {
			writeError(w, http.StatusForbidden, "account blocked")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	}
}
