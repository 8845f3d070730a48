package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"schooladmin/internal/app/session"
	"schooladmin/internal/domain/auth"
	"schooladmin/internal/platform/requestctx"
	"schooladmin/internal/transport/http/api"
)

type ctxKey string

const ctxKeySession ctxKey = "session"

// SessionLookup resolves a session id to its live session.
type SessionLookup interface {
	Get(id string) (*session.Session, error)
}

// RequireSession admits requests carrying a valid bearer token for a live
// session and stores the session in the request context.
func RequireSession(secret string, sessions SessionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())
			token := bearerToken(r)
			if token == "" {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "session token required", requestID)
				return
			}
			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid session token", requestID)
				return
			}
			s, err := sessions.Get(claims.SessionID)
			if err != nil {
				code := "unauthorized"
				if errors.Is(err, session.ErrExpired) {
					code = "session_expired"
				}
				api.Fail(w, http.StatusUnauthorized, code, "session is no longer available", requestID)
				return
			}

			ctx := requestctx.WithSessionID(r.Context(), s.ID)
			ctx = context.WithValue(ctx, ctxKeySession, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSession(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(ctxKeySession).(*session.Session)
	return s, ok
}

func bearerToken(r *http.Request) string {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}
