package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type contextKey string

const SessionIDKey contextKey = "sessionID"

// TokenFromRequest reads a bearer token from the Authorization header, or
// from the token query parameter for clients that cannot set headers.
func TokenFromRequest(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", false
		}
		return parts[1], true
	}
	token := r.URL.Query().Get("token")
	return token, token != ""
}

// SessionMiddleware admits requests carrying a valid token. When the route
// has a sessionId variable the token must have been issued for it.
func (s *Service) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := TokenFromRequest(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing authorization"})
			return
		}

		sessionID, err := s.ValidateToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}

		if want, ok := mux.Vars(r)["sessionId"]; ok && want != sessionID {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "token is for another session"})
			return
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func SessionIDFromContext(ctx context.Context) string {
	sessionID, _ := ctx.Value(SessionIDKey).(string)
	return sessionID
}
