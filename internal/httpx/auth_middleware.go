package httpx

import (
	"net/http"

	"bookcase/internal/auth"
	"bookcase/internal/session"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "bookcase_session"

// AuthMiddleware gates mutating routes. The cookie's signature proves the
// token came from us; the referenced session must also still exist in the
// store, so a logged-out token is rejected even before its expiry.
func AuthMiddleware(secret string, sessions session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
				return
			}

			claims, err := auth.ParseSessionToken(secret, cookie.Value)
			if err != nil {
				JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
				return
			}

			sess, err := sessions.Get(r.Context(), claims.SessionID())
			if err != nil || sess.UserID != claims.Sub {
				JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
				return
			}

			ctx := ContextWithSession(r.Context(), sess.UserID, sess.Username, sess.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
