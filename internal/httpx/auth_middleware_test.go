package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookcase/internal/auth"
	"bookcase/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newSessionCookie(t *testing.T, store session.Store, userID string) *http.Cookie {
	t.Helper()

	sess := session.Session{
		ID:        "sess-1",
		UserID:    userID,
		Username:  "alice",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(context.Background(), sess))

	token, err := auth.GenerateSessionToken(testSecret, userID, sess.ID, time.Hour)
	require.NoError(t, err)

	return &http.Cookie{Name: SessionCookieName, Value: token}
}

func TestAuthMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-User", UserIDFrom(r))
		w.Header().Set("X-Session", SessionIDFrom(r))
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid session populates the request identity", func(t *testing.T) {
		store := session.NewMemoryStore()
		cookie := newSessionCookie(t, store, "user-1")

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/books", nil)
		r.AddCookie(cookie)
		AuthMiddleware(testSecret, store)(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", w.Header().Get("X-User"))
		assert.Equal(t, "sess-1", w.Header().Get("X-Session"))
	})

	t.Run("no cookie", func(t *testing.T) {
		store := session.NewMemoryStore()

		w := httptest.NewRecorder()
		AuthMiddleware(testSecret, store)(next).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/books", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		store := session.NewMemoryStore()
		cookie := newSessionCookie(t, store, "user-1")

		forged, err := auth.GenerateSessionToken("other-secret", "user-1", "sess-1", time.Hour)
		require.NoError(t, err)
		cookie.Value = forged

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/books", nil)
		r.AddCookie(cookie)
		AuthMiddleware(testSecret, store)(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("revoked session is rejected before token expiry", func(t *testing.T) {
		store := session.NewMemoryStore()
		cookie := newSessionCookie(t, store, "user-1")
		require.NoError(t, store.Delete(context.Background(), "sess-1"))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/books", nil)
		r.AddCookie(cookie)
		AuthMiddleware(testSecret, store)(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
