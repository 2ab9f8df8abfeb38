package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"bookcase/internal/auth"
	"bookcase/internal/httpx"
	"bookcase/internal/session"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HTTPHandler struct {
	svc        *Service
	sessions   session.Store
	secret     string
	sessionTTL time.Duration
}

func NewHTTPHandler(svc *Service, sessions session.Store, secret string, sessionTTL time.Duration) *HTTPHandler {
	return &HTTPHandler{
		svc:        svc,
		sessions:   sessions,
		secret:     secret,
		sessionTTL: sessionTTL,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=3"`
}

// Register handles POST /users.
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	u, err := h.svc.Register(r.Context(), req.Username, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "username already taken", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, u)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Login handles POST /login: verify credentials, create a server-side
// session and hand the browser a signed session cookie.
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	u, err := h.svc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	now := time.Now()
	sess := session.Session{
		ID:        uuid.New().String(),
		UserID:    u.ID.Hex(),
		Username:  u.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(h.sessionTTL),
	}
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	token, err := auth.GenerateSessionToken(h.secret, sess.UserID, sess.ID, h.sessionTTL)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	httpx.JSON(w, http.StatusOK, loginResponse{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Name:     u.Name,
	})
}

// Logout handles DELETE /logout: destroy the server-side session and expire
// the cookie.
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := httpx.SessionIDFrom(r)
	if sessionID == "" {
		httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	if err := h.sessions.Delete(r.Context(), sessionID); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	httpx.NoContent(w)
}

// Me handles GET /me.
func (h *HTTPHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(httpx.UserIDFrom(r))
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	u, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, u)
}
