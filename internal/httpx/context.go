package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	usernameKey  contextKey = "username"
	sessionIDKey contextKey = "sessionID"
	requestIDKey contextKey = "requestID"
)

// UserIDFrom retrieves the authenticated user's id from the request context.
func UserIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// UsernameFrom retrieves the authenticated user's username from the request context.
func UsernameFrom(r *http.Request) string {
	if v, ok := r.Context().Value(usernameKey).(string); ok {
		return v
	}
	return ""
}

// SessionIDFrom retrieves the id of the session the request authenticated with.
func SessionIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(sessionIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithSession returns a new context carrying the authenticated identity.
func ContextWithSession(ctx context.Context, userID, username, sessionID string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, usernameKey, username)
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// RequestIDFrom retrieves the request id from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
