package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of the signed session cookie. The cookie only
// proves the token was minted by this server; the session it names must still
// exist in the session store, so logout revokes access immediately.
type SessionClaims struct {
	Sub string `json:"sub"` // user id
	jwt.RegisteredClaims
}

// SessionID returns the id of the server-side session this token refers to.
func (c *SessionClaims) SessionID() string {
	return c.ID
}

func GenerateSessionToken(secret, userID, sessionID string, ttl time.Duration) (string, error) {
	c := SessionClaims{
		Sub: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(secret))
}

func ParseSessionToken(secret, tokenStr string) (*SessionClaims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := t.Claims.(*SessionClaims); ok && t.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
