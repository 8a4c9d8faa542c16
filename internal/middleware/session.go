// Package middleware provides HTTP middleware for the API.
//
// session.go establishes anonymous per-browser identity. Every visitor gets
// an opaque session id minted on first contact and carried in a signed
// HttpOnly cookie — this is what the trial quota is keyed by. No accounts,
// no login.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "pdfai_session"

	sessionContextKey = "session_id"
	sessionMaxAge     = 30 * 24 * time.Hour
)

// SessionClaims is the JWT payload for a session token.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a session id into a token.
func GenerateSessionToken(sessionID, secret string) (string, error) {
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionMaxAge)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   sessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken validates and parses a session token string.
func ParseSessionToken(tokenString, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid && claims.SessionID != "" {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}

// SessionIdentity returns middleware that attaches a session id to every
// request, minting a fresh identity when the cookie is missing, expired, or
// tampered with. Non-browser clients may instead send the token as
// "Authorization: Bearer <token>".
//
// The cookie is re-issued on every request, so an active session never
// expires out from under the user.
func SessionIdentity(secret string, isRelease bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := ""

		if cookie, err := c.Cookie(SessionCookieName); err == nil {
			if claims, err := ParseSessionToken(cookie, secret); err == nil {
				sessionID = claims.SessionID
			}
		}

		if sessionID == "" {
			if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
				tokenString := strings.TrimPrefix(authHeader, "Bearer ")
				if claims, err := ParseSessionToken(tokenString, secret); err == nil {
					sessionID = claims.SessionID
				}
			}
		}

		if sessionID == "" {
			sessionID = uuid.New().String()
		}

		token, err := GenerateSessionToken(sessionID, secret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "session_error",
				"message": "Failed to establish session identity",
				"code":    http.StatusInternalServerError,
			})
			c.Abort()
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookieName, token, int(sessionMaxAge.Seconds()), "/", "", isRelease, true)

		c.Set(sessionContextKey, sessionID)
		c.Next()
	}
}

// GetSessionID retrieves the session id set by SessionIdentity.
func GetSessionID(c *gin.Context) string {
	val, exists := c.Get(sessionContextKey)
	if !exists {
		return ""
	}
	id, ok := val.(string)
	if !ok {
		return ""
	}
	return id
}
