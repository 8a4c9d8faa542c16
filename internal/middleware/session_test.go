// session_test.go — Unit tests for session token handling.
//
// The session token is the identity the whole trial quota hangs off, so the
// mint/parse pair is worth pinning down.
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("session-abc", "secret")
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	claims, err := ParseSessionToken(token, "secret")
	if err != nil {
		t.Fatalf("ParseSessionToken() error = %v", err)
	}
	if claims.SessionID != "session-abc" {
		t.Errorf("SessionID = %q, want %q", claims.SessionID, "session-abc")
	}
}

func TestSessionTokenWrongSecretRejected(t *testing.T) {
	token, err := GenerateSessionToken("session-abc", "secret-a")
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	if _, err := ParseSessionToken(token, "secret-b"); err == nil {
		t.Error("ParseSessionToken() accepted a token signed with another secret")
	}
}

func TestSessionTokenGarbageRejected(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not a jwt", "not-a-token"},
		{"wrong segments", "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSessionToken(tt.token, "secret"); err == nil {
				t.Errorf("ParseSessionToken(%q) accepted garbage", tt.token)
			}
		})
	}
}

// newSessionTestRouter builds a router that echoes the resolved session id.
func newSessionTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionIdentity(secret, false))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, GetSessionID(c))
	})
	return r
}

func TestSessionIdentityMintsAndKeepsIdentity(t *testing.T) {
	r := newSessionTestRouter("secret")

	// First contact: a fresh identity is minted and set as a cookie.
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	r.ServeHTTP(w, req)

	firstID := w.Body.String()
	if firstID == "" {
		t.Fatal("no session id resolved on first request")
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("session cookie not set on first request")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	// Second request with the cookie: same identity.
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)

	if got := w.Body.String(); got != firstID {
		t.Errorf("session id changed across requests: %q != %q", got, firstID)
	}
}

func TestSessionIdentityRejectsTamperedCookie(t *testing.T) {
	r := newSessionTestRouter("secret")

	// A cookie signed with a different secret gets a brand-new identity
	// rather than trust.
	forged, err := GenerateSessionToken("attacker-chosen", "other-secret")
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: forged})
	r.ServeHTTP(w, req)

	if got := w.Body.String(); got == "attacker-chosen" {
		t.Error("forged session cookie was accepted")
	}
}

func TestSessionIdentityAcceptsBearerToken(t *testing.T) {
	r := newSessionTestRouter("secret")

	token, err := GenerateSessionToken("api-client-session", "secret")
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if got := w.Body.String(); got != "api-client-session" {
		t.Errorf("session id = %q, want %q", got, "api-client-session")
	}
}
