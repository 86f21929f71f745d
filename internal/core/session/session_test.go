package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newSigner() *Signer {
	return &Signer{
		Secret:      []byte("test-secret"),
		Issuer:      "account-portal",
		TTL:         time.Hour,
		RememberTTL: 14 * 24 * time.Hour,
	}
}

func TestIssueParse(t *testing.T) {
	s := newSigner()
	tok, err := s.Issue("u1", false)
	require.NoError(t, err)

	claims, err := s.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UID)
	require.Equal(t, "account-portal", claims.Issuer)
}

func TestParseRejectsForgedToken(t *testing.T) {
	s := newSigner()
	other := &Signer{Secret: []byte("other-secret"), Issuer: s.Issuer, TTL: time.Hour}
	tok, err := other.Issue("u1", false)
	require.NoError(t, err)

	_, err = s.Parse(tok)
	require.Error(t, err)

	_, err = s.Parse("garbage")
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	s := newSigner()
	s.TTL = -2 * time.Minute // 已过期（超过 60s leeway）
	tok, err := s.Issue("u1", false)
	require.NoError(t, err)

	_, err = s.Parse(tok)
	require.Error(t, err)
}

func TestRememberSelectsLongTTL(t *testing.T) {
	s := newSigner()
	tok, err := s.Issue("u1", true)
	require.NoError(t, err)
	claims, err := s.Parse(tok)
	require.NoError(t, err)
	require.Greater(t, claims.ExpiresAt.Time, time.Now().Add(13*24*time.Hour))
}

func ginCtx(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func TestCookieRoundTrip(t *testing.T) {
	s := newSigner()
	c, rec := ginCtx(t)
	require.NoError(t, s.SetCookie(c, "u1", false))

	set := rec.Header().Get("Set-Cookie")
	require.Contains(t, set, DefaultCookieName+"=")
	require.Contains(t, set, "HttpOnly")
	require.Contains(t, strings.ToLower(set), "samesite=lax")

	// 把响应里的 cookie 塞回请求再解
	c2, _ := ginCtx(t)
	for _, ck := range rec.Result().Cookies() {
		c2.Request.AddCookie(ck)
	}
	require.Equal(t, "u1", s.UIDFromRequest(c2))
}

func TestClearCookie(t *testing.T) {
	s := newSigner()
	c, rec := ginCtx(t)
	s.ClearCookie(c)
	require.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestUIDFromRequestAnonymous(t *testing.T) {
	s := newSigner()
	c, _ := ginCtx(t)
	require.Empty(t, s.UIDFromRequest(c))

	c2, _ := ginCtx(t)
	c2.Request.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "not-a-token"})
	require.Empty(t, s.UIDFromRequest(c2))
}
