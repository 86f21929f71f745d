package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultCookieName = "ap_session"

type Claims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// Signer 签发/校验浏览器会话 cookie 里的 token
type Signer struct {
	Secret       []byte
	Issuer       string
	TTL          time.Duration // 普通会话
	RememberTTL  time.Duration // remember=on 的长会话
	CookieName   string
	CookieSecure bool
}

func (s *Signer) cookieName() string {
	if s.CookieName == "" {
		return DefaultCookieName
	}
	return s.CookieName
}

func (s *Signer) ttl(remember bool) time.Duration {
	if remember && s.RememberTTL > 0 {
		return s.RememberTTL
	}
	return s.TTL
}

func (s *Signer) Issue(uid string, remember bool) (string, error) {
	now := time.Now()
	claims := Claims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl(remember))),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

func (s *Signer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return s.Secret, nil
	}, jwt.WithIssuer(s.Issuer), jwt.WithLeeway(60*time.Second))

	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

// SetCookie 登录成功后挂会话 cookie；remember 决定存活时长
func (s *Signer) SetCookie(c *gin.Context, uid string, remember bool) error {
	tok, err := s.Issue(uid, remember)
	if err != nil {
		return err
	}
	maxAge := 0 // session cookie，浏览器关闭即失效
	if remember {
		maxAge = int(s.ttl(true) / time.Second)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName(), tok, maxAge, "/", "", s.CookieSecure, true)
	return nil
}

func (s *Signer) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName(), "", -1, "/", "", s.CookieSecure, true)
}

// UIDFromRequest 从 cookie 解出已认证用户 ID；匿名返回 ""
func (s *Signer) UIDFromRequest(c *gin.Context) string {
	tok, err := c.Cookie(s.cookieName())
	if err != nil || tok == "" {
		return ""
	}
	claims, err := s.Parse(tok)
	if err != nil {
		return ""
	}
	return claims.UID
}
