package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-account-portal/internal/core/session"
	"go-account-portal/internal/domain"
)

func TestSafeNext(t *testing.T) {
	require.Equal(t, "/dashboard", SafeNext("/dashboard"))
	require.Equal(t, "/dashboard?tab=1", SafeNext("/dashboard?tab=1"))
	require.Empty(t, SafeNext(""))
	require.Empty(t, SafeNext("https://evil.example"))
	require.Empty(t, SafeNext("//evil.example"))
	require.Empty(t, SafeNext("dashboard"))
}

func TestRestoreSessionLogsStorageFault(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.ErrorLevel)
	signer := &session.Signer{Secret: []byte("test-secret"), Issuer: "t", TTL: time.Hour}
	tok, err := signer.Issue("u1", false)
	require.NoError(t, err)

	r := gin.New()
	r.Use(RestoreSession(signer, func(context.Context, string) (*domain.User, error) {
		return nil, errors.New("db down")
	}, zap.New(core)))
	r.GET("/", func(c *gin.Context) {
		// 故障时保持匿名，请求照常进来
		require.Nil(t, UserFrom(c))
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: tok})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, logs.FilterMessage("session restore failed").Len())
}

func TestRestoreSessionHappyPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	signer := &session.Signer{Secret: []byte("test-secret"), Issuer: "t", TTL: time.Hour}
	tok, err := signer.Issue("u1", false)
	require.NoError(t, err)

	r := gin.New()
	r.Use(RestoreSession(signer, func(_ context.Context, id string) (*domain.User, error) {
		return &domain.User{ID: id, Name: "Al"}, nil
	}, zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		u := UserFrom(c)
		require.NotNil(t, u)
		require.Equal(t, "u1", u.ID)
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: tok})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
