package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-account-portal/internal/core/session"
	"go-account-portal/internal/domain"
)

const keyCurrentUser = "currentUser"

// UserLoader 按会话里的 uid 还原用户（可叠 redis 缓存）
type UserLoader func(ctx context.Context, id string) (*domain.User, error)

// RestoreSession 每个请求都尝试还原会话；还原不了就保持匿名继续，
// 存储故障只进日志。当前用户走显式 context 传递，handler 用 UserFrom 取。
func RestoreSession(signer *session.Signer, load UserLoader, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := signer.UIDFromRequest(c); uid != "" {
			u, err := load(c.Request.Context(), uid)
			switch {
			case err != nil:
				l.Error("session restore failed",
					zap.Error(err),
					zap.String("request_id", c.GetString(KeyRequestID)),
				)
			case u != nil:
				c.Set(keyCurrentUser, u)
			}
		}
		c.Next()
	}
}

// RequireAuthenticated 匿名访问受保护页时带上回跳提示转去登录页
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFrom(c) == nil {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, "/login?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserFrom 取当前请求的已认证用户；匿名返回 nil
func UserFrom(c *gin.Context) *domain.User {
	if v, ok := c.Get(keyCurrentUser); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

// SafeNext 只接受站内相对路径，防止登录后被带去外站
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	return next
}
