package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-account-portal/internal/transport/http/view"
)

// Recovery 捕获 panic：细节只进日志，客户端只看到通用 500 页
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString(KeyRequestID)),
					zap.Stack("stack"),
				)
				if !c.Writer.Written() {
					view.RenderError(c, http.StatusInternalServerError)
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
