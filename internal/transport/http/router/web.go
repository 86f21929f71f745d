package router

import (
	"context"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-account-portal/internal/core/cache"
	"go-account-portal/internal/core/session"
	"go-account-portal/internal/domain"
	"go-account-portal/internal/feature/account"
	"go-account-portal/internal/repo"
	"go-account-portal/internal/transport/http/handler"
	mdw "go-account-portal/internal/transport/http/middleware"
)

// NewWebEngine 组装用户端引擎；cch 为 nil 时会话还原直接打库
func NewWebEngine(l *zap.Logger, db *gorm.DB, signer *session.Signer, cch *cache.Cache, userTTL time.Duration) *gin.Engine {
	userRepo := repo.NewUserRepo(db)
	svc := account.NewService(userRepo)

	load := mdw.UserLoader(svc.LoadUser)
	if cch != nil {
		load = func(ctx context.Context, id string) (*domain.User, error) {
			return cache.GetOrLoadJSON[domain.User](cch, ctx, "user:"+id, userTTL, func(ctx context.Context) (*domain.User, error) {
				return svc.LoadUser(ctx, id)
			})
		}
	}

	return Build(l, svc, signer, load, "web/templates/*.html")
}

// Build 拆出来方便测试注入假仓库
func Build(l *zap.Logger, svc *account.Service, signer *session.Signer, load mdw.UserLoader, tmplGlob string) *gin.Engine {
	r := gin.New()
	r.LoadHTMLGlob(tmplGlob)

	r.Use(
		mdw.RequestID(),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Recovery(l),
		mdw.Metrics(),
		ginzap.Ginzap(l, time.RFC3339, true),
	)

	// 运维端点，不走页面流
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	p := handler.NewPages(svc, signer, l)

	// 每个请求都先尝试还原会话
	pages := r.Group("", mdw.RestoreSession(signer, load, l))

	pages.GET("/", p.Index)
	pages.GET("/register", p.RegisterGet)
	pages.POST("/register", p.RegisterPost)
	pages.GET("/login", p.LoginGet)
	pages.POST("/login", p.LoginPost)

	authed := pages.Group("", mdw.RequireAuthenticated())
	authed.GET("/dashboard", p.Dashboard)
	authed.GET("/logout", p.Logout)

	r.NoRoute(p.NotFound)
	r.HandleMethodNotAllowed = true
	r.NoMethod(p.Forbidden)

	return r
}
