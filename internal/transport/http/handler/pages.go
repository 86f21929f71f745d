package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-account-portal/internal/core/session"
	"go-account-portal/internal/feature/account"
	mdw "go-account-portal/internal/transport/http/middleware"
	"go-account-portal/internal/transport/http/view"
)

// Pages 页面控制器：路由 → 校验/服务调用 → 模板 + 状态码
type Pages struct {
	svc    *account.Service
	signer *session.Signer
	log    *zap.Logger
}

func NewPages(svc *account.Service, signer *session.Signer, log *zap.Logger) *Pages {
	return &Pages{svc: svc, signer: signer, log: log}
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Remember string `form:"remember"`
}

// Index GET / ：登录过去仪表盘，否则去注册
func (p *Pages) Index(c *gin.Context) {
	if mdw.UserFrom(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/register")
}

func (p *Pages) RegisterGet(c *gin.Context) {
	if mdw.UserFrom(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	view.Render(c, http.StatusOK, "register.html", gin.H{"Title": "Register"})
}

func (p *Pages) RegisterPost(c *gin.Context) {
	if mdw.UserFrom(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	var f account.RegisterForm
	_ = c.ShouldBind(&f)

	_, msg, err := p.svc.Register(c.Request.Context(), f)
	if err != nil {
		// 存储故障：细节留在日志，事务已回滚，对外只给通用文案
		p.log.Error("registration failed",
			zap.Error(err),
			zap.String("request_id", c.GetString(mdw.KeyRequestID)),
		)
		view.Render(c, http.StatusInternalServerError, "register.html", gin.H{
			"Title": "Register",
			"Name":  strings.TrimSpace(f.Name),
			"Email": strings.TrimSpace(f.Email),
			"Flash": &view.Flash{Message: "An error occurred during registration. Please try again.", Category: "danger"},
		})
		return
	}
	if msg != "" {
		// 回填 name/email，密码不回填
		view.Render(c, http.StatusBadRequest, "register.html", gin.H{
			"Title": "Register",
			"Name":  strings.TrimSpace(f.Name),
			"Email": strings.TrimSpace(f.Email),
			"Flash": &view.Flash{Message: msg, Category: "danger"},
		})
		return
	}

	view.SetFlash(c, "Registration successful! Please log in.", "success")
	c.Redirect(http.StatusFound, "/login")
}

func (p *Pages) LoginGet(c *gin.Context) {
	if mdw.UserFrom(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	view.Render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in"})
}

func (p *Pages) LoginPost(c *gin.Context) {
	if mdw.UserFrom(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	var f loginForm
	_ = c.ShouldBind(&f)
	email := strings.TrimSpace(f.Email)

	if email == "" || f.Password == "" {
		view.Render(c, http.StatusBadRequest, "login.html", gin.H{
			"Title": "Log in",
			"Email": email,
			"Flash": &view.Flash{Message: "Email and password are required.", Category: "danger"},
		})
		return
	}

	u, err := p.svc.Login(c.Request.Context(), email, f.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			// 文案不区分用户不存在和密码错误
			view.Render(c, http.StatusUnauthorized, "login.html", gin.H{
				"Title": "Log in",
				"Email": email,
				"Flash": &view.Flash{Message: "Invalid email or password.", Category: "danger"},
			})
			return
		}
		p.log.Error("login failed",
			zap.Error(err),
			zap.String("request_id", c.GetString(mdw.KeyRequestID)),
		)
		view.RenderError(c, http.StatusInternalServerError)
		return
	}

	if err := p.signer.SetCookie(c, u.ID, f.Remember != ""); err != nil {
		p.log.Error("issue session failed", zap.Error(err))
		view.RenderError(c, http.StatusInternalServerError)
		return
	}

	if next := mdw.SafeNext(c.Query("next")); next != "" {
		c.Redirect(http.StatusFound, next)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// Dashboard 受保护页，RequireAuthenticated 保证这里一定有用户
func (p *Pages) Dashboard(c *gin.Context) {
	u := mdw.UserFrom(c)
	view.Render(c, http.StatusOK, "dashboard.html", gin.H{"Title": "Dashboard", "User": u})
}

func (p *Pages) Logout(c *gin.Context) {
	p.signer.ClearCookie(c)
	view.SetFlash(c, "You have been logged out.", "success")
	c.Redirect(http.StatusFound, "/login")
}

func (p *Pages) NotFound(c *gin.Context)  { view.RenderError(c, http.StatusNotFound) }
func (p *Pages) Forbidden(c *gin.Context) { view.RenderError(c, http.StatusForbidden) }
