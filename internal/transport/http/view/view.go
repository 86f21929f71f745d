package view

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookie = "ap_flash"

// Flash 一次性提示，只在下一次渲染出现
type Flash struct {
	Message  string `json:"m"`
	Category string `json:"c"` // success / danger / info
}

// SetFlash 跨一次跳转传提示（redirect 后的页面取走即清除）
func SetFlash(c *gin.Context, message, category string) {
	b, err := json.Marshal(Flash{Message: message, Category: category})
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(b), 60, "/", "", false, true)
}

// TakeFlash 读出并清掉 flash cookie；没有则返回 nil
func TakeFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(b, &f); err != nil {
		return nil
	}
	return &f
}

// Render 渲染页面；data["Flash"] 已有内联提示时不再消费 cookie
func Render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Flash"]; !ok {
		if f := TakeFlash(c); f != nil {
			data["Flash"] = f
		}
	}
	c.HTML(status, tmpl, data)
}

var errorMessages = map[int]string{
	http.StatusNotFound:            "Page not found.",
	http.StatusForbidden:           "Access forbidden.",
	http.StatusInternalServerError: "Internal server error.",
}

// RenderError 通用错误页（404 / 403 / 500），对外不暴露内部细节
func RenderError(c *gin.Context, code int) {
	msg, ok := errorMessages[code]
	if !ok {
		msg = http.StatusText(code)
	}
	c.HTML(code, "error.html", gin.H{"Code": code, "Message": msg})
}
