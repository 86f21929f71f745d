package account

import (
	"context"
	"strings"
	"unicode/utf8"

	"go-account-portal/internal/domain"
)

// RegisterForm 注册表单的显式字段（不走动态取值）
type RegisterForm struct {
	Name            string `form:"name"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	PasswordConfirm string `form:"password_confirm"`
}

const (
	MsgNameRequired     = "Name is required."
	MsgNameTooShort     = "Name must be at least 2 characters long."
	MsgNameTooLong      = "Name must not exceed 120 characters."
	MsgEmailRequired    = "Email is required."
	MsgEmailInvalid     = "Please enter a valid email address."
	MsgEmailTooLong     = "Email must not exceed 120 characters."
	MsgEmailTaken       = "Email already registered. Please use a different email or log in."
	MsgPasswordRequired = "Password is required."
	MsgPasswordTooShort = "Password must be at least 6 characters long."
	MsgPasswordTooLong  = "Password must not exceed 255 characters."
	MsgConfirmRequired  = "Password confirmation is required."
	MsgPasswordMismatch = "Passwords do not match."
)

// ValidateRegistration 按固定顺序检查，命中第一条就返回该条文案。
// name/email 先裁剪空白；密码一律原样使用（长度、比对、入库哈希都不裁剪，
// 登录侧同样不裁剪，保证 "secret1 " 注册后只有 "secret1 " 能登录）。
// 长度一律按字符（rune）数算，多字节文字不吃亏。
// 返回规范化后的 name 和小写 email；err 仅表示存储故障。
func ValidateRegistration(ctx context.Context, repo domain.UserRepository, f RegisterForm) (name, email, msg string, err error) {
	name = strings.TrimSpace(f.Name)
	email = strings.ToLower(strings.TrimSpace(f.Email))
	password := f.Password
	confirm := f.PasswordConfirm

	switch {
	case name == "":
		return name, email, MsgNameRequired, nil
	case utf8.RuneCountInString(name) < 2:
		return name, email, MsgNameTooShort, nil
	case utf8.RuneCountInString(name) > 120:
		return name, email, MsgNameTooLong, nil
	case email == "":
		return name, email, MsgEmailRequired, nil
	case !emailLooksValid(email):
		return name, email, MsgEmailInvalid, nil
	case utf8.RuneCountInString(email) > 120:
		return name, email, MsgEmailTooLong, nil
	}

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil {
		return name, email, "", err
	}
	if existing != nil {
		return name, email, MsgEmailTaken, nil
	}

	switch {
	case password == "":
		return name, email, MsgPasswordRequired, nil
	case utf8.RuneCountInString(password) < 6:
		return name, email, MsgPasswordTooShort, nil
	case utf8.RuneCountInString(password) > 255:
		return name, email, MsgPasswordTooLong, nil
	case confirm == "":
		return name, email, MsgConfirmRequired, nil
	case password != confirm:
		return name, email, MsgPasswordMismatch, nil
	}
	return name, email, "", nil
}

// emailLooksValid 粗检：有 @，且最后一个 @ 之后的域名部分含 .
func emailLooksValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}
