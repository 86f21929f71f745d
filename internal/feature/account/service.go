package account

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"go-account-portal/internal/domain"
	"go-account-portal/pkg/utils"
)

// ErrInvalidCredentials 登录失败统一返回这个，不区分"无此用户"和"密码错误"
var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	repo domain.UserRepository
}

func NewService(repo domain.UserRepository) *Service { return &Service{repo: repo} }

// Register 校验 → 哈希 → 入库。msg 非空代表用户可改的校验失败；
// err 为 domain.ErrEmailTaken 时是并发注册撞了唯一索引，同样按"已注册"文案处理。
func (s *Service) Register(ctx context.Context, f RegisterForm) (u *domain.User, msg string, err error) {
	name, email, msg, err := ValidateRegistration(ctx, s.repo, f)
	if err != nil || msg != "" {
		return nil, msg, err
	}

	hash, err := utils.HashPassword(f.Password)
	if err != nil {
		return nil, "", err
	}
	u = &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			// 预检和写入之间被抢注，转成同一条校验文案
			return nil, MsgEmailTaken, nil
		}
		return nil, "", err
	}
	return u, "", nil
}

// Login 只裁剪邮箱，密码原样比对
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// LoadUser 恢复会话用：按 ID 取当前用户
func (s *Service) LoadUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}
