package domain

import (
	"context"
	"errors"
	"time"
)

// ErrEmailTaken 邮箱唯一键冲突（应用层预检或存储层唯一索引都可能触发）
var ErrEmailTaken = errors.New("email already registered")

type User struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Name         string    `gorm:"size:120;not null"`
	Email        string    `gorm:"uniqueIndex;size:120;not null"` // 存储前统一小写
	PasswordHash string    `gorm:"size:100;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string { return "users" }

// UserRepository 查不到一律返回 (nil, nil)，错误只表示存储故障
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
