package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"go-account-portal/internal/domain"
	"go-account-portal/pkg/utils"
)

type fakeRepo struct {
	CreateFn      func(ctx context.Context, u *domain.User) error
	FindByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	FindByEmailFn func(ctx context.Context, email string) (*domain.User, error)
}

func (f *fakeRepo) Create(ctx context.Context, u *domain.User) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, u)
	}
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.FindByEmailFn != nil {
		return f.FindByEmailFn(ctx, email)
	}
	return nil, nil
}

func validForm() RegisterForm {
	return RegisterForm{
		Name:            "Al",
		Email:           "a@b.com",
		Password:        "abcdef",
		PasswordConfirm: "abcdef",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success normalizes and hashes", func(t *testing.T) {
		var created *domain.User
		svc := NewService(&fakeRepo{
			CreateFn: func(_ context.Context, u *domain.User) error { created = u; return nil },
		})
		f := validForm()
		f.Name = "  Al  "
		f.Email = " Foo@X.COM "
		f.Password = "secret1"
		f.PasswordConfirm = "secret1"

		u, msg, err := svc.Register(ctx, f)
		require.NoError(t, err)
		require.Empty(t, msg)
		require.NotNil(t, u)
		require.Same(t, u, created)
		require.NotEmpty(t, u.ID)
		require.Equal(t, "Al", u.Name)
		require.Equal(t, "foo@x.com", u.Email)
		require.NotEmpty(t, u.PasswordHash)
		require.NotEqual(t, "secret1", u.PasswordHash)
		require.True(t, utils.CheckPassword("secret1", u.PasswordHash))
	})

	t.Run("validation failure short-circuits create", func(t *testing.T) {
		svc := NewService(&fakeRepo{
			CreateFn: func(context.Context, *domain.User) error {
				t.Fatal("create should not be called")
				return nil
			},
		})
		f := validForm()
		f.Name = ""
		_, msg, err := svc.Register(ctx, f)
		require.NoError(t, err)
		require.Equal(t, MsgNameRequired, msg)
	})

	t.Run("lost race maps to taken message", func(t *testing.T) {
		svc := NewService(&fakeRepo{
			CreateFn: func(context.Context, *domain.User) error { return domain.ErrEmailTaken },
		})
		u, msg, err := svc.Register(ctx, validForm())
		require.NoError(t, err)
		require.Nil(t, u)
		require.Equal(t, MsgEmailTaken, msg)
	})

	t.Run("storage fault bubbles up", func(t *testing.T) {
		boom := errors.New("connection reset")
		svc := NewService(&fakeRepo{
			CreateFn: func(context.Context, *domain.User) error { return boom },
		})
		_, msg, err := svc.Register(ctx, validForm())
		require.ErrorIs(t, err, boom)
		require.Empty(t, msg)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)
	stored := &domain.User{ID: "u1", Name: "Al", Email: "a@b.com", PasswordHash: hash}

	repo := &fakeRepo{
		FindByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email == "a@b.com" {
				return stored, nil
			}
			return nil, nil
		},
	}
	svc := NewService(repo)

	t.Run("round trip", func(t *testing.T) {
		u, err := svc.Login(ctx, "a@b.com", "secret1")
		require.NoError(t, err)
		require.Equal(t, "u1", u.ID)
	})

	t.Run("email trimmed and lowercased", func(t *testing.T) {
		u, err := svc.Login(ctx, "  A@B.Com ", "secret1")
		require.NoError(t, err)
		require.Equal(t, "u1", u.ID)
	})

	t.Run("password is not trimmed", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@b.com", "secret1 ")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@b.com", "nope12")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user gets same error", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@b.com", "secret1")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("storage fault is not an auth failure", func(t *testing.T) {
		boom := errors.New("timeout")
		svc := NewService(&fakeRepo{
			FindByEmailFn: func(context.Context, string) (*domain.User, error) { return nil, boom },
		})
		_, err := svc.Login(ctx, "a@b.com", "secret1")
		require.ErrorIs(t, err, boom)
		require.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}
