package user

import (
	"context"

	userEntity "rasana/internal/core/user"
)

type UserRepository interface {
	Create(ctx context.Context, user *userEntity.User) (*userEntity.User, error)
	FindByID(ctx context.Context, id uint64) (*userEntity.User, error)
	FindByFsid(ctx context.Context, fsid string) (*userEntity.User, error)
	FindByUsername(ctx context.Context, username string) (*userEntity.User, error)
	FindByUsernameOrMobile(ctx context.Context, username, mobile string) (*userEntity.User, error)
}

type UserDTO struct {
	Uid      string `json:"uid"`
	Username string `json:"username"`
	Mobile   string `json:"mobile"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
