package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	userEntity "rasana/internal/core/user"
)

type UserRepositoryDatabase struct {
	db *gorm.DB
}

func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *userEntity.User) (*userEntity.User, error) {
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id uint64) (*userEntity.User, error) {
	var u userEntity.User
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByFsid(ctx context.Context, fsid string) (*userEntity.User, error) {
	var u userEntity.User
	err := repo.db.WithContext(ctx).Where("fsid = ?", fsid).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*userEntity.User, error) {
	var u userEntity.User
	err := repo.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsernameOrMobile(ctx context.Context, username, mobile string) (*userEntity.User, error) {
	var u userEntity.User
	err := repo.db.WithContext(ctx).Where("username = ? OR mobile = ?", username, mobile).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
