package userapp

import (
	"context"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"

	userEntity "rasana/internal/core/user"
	userPort "rasana/internal/ports/user"
)

// UserService issues the viewer identities the pipeline consumes.
type UserService struct {
	UserRepository userPort.UserRepository
	jwtKey         []byte
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte) *UserService {
	return &UserService{
		UserRepository: repo,
		jwtKey:         jwtKey,
	}
}

// LoginUser verifies credentials and issues a JWT whose subject is the
// user's public fsid.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	claims := &jwt.StandardClaims{
		Subject:   u.Fsid,
		Issuer:    "rasana",
		ExpiresAt: expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.New("could not generate token")
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *UserService) RegisterUser(ctx context.Context, name, family, username, mobile, password string) (*userPort.UserDTO, error) {
	existing, err := s.UserRepository.FindByUsernameOrMobile(ctx, username, mobile)
	if err == nil && existing != nil {
		return nil, errors.New("username or mobile already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &userEntity.User{
		Fsid:      uuid.Must(uuid.NewV4()).String(),
		Name:      name,
		Family:    family,
		Username:  username,
		Mobile:    mobile,
		Password:  string(hashed),
		IsEnabled: true,
	}

	created, err := s.UserRepository.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	return &userPort.UserDTO{
		Uid:      created.Fsid,
		Username: created.Username,
		Mobile:   created.Mobile,
	}, nil
}

// FindByFsid loads the viewer record the middleware resolved from a token.
func (s *UserService) FindByFsid(ctx context.Context, fsid string) (*userEntity.User, error) {
	return s.UserRepository.FindByFsid(ctx, fsid)
}
