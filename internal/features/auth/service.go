package auth

import (
	"context"
	"errors"

	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/features/user"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords so the two cases are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Signin(ctx context.Context, username, password string) (string, error)
}

type AuthServiceImpl struct {
	UserRepo user.UserRepository
}

func NewAuthService(userRepo user.UserRepository) AuthService {
	return &AuthServiceImpl{UserRepo: userRepo}
}

func (s *AuthServiceImpl) Signin(ctx context.Context, username, password string) (string, error) {
	usr, err := s.UserRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateToken(usr.ID, usr.Role)
}
