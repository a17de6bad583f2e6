package usecase

import (
	"errors"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"chilaq/internal/entity"
	"chilaq/internal/repo/persistent"
	"chilaq/pkg/jwt"
)

type AuthUseCase interface {
	Login(email, password string) (string, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(userRepo persistent.UserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (uc *authUseCase) Login(email, password string) (string, error) {
	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			return "", entity.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", entity.ErrInvalidCredentials
	}

	role := "viewer"
	if user.IsAdmin {
		role = "admin"
	}

	return uc.jwtService.GenerateToken(strconv.FormatInt(user.ID, 10), role)
}
