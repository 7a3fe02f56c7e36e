package service

import (
	"context"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/agora-dev/agora/internal/domain"
	"github.com/agora-dev/agora/internal/errors"
	"github.com/agora-dev/agora/internal/logger"
)

type AuthService interface {
	Register(ctx context.Context, creds domain.Credentials) (domain.User, error)
	Login(ctx context.Context, creds domain.Credentials) (string, error)
}

type AuthStorage interface {
	CreateUser(ctx context.Context, user domain.User) (domain.UserId, error)
	UserByUsername(ctx context.Context, username domain.Username) (domain.User, error)
}

type UserValidator interface {
	Username(username string) error
	Password(password string) error
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

type Auth struct {
	storage   AuthStorage
	validator UserValidator
	jwt       Jwt
}

func NewAuth(storage AuthStorage, validator UserValidator, jwt Jwt) *Auth {
	return &Auth{storage, validator, jwt}
}

var errWrongCredentials = &errors.ErrorWithStatusCode{Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}

func (a *Auth) Register(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	if err := a.validator.Username(creds.Username); err != nil {
		return domain.User{}, err
	}
	if err := a.validator.Password(creds.Password); err != nil {
		return domain.User{}, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, err
	}

	user := domain.User{Username: creds.Username, PassHash: string(passHash)}
	if user.Id, err = a.storage.CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	logger.Log.Info("user registered", "userId", user.Id)
	return user, nil
}

// Login returns a signed token. Unknown user and wrong password are indistinguishable.
func (a *Auth) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	user, err := a.storage.UserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", errWrongCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		return "", errWrongCredentials
	}

	return a.jwt.NewToken(user)
}
