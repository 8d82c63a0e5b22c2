package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/rogerio-castellano/warehouse-inventory/internal/apperrors"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	users  repo.UserRepository
	tokens *TokenIssuer
}

func NewAuthService(users repo.UserRepository, tokens *TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (a *AuthService) Tokens() *TokenIssuer {
	return a.tokens
}

// Register stores a new user with a bcrypt hash and returns a token for it.
func (a *AuthService) Register(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)

	var fields []apperrors.FieldError
	if username == "" {
		fields = append(fields, apperrors.FieldError{Field: "username", Description: "username is required"})
	}
	if len(password) < 6 {
		fields = append(fields, apperrors.FieldError{Field: "password", Description: "password must be at least 6 characters"})
	}
	if len(fields) > 0 {
		return "", apperrors.Validation(fields...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Internal("failed to hash password", err)
	}

	user, err := a.users.CreateUser(ctx, models.User{Username: username, PasswordHash: string(hash), Role: RoleUser})
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		return "", apperrors.Conflict("username taken", "username "+username+" already exists")
	}
	if err != nil {
		return "", apperrors.Internal("failed to create user", err)
	}

	return a.issue(user)
}

func (a *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", apperrors.Internal("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return a.issue(user)
}

func (a *AuthService) issue(user models.User) (string, error) {
	token, err := a.tokens.GenerateToken(user)
	if err != nil {
		return "", apperrors.Internal("failed to generate token", err)
	}
	return token, nil
}
