package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

// UserStore is the identity store used by AuthService.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// AuthService registers users, checks credentials and issues/verifies
// session tokens.
type AuthService struct {
	users     UserStore
	secret    string
	tokenTTL  time.Duration
	passwords utils.Passwords
}

// NewAuthService wires the credential service.  secret signs session tokens
// that expire after tokenTTL; passwords are hashed with bcryptCost.
func NewAuthService(users UserStore, secret string, tokenTTL time.Duration, bcryptCost int) *AuthService {
	return &AuthService{users: users, secret: secret, tokenTTL: tokenTTL, passwords: utils.NewPasswords(bcryptCost)}
}

// RegisterInput is the registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput is the login request.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned by Register and Login.  User never contains the
// password hash in its JSON form.
type AuthResult struct {
	User      model.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// Register creates a user with a bcrypt-hashed password and signs them in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return AuthResult{}, newError(ErrValidation, "Please provide name, email, and password")
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return AuthResult{}, newError(ErrConflict, "User with this email already exists")
	case !errors.Is(err, repository.ErrNotFound):
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.passwords.Hash(in.Password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return AuthResult{}, newError(ErrValidation, "Password must be at most 72 bytes")
	}
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}
	u := model.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, &u); err != nil {
		// Two registrations racing past the lookup end up here.
		if errors.Is(err, repository.ErrEmailExists) {
			return AuthResult{}, newError(ErrConflict, "User with this email already exists")
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}
	return s.issue(u)
}

// Login checks the credentials and issues a fresh token.  Unknown email and
// wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return AuthResult{}, newError(ErrValidation, "Please provide email and password")
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return AuthResult{}, newError(ErrAuthentication, "Invalid credentials")
		}
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}
	if !s.passwords.Matches(u.PasswordHash, in.Password) {
		return AuthResult{}, newError(ErrAuthentication, "Invalid credentials")
	}
	return s.issue(u)
}

// Verify resolves a session token to its user.  The token must be present,
// well-formed, unexpired, HS256-signed with our secret and name an existing
// user.
func (s *AuthService) Verify(ctx context.Context, token string) (model.User, error) {
	if strings.TrimSpace(token) == "" {
		return model.User{}, newError(ErrAuthentication, "Not authorized, no token")
	}
	userID, err := utils.ParseSessionToken(s.secret, token)
	if err != nil {
		return model.User{}, newError(ErrAuthentication, "Not authorized, token failed")
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, newError(ErrAuthentication, "Not authorized, user not found")
		}
		return model.User{}, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

func (s *AuthService) issue(u model.User) (AuthResult, error) {
	tok, err := utils.NewSessionToken(s.secret, u.ID, s.tokenTTL)
	if err != nil {
		return AuthResult{}, fmt.Errorf("sign token: %w", err)
	}
	u.PasswordHash = ""
	return AuthResult{User: u, Token: tok.Token, ExpiresAt: tok.Exp}, nil
}
