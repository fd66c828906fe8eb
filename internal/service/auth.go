package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/authgate/authgate-go/internal/crypto"
	"github.com/authgate/authgate-go/internal/model"
	"github.com/authgate/authgate-go/internal/repository"
	"github.com/authgate/authgate-go/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// TokenName is the label attached to tokens issued at login.
const TokenName = "authToken"

// UserStore is the persistence surface the service needs for users.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// TokenStore is the persistence surface for issued access tokens.
type TokenStore interface {
	Create(ctx context.Context, token *model.AccessToken) error
	GetByID(ctx context.Context, id int64) (*model.AccessToken, error)
}

// AuthService implements registration, login, and bearer-token
// resolution.
type AuthService struct {
	users     UserStore
	tokens    TokenStore
	validator *validation.Registration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens TokenStore, validator *validation.Registration) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		validator: validator,
	}
}

// Register validates the input and persists a new user with a hashed
// password. Validation failures come back as validation.Errors; a
// duplicate email, whether caught by the pre-check or by the store's
// unique index under a race, is reported the same way.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) error {
	errs := s.validator.Validate(ctx, req)

	if len(errs["email"]) == 0 {
		taken, err := s.emailTaken(ctx, req.Email)
		if err != nil {
			return fmt.Errorf("checking email uniqueness: %w", err)
		}
		if taken {
			errs.Add("email", "The email has already been taken.")
		}
	}

	if len(errs) > 0 {
		return errs
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			errs.Add("email", "The email has already been taken.")
			return errs
		}
		return err
	}

	return nil
}

// Login verifies the credentials and issues a new access token,
// returning its plaintext form. Unknown email and wrong password both
// yield ErrInvalidCredentials; a lookup miss still burns one hash
// comparison so the two cases cost the same.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	if errs := validation.ValidateLogin(req); len(errs) > 0 {
		return "", errs
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			crypto.DummyVerify(req.Password)
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(ctx, user.ID)
}

// UserFromToken resolves a plaintext bearer token to its owning user.
func (s *AuthService) UserFromToken(ctx context.Context, plain string) (*model.User, error) {
	id, secret, err := crypto.SplitToken(plain)
	if err != nil {
		return nil, ErrInvalidToken
	}

	token, err := s.tokens.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if !crypto.MatchToken(secret, token.TokenHash) {
		return nil, ErrInvalidToken
	}

	return s.users.GetByID(ctx, token.UserID)
}

// issueToken creates a stored token record and composes the plaintext
// form handed to the client. The plaintext is never retrievable again.
func (s *AuthService) issueToken(ctx context.Context, userID int64) (string, error) {
	secret, err := crypto.NewTokenSecret()
	if err != nil {
		return "", fmt.Errorf("generating token secret: %w", err)
	}

	token := &model.AccessToken{
		UserID:    userID,
		Name:      TokenName,
		TokenHash: crypto.DigestToken(secret),
	}

	if err := s.tokens.Create(ctx, token); err != nil {
		return "", fmt.Errorf("storing token: %w", err)
	}

	return crypto.ComposeToken(token.ID, secret), nil
}

// emailTaken reports whether a user already exists with the email.
func (s *AuthService) emailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
