package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sani483/civic/internal/model"
	"github.com/Sani483/civic/internal/repository"
	"github.com/Sani483/civic/internal/utils"
)

var (
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// that login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("invalid or expired token")
)

// AuthService provides authentication related services
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Introspect(tokenString string) (*utils.Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *utils.TokenService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, tokens *utils.TokenService) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Signup registers a new user account
func (s *authService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleCitizen
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The check above races against concurrent signups; the unique
		// constraint on users.email is the authoritative guard.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns the user plus a signed access token
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials // User not found
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials // Password mismatch
	}

	token, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Introspect verifies a bearer token and returns its claims. It trusts the
// claims as of issuance and performs no store lookup.
func (s *authService) Introspect(tokenString string) (*utils.Claims, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}
