// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/your-org/vinyl-store/internal/config"
	"github.com/your-org/vinyl-store/internal/pkg/auth"
	"gorm.io/gorm"
)

// ErrEmailTaken is returned when registering with an email that already
// has an account
var ErrEmailTaken = errors.New("this email is already registered")

// ErrInvalidCredentials is returned on login with a wrong email or
// password. Both cases map to the same error on purpose.
var ErrInvalidCredentials = errors.New("incorrect email or password")

// Service handles user business logic
type Service struct {
	db         *gorm.DB
	config     *config.Config
	jwtManager *auth.JWTManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:         db,
		config:     cfg,
		jwtManager: auth.NewJWTManager(cfg),
	}
}

// RegisterRequest represents a registration payload. DNI, phone and
// address are optional profile details.
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Lastname string  `json:"lastname" binding:"required"`
	DNI      *string `json:"dni"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// LoginRequest represents a login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResult carries the session material produced by a successful login
// or token refresh
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	ExpiresIn    int64
}

// Register creates a new account. It does not log the user in; the
// client follows up with a login call.
func (s *Service) Register(req *RegisterRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password, s.config.Security.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &User{
		Email:    email,
		Password: hashed,
		Name:     strings.TrimSpace(req.Name),
		Lastname: strings.TrimSpace(req.Lastname),
		DNI:      req.DNI,
		Phone:    req.Phone,
		Address:  req.Address,
		IsActive: true,
	}

	if err := s.db.Create(newUser).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// Login verifies credentials and mints a session token pair
func (s *Service) Login(req *LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var u User
	if err := s.db.Where("email = ? AND is_active = ?", email, true).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.VerifyPassword(u.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(&u)
}

// RefreshSession trades a valid refresh token for a fresh token pair
func (s *Service) RefreshSession(refreshToken string) (*AuthResult, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	u, err := s.GetProfile(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(u)
}

// GetProfile retrieves an active user by id
func (s *Service) GetProfile(id uint) (*User, error) {
	var u User
	if err := s.db.Where("id = ? AND is_active = ?", id, true).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with id %d not found", id)
		}
		return nil, fmt.Errorf("failed to retrieve user %d: %w", id, err)
	}
	return &u, nil
}

func (s *Service) issueSession(u *User) (*AuthResult, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiresAt := time.Now().Add(s.config.JWT.AccessTokenExpiry)

	return &AuthResult{
		User:         u,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}
