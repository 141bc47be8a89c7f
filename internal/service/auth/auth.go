package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"slideforge/internal/apperrors"
	"slideforge/internal/models"
	"slideforge/internal/repository"
)

// Auth service with sensible defaults
type Config struct {
	// Secret key to sign access tokens
	// Required to be set
	SecretKey string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set then default is used
	Alg string

	// Access and refresh token lifetimes
	// If not set then defaults are used
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Hasher to use during registration and login
	// If not set then bcrypt is used
	Hasher PasswordHasher
}

// Service registers and authenticates application users
type Service struct {
	token    tokenManager
	hasher   PasswordHasher
	userRepo repository.UserRepo
}

func NewService(cfg Config, userRepo repository.UserRepo, refreshRepo repository.RefreshTokenRepo) (*Service, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}
	if userRepo == nil || refreshRepo == nil {
		return nil, errors.New("repos must not be nil")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = defaultAccessTokenTTL
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = defaultRefreshTokenTTL
	}

	hasher := cfg.Hasher
	if hasher == nil {
		hasher = DefaultHasher
	}

	return &Service{
		token: tokenManager{
			key:         cfg.SecretKey,
			alg:         jwt.GetSigningMethod(cfg.Alg),
			accessTTL:   cfg.AccessTTL,
			refreshTTL:  cfg.RefreshTTL,
			refreshRepo: refreshRepo,
		},
		hasher:   hasher,
		userRepo: userRepo,
	}, nil
}

// Register creates the user and logs it in
// Has to return apperrors.ErrUserAlreadyExists if the username is taken
func (s *Service) Register(ctx context.Context, username string, password string) (models.TokenPair, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("can't use this as password. Err: %w", err)
	}

	user, err := s.userRepo.CreateUser(ctx, username, hash)
	if err != nil {
		return models.TokenPair{}, err
	}

	return s.token.GeneratePair(ctx, user)
}

// Login authenticates by username and password
// Returns apperrors.ErrUserNotFound for unknown user or wrong password, the
// caller can't tell which on purpose
func (s *Service) Login(ctx context.Context, username string, password string) (models.TokenPair, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return models.TokenPair{}, apperrors.ErrUserNotFound
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return models.TokenPair{}, apperrors.ErrUserNotFound
	}

	return s.token.GeneratePair(ctx, user)
}

// Refresh exchanges a valid refresh token for a fresh pair
func (s *Service) Refresh(ctx context.Context, refresh string) (models.TokenPair, error) {
	token, err := s.token.UseRefresh(ctx, refresh)
	if err != nil {
		return models.TokenPair{}, err
	}

	user, err := s.userRepo.GetUserByID(ctx, token.UserID)
	if err != nil {
		return models.TokenPair{}, err
	}

	return s.token.GeneratePair(ctx, user)
}

// Authenticate resolves the user behind an access token
func (s *Service) Authenticate(ctx context.Context, access string) (models.User, error) {
	userID, err := s.token.ParseAccess(ctx, access)
	if err != nil {
		return models.User{}, err
	}

	return s.userRepo.GetUserByID(ctx, userID)
}
