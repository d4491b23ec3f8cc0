package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/repositories"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
	"github.com/yigit/campuslink/internal/pkg/auth"
)

// AuthService handles signup and signin
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, error)
	Signin(ctx context.Context, req *dto.SigninRequest) (*dto.SigninResponse, error)
}

type authServiceImpl struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "auth").Logger(),
		now:      time.Now,
	}
}

// Signup creates an account from an already normalized request.
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, dto.ErrSignupCredentialsMissing
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName: req.FullName,
		Branch:   req.Branch,
		Year:     req.Year.Value,
		RollNo:   req.RollNo,
		Email:    req.Email,
		Password: hash,
	}

	// The unique constraint still catches a concurrent signup for the same email.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("User signed up")
	return user, nil
}

// Signin checks credentials and marks the user online.
func (s *authServiceImpl) Signin(ctx context.Context, req *dto.SigninRequest) (*dto.SigninResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Debug().Str("email", req.Email).Msg("Signin rejected: wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	now := s.now()
	if err := s.userRepo.SetPresence(ctx, user.Email, true, now); err != nil {
		return nil, err
	}
	user.IsOnline = true
	user.LastSeen = now

	s.logger.Info().Str("email", user.Email).Msg("User signed in")
	return &dto.SigninResponse{
		Message: "Login successful",
		User:    dto.NewUserSummary(user),
	}, nil
}
