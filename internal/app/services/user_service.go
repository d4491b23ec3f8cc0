package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/repositories"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
	"github.com/yigit/campuslink/internal/pkg/auth"
)

// UserService handles profiles, the user directory and presence
type UserService interface {
	GetProfile(ctx context.Context, email string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) error
	ListUsers(ctx context.Context) ([]dto.UserListItem, error)
	SetPresence(ctx context.Context, email string, online bool) error
}

type userServiceImpl struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
	now      func() time.Time
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
		now:      time.Now,
	}
}

func (s *userServiceImpl) GetProfile(ctx context.Context, email string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}

	profile := dto.NewProfileResponse(user)
	return &profile, nil
}

// UpdateProfile applies the supplied fields. The checks run in order: email present,
// user exists, at least one field supplied.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) error {
	email := req.NormalizedEmail()
	if email == "" {
		return apperrors.ErrMissingEmail
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return err
	}

	changes := req.Changes()
	if changes.IsEmpty() {
		return apperrors.ErrNoFieldsProvided
	}

	update := models.ProfileUpdate{
		FullName: changes.FullName,
		Branch:   changes.Branch,
		Year:     changes.Year,
		RollNo:   changes.RollNo,
	}
	if changes.Password != nil {
		hash, err := auth.HashPassword(*changes.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		update.PasswordHash = &hash
	}

	if err := s.userRepo.UpdateProfile(ctx, email, update); err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Msg("Profile updated")
	return nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context) ([]dto.UserListItem, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, dto.NewUserListItem(u))
	}
	return items, nil
}

// SetPresence marks the user online or offline and stamps lastSeen.
func (s *userServiceImpl) SetPresence(ctx context.Context, email string, online bool) error {
	if err := s.userRepo.SetPresence(ctx, email, online, s.now()); err != nil {
		return err
	}
	s.logger.Debug().Str("email", email).Bool("online", online).Msg("Presence updated")
	return nil
}
