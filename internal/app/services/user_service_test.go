package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
	"github.com/yigit/campuslink/internal/pkg/auth"
)

func TestGetProfileIncludesAliases(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, zerolog.Nop())

	repo.On("GetByEmail", mock.Anything, "asha@campus.edu").Return(&models.User{
		FullName: "Asha", Branch: "CSE", Year: 3, RollNo: "R1", Email: "asha@campus.edu",
	}, nil)

	profile, err := svc.GetProfile(context.Background(), "asha@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, "Asha", profile.FirstName)
	assert.Equal(t, "CSE", profile.LastName)
	assert.Equal(t, 3, profile.Age)
}

func TestUpdateProfileValidationOrder(t *testing.T) {
	t.Run("missing email", func(t *testing.T) {
		repo := new(MockUserRepository)
		err := NewUserService(repo, zerolog.Nop()).UpdateProfile(context.Background(), &dto.UpdateProfileRequest{FullName: "A"})
		assert.ErrorIs(t, err, apperrors.ErrMissingEmail)
		repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", mock.Anything, "ghost@x").Return(nil, apperrors.ErrUserNotFound)
		err := NewUserService(repo, zerolog.Nop()).UpdateProfile(context.Background(), &dto.UpdateProfileRequest{Email: "ghost@x"})
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("no fields", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", mock.Anything, "a@x").Return(&models.User{Email: "a@x"}, nil)
		err := NewUserService(repo, zerolog.Nop()).UpdateProfile(context.Background(), &dto.UpdateProfileRequest{Email: "a@x", Branch: ""})
		assert.ErrorIs(t, err, apperrors.ErrNoFieldsProvided)
		repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateProfileHashesPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, zerolog.Nop())

	repo.On("GetByEmail", mock.Anything, "a@x").Return(&models.User{Email: "a@x"}, nil)
	repo.On("UpdateProfile", mock.Anything, "a@x", mock.MatchedBy(func(u models.ProfileUpdate) bool {
		return u.FullName != nil && *u.FullName == "New" &&
			u.Branch == nil &&
			u.PasswordHash != nil && auth.CheckPassword(*u.PasswordHash, "pw2")
	})).Return(nil)

	err := svc.UpdateProfile(context.Background(), &dto.UpdateProfileRequest{Email: "a@x", FirstName: "New", Password: "pw2"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListUsers(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, zerolog.Nop())

	repo.On("List", mock.Anything).Return([]*models.User{
		{FullName: "A", Email: "a@x", IsOnline: true},
		{FullName: "B", Email: "b@x"},
	}, nil)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, users[0].IsOnline)
	assert.Equal(t, "b@x", users[1].Email)
}
