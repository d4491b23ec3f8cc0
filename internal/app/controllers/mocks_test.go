package controllers

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Signin(ctx context.Context, req *dto.SigninRequest) (*dto.SigninResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SigninResponse), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, email string) (*dto.ProfileResponse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProfileResponse), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]dto.UserListItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.UserListItem), args.Error(1)
}

func (m *MockUserService) SetPresence(ctx context.Context, email string, online bool) error {
	args := m.Called(ctx, email, online)
	return args.Error(0)
}

type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) SendMessage(ctx context.Context, sender, receiver, text string) (*models.Message, error) {
	args := m.Called(ctx, sender, receiver, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageService) Conversation(ctx context.Context, userA, userB string) ([]dto.MessageResponse, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.MessageResponse), args.Error(1)
}

func (m *MockMessageService) UnreadCounts(ctx context.Context, userEmail string) (map[string]int64, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockMessageService) MarkRead(ctx context.Context, req *dto.MarkReadRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockMessageService) LastMessageTimes(ctx context.Context, userEmail string) (map[string]time.Time, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]time.Time), args.Error(1)
}

func (m *MockMessageService) TotalUnread(ctx context.Context, userEmail string) (int64, error) {
	args := m.Called(ctx, userEmail)
	return args.Get(0).(int64), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) ValidateImage(image *multipart.FileHeader) error {
	args := m.Called(image)
	return args.Error(0)
}

func (m *MockPostService) CreateCollaborationPost(ctx context.Context, req *dto.CreateCollaborationPostRequest, image *multipart.FileHeader) (*dto.CollaborationPostResponse, error) {
	args := m.Called(ctx, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CollaborationPostResponse), args.Error(1)
}

func (m *MockPostService) ListCollaborationPosts(ctx context.Context) ([]dto.CollaborationPostResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CollaborationPostResponse), args.Error(1)
}

func (m *MockPostService) DeleteCollaborationPost(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostService) CreateAlumniPost(ctx context.Context, req *dto.CreateAlumniPostRequest, image *multipart.FileHeader) (*dto.AlumniPostResponse, error) {
	args := m.Called(ctx, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AlumniPostResponse), args.Error(1)
}

func (m *MockPostService) ListAlumniPosts(ctx context.Context) ([]dto.AlumniPostResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.AlumniPostResponse), args.Error(1)
}
