package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/campuslink/internal/app/models"
)

// MockUserRepository is a mock implementation of IUserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, email string, update models.ProfileUpdate) error {
	args := m.Called(ctx, email, update)
	return args.Error(0)
}

func (m *MockUserRepository) SetPresence(ctx context.Context, email string, online bool, at time.Time) error {
	args := m.Called(ctx, email, online, at)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockMessageRepository is a mock implementation of IMessageRepository.
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) Conversation(ctx context.Context, userA, userB string) ([]*models.Message, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

func (m *MockMessageRepository) UnreadCounts(ctx context.Context, receiver string) ([]models.UnreadCount, error) {
	args := m.Called(ctx, receiver)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UnreadCount), args.Error(1)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, sender, receiver string) (int64, error) {
	args := m.Called(ctx, sender, receiver)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) LastMessageTimes(ctx context.Context, user string) ([]models.PeerActivity, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PeerActivity), args.Error(1)
}

func (m *MockMessageRepository) TotalUnread(ctx context.Context, receiver string) (int64, error) {
	args := m.Called(ctx, receiver)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotifier is a mock implementation of Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendToUser(email, event string, payload interface{}) bool {
	args := m.Called(email, event, payload)
	return args.Bool(0)
}

// MockCollaborationPostRepository is a mock implementation of ICollaborationPostRepository.
type MockCollaborationPostRepository struct {
	mock.Mock
}

func (m *MockCollaborationPostRepository) Create(ctx context.Context, post *models.CollaborationPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockCollaborationPostRepository) List(ctx context.Context) ([]*models.CollaborationPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CollaborationPost), args.Error(1)
}

func (m *MockCollaborationPostRepository) DeleteByID(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// MockAlumniPostRepository is a mock implementation of IAlumniPostRepository.
type MockAlumniPostRepository struct {
	mock.Mock
}

func (m *MockAlumniPostRepository) Create(ctx context.Context, post *models.AlumniPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockAlumniPostRepository) List(ctx context.Context) ([]*models.AlumniPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AlumniPost), args.Error(1)
}

// MockFileStorage is a mock implementation of filestorage.FileStorage.
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) SaveFile(fileHeader *multipart.FileHeader, fieldName string) (string, error) {
	args := m.Called(fileHeader, fieldName)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) DeleteFile(filename string) error {
	args := m.Called(filename)
	return args.Error(0)
}

func (m *MockFileStorage) GetFullPath(filename string) string {
	return "/tmp/" + filename
}

func (m *MockFileStorage) URLFor(filename string) string {
	return "/uploads/" + filename
}
