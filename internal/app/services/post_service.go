package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/repositories"
	"github.com/yigit/campuslink/internal/pkg/filestorage"
)

// imageField is the multipart field carrying a post image; it also prefixes stored filenames.
const imageField = "image"

// PostService handles collaboration and alumni posts
type PostService interface {
	ValidateImage(image *multipart.FileHeader) error
	CreateCollaborationPost(ctx context.Context, req *dto.CreateCollaborationPostRequest, image *multipart.FileHeader) (*dto.CollaborationPostResponse, error)
	ListCollaborationPosts(ctx context.Context) ([]dto.CollaborationPostResponse, error)
	DeleteCollaborationPost(ctx context.Context, id int64) error
	CreateAlumniPost(ctx context.Context, req *dto.CreateAlumniPostRequest, image *multipart.FileHeader) (*dto.AlumniPostResponse, error)
	ListAlumniPosts(ctx context.Context) ([]dto.AlumniPostResponse, error)
}

type postServiceImpl struct {
	collabRepo    repositories.ICollaborationPostRepository
	alumniRepo    repositories.IAlumniPostRepository
	storage       filestorage.FileStorage
	maxUploadSize int64
	logger        zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	collabRepo repositories.ICollaborationPostRepository,
	alumniRepo repositories.IAlumniPostRepository,
	storage filestorage.FileStorage,
	maxUploadSize int64,
	logger zerolog.Logger,
) PostService {
	if maxUploadSize <= 0 {
		maxUploadSize = filestorage.MaxImageSize
	}
	return &postServiceImpl{
		collabRepo:    collabRepo,
		alumniRepo:    alumniRepo,
		storage:       storage,
		maxUploadSize: maxUploadSize,
		logger:        logger.With().Str("service", "post").Logger(),
	}
}

// ValidateImage runs the upload checks: present, within the size cap, sniffed as an image.
func (s *postServiceImpl) ValidateImage(image *multipart.FileHeader) error {
	_, err := filestorage.ValidateImage(image, s.maxUploadSize)
	return err
}

// storeImage validates and saves the upload, returning the stored filename.
func (s *postServiceImpl) storeImage(image *multipart.FileHeader) (string, error) {
	if err := s.ValidateImage(image); err != nil {
		return "", err
	}

	filename, err := s.storage.SaveFile(image, imageField)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return filename, nil
}

// discardImage removes an image whose row could not be written.
func (s *postServiceImpl) discardImage(filename string) {
	if err := s.storage.DeleteFile(filename); err != nil {
		s.logger.Error().Err(err).Str("file", filename).Msg("Failed to remove orphaned image")
	}
}

func (s *postServiceImpl) CreateCollaborationPost(
	ctx context.Context,
	req *dto.CreateCollaborationPostRequest,
	image *multipart.FileHeader,
) (*dto.CollaborationPostResponse, error) {
	filename, err := s.storeImage(image)
	if err != nil {
		return nil, err
	}

	post := &models.CollaborationPost{
		Title:        req.Title,
		Technologies: req.Technologies,
		Description:  req.Description,
		Image:        filename,
		UserEmail:    req.UserEmail,
	}
	if req.Vacancies != nil {
		post.Vacancies = *req.Vacancies
	}

	if err := s.collabRepo.Create(ctx, post); err != nil {
		s.discardImage(filename)
		return nil, err
	}

	s.logger.Info().Int64("postID", post.ID).Str("userEmail", post.UserEmail).Msg("Collaboration post created")
	resp := dto.NewCollaborationPostResponse(post, s.storage.URLFor)
	return &resp, nil
}

func (s *postServiceImpl) ListCollaborationPosts(ctx context.Context) ([]dto.CollaborationPostResponse, error) {
	posts, err := s.collabRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CollaborationPostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, dto.NewCollaborationPostResponse(p, s.storage.URLFor))
	}
	return out, nil
}

// DeleteCollaborationPost removes the row, then the image. A failure to remove the
// image is logged and does not fail the call.
func (s *postServiceImpl) DeleteCollaborationPost(ctx context.Context, id int64) error {
	filename, err := s.collabRepo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteFile(filename); err != nil {
		s.logger.Error().Err(err).Int64("postID", id).Str("file", filename).Msg("Failed to delete post image")
	}

	s.logger.Info().Int64("postID", id).Msg("Collaboration post deleted")
	return nil
}

func (s *postServiceImpl) CreateAlumniPost(
	ctx context.Context,
	req *dto.CreateAlumniPostRequest,
	image *multipart.FileHeader,
) (*dto.AlumniPostResponse, error) {
	filename, err := s.storeImage(image)
	if err != nil {
		return nil, err
	}

	post := &models.AlumniPost{
		Title:      req.Title,
		Developers: req.Developers,
		Image:      filename,
		UserEmail:  req.UserEmail,
	}

	if err := s.alumniRepo.Create(ctx, post); err != nil {
		s.discardImage(filename)
		return nil, err
	}

	s.logger.Info().Int64("postID", post.ID).Str("userEmail", post.UserEmail).Msg("Alumni post created")
	resp := dto.NewAlumniPostResponse(post, s.storage.URLFor)
	return &resp, nil
}

func (s *postServiceImpl) ListAlumniPosts(ctx context.Context) ([]dto.AlumniPostResponse, error) {
	posts, err := s.alumniRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AlumniPostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, dto.NewAlumniPostResponse(p, s.storage.URLFor))
	}
	return out, nil
}
