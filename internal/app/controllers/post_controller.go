package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/services"
	"github.com/yigit/campuslink/internal/middleware"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
)

const imageFormField = "image"

// PostController handles collaboration and alumni posts
type PostController struct {
	postService services.PostService
	logger      zerolog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService, logger zerolog.Logger) *PostController {
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

// imageUpload returns the uploaded image, or nil when the request carries none.
func imageUpload(ctx *gin.Context) *multipart.FileHeader {
	fileHeader, err := ctx.FormFile(imageFormField)
	if err != nil {
		return nil
	}
	return fileHeader
}

// CreateCollaborationPost creates a post looking for collaborators.
// POST /api/collaboration-posts (multipart/form-data)
func (c *PostController) CreateCollaborationPost(ctx *gin.Context) {
	image := imageUpload(ctx)
	// The image is checked before any other field.
	if err := c.postService.ValidateImage(image); err != nil {
		middleware.HandleAPIError(ctx, err, "Error creating post")
		return
	}

	var req dto.CreateCollaborationPostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid collaboration post form")
		middleware.HandleValidationError(ctx, err)
		return
	}

	post, err := c.postService.CreateCollaborationPost(ctx.Request.Context(), &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Error creating post")
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreatePostResponse{
		Message: "Post created successfully",
		Post:    post,
	})
}

// ListCollaborationPosts returns collaboration posts, newest first.
// GET /api/collaboration-posts
func (c *PostController) ListCollaborationPosts(ctx *gin.Context) {
	posts, err := c.postService.ListCollaborationPosts(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Error fetching posts")
		return
	}

	ctx.JSON(http.StatusOK, posts)
}

// DeleteCollaborationPost removes a post and its image.
// DELETE /api/collaboration-posts/:id
func (c *PostController) DeleteCollaborationPost(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrPostNotFound, "Error deleting post")
		return
	}

	if err := c.postService.DeleteCollaborationPost(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err, "Error deleting post")
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Post deleted successfully"})
}

// CreateAlumniPost creates an alumni project showcase.
// POST /api/alumni-posts (multipart/form-data)
func (c *PostController) CreateAlumniPost(ctx *gin.Context) {
	image := imageUpload(ctx)
	if err := c.postService.ValidateImage(image); err != nil {
		middleware.HandleAPIError(ctx, err, "Error creating alumni post")
		return
	}

	var req dto.CreateAlumniPostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid alumni post form")
		middleware.HandleValidationError(ctx, err)
		return
	}

	post, err := c.postService.CreateAlumniPost(ctx.Request.Context(), &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Error creating alumni post")
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreatePostResponse{
		Message: "Alumni post created successfully",
		Post:    post,
	})
}

// ListAlumniPosts returns alumni posts, newest first.
// GET /api/alumni-posts
func (c *PostController) ListAlumniPosts(ctx *gin.Context) {
	posts, err := c.postService.ListAlumniPosts(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Error fetching alumni posts")
		return
	}

	ctx.JSON(http.StatusOK, posts)
}
