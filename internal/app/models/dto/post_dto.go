package dto

import (
	"time"

	"github.com/yigit/campuslink/internal/app/models"
)

// CreateCollaborationPostRequest holds the text fields of the collaboration post form.
// The image travels as the multipart file field "image".
type CreateCollaborationPostRequest struct {
	Title        string `form:"title" binding:"required"`
	Technologies string `form:"technologies" binding:"required"`
	Description  string `form:"description" binding:"required"`
	Vacancies    *int   `form:"vacancies" binding:"required"`
	UserEmail    string `form:"userEmail" binding:"required"`
}

// CreateAlumniPostRequest holds the text fields of the alumni post form.
type CreateAlumniPostRequest struct {
	Title      string `form:"title" binding:"required"`
	Developers string `form:"developers" binding:"required"`
	UserEmail  string `form:"userEmail" binding:"required"`
}

// CollaborationPostResponse is a collaboration post with the public URL of its image.
type CollaborationPostResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Technologies string    `json:"technologies"`
	Description  string    `json:"description"`
	Vacancies    int       `json:"vacancies"`
	Image        string    `json:"image"`
	ImageURL     string    `json:"imageUrl"`
	UserEmail    string    `json:"userEmail"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewCollaborationPostResponse builds the response; urlFor maps a stored filename to its URL.
func NewCollaborationPostResponse(p *models.CollaborationPost, urlFor func(string) string) CollaborationPostResponse {
	return CollaborationPostResponse{
		ID:           p.ID,
		Title:        p.Title,
		Technologies: p.Technologies,
		Description:  p.Description,
		Vacancies:    p.Vacancies,
		Image:        p.Image,
		ImageURL:     urlFor(p.Image),
		UserEmail:    p.UserEmail,
		CreatedAt:    p.CreatedAt,
	}
}

// AlumniPostResponse is an alumni post with the public URL of its image.
type AlumniPostResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Developers string    `json:"developers"`
	Image      string    `json:"image"`
	ImageURL   string    `json:"imageUrl"`
	UserEmail  string    `json:"userEmail"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewAlumniPostResponse builds the response; urlFor maps a stored filename to its URL.
func NewAlumniPostResponse(p *models.AlumniPost, urlFor func(string) string) AlumniPostResponse {
	return AlumniPostResponse{
		ID:         p.ID,
		Title:      p.Title,
		Developers: p.Developers,
		Image:      p.Image,
		ImageURL:   urlFor(p.Image),
		UserEmail:  p.UserEmail,
		CreatedAt:  p.CreatedAt,
	}
}

// CreatePostResponse wraps a newly created post.
type CreatePostResponse struct {
	Message string      `json:"message" example:"Collaboration post created successfully"`
	Post    interface{} `json:"post"`
}
