package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
	"github.com/yigit/campuslink/internal/pkg/dberrors"
)

// ICollaborationPostRepository defines storage operations for collaboration posts
type ICollaborationPostRepository interface {
	Create(ctx context.Context, post *models.CollaborationPost) error
	List(ctx context.Context) ([]*models.CollaborationPost, error)
	DeleteByID(ctx context.Context, id int64) (string, error)
}

// IAlumniPostRepository defines storage operations for alumni posts
type IAlumniPostRepository interface {
	Create(ctx context.Context, post *models.AlumniPost) error
	List(ctx context.Context) ([]*models.AlumniPost, error)
}

// CollaborationPostRepository handles database operations for collaboration posts
type CollaborationPostRepository struct {
	db *pgxpool.Pool
}

// NewCollaborationPostRepository creates a new CollaborationPostRepository
func NewCollaborationPostRepository(db *pgxpool.Pool) *CollaborationPostRepository {
	return &CollaborationPostRepository{db: db}
}

// Create inserts a collaboration post
func (r *CollaborationPostRepository) Create(ctx context.Context, post *models.CollaborationPost) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO collaboration_posts (title, technologies, description, vacancies, image, user_email)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		post.Title, post.Technologies, post.Description, post.Vacancies, post.Image, post.UserEmail,
	).Scan(&post.ID, &post.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating collaboration post: %w", err)
	}

	return nil
}

// List returns every collaboration post, newest first.
func (r *CollaborationPostRepository) List(ctx context.Context) ([]*models.CollaborationPost, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, technologies, description, vacancies, image, user_email, created_at
		FROM collaboration_posts
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing collaboration posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.CollaborationPost{}
	for rows.Next() {
		var p models.CollaborationPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Technologies, &p.Description,
			&p.Vacancies, &p.Image, &p.UserEmail, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning collaboration post: %w", err)
		}
		posts = append(posts, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collaboration posts: %w", err)
	}

	return posts, nil
}

// DeleteByID removes a collaboration post and returns the filename of its image.
// A missing row is reported as apperrors.ErrPostNotFound.
func (r *CollaborationPostRepository) DeleteByID(ctx context.Context, id int64) (string, error) {
	var image string
	err := r.db.QueryRow(ctx, `
		DELETE FROM collaboration_posts
		WHERE id = $1
		RETURNING image`,
		id).Scan(&image)

	if err != nil {
		if dberrors.IsNoRows(err) {
			return "", apperrors.ErrPostNotFound
		}
		return "", fmt.Errorf("error deleting collaboration post: %w", err)
	}

	return image, nil
}

// AlumniPostRepository handles database operations for alumni posts
type AlumniPostRepository struct {
	db *pgxpool.Pool
}

// NewAlumniPostRepository creates a new AlumniPostRepository
func NewAlumniPostRepository(db *pgxpool.Pool) *AlumniPostRepository {
	return &AlumniPostRepository{db: db}
}

// Create inserts an alumni post
func (r *AlumniPostRepository) Create(ctx context.Context, post *models.AlumniPost) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO alumni_posts (title, developers, image, user_email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		post.Title, post.Developers, post.Image, post.UserEmail,
	).Scan(&post.ID, &post.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating alumni post: %w", err)
	}

	return nil
}

// List returns every alumni post, newest first.
func (r *AlumniPostRepository) List(ctx context.Context) ([]*models.AlumniPost, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, developers, image, user_email, created_at
		FROM alumni_posts
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing alumni posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.AlumniPost{}
	for rows.Next() {
		var p models.AlumniPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Developers, &p.Image, &p.UserEmail, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning alumni post: %w", err)
		}
		posts = append(posts, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alumni posts: %w", err)
	}

	return posts, nil
}
