package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
	"github.com/yigit/campuslink/internal/pkg/dberrors"
)

// usersEmailKey is the unique constraint on users.email.
const usersEmailKey = "users_email_key"

const userColumns = "id, full_name, branch, year, roll_no, email, password, is_online, last_seen, created_at"

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, email string, update models.ProfileUpdate) error
	SetPresence(ctx context.Context, email string, online bool, at time.Time) error
	List(ctx context.Context) ([]*models.User, error)
}

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and fills in the generated columns.
// A clash on the email constraint is reported as apperrors.ErrEmailAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (full_name, branch, year, roll_no, email, password)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_online, last_seen, created_at`,
		user.FullName, user.Branch, user.Year, user.RollNo, user.Email, user.Password,
	).Scan(&user.ID, &user.IsOnline, &user.LastSeen, &user.CreatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, usersEmailKey) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email).Scan(
		&user.ID, &user.FullName, &user.Branch, &user.Year, &user.RollNo,
		&user.Email, &user.Password, &user.IsOnline, &user.LastSeen, &user.CreatedAt)

	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// profileUpdateQuery builds the UPDATE for the non-nil fields of update.
func profileUpdateQuery(email string, update models.ProfileUpdate) squirrel.UpdateBuilder {
	query := psql.Update("users").Where(squirrel.Eq{"email": email})

	if update.FullName != nil {
		query = query.Set("full_name", *update.FullName)
	}
	if update.Branch != nil {
		query = query.Set("branch", *update.Branch)
	}
	if update.Year != nil {
		query = query.Set("year", *update.Year)
	}
	if update.RollNo != nil {
		query = query.Set("roll_no", *update.RollNo)
	}
	if update.PasswordHash != nil {
		query = query.Set("password", *update.PasswordHash)
	}

	return query
}

// UpdateProfile writes the supplied profile fields of the user with the given email.
func (r *UserRepository) UpdateProfile(ctx context.Context, email string, update models.ProfileUpdate) error {
	if update.IsEmpty() {
		return apperrors.ErrNoFieldsProvided
	}

	sql, args, err := profileUpdateQuery(email, update).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// SetPresence records whether the user is online and when they were last seen.
// Unknown emails are ignored.
func (r *UserRepository) SetPresence(ctx context.Context, email string, online bool, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET is_online = $1, last_seen = $2
		WHERE email = $3`,
		online, at, email)

	if err != nil {
		return fmt.Errorf("failed to update presence: %w", err)
	}

	return nil
}

// List returns every user ordered by name.
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY full_name, id`)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(
			&user.ID, &user.FullName, &user.Branch, &user.Year, &user.RollNo,
			&user.Email, &user.Password, &user.IsOnline, &user.LastSeen, &user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
