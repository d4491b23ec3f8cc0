package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository              *UserRepository
	MessageRepository           *MessageRepository
	CollaborationPostRepository *CollaborationPostRepository
	AlumniPostRepository        *AlumniPostRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:              NewUserRepository(db),
		MessageRepository:           NewMessageRepository(db),
		CollaborationPostRepository: NewCollaborationPostRepository(db),
		AlumniPostRepository:        NewAlumniPostRepository(db),
	}
}
