package models

import "time"

// CollaborationPost is a project looking for collaborators.
type CollaborationPost struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Technologies string    `json:"technologies" db:"technologies"`
	Description  string    `json:"description" db:"description"`
	Vacancies    int       `json:"vacancies" db:"vacancies"`
	Image        string    `json:"image" db:"image"` // stored filename
	UserEmail    string    `json:"userEmail" db:"user_email"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// AlumniPost showcases a project built by alumni.
type AlumniPost struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Developers string    `json:"developers" db:"developers"`
	Image      string    `json:"image" db:"image"`
	UserEmail  string    `json:"userEmail" db:"user_email"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
