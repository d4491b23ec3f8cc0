package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	FullName  string    `json:"fullName" db:"full_name" example:"Asha Rao"`
	Branch    string    `json:"branch" db:"branch" example:"CSE"`
	Year      int       `json:"year" db:"year" example:"3"`
	RollNo    string    `json:"rollNo" db:"roll_no" example:"21CS042"`
	Email     string    `json:"email" db:"email" example:"asha@campus.edu"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never serialized
	IsOnline  bool      `json:"isOnline" db:"is_online"`
	LastSeen  time.Time `json:"lastSeen" db:"last_seen"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ProfileUpdate carries the columns a partial profile update writes.
// Nil fields are left untouched.
type ProfileUpdate struct {
	FullName     *string
	Branch       *string
	Year         *int
	RollNo       *string
	PasswordHash *string
}

// IsEmpty reports whether the update would write nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Branch == nil && u.Year == nil && u.RollNo == nil && u.PasswordHash == nil
}
