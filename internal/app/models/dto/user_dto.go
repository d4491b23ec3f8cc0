package dto

import (
	"strings"
	"time"

	"github.com/yigit/campuslink/internal/app/models"
)

// ProfileResponse is the public profile. firstName, lastName and age mirror
// fullName, branch and year for older clients.
type ProfileResponse struct {
	FullName  string `json:"fullName"`
	Branch    string `json:"branch"`
	Year      int    `json:"year"`
	RollNo    string `json:"rollNo"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
}

// NewProfileResponse builds a ProfileResponse from a user.
func NewProfileResponse(u *models.User) ProfileResponse {
	return ProfileResponse{
		FullName:  u.FullName,
		Branch:    u.Branch,
		Year:      u.Year,
		RollNo:    u.RollNo,
		Email:     u.Email,
		FirstName: u.FullName,
		LastName:  u.Branch,
		Age:       u.Year,
	}
}

// UpdateProfileRequest is the update-profile body. Empty strings count as absent.
type UpdateProfileRequest struct {
	Email      string      `json:"email" example:"asha@campus.edu"`
	FullName   string      `json:"fullName,omitempty"`
	FirstName  string      `json:"firstName,omitempty"`
	Branch     string      `json:"branch,omitempty"`
	LastName   string      `json:"lastName,omitempty"`
	Year       FlexibleInt `json:"year,omitempty"`
	Age        FlexibleInt `json:"age,omitempty"`
	RollNo     string      `json:"rollNo,omitempty"`
	RollNumber string      `json:"rollNumber,omitempty"`
	Password   string      `json:"password,omitempty"`
}

// ProfileChanges is an UpdateProfileRequest with aliases resolved.
// Password is still plain text.
type ProfileChanges struct {
	FullName *string
	Branch   *string
	Year     *int
	RollNo   *string
	Password *string
}

// IsEmpty reports whether no field was supplied.
func (c ProfileChanges) IsEmpty() bool {
	return c.FullName == nil && c.Branch == nil && c.Year == nil && c.RollNo == nil && c.Password == nil
}

// Changes resolves the aliases and drops blank fields.
func (r *UpdateProfileRequest) Changes() ProfileChanges {
	var c ProfileChanges
	if v := firstNonEmpty(r.FullName, r.FirstName); v != "" {
		c.FullName = &v
	}
	if v := firstNonEmpty(r.Branch, r.LastName); v != "" {
		c.Branch = &v
	}
	switch {
	case r.Year.Set:
		y := r.Year.Value
		c.Year = &y
	case r.Age.Set:
		y := r.Age.Value
		c.Year = &y
	}
	if v := firstNonEmpty(r.RollNo, r.RollNumber); v != "" {
		c.RollNo = &v
	}
	if r.Password != "" {
		p := r.Password
		c.Password = &p
	}
	return c
}

// NormalizedEmail returns the trimmed email.
func (r *UpdateProfileRequest) NormalizedEmail() string {
	return strings.TrimSpace(r.Email)
}

// UserListItem is one entry of the user directory.
type UserListItem struct {
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	IsOnline bool      `json:"isOnline"`
	LastSeen time.Time `json:"lastSeen"`
}

// NewUserListItem builds a UserListItem from a user.
func NewUserListItem(u *models.User) UserListItem {
	return UserListItem{
		FullName: u.FullName,
		Email:    u.Email,
		IsOnline: u.IsOnline,
		LastSeen: u.LastSeen,
	}
}
