package dto

import (
	"strings"

	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
)

// SignupRequest is the signup body. Older clients send firstName, lastName, age,
// rollNumber and signupEmail; Normalize folds them into the canonical fields.
type SignupRequest struct {
	FullName    string      `json:"fullName" example:"Asha Rao"`
	FirstName   string      `json:"firstName,omitempty"`
	Branch      string      `json:"branch" example:"CSE"`
	LastName    string      `json:"lastName,omitempty"`
	Year        FlexibleInt `json:"year" example:"3"`
	Age         FlexibleInt `json:"age,omitempty"`
	RollNo      string      `json:"rollNo" example:"21CS042"`
	RollNumber  string      `json:"rollNumber,omitempty"`
	Email       string      `json:"email" example:"asha@campus.edu"`
	SignupEmail string      `json:"signupEmail,omitempty"`
	Password    string      `json:"password" example:"secret"`
}

// ErrSignupCredentialsMissing is returned when neither email alias or the password is present.
var ErrSignupCredentialsMissing = apperrors.NewValidationError("Email and password are required")

// Normalize resolves the field aliases in place:
//
//	fullName <- fullName | firstName | local part of email
//	branch   <- branch | lastName | ""
//	year     <- year | age | 0
//	rollNo   <- rollNo | rollNumber | local part of email
//	email    <- email | signupEmail
func (r *SignupRequest) Normalize() error {
	r.Email = firstNonEmpty(r.Email, r.SignupEmail)
	if r.Email == "" || r.Password == "" {
		return ErrSignupCredentialsMissing
	}

	r.FullName = firstNonEmpty(r.FullName, r.FirstName, localPart(r.Email))
	r.Branch = firstNonEmpty(r.Branch, r.LastName)
	switch {
	case r.Year.Set:
	case r.Age.Set:
		r.Year = r.Age
	default:
		r.Year = FlexibleInt{Value: 0, Set: true}
	}
	r.RollNo = firstNonEmpty(r.RollNo, r.RollNumber, localPart(r.Email))
	return nil
}

// SigninRequest is the signin body.
type SigninRequest struct {
	Email    string `json:"email" binding:"required" example:"asha@campus.edu"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// Trim strips surrounding whitespace from the email.
func (r *SigninRequest) Trim() {
	r.Email = strings.TrimSpace(r.Email)
}

// UserSummary is the user block returned by signin.
type UserSummary struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Branch   string `json:"branch"`
	Year     int    `json:"year"`
	RollNo   string `json:"rollNo"`
}

// NewUserSummary builds a UserSummary from a user.
func NewUserSummary(u *models.User) UserSummary {
	return UserSummary{
		FullName: u.FullName,
		Email:    u.Email,
		Branch:   u.Branch,
		Year:     u.Year,
		RollNo:   u.RollNo,
	}
}

// SigninResponse is returned on successful signin. No token is issued.
type SigninResponse struct {
	Message string      `json:"message" example:"Login successful"`
	User    UserSummary `json:"user"`
}
