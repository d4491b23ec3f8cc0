package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
	"github.com/yigit/campuslink/internal/pkg/logger"
)

// errorMapping describes how one sentinel error is reported to clients.
type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
	// generic mappings report the CustomError message when one is attached.
	generic bool
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []errorMapping{
	{apperrors.ErrEmailAlreadyExists, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "User already exists", false},
	{apperrors.ErrInvalidCredentials, http.StatusBadRequest, dto.ErrorCodeInvalidCredentials, "Invalid credentials", false},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeUserNotFound, "User not found", false},
	{apperrors.ErrMissingEmail, http.StatusBadRequest, dto.ErrorCodeMissingFields, "Email is required to update profile", false},
	{apperrors.ErrNoFieldsProvided, http.StatusBadRequest, dto.ErrorCodeNoFieldsProvided, "No valid fields provided to update", false},
	{apperrors.ErrMissingFields, http.StatusBadRequest, dto.ErrorCodeMissingFields, "All fields are required", false},
	{apperrors.ErrImageRequired, http.StatusBadRequest, dto.ErrorCodeImageRequired, "Image is required", false},
	{apperrors.ErrFileTooLarge, http.StatusBadRequest, dto.ErrorCodeFileTooLarge, "File too large", false},
	{apperrors.ErrInvalidFileType, http.StatusBadRequest, dto.ErrorCodeInvalidFileType, "Only image files are allowed", false},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found", true},
	{apperrors.ErrResourceAlreadyExists, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "Resource already exists", true},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed", true},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request", true},
	{apperrors.ErrTooManyRequests, http.StatusTooManyRequests, dto.ErrorCodeTooManyRequests, "Too many requests, please try again later", false},
}

// ResolveError returns the status and error detail for err. Unrecognized errors
// become a 500 carrying serverMsg, with the error text in details.
func ResolveError(err error, serverMsg string) (int, *dto.ErrorDetail) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			message := m.message
			if m.generic {
				message = messageOf(err, m.message)
			}
			return m.status, dto.NewErrorDetail(m.code, message)
		}
	}

	if serverMsg == "" {
		serverMsg = "Server error"
	}
	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, serverMsg).
		WithSeverity(dto.ErrorSeverityCritical).
		WithDetails(err.Error())
}

// messageOf prefers the message carried by a CustomError.
func messageOf(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}

// HandleAPIError writes the error response for err. serverMsg is the message
// used when err is not a known application error.
func HandleAPIError(c *gin.Context, err error, serverMsg string) {
	status, detail := ResolveError(err, serverMsg)

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg(serverMsg)
	}

	RespondWithError(c, status, detail)
}

// RespondWithError aborts the request with the given status and error detail.
func RespondWithError(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// HandleValidationError answers a request whose body or form failed to bind.
func HandleValidationError(c *gin.Context, err error) {
	RespondWithError(c, http.StatusBadRequest, dto.HandleValidationError(err))
}
