// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/services"
	"github.com/yigit/campuslink/internal/middleware"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
)

// AuthController handles signup and signin
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Signup registers a new user.
// POST /api/signup
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid signup request payload")
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := req.Normalize(); err != nil {
		middleware.HandleAPIError(ctx, err, "Server error")
		return
	}

	if _, err := c.authService.Signup(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err, "Server error")
		return
	}

	ctx.JSON(http.StatusCreated, dto.SuccessResponse{Message: "User created successfully"})
}

// Signin checks credentials and marks the user online.
// POST /api/signin
func (c *AuthController) Signin(ctx *gin.Context) {
	var req dto.SigninRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid signin request payload")
		middleware.HandleValidationError(ctx, err)
		return
	}
	req.Trim()

	resp, err := c.authService.Signin(ctx.Request.Context(), &req)
	if err != nil {
		// An unknown email on signin is a bad request, not a missing resource.
		if errors.Is(err, apperrors.ErrUserNotFound) {
			middleware.RespondWithError(ctx, http.StatusBadRequest,
				dto.NewErrorDetail(dto.ErrorCodeUserNotFound, "User not found"))
			return
		}
		middleware.HandleAPIError(ctx, err, "Server error")
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
