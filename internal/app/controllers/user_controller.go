package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/services"
	"github.com/yigit/campuslink/internal/middleware"
)

// UserController handles profile operations
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new user controller
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// GetProfile returns the profile of the user with the given email.
// GET /api/user/:email
func (c *UserController) GetProfile(ctx *gin.Context) {
	profile, err := c.userService.GetProfile(ctx.Request.Context(), ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Server error")
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial profile update.
// PUT /api/update-profile
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid update profile payload")
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.userService.UpdateProfile(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err, "Server error")
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Profile updated successfully"})
}

// ListUsers returns every user with presence information.
// GET /api/users
func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.userService.ListUsers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Error fetching users")
		return
	}

	ctx.JSON(http.StatusOK, users)
}
