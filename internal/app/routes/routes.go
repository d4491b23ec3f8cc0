package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/campuslink/internal/app/controllers"
	"github.com/yigit/campuslink/internal/middleware"
)

// SetupRouter configures all application routes. A nil limiter disables
// rate limiting on the credential endpoints.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	messageController *controllers.MessageController,
	postController *controllers.PostController,
	limiter middleware.Limiter,
) {
	api := router.Group("/api")

	// --- Auth routes ---
	credentials := api.Group("")
	if limiter != nil {
		credentials.Use(middleware.RateLimit(limiter))
	}
	{
		credentials.POST("/signup", authController.Signup)
		credentials.POST("/signin", authController.Signin)
	}

	// --- Profile routes ---
	api.GET("/user/:email", userController.GetProfile)
	api.PUT("/update-profile", userController.UpdateProfile)
	api.GET("/users", userController.ListUsers)

	// --- Messaging routes ---
	api.POST("/send-message", messageController.SendMessage)
	api.GET("/messages/:sender/:receiver", messageController.GetConversation)
	api.GET("/unread-counts/:userEmail", messageController.GetUnreadCounts)
	api.POST("/mark-read", messageController.MarkRead)
	api.GET("/last-message-times/:userEmail", messageController.GetLastMessageTimes)
	api.GET("/total-unread/:userEmail", messageController.GetTotalUnread)

	// --- Post routes ---
	collaboration := api.Group("/collaboration-posts")
	{
		collaboration.POST("", postController.CreateCollaborationPost)
		collaboration.GET("", postController.ListCollaborationPosts)
		collaboration.DELETE("/:id", postController.DeleteCollaborationPost)
	}

	alumni := api.Group("/alumni-posts")
	{
		alumni.POST("", postController.CreateAlumniPost)
		alumni.GET("", postController.ListAlumniPosts)
	}
}
