package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rmendoza/alumnitrack/internal/app/controllers"
	"github.com/rmendoza/alumnitrack/internal/app/models"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/middleware"
	"github.com/rmendoza/alumnitrack/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	questionnaireController *controllers.QuestionnaireController,
	announcementController *controllers.AnnouncementController,
	activityController *controllers.ActivityController,
	deletionController *controllers.DeletionController,
	feedHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
	jobSecret string,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.GET("/verify-email", authController.VerifyEmail)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.POST("/auth/probe", authController.Probe)
		authenticated.PUT("/auth/password", authController.ChangePassword)

		profiles := authenticated.Group("/profiles")
		{
			profiles.GET("/me", profileController.GetOwnProfile)
			profiles.PUT("/me", profileController.UpdateOwnProfile)
			profiles.GET("", profileController.ListProfiles)

			profilesAdmin := profiles.Group("")
			profilesAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				profilesAdmin.PUT("/:userId/verify", profileController.VerifyProfile)
			}
		}

		questionnaire := authenticated.Group("/questionnaire")
		{
			questionnaire.GET("", questionnaireController.GetOwnQuestionnaire)
			questionnaire.POST("", questionnaireController.SubmitQuestionnaire)
		}

		announcements := authenticated.Group("/announcements")
		{
			announcements.GET("", announcementController.ListAnnouncements)
			announcements.GET("/unseen-count", announcementController.GetUnseenCount)
			announcements.POST("/mark-seen", announcementController.MarkSeen)
			announcements.GET("/feed", feedHandler.HandleConnection)
			announcements.GET("/:id", announcementController.GetAnnouncementByID)

			announcementsAdmin := announcements.Group("")
			announcementsAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				announcementsAdmin.POST("", announcementController.CreateAnnouncement)
				announcementsAdmin.PUT("/:id", announcementController.UpdateAnnouncement)
				announcementsAdmin.DELETE("/:id", announcementController.DeleteAnnouncement)
			}
		}

		deletionRequests := authenticated.Group("/deletion-requests")
		{
			deletionRequests.POST("", deletionController.CreateDeletionRequest)
			deletionRequests.GET("/me", deletionController.GetOwnDeletionRequest)

			deletionAdmin := deletionRequests.Group("")
			deletionAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				deletionAdmin.GET("", deletionController.ListDeletionRequests)
				deletionAdmin.PUT("/:id/decision", deletionController.DecideDeletionRequest)
			}
		}

		authenticated.GET("/activity/me", activityController.ListOwnActivity)

		activityAdmin := authenticated.Group("/activity")
		activityAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			activityAdmin.GET("", activityController.ListActivity)
		}
	}

	// --- Internal job routes, guarded by a shared secret instead of JWT ---
	jobs := v1.Group("/jobs")
	jobs.Use(middleware.SharedSecretRequired(jobSecret))
	{
		jobs.POST("/process-deletions", deletionController.ProcessDeletions)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewStructuredResponse(gin.H{"status": "ok"}, "Healthy"))
	})
}
