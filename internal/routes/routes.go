package routes

import (
	"foodshare/internal/bootstrap"
	"foodshare/internal/config"
	"foodshare/internal/handlers"
	"foodshare/internal/middleware"
	"foodshare/internal/utils"

	"github.com/gin-gonic/gin"
)

// SetupRoutes builds the engine with every route and middleware
func SetupRoutes(cfg *config.Config, ctn *bootstrap.Container) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	uploadMaxBytes := int64(cfg.Assets.MaxImageSizeMB) * 1024 * 1024
	authHandler := handlers.NewAuthHandler(ctn.Auth)
	donorHandler := handlers.NewDonorHandler(ctn.Donor)
	uploadHandler := handlers.NewUploadHandler(ctn.Images, uploadMaxBytes)
	healthHandler := handlers.NewHealthHandler(ctn.DB, ctn.Storage)

	r.GET("/health", healthHandler.Check)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/live", healthHandler.Live)
	r.GET("/metrics", middleware.MetricsHandler())

	sessionAuth := middleware.SessionAuthMiddleware(ctn.Auth)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", middleware.RateLimitMiddleware(ctn.RegisterLimiter), authHandler.Register)
			auth.POST("/login", middleware.RateLimitMiddleware(ctn.LoginLimiter), authHandler.Login)
			auth.GET("/roles", authHandler.GetRoles)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", sessionAuth, authHandler.Me)
			auth.POST("/change-password", sessionAuth, authHandler.ChangePassword)
		}

		donor := api.Group("/donor")
		{
			donor.GET("/donations/:donorId", donorHandler.GetDonations)
			donor.POST("/donations", sessionAuth, donorHandler.CreateDonation)
			donor.GET("/conversations/:donorId", donorHandler.GetConversations)
			donor.POST("/conversations", sessionAuth, donorHandler.StartConversation)
			donor.POST("/conversations/:conversationId/read", sessionAuth, donorHandler.MarkConversationRead)
			donor.GET("/unread-count", sessionAuth, donorHandler.GetUnreadCount)
			donor.GET("/messages/:conversationId", donorHandler.GetMessages)
			donor.POST("/messages/send", donorHandler.SendMessage)
			donor.GET("/profile/:donorId", donorHandler.GetProfile)
			donor.POST("/uploads/image",
				sessionAuth,
				middleware.RequestSizeLimitMiddleware(uploadMaxBytes+(1<<20)),
				uploadHandler.UploadImage)
			donor.GET("/ws", middleware.SessionAuthWithQueryMiddleware(ctn.Auth), ctn.Hub.HandleWebSocket)
		}
	}

	utils.GetLogger().Info("routes registered", "mode", cfg.Server.Mode, "port", cfg.Server.Port)
	return r
}
