package http

import (
	"github.com/gin-gonic/gin"

	"github.com/villagehs/village-backend/internal/delivery/http/handler"
	"github.com/villagehs/village-backend/internal/delivery/http/middleware"
	"github.com/villagehs/village-backend/internal/metrics"
)

type Router struct {
	authHandler       *handler.AuthHandler
	profileHandler    *handler.ProfileHandler
	discoveryHandler  *handler.DiscoveryHandler
	prefsHandler      *handler.PrefsHandler
	connectionHandler *handler.ConnectionHandler
	eventHandler      *handler.EventHandler
	messageHandler    *handler.MessageHandler
	authMiddleware    *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	discoveryHandler *handler.DiscoveryHandler,
	prefsHandler *handler.PrefsHandler,
	connectionHandler *handler.ConnectionHandler,
	eventHandler *handler.EventHandler,
	messageHandler *handler.MessageHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:       authHandler,
		profileHandler:    profileHandler,
		discoveryHandler:  discoveryHandler,
		prefsHandler:      prefsHandler,
		connectionHandler: connectionHandler,
		eventHandler:      eventHandler,
		messageHandler:    messageHandler,
		authMiddleware:    authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()
	router.Use(middleware.Metrics())

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", r.authHandler.Signup)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.POST("/suggest-bio", r.profileHandler.SuggestBio)
				profile.GET("/:user_id", r.profileHandler.GetProfileByUserID)
			}

			// Discovery routes
			discovery := protected.Group("/discovery")
			{
				discovery.GET("", r.discoveryHandler.Browse)
				discovery.POST("/hidden/:user_id", r.prefsHandler.Hide)
				discovery.DELETE("/hidden/:user_id", r.prefsHandler.Unhide)
			}

			// Preference routes
			prefs := protected.Group("/prefs")
			{
				prefs.GET("", r.prefsHandler.GetPrefs)
				prefs.PUT("", r.prefsHandler.UpdatePrefs)
			}

			// Connection routes
			connections := protected.Group("/connections")
			{
				connections.POST("", r.connectionHandler.Request)
				connections.GET("", r.connectionHandler.List)
				connections.GET("/pending-count", r.connectionHandler.PendingCount)
				connections.POST("/:id/accept", r.connectionHandler.Accept)
				connections.POST("/:id/decline", r.connectionHandler.Decline)
			}

			// Event routes
			events := protected.Group("/events")
			{
				events.POST("", r.eventHandler.Create)
				events.GET("", r.eventHandler.Calendar)
				events.POST("/:id/rsvp", r.eventHandler.RSVP)
				events.DELETE("/:id/rsvp", r.eventHandler.CancelRSVP)
				events.GET("/:id/attendees", r.eventHandler.Attendees)
			}

			// Message routes
			messages := protected.Group("/messages")
			{
				messages.POST("", r.messageHandler.Send)
				messages.GET("/conversations", r.messageHandler.ListConversations)
				messages.GET("/:conversation_id", r.messageHandler.ListMessages)
			}
		}
	}

	return router
}
