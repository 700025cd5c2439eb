package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/soundcrate/soundcrate_backend/controllers"
	"github.com/soundcrate/soundcrate_backend/middleware"
	"github.com/soundcrate/soundcrate_backend/websocket"
)

// SetupRoutes configures all API routes by calling individual route registration functions
func SetupRoutes(e *echo.Echo, hub *websocket.Hub, verifier middleware.TokenVerifier,
	verificationController *controllers.VerificationController,
	userController *controllers.UserController,
	waitlistController *controllers.WaitlistController,
	songController *controllers.SongController) {

	// Public verification and catalog routes
	RegisterAuthRoutes(e, verificationController)
	RegisterSongRoutes(e, verifier, songController)

	// Live leaderboard updates
	e.GET("/api/ws", func(c echo.Context) error {
		return websocket.HandleWebSocket(c, hub)
	})

	// Authenticated routes
	authGroup := e.Group("/api", middleware.RequireAuth(verifier))
	authGroup.POST("/users/sync", userController.SyncProfile)
	authGroup.GET("/users/me", userController.GetProfile)
	authGroup.POST("/waitlist/join", waitlistController.Join)
	authGroup.GET("/waitlist/status", waitlistController.Status)
	authGroup.POST("/waitlist/confirmation", verificationController.SendWaitlistConfirmation)
}
