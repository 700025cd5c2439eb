package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/soundcrate/soundcrate_backend/controllers"
	"github.com/soundcrate/soundcrate_backend/middleware"
)

// RegisterSongRoutes sets up the song catalog routes. Reads are public;
// uploads and votes require a signed-in caller.
func RegisterSongRoutes(e *echo.Echo, verifier middleware.TokenVerifier, songController *controllers.SongController) {
	e.GET("/api/songs/leaderboard", songController.Leaderboard)
	e.GET("/api/songs/:id/qrcode", songController.ShareQRCode)

	group := e.Group("/api/songs", middleware.RequireAuth(verifier))
	group.POST("", songController.Create)
	group.POST("/upload", songController.Upload)
	group.POST("/:id/vote", songController.Vote)
}
