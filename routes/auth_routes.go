package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/soundcrate/soundcrate_backend/controllers"
)

// RegisterAuthRoutes sets up the public email verification routes
func RegisterAuthRoutes(e *echo.Echo, verificationController *controllers.VerificationController) {
	e.POST("/api/auth/send-code", verificationController.SendCode)
	e.POST("/api/auth/verify-code", verificationController.VerifyCode)
}
