// controllers/verification_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/soundcrate/soundcrate_backend/middleware"
	"github.com/soundcrate/soundcrate_backend/models"
	"github.com/soundcrate/soundcrate_backend/services"
)

// VerificationController exposes the email verification operations. Business
// outcomes ride in the payload's success flag; HTTP status stays 200 unless
// the request itself is malformed.
type VerificationController struct {
	service *services.VerificationService
}

// NewVerificationController creates a new verification controller
func NewVerificationController(service *services.VerificationService) *VerificationController {
	return &VerificationController{service: service}
}

// SendCode issues a fresh verification code and emails it
func (vc *VerificationController) SendCode(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req models.SendCodeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	return c.JSON(http.StatusOK, vc.service.Issue(ctx, req.Email))
}

// VerifyCode redeems a code and returns a sign-in token on success
func (vc *VerificationController) VerifyCode(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req models.VerifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	return c.JSON(http.StatusOK, vc.service.Redeem(ctx, req.Email, req.Code))
}

// SendWaitlistConfirmation emails the waitlist welcome to the caller
func (vc *VerificationController) SendWaitlistConfirmation(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	uid := middleware.GetUserID(c)
	return c.JSON(http.StatusOK, vc.service.SendWaitlistConfirmation(ctx, uid))
}
