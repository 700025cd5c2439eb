// controllers/waitlist_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/soundcrate/soundcrate_backend/config"
	"github.com/soundcrate/soundcrate_backend/middleware"
	"github.com/soundcrate/soundcrate_backend/models"
	"github.com/soundcrate/soundcrate_backend/repositories"
	"github.com/soundcrate/soundcrate_backend/services"
)

// WaitlistController handles waitlist signups and status checks
type WaitlistController struct {
	DB           *mongo.Client
	users        *repositories.UserRepository
	verification *services.VerificationService
}

// NewWaitlistController creates a new waitlist controller
func NewWaitlistController(db *mongo.Client, users *repositories.UserRepository, verification *services.VerificationService) *WaitlistController {
	return &WaitlistController{DB: db, users: users, verification: verification}
}

// Join puts the caller on the waitlist and triggers the confirmation email
func (wc *WaitlistController) Join(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	uid := middleware.GetUserID(c)

	user, err := wc.users.Get(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load profile",
		})
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	if err := wc.users.JoinWaitlist(ctx, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to join waitlist",
		})
	}

	// Keep the standalone waitlist entry alongside the profile flag
	collection := config.GetCollection(wc.DB, "waitlist")
	entry := models.WaitlistEntry{
		Email:     user.Email,
		UID:       uid,
		CreatedAt: time.Now(),
	}
	if _, err := collection.InsertOne(ctx, entry); err != nil {
		c.Logger().Errorf("failed to record waitlist entry for %s: %v", uid, err)
	}

	// The confirmation email failing does not undo the signup
	result := wc.verification.SendWaitlistConfirmation(ctx, uid)
	if !result.Success {
		c.Logger().Errorf("waitlist confirmation for %s failed: %s", uid, result.Message)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Successfully joined the waitlist",
		Data: map[string]interface{}{
			"confirmationSent": result.Success,
		},
	})
}

// Status reports whether the caller is on the waitlist
func (wc *WaitlistController) Status(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	uid := middleware.GetUserID(c)

	user, err := wc.users.Get(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check waitlist status",
		})
	}

	onWaitlist := user != nil && user.OnWaitlist
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Waitlist status",
		Data: map[string]interface{}{
			"onWaitlist": onWaitlist,
		},
	})
}
