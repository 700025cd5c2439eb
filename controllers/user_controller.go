// controllers/user_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/soundcrate/soundcrate_backend/middleware"
	"github.com/soundcrate/soundcrate_backend/models"
	"github.com/soundcrate/soundcrate_backend/repositories"
)

// UserController handles profile documents for signed-in accounts
type UserController struct {
	users *repositories.UserRepository
}

// NewUserController creates a new user controller
func NewUserController(users *repositories.UserRepository) *UserController {
	return &UserController{users: users}
}

// SyncProfile creates the caller's profile on first sign-in, or refreshes
// lastLogin on a returning one
func (uc *UserController) SyncProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	uid := middleware.GetUserID(c)

	var body struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	user, err := uc.users.Get(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load profile",
		})
	}

	isNewUser := user == nil
	if isNewUser {
		if body.Email == "" {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Email is required",
			})
		}

		now := time.Now()
		user = &models.User{
			ID:         uid,
			Email:      body.Email,
			CreatedAt:  now,
			LastLogin:  now,
			OnWaitlist: false,
		}
		if err := uc.users.Create(ctx, user); err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to create profile",
			})
		}
	} else {
		if err := uc.users.TouchLastLogin(ctx, uid); err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to update profile",
			})
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile synced",
		Data: map[string]interface{}{
			"user":      user,
			"isNewUser": isNewUser,
		},
	})
}

// GetProfile returns the caller's profile document
func (uc *UserController) GetProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	uid := middleware.GetUserID(c)

	user, err := uc.users.Get(ctx, uid)
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

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile found",
		Data:    user,
	})
}
