package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/soundcrate/soundcrate_backend/config"
	"github.com/soundcrate/soundcrate_backend/controllers"
	"github.com/soundcrate/soundcrate_backend/middleware"
	"github.com/soundcrate/soundcrate_backend/repositories"
	"github.com/soundcrate/soundcrate_backend/routes"
	"github.com/soundcrate/soundcrate_backend/services"
	"github.com/soundcrate/soundcrate_backend/websocket"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Email configuration is required before anything else starts
	emailConfig := config.LoadEmailConfig()

	// Initialize Firebase
	config.InitFirebase()

	// Connect to Redis
	redisClient := config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "soundcrate"
	}

	// Create WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		AllowedDomains: []string{"*"},
		AllowInlineJS:  false,
		AllowEval:      false,
	}))

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "SoundCrate Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	e.Use(httpsRedirect())

	// Initialize collaborators
	authProvider, err := services.NewFirebaseAuthProvider(config.FirebaseApp)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase auth: %v", err)
	}
	emailSender := services.NewSMTPEmailSender(emailConfig)

	// Initialize repositories
	verificationRepo := repositories.NewVerificationRepository(client, dbName)
	userRepo := repositories.NewUserRepository(client, dbName)

	// Initialize services
	verificationService := services.NewVerificationService(verificationRepo, authProvider, emailSender, userRepo)

	// Initialize controllers
	verificationController := controllers.NewVerificationController(verificationService)
	userController := controllers.NewUserController(userRepo)
	waitlistController := controllers.NewWaitlistController(client, userRepo, verificationService)
	songController := controllers.NewSongController(client, redisClient, wsHub)

	// Setup routes
	routes.SetupRoutes(e, wsHub, authProvider, verificationController, userController, waitlistController, songController)

	// Ensure uploads directories exist
	os.MkdirAll("uploads", 0755)
	os.MkdirAll("uploads/covers", 0755)
	os.MkdirAll("uploads/audio", 0755)

	e.Static("/uploads", "uploads")

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}

func httpsRedirect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("X-Forwarded-Proto") == "http" {
				return c.Redirect(301, "https://"+c.Request().Host+c.Request().RequestURI)
			}
			return next(c)
		}
	}
}
