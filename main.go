// main.go
package main

import (
	"log"
	"os"
	"time"

	"booktrack/database"
	"booktrack/handlers"
	"booktrack/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database
	database.InitDB()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/guest", handlers.GuestLogin)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/register", handlers.Register)

	// User routes
	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthMiddleware)
	userGroup.Get("/me", handlers.GetCurrentUser)
	userGroup.Get("/stats", handlers.GetUserStats)

	// Book catalog routes
	bookGroup := api.Group("/books")
	bookGroup.Use(middleware.AuthMiddleware)
	bookGroup.Get("/search", handlers.SearchBooks)
	bookGroup.Get("/:id", handlers.GetBook)
	bookGroup.Post("/", handlers.CreateBook)

	// Shelf routes
	userBookGroup := api.Group("/user-books")
	userBookGroup.Use(middleware.AuthMiddleware)
	userBookGroup.Get("/history", handlers.GetReadHistory)
	userBookGroup.Get("/", handlers.GetUserBooks)
	userBookGroup.Post("/", handlers.AddUserBook)
	userBookGroup.Put("/:id", handlers.UpdateUserBook)
	userBookGroup.Delete("/:id", handlers.DeleteUserBook)

	// Achievement routes
	achievementGroup := api.Group("/achievements")
	achievementGroup.Use(middleware.AuthMiddleware)
	achievementGroup.Get("/", handlers.GetAchievements)
	achievementGroup.Get("/user", handlers.GetUserAchievements)
	achievementGroup.Get("/progress", handlers.GetAchievementProgress)
	achievementGroup.Post("/check", handlers.CheckAchievements)

	// Friend routes
	friendGroup := api.Group("/friends")
	friendGroup.Use(middleware.AuthMiddleware)
	friendGroup.Get("/", handlers.GetFriends)
	friendGroup.Get("/search", handlers.SearchUsers)
	friendGroup.Post("/request", handlers.SendFriendRequest)
	friendGroup.Get("/requests", handlers.GetFriendRequests)
	friendGroup.Put("/accept/:id", handlers.AcceptFriendRequest)
	friendGroup.Delete("/remove/:id", handlers.RemoveFriend)
	friendGroup.Get("/:userId/stats", handlers.GetFriendStats)
	friendGroup.Get("/:userId/books", handlers.GetFriendBooks)
	friendGroup.Get("/:userId/achievements", handlers.GetFriendAchievements)

	// Health check endpoint
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"message":   "BookTrack API is running",
			"timestamp": time.Now().Unix(),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Printf("🚀 BookTrack server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	if os.Getenv("APP_ENV") == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:5173" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
