package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"toyshop/internal/handlers"
	"toyshop/internal/middleware"
	"toyshop/internal/models"
	"toyshop/internal/repositories"
	"toyshop/internal/services"
)

func main() {
	// --- Configuration ---
	// Viper reads everything from the environment; defaults are for local runs.
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("JWT_SECRET", "dev_secret_change_me")
	viper.SetDefault("JWT_ISSUER", "toyshop")
	viper.SetDefault("TOKEN_TTL_HOURS", 24)
	viper.SetDefault("LOCKOUT_THRESHOLD", 3)
	viper.SetDefault("DELETE_CLAIM", "DeleteToy")
	viper.SetDefault("ADMIN_EMAILS", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	deleteClaim := viper.GetString("DELETE_CLAIM")

	// --- Database ---
	// Postgres when DATABASE_URL is set, a local SQLite file otherwise.
	var dialector gorm.Dialector
	if dsn := viper.GetString("DATABASE_URL"); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open("toyshop.db")
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Toy{}, &models.User{}, &models.UserClaim{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize Repositories ---
	toyRepo := repositories.NewGORMToyRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Initialize Services ---
	toyService := services.NewToyService(toyRepo)
	authService := services.NewAuthService(userRepo, services.AuthConfig{
		JWTSecret:        viper.GetString("JWT_SECRET"),
		Issuer:           viper.GetString("JWT_ISSUER"),
		TokenTTL:         time.Duration(viper.GetInt("TOKEN_TTL_HOURS")) * time.Hour,
		LockoutThreshold: viper.GetInt("LOCKOUT_THRESHOLD"),
		DeleteClaim:      deleteClaim,
		AdminEmails:      strings.Split(viper.GetString("ADMIN_EMAILS"), ","),
	})

	// --- Initialize Handlers ---
	toyHandler := handlers.NewToyHandler(toyService)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	authHandler.RegisterRoutes(app)
	toyHandler.RegisterRoutes(app,
		middleware.AuthRequired(authService),
		middleware.RequireClaim(deleteClaim),
	)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
