package main

import (
	"os"
	"os/signal"
	"syscall"

	"lexcase/internal/adapters/http/middleware"
	"lexcase/internal/adapters/http/routes"
	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// @title LexCase Chambers API
// @version 1.0
// @description Case management backend for a law firm: case lifecycle, staged payments, hearings, documents and registration approval.

// @contact.name API Support
// @contact.email support@lexcase.example

// @host localhost:3000
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	config.SetupLogging(cfg)
	defer zap.S().Sync()

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		zap.S().Fatalw("failed to connect to database", "error", err)
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		zap.S().Fatalw("failed to auto migrate", "error", err)
	}
	zap.S().Info("database migration completed")

	if err := config.SeedAdminAccount(db); err != nil {
		zap.S().Warnw("failed to seed admin account", "error", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "LexCase Chambers API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg)
	svcs := routes.Setup(app, db, cfg)

	// Daily hearing reminder sweep
	if err := svcs.Reminder.Start(); err != nil {
		zap.S().Fatalw("failed to start reminder scheduler", "error", err)
	}
	defer svcs.Reminder.Stop()

	go gracefulShutdown(app)

	zap.S().Infow("server starting", "port", cfg.Port, "mode", cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		zap.S().Fatalw("failed to start server", "error", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.S().Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zap.S().Errorw("error during shutdown", "error", err)
	}
	zap.S().Info("server stopped gracefully")
}
