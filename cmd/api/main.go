package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/bootstrap"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
		warnProductionSettings(cfg)
	}

	appLogger := bootstrap.NewLogger(cfg.Logger)

	container := bootstrap.New(context.Background(), cfg, appLogger)
	defer func() {
		if err := container.Close(); err != nil {
			log.Printf("Failed to release resources: %v", err)
		}
	}()

	scheduleHandler := handler.NewScheduleHandler(container.ScheduleService, container.TimeProvider, appLogger)

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.Fatalf("Invalid server.trustedProxies: %v", err)
	}
	routes.SetupMiddlewares(router, appLogger, container.TimeProvider, cfg.Server.AllowedOrigins)
	routes.SetupRoutes(router, scheduleHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":  server.Addr,
			"env":   cfg.Environment,
			"cache": container.CacheEnabled(),
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		appLogger.Error("Failed to start server", map[string]any{
			"error": err.Error(),
		})
		return
	case <-quit:
	}

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// warnProductionSettings reports settings that are legal but unwise in production
func warnProductionSettings(cfg *config.Config) {
	var warnings []string

	if cfg.Server.ReadTimeout < 5*time.Second {
		warnings = append(warnings, "server.readTimeout is too low for production")
	}
	if cfg.Server.WriteTimeout < 5*time.Second {
		warnings = append(warnings, "server.writeTimeout is too low for production")
	}
	if !cfg.Cache.Enabled {
		warnings = append(warnings, "cache is disabled; every request reaches the prayer time service")
	}
	for _, origin := range cfg.Server.AllowedOrigins {
		if origin == "*" {
			warnings = append(warnings, "server.allowedOrigins allows any origin")
			break
		}
	}

	if len(warnings) > 0 {
		log.Printf("Warning: potential issues in production configuration: %v", warnings)
	}
}
