package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fplmate/internal/api"
	"github.com/jstittsworth/fplmate/internal/api/handlers"
	"github.com/jstittsworth/fplmate/internal/scoring"
	"github.com/jstittsworth/fplmate/internal/services"
	"github.com/jstittsworth/fplmate/pkg/config"
	"github.com/jstittsworth/fplmate/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.GetLogger().Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// The rating model is loaded once and shared read-only by every request
	var predictor handlers.RatingPredictor
	model, err := scoring.LoadLinearModel(cfg.ModelPath)
	if err != nil {
		log.WithError(err).WithField("model_path", cfg.ModelPath).Warn("Rating model not loaded, prediction endpoint disabled")
	} else {
		ratingService, err := scoring.NewRatingService(model)
		if err != nil {
			log.Fatalf("Failed to initialize rating service: %v", err)
		}
		predictor = ratingService
	}

	recommendationService := services.NewRecommendationService(cfg)

	router := api.NewRouter(cfg, recommendationService, predictor)

	for _, route := range router.Routes() {
		log.Debugf("%s %s", route.Method, route.Path)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithFields(logrus.Fields{
			"port":    cfg.Port,
			"season":  cfg.Season,
			"env":     cfg.Env,
			"players": cfg.PlayersDir(),
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
