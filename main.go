package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cashbook/backend/internal/config"
	"github.com/cashbook/backend/internal/models"
	"github.com/cashbook/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// A .env file is optional, the environment always takes precedence
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatal().Msg(err.Error())
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	gin.SetMode(cfg.GinMode)

	output := io.Writer(os.Stdout)
	if cfg.HumanLogs() {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create data directory
	err = os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database
	err = models.Connect(cfg.DBPath)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(cfg)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(cfg, r.Group("/"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("backend startup complete")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Msgf("Server forced to shutdown: %v", err)
	}

	sqlDB, err := models.DB.DB()
	if err == nil {
		_ = sqlDB.Close()
	}

	log.Info().Msg("Server exiting")
}
