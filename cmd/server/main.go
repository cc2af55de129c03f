// Package main runs the webinar scheduling and notification HTTP server
// with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/webinar-wrapper/backend/config"
	"github.com/webinar-wrapper/backend/internal/auth"
	"github.com/webinar-wrapper/backend/internal/meeting"
	"github.com/webinar-wrapper/backend/internal/middleware"
	"github.com/webinar-wrapper/backend/internal/notify"
	"github.com/webinar-wrapper/backend/internal/schedule"
	"github.com/webinar-wrapper/backend/internal/upload"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	// Meeting providers
	zoomProvider := meeting.NewZoomProvider(cfg.Zoom, logger)
	googleProvider := meeting.NewGoogleProvider(cfg.Google, logger)

	// Scheduling
	scheduleService := schedule.NewService(logger)
	scheduleHandler := schedule.NewHandler(scheduleService, zoomProvider, googleProvider, logger)

	// Notification channels
	emailChannel := notify.NewEmailChannel(cfg.Email, logger)
	whatsappChannel := notify.NewWhatsAppChannel(cfg.Twilio, logger)
	dispatcher := notify.NewDispatcher(logger)
	notifyHandler := notify.NewHandler(dispatcher, emailChannel, whatsappChannel, logger)

	// Thin adapters around the pipeline
	uploadHandler := upload.NewHandler(logger)
	authHandler := auth.NewHandler(cfg.Google, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := router.Group("/api")
	{
		api.POST("/upload", uploadHandler.Upload)
		api.POST("/schedule", scheduleHandler.ScheduleZoom)
		api.POST("/schedule-google", scheduleHandler.ScheduleGoogle)
		api.POST("/send-email", notifyHandler.SendEmail)
		api.POST("/send-whatsapp", notifyHandler.SendWhatsApp)
		api.GET("/auth/google", authHandler.Authorize)
		api.GET("/auth/google/callback", authHandler.Callback)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
