// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-tracker/internal/app"
	"finance-tracker/internal/auth"
	"finance-tracker/internal/bot"
	"finance-tracker/internal/config"
	"finance-tracker/internal/handler"
	"finance-tracker/internal/logging"
	"finance-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.MustLoad()
	logging.Setup(logging.FromEnv(cfg.LogLevel, cfg.LogFormat))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	tokenService := auth.NewTokenService(cfg)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.TelegramToken != "" && cfg.TelegramWebhookURL != "" {
		registerWebhook(ctx, router, cfg, bot.NewCommands(a.Ledger))
	}

	if cfg.DevLogin {
		slog.Warn("DEV_LOGIN is enabled, tokens are issued without authentication")
		router.POST("/api/v1/login", func(c *gin.Context) {
			var req struct {
				UserID int64 `json:"user_id" binding:"required,min=1"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
				return
			}
			token, err := tokenService.GenerateToken(req.UserID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"token": token})
		})
	}

	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	handler.New(a.Ledger).RegisterRoutes(v1)

	srv := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server started", "addr", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}
	slog.Info("Server stopped")
}

func registerWebhook(ctx context.Context, router *gin.Engine, cfg config.Config, commands *bot.Commands) {
	if cfg.TelegramWebhookSecret == "" {
		slog.Error("TELEGRAM_WEBHOOK_SECRET is required when TELEGRAM_WEBHOOK_URL is set")
		os.Exit(1)
	}

	b, err := bot.New(cfg.TelegramToken, commands)
	if err != nil {
		slog.Error("Failed to initialize Telegram bot", "error", err)
		os.Exit(1)
	}

	webhookURL := cfg.TelegramWebhookURL + "/telegram"
	if err := b.SetWebhook(webhookURL, cfg.TelegramWebhookSecret); err != nil {
		slog.Error("Failed to set webhook", "error", err)
		os.Exit(1)
	}
	slog.Info("Telegram webhook set", "url", webhookURL, "bot", b.UserName())

	router.POST("/telegram", b.WebhookHandler(ctx, cfg.TelegramWebhookSecret))
}
