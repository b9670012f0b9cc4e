package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/trackaexpense/notify/internal/config"
	"github.com/trackaexpense/notify/internal/relay"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg := config.LoadRelay()
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid relay configuration: %v", err)
	}

	sender, err := relay.NewFCMSender(context.Background(),
		cfg.FirebaseProjectID, cfg.FirebaseClientEmail, cfg.FirebasePrivateKey)
	if err != nil {
		logrus.Fatalf("Failed to initialize push gateway: %v", err)
	}

	guard := relay.NewIdempotencyGuard(cfg.IdempotencyTTL)
	handler := relay.NewHandler(sender, guard)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.Routes(),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logrus.Infof("Notification relay listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Relay server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Info("Relay shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Error during relay shutdown: %v", err)
	}
}
