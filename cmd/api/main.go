package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/trackaexpense/notify/internal/config"
	"github.com/trackaexpense/notify/internal/database"
	"github.com/trackaexpense/notify/internal/docstore"
	"github.com/trackaexpense/notify/internal/notification"
	mw "github.com/trackaexpense/notify/pkg/middleware"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	store := docstore.NewPostgresStore(db)
	if err := store.Migrate(context.Background()); err != nil {
		logrus.Fatalf("Failed to migrate document store: %v", err)
	}

	logrus.Info("Connected to database successfully")

	// Notification pipeline
	guard := notification.NewGuard(cfg.DedupTTL)
	resolver := notification.NewEndpointResolver(store)
	relayClient := notification.NewRelayClient(cfg.RelayURL, cfg.RelayTimeout)
	inbox := notification.NewInbox(store)
	dispatcher := notification.NewDispatcher(guard, resolver, relayClient, inbox)

	notificationService := notification.NewService(dispatcher, inbox)
	notificationHandler := notification.NewHandler(notificationService)

	if relayClient.Configured() {
		logrus.WithField("relay_url", cfg.RelayURL).Info("Push relay configured")
	} else {
		logrus.Info("No push relay configured, notifications go to the inbox only")
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Identity)
		r.Mount("/notifications", notificationHandler.Routes())
	})

	logrus.Infof("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logrus.Fatalf("Server failed to start: %v", err)
	}
}
