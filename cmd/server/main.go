package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/tendant/chi-demo/app"

	"github.com/muhammedrahil/cloudspark/pkg/cloudspark"
	"github.com/muhammedrahil/cloudspark/pkg/cloudspark/config"
	"github.com/muhammedrahil/cloudspark/pkg/cloudspark/httpapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	session, err := cloudspark.New(ctx, cfg.SessionConfig())
	if err != nil {
		slog.Error("Failed to create storage session", "err", err)
		os.Exit(1)
	}
	if cfg.Bucket != "" {
		if err := session.Connect(cfg.Bucket); err != nil {
			slog.Error("Failed to bind bucket", "bucket", cfg.Bucket, "err", err)
			os.Exit(1)
		}
	}

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	presignHandler := httpapi.NewHandler(session)
	server.R.Route("/api/v1", func(r chi.Router) {
		r.Mount("/presign", presignHandler.Routes())
	})

	server.Run()
}
