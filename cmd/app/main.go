package main

import (
	"EnvWatchAPI/internal/bootstrap"
	"EnvWatchAPI/internal/config"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.LoadAppConfig()

	mongoClient, db := config.InitMongo(cfg)
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error closing database connection", "error", err)
		}
	}()

	s3Client := config.NewS3Client(cfg)
	httpClient := config.NewHTTPClient(cfg)
	validate := config.NewValidator()
	chiMux := config.NewChi(cfg)

	bootstrap.Init(cfg, db, validate, s3Client, httpClient, chiMux)

	addr := fmt.Sprintf(":%s", cfg.AppPort)
	slog.Info("Starting EnvWatchAPI", "port", cfg.AppPort)

	if err := http.ListenAndServe(addr, chiMux); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
