package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/GoArmGo/MovieCatalog/internal/di"
)

func main() {
	mode := flag.String("mode", "server", "run mode: server or worker")
	flag.Parse()

	// bootstrap logger, used until the configured one exists
	bootstrapLogger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	bootstrapLogger.Info("starting application", "mode", *mode)

	ctx := context.Background()

	app, err := di.BuildApp()
	if err != nil {
		bootstrapLogger.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	slog := app.LoggerIns()
	slog.Info("application initialized successfully")

	if err := app.Run(ctx, mode); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}
