package main

import (
	"context"
	"log/slog"
	"os"

	"gestoria/internal/buildinfo"
	"gestoria/internal/client/cli"
	"gestoria/internal/client/config"
	"gestoria/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	// Warnings and errors go to stderr so they do not interleave with the
	// interactive prompts on stdout.
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	log := logging.NewSlogLogger(slog.New(handler))

	cli.NewApp(cfg, log).Run(ctx)

}
