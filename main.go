package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/cli"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/config"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/database"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/images"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	imageProvider := images.NewProvider(cfg.ImageDir)

	recipeStore := store.New(db, imageProvider)
	if err := recipeStore.Init(context.Background()); err != nil {
		slog.Error("initializing store", "error", err)
		os.Exit(1)
	}

	if err := cli.Execute(recipeStore, imageProvider, cfg); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
