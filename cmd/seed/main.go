// Command seed imports a YAML menu into the food_items table.
//
//	go run ./cmd/seed -file menu.yaml
//
// Items whose name already exists are skipped, so the command can be re-run.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"orderup_backend/internal/app/di"
	"orderup_backend/internal/feature/catalog/adapters"
	"orderup_backend/internal/feature/catalog/usecase"
	infradb "orderup_backend/internal/platform/db"
)

func main() {
	path := flag.String("file", "menu.yaml", "path to the YAML menu")
	migrate := flag.Bool("migrate", true, "run schema migrations before importing")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		slog.Info("no .env file found, using environment")
	}

	f, err := os.Open(*path)
	if err != nil {
		slog.Error("failed to open menu", "path", *path, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	items, err := adapters.LoadMenu(f)
	if err != nil {
		slog.Error("failed to load menu", "error", err)
		os.Exit(1)
	}

	cfg := infradb.LoadConfigFromEnv()
	cfg.RunMigrations = cfg.RunMigrations || *migrate
	db, err := infradb.OpenDB(cfg, di.Models()...)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	uc := usecase.NewCatalogUsecase(adapters.NewFoodItemPostgres(db))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := uc.ImportMenu(ctx, items)
	if err != nil {
		slog.Error("menu import failed", "error", err)
		os.Exit(1)
	}
	slog.Info("menu import done", "created", res.Created, "skipped", res.Skipped, "failed", res.Failed)
}
