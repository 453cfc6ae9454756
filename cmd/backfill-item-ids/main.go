// Package main implements a one-shot backfill assigning IDs to category
// items imported before per-item identity existed. Idempotent: items that
// already carry an ID are left untouched, and unchanged categories are not
// written back. Safe to re-run.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/bcmenu/benglish-api/internal/config"
	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/bcmenu/benglish-api/internal/platform/logger"
	"github.com/bcmenu/benglish-api/internal/platform/postgres"
	"github.com/bcmenu/benglish-api/internal/store"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report what would change without writing")
	verbose := flag.Bool("verbose", false, "log every category, changed or not")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	categoryStore := postgres.NewPostgresCategoryStore(db, appLogger)

	changed, scanned, err := backfill(ctx, categoryStore, appLogger, *dryRun, *verbose)
	if err != nil {
		appLogger.Error("Backfill failed", "error", err)
		os.Exit(1)
	}

	mode := "applied"
	if *dryRun {
		mode = "dry-run"
	}
	appLogger.Info("Backfill finished",
		"mode", mode,
		"categories_scanned", scanned,
		"categories_changed", changed)
	fmt.Printf("%s: %d of %d categories needed item IDs\n", mode, changed, scanned)
}

// backfill scans every category and assigns fresh IDs to items lacking one.
// Returns how many categories changed and how many were scanned.
func backfill(
	ctx context.Context,
	categories store.CategoryStore,
	log *slog.Logger,
	dryRun, verbose bool,
) (changed, scanned int, err error) {
	all, err := categories.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list categories: %w", err)
	}

	for _, cat := range all {
		scanned++
		missing := assignItemIDs(cat.Items)

		if missing == 0 {
			if verbose {
				log.Debug("Category already complete", "category", cat.Name)
			}
			continue
		}

		changed++
		if verbose || dryRun {
			log.Info("Category needs item IDs",
				"category", cat.Name,
				"items_missing_id", missing,
				"items_total", len(cat.Items))
		}
		if dryRun {
			continue
		}

		if err := categories.ReplaceItems(ctx, cat.ID, cat.Items); err != nil {
			return changed, scanned, fmt.Errorf("failed to write category %q: %w", cat.Name, err)
		}
	}

	return changed, scanned, nil
}

// assignItemIDs fills nil item IDs in place and reports how many it filled.
func assignItemIDs(items []domain.Item) int {
	missing := 0
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
			missing++
		}
	}
	return missing
}
