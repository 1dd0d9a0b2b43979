package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/ironlog/internal/config"
	"github.com/claude/ironlog/internal/importer"
	"github.com/claude/ironlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dir := flag.String("path", "", "directory of workout JSON files (required)")
	stateDir := flag.String("state", "", "directory for the import state DB; empty re-imports every file")
	dryRun := flag.Bool("dry-run", false, "validate and report counts without inserting into database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *dir == "" {
		fmt.Fprintf(os.Stderr, "Usage: ironlog-import -config config.yaml -path /path/to/workouts [-state dir] [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*dir)
	if err != nil || !info.IsDir() {
		log.Error("import path does not exist or is not a directory", "path", *dir)
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode: no data will be written to the database")
	}

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	user, err := db.GetOrCreateDefaultUser(ctx, cfg.DefaultUser.Email, cfg.DefaultUser.Name, cfg.DefaultUser.ExperienceLevel)
	if err != nil {
		log.Error("failed to load default user", "error", err)
		os.Exit(1)
	}

	opts := importer.Options{UserID: user.ID, DryRun: *dryRun}
	if *stateDir != "" {
		state, err := importer.OpenStateDB(*stateDir)
		if err != nil {
			log.Error("failed to open state database", "error", err)
			os.Exit(1)
		}
		defer state.Close()
		opts.State = state
	}

	// Run import
	stats, err := importer.New(db, opts, log).Import(ctx, *dir)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"files_seen", stats.FilesSeen,
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"workouts_received", stats.WorkoutsReceived,
		"workouts_inserted", stats.WorkoutsInserted,
		"workouts_invalid", stats.WorkoutsInvalid,
		"sets_inserted", stats.SetsInserted,
	)
}
