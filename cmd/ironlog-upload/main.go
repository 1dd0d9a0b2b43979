package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/claude/ironlog/internal/importer"
	"github.com/claude/ironlog/internal/upload"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "IronLog server URL (e.g. https://ironlog.tail1234.ts.net)")
	dir := flag.String("path", "", "directory of workout JSON files")
	apiKey := flag.String("api-key", os.Getenv("IRONLOG_AUTH_API_KEY"), "server API key (default $IRONLOG_AUTH_API_KEY)")
	dryRun := flag.Bool("dry-run", false, "validate workouts locally without sending them")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("ironlog-upload", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *dir == "" {
		fmt.Fprintf(os.Stderr, "Usage: ironlog-upload -server <URL> -path <dir> [-api-key KEY] [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if !*dryRun && (*serverURL == "" || *apiKey == "") {
		fmt.Fprintf(os.Stderr, "Error: -server and -api-key are required (or use -dry-run)\n")
		os.Exit(1)
	}

	info, err := os.Stat(*dir)
	if err != nil || !info.IsDir() {
		log.Error("workout directory not found", "path", *dir)
		os.Exit(1)
	}

	// Open state database
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	state, err := importer.OpenStateDB(filepath.Join(homeDir, ".ironlog-upload"))
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	if *dryRun {
		log.Info("DRY RUN mode: workouts will be validated but not sent")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	u := upload.New(upload.NewClient(*serverURL, *apiKey), state, *dryRun, log)
	stats, err := u.Run(ctx, *dir)
	log.Info("upload stats",
		"files_total", stats.FilesTotal,
		"files_uploaded", stats.FilesUploaded,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"workouts_sent", stats.WorkoutsSent,
		"workouts_rejected", stats.WorkoutsRejected,
	)
	if err != nil {
		log.Error("upload failed", "error", err)
		os.Exit(1)
	}
	log.Info("upload complete")
}
