package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/ironlog/internal/catalog"
	"github.com/claude/ironlog/internal/config"
	"github.com/claude/ironlog/internal/mcp"
	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/server"
	"github.com/claude/ironlog/internal/storage"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	seedPlans := flag.Bool("seed-plans", false, "save the preset A/B plans for the default user when none exist")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("IronLog starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

	// Run migrations
	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	// Connect database
	ctx := context.Background()
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
	log.Info("default user ready", "user_id", user.ID, "experience_level", user.ExperienceLevel)

	if *seedPlans {
		if err := seedPresetPlans(ctx, db, user.ID, log); err != nil {
			log.Error("seeding plans failed", "error", err)
			os.Exit(1)
		}
	}

	// Create server
	srv := server.New(db, server.Options{
		APIKey:       cfg.Auth.APIKey,
		DefaultUser:  *user,
		HistoryLimit: cfg.Recovery.HistoryLimit,
		StatusWindow: time.Duration(cfg.Recovery.StatusWindowDays) * 24 * time.Hour,
	}, log)

	mcpServer := mcp.New(db, Version, log)
	srv.SetMCP(mcp.NewHTTPHandler(mcpServer, func(r *http.Request) (int, bool) {
		u, ok := server.UserFromRequest(r)
		return u.ID, ok
	}))

	// Start server: tsnet or plain HTTP
	var listener net.Listener

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// seedPresetPlans stores the built-in A/B split for plan types the user has
// not saved yet. Existing plans are left alone.
func seedPresetPlans(ctx context.Context, db *storage.DB, userID int, log *slog.Logger) error {
	presets := catalog.Default()
	for _, pt := range []models.PlanType{models.PlanA, models.PlanB} {
		existing, err := db.GetPlan(ctx, userID, pt)
		if err != nil {
			return err
		}
		if existing != nil {
			log.Info("plan already saved, not seeding", "plan_type", pt)
			continue
		}
		plan := presets.PresetPlan(pt)
		plan.UserID = userID
		if err := db.UpsertPlan(ctx, &plan); err != nil {
			return err
		}
		log.Info("seeded preset plan", "plan_type", pt, "exercises", len(plan.Exercises))
	}
	return nil
}
