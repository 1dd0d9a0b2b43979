package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/ironlog/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// ironlog-mcp serves the MCP tools over stdio against a remote IronLog
// server's REST API.
func main() {
	serverURL := flag.String("server", os.Getenv("IRONLOG_SERVER_URL"), "IronLog server URL (default $IRONLOG_SERVER_URL)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("ironlog-mcp", Version)
		return
	}
	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: ironlog-mcp -server <URL>\n")
		os.Exit(1)
	}

	// stdout carries the protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	s := mcp.New(mcp.NewHTTPClient(*serverURL), Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp stdio server failed", "error", err)
		os.Exit(1)
	}
}
