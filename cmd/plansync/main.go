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
	"path/filepath"
	"syscall"
	"time"

	"github.com/claude/plansync/internal/config"
	"github.com/claude/plansync/internal/ingest"
	"github.com/claude/plansync/internal/ingest/jsonplan"
	"github.com/claude/plansync/internal/ingest/pdf"
	"github.com/claude/plansync/internal/llm"
	planmcp "github.com/claude/plansync/internal/mcp"
	"github.com/claude/plansync/internal/server"
	"github.com/claude/plansync/internal/settings"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	mcpMode := flag.Bool("mcp", false, "serve MCP on stdio instead of HTTP")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("PlanSync starting", "version", Version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to resolve home directory", "error", err)
			os.Exit(1)
		}
		dataDir = filepath.Join(home, ".plansync")
	}

	store, err := settings.Open(dataDir)
	if err != nil {
		log.Error("failed to open settings store", "dir", dataDir, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()

	jsonPlans := jsonplan.NewProvider(log)
	pdfPlans := pdfProvider(ctx, cfg, store, log)

	if *mcpMode {
		s := planmcp.New(store, jsonPlans, cfg.Intervals, cfg.Upload.Delay(), Version, log)
		log.Info("serving MCP on stdio")
		if err := mcpserver.ServeStdio(s); err != nil {
			log.Error("mcp server error", "error", err)
			os.Exit(1)
		}
		return
	}

	srv := server.New(store, jsonPlans, pdfPlans, cfg.Intervals, cfg.Upload.Delay(), cfg.Auth.APIKey, log)

	// Start server — tsnet or plain HTTP
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

// pdfProvider builds the LLM-backed PDF adapter when a Gemini key is
// available from config or the settings store. Without a key, PDF import
// stays disabled and the server reports it as unconfigured.
func pdfProvider(ctx context.Context, cfg *config.Config, store *settings.Store, log *slog.Logger) ingest.Provider {
	apiKey := cfg.Gemini.APIKey
	if apiKey == "" {
		apiKey, _ = store.Get(settings.KeyGeminiAPIKey)
	}
	if apiKey == "" {
		log.Info("PDF import disabled (no Gemini API key configured)")
		return nil
	}

	client, err := llm.NewClient(ctx, apiKey, cfg.Gemini.Model, log)
	if err != nil {
		log.Warn("PDF import disabled", "error", err)
		return nil
	}
	return pdf.NewProvider(client, log)
}
