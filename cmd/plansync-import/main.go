package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/plansync/internal/ingest"
	"github.com/claude/plansync/internal/ingest/jsonplan"
	"github.com/claude/plansync/internal/ingest/pdf"
	"github.com/claude/plansync/internal/llm"
	"github.com/claude/plansync/internal/settings"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	filePath := flag.String("file", "", "training plan file (.pdf or .json)")
	outPath := flag.String("out", "", "write the normalized plan JSON here (default: stdout)")
	geminiKey := flag.String("gemini-key", "", "Gemini API key for PDF extraction (default: PLANSYNC_GEMINI_API_KEY or the settings store)")
	geminiModel := flag.String("gemini-model", "", "Gemini model name (default: "+llm.DefaultModel+")")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("plansync-import", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *filePath == "" {
		fmt.Fprintf(os.Stderr, "Usage: plansync-import -file <plan.pdf|plan.json> [-out <plan.json>]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := os.Open(*filePath)
	if err != nil {
		log.Error("cannot open plan file", "file", *filePath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	ctx := context.Background()
	filename := filepath.Base(*filePath)

	var provider ingest.Provider
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		key := resolveGeminiKey(*geminiKey, log)
		if key == "" {
			log.Error("PDF import needs a Gemini API key (-gemini-key, PLANSYNC_GEMINI_API_KEY, or saved settings)")
			os.Exit(1)
		}
		client, err := llm.NewClient(ctx, key, *geminiModel, log)
		if err != nil {
			log.Error("failed to create Gemini client", "error", err)
			os.Exit(1)
		}
		provider = pdf.NewProvider(client, log)
	} else {
		provider = jsonplan.NewProvider(log)
	}

	plan, err := provider.Import(ctx, f, filename)
	if err != nil {
		log.Error("import failed", "file", filename, "error", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		log.Error("encoding plan failed", "error", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if *outPath == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		log.Error("writing output failed", "file", *outPath, "error", err)
		os.Exit(1)
	}
	log.Info("plan written", "file", *outPath, "workouts", len(plan.Workouts), "weeks", plan.Weeks)
}

// resolveGeminiKey checks the flag, then the environment, then the local
// settings store. A broken settings store only costs the fallback.
func resolveGeminiKey(flagValue string, log *slog.Logger) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("PLANSYNC_GEMINI_API_KEY"); v != "" {
		return v
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	store, err := settings.Open(filepath.Join(home, ".plansync"))
	if err != nil {
		log.Warn("settings store unavailable", "error", err)
		return ""
	}
	defer store.Close()

	key, err := store.Get(settings.KeyGeminiAPIKey)
	if err != nil {
		log.Warn("settings read failed", "error", err)
		return ""
	}
	return key
}
