package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/claude/plansync/internal/models"
	"github.com/claude/plansync/internal/settings"
	"github.com/claude/plansync/internal/upload"
	"github.com/claude/plansync/internal/validate"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	planPath := flag.String("plan", "", "normalized plan JSON file (from plansync-import)")
	pacesPath := flag.String("paces", "", "optional pace mapping JSON file ({\"label\": \"target\"})")
	apiKey := flag.String("api-key", "", "intervals.icu API key (default: saved settings)")
	athleteID := flag.String("athlete", "", "intervals.icu athlete ID (default: saved settings)")
	baseURL := flag.String("base-url", "", "intervals.icu base URL (default: "+upload.DefaultBaseURL+")")
	delayMS := flag.Int("delay-ms", 200, "pause between uploads in milliseconds")
	checkOnly := flag.Bool("check", false, "probe credentials and exit")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("plansync-upload", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	key, athlete := resolveCredentials(*apiKey, *athleteID, log)
	if key == "" || athlete == "" {
		fmt.Fprintf(os.Stderr, "Error: intervals.icu credentials required (-api-key and -athlete, or saved settings)\n")
		os.Exit(1)
	}

	ctx := context.Background()
	client := upload.NewClient(*baseURL, athlete, key)

	if *checkOnly {
		check := client.CheckCredentials(ctx)
		fmt.Printf("credentials: %s", check.Status)
		if check.Message != "" {
			fmt.Printf(" (%s)", check.Message)
		}
		fmt.Println()
		if check.Status != upload.CredentialsValid {
			os.Exit(1)
		}
		return
	}

	if *planPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: plansync-upload -plan <plan.json> [-paces <paces.json>] [-check]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	plan := readPlan(*planPath, log)
	pm := readPaces(*pacesPath, log)

	if errs := validate.Plan(*plan); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "Plan failed validation:")
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  - %s\n", e)
		}
		os.Exit(1)
	}

	uploader := upload.New(client, time.Duration(*delayMS)*time.Millisecond, log)

	progress := func(done, total int) {
		fmt.Fprintf(os.Stderr, "\r[%d/%d] uploading workouts    ", done, total)
	}
	result, err := uploader.UploadPlan(ctx, plan, pm, progress)
	fmt.Fprintln(os.Stderr)

	printSummary(plan, result)
	if err != nil {
		os.Exit(1)
	}
}

func readPlan(path string, log *slog.Logger) *models.TrainingPlan {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("cannot read plan file", "file", path, "error", err)
		os.Exit(1)
	}
	var plan models.TrainingPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		log.Error("invalid plan JSON", "file", path, "error", err)
		os.Exit(1)
	}
	return &plan
}

func readPaces(path string, log *slog.Logger) models.PaceMapping {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("cannot read pace mapping file", "file", path, "error", err)
		os.Exit(1)
	}
	var pm models.PaceMapping
	if err := json.Unmarshal(data, &pm); err != nil {
		log.Error("invalid pace mapping JSON", "file", path, "error", err)
		os.Exit(1)
	}
	return pm
}

// resolveCredentials falls back to the local settings store for anything the
// flags leave blank.
func resolveCredentials(apiKey, athleteID string, log *slog.Logger) (string, string) {
	if apiKey != "" && athleteID != "" {
		return apiKey, athleteID
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return apiKey, athleteID
	}
	store, err := settings.Open(filepath.Join(home, ".plansync"))
	if err != nil {
		log.Warn("settings store unavailable", "error", err)
		return apiKey, athleteID
	}
	defer store.Close()

	if apiKey == "" {
		apiKey, _ = store.Get(settings.KeyIntervalsAPIKey)
	}
	if athleteID == "" {
		athleteID, _ = store.Get(settings.KeyAthleteID)
	}
	return apiKey, athleteID
}

func printSummary(plan *models.TrainingPlan, result *upload.Result) {
	fmt.Println()
	fmt.Println("=== Upload Summary ===")
	fmt.Printf("  Plan:       %s\n", plan.Name)
	fmt.Printf("  Workouts:   %d\n", len(plan.Workouts))
	fmt.Printf("  Succeeded:  %d\n", result.Succeeded)
	fmt.Printf("  Failed:     %d\n", result.Failed)

	if len(result.Errors) > 0 {
		fmt.Printf("\n  Failures:\n")
		for _, e := range result.Errors {
			fmt.Printf("    - %s\n", e)
		}
	}
	fmt.Println()
}
