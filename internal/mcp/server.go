// Package mcp exposes plan import, validation, formatting, and upload as
// Model Context Protocol tools, so LLM clients can drive the same pipeline
// the HTTP API serves.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/claude/plansync/internal/config"
	"github.com/claude/plansync/internal/ingest"
	"github.com/claude/plansync/internal/models"
	"github.com/claude/plansync/internal/settings"
	"github.com/claude/plansync/internal/upload"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(store *settings.Store, jsonPlans ingest.Provider, intervals config.IntervalsConfig, delay time.Duration, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("PlanSync", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("PlanSync turns training plans into intervals.icu calendar workouts. Import a plan from JSON, validate it, preview the structured workout text, and upload it to the athlete's calendar."),
	)

	h := &handlers{
		store:     store,
		jsonPlans: jsonPlans,
		intervals: intervals,
		delay:     delay,
		log:       log,
	}

	s.AddTools(
		server.ServerTool{Tool: toolImportPlan, Handler: h.importPlan},
		server.ServerTool{Tool: toolValidatePlan, Handler: h.validatePlan},
		server.ServerTool{Tool: toolFormatWorkout, Handler: h.formatWorkout},
		server.ServerTool{Tool: toolShiftPlanStart, Handler: h.shiftPlanStart},
		server.ServerTool{Tool: toolUploadPlan, Handler: h.uploadPlan},
		server.ServerTool{Tool: toolCheckCredentials, Handler: h.checkCredentials},
	)

	s.AddResources(
		server.ServerResource{Resource: resSettings, Handler: h.settingsResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	store     *settings.Store
	jsonPlans ingest.Provider
	intervals config.IntervalsConfig
	delay     time.Duration
	log       *slog.Logger
}

// intervalsClient resolves destination credentials (config first, settings
// store second) and builds a client.
func (h *handlers) intervalsClient() (*upload.Client, error) {
	apiKey := h.intervals.APIKey
	athleteID := h.intervals.AthleteID
	if apiKey == "" {
		apiKey, _ = h.store.Get(settings.KeyIntervalsAPIKey)
	}
	if athleteID == "" {
		athleteID, _ = h.store.Get(settings.KeyAthleteID)
	}
	if apiKey == "" || athleteID == "" {
		return nil, errors.New("intervals.icu credentials are not configured")
	}
	return upload.NewClient(h.intervals.BaseURL, athleteID, apiKey), nil
}

// --- Resource definitions ---

var resSettings = mcp.NewResource(
	"plansync://settings",
	"PlanSync Settings",
	mcp.WithResourceDescription("Configured athlete ID, credential presence flags, and user preferences"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) settingsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	athleteID, _ := h.store.Get(settings.KeyAthleteID)
	apiKey, _ := h.store.Get(settings.KeyIntervalsAPIKey)
	geminiKey, _ := h.store.Get(settings.KeyGeminiAPIKey)
	prefs, err := h.store.Preferences()
	if err != nil {
		prefs = models.DefaultPreferences()
	}

	data, err := json.Marshal(map[string]any{
		"athlete_id":     athleteID,
		"has_api_key":    apiKey != "" || h.intervals.APIKey != "",
		"has_gemini_key": geminiKey != "",
		"preferences":    prefs,
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
