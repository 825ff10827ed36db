package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/claude/plansync/internal/format"
	"github.com/claude/plansync/internal/models"
	"github.com/claude/plansync/internal/upload"
	"github.com/claude/plansync/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolImportPlan = mcp.NewTool("import_plan",
	mcp.WithDescription("Import a training plan from JSON text in the plan file format ({name, startDate, endDate, workouts: [...]}). Returns the normalized plan with generated identifiers, or the first validation error."),
	mcp.WithString("json", mcp.Required(), mcp.Description("Plan file JSON text")),
	mcp.WithString("filename", mcp.Description("Source name recorded as the plan's provenance. Defaults to 'mcp'.")),
)

var toolValidatePlan = mcp.NewTool("validate_plan",
	mcp.WithDescription("Validate a normalized training plan. Returns every violated rule, not just the first."),
	mcp.WithString("plan", mcp.Required(), mcp.Description("TrainingPlan JSON")),
)

var toolFormatWorkout = mcp.NewTool("format_workout",
	mcp.WithDescription("Render one workout's interval structure as intervals.icu structured-workout text, the same text the upload sends."),
	mcp.WithString("workout", mcp.Required(), mcp.Description("Workout JSON")),
	mcp.WithString("pace_mapping", mcp.Description("JSON object mapping intensity labels to target values, e.g. {\"5K pace\": \"4:30/km\"}")),
)

var toolShiftPlanStart = mcp.NewTool("shift_plan_start",
	mcp.WithDescription("Move a plan to a new start date, shifting every workout date by the same day offset. Returns the shifted plan."),
	mcp.WithString("plan", mcp.Required(), mcp.Description("TrainingPlan JSON")),
	mcp.WithString("start", mcp.Required(), mcp.Description("New start date (YYYY-MM-DD)")),
)

var toolUploadPlan = mcp.NewTool("upload_plan",
	mcp.WithDescription("Upload every workout of a plan to the configured intervals.icu calendar, sequentially. Returns succeeded/failed counts and per-workout error messages; already-uploaded workouts are not rolled back on partial failure."),
	mcp.WithString("plan", mcp.Required(), mcp.Description("TrainingPlan JSON")),
	mcp.WithString("pace_mapping", mcp.Description("JSON object mapping intensity labels to target values")),
)

var toolCheckCredentials = mcp.NewTool("check_credentials",
	mcp.WithDescription("Probe the intervals.icu API with the configured credentials and classify the result (valid, invalid, failed, unknown)."),
)

// --- Tool handlers ---

func (h *handlers) importPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("json")
	if err != nil {
		return mcp.NewToolResultError("json parameter is required"), nil
	}
	filename := req.GetString("filename", "mcp")

	plan, err := h.jsonPlans.Import(ctx, strings.NewReader(text), filename)
	if err != nil {
		return mcp.NewToolResultError("import failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(plan)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) validatePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plan, errRes := planParam(req, "plan")
	if errRes != nil {
		return errRes, nil
	}

	errs := validate.Plan(*plan)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"valid":  len(errs) == 0,
		"errors": errs,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) formatWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("workout")
	if err != nil {
		return mcp.NewToolResultError("workout parameter is required"), nil
	}
	var w models.Workout
	if err := json.Unmarshal([]byte(text), &w); err != nil {
		return mcp.NewToolResultError("invalid workout JSON: " + err.Error()), nil
	}

	pm, errRes := paceMappingParam(req)
	if errRes != nil {
		return errRes, nil
	}

	return mcp.NewToolResultText(format.Describe(w, pm)), nil
}

func (h *handlers) shiftPlanStart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plan, errRes := planParam(req, "plan")
	if errRes != nil {
		return errRes, nil
	}
	start, err := req.RequireString("start")
	if err != nil {
		return mcp.NewToolResultError("start parameter is required"), nil
	}

	if err := plan.ShiftStart(start); err != nil {
		return mcp.NewToolResultError("shift failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(plan)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) uploadPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plan, errRes := planParam(req, "plan")
	if errRes != nil {
		return errRes, nil
	}
	pm, errRes := paceMappingParam(req)
	if errRes != nil {
		return errRes, nil
	}

	if errs := validate.Plan(*plan); len(errs) > 0 {
		return mcp.NewToolResultError("plan failed validation: " + strings.Join(errs, "; ")), nil
	}

	client, err := h.intervalsClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	uploader := upload.New(client, h.delay, h.log)
	uploadResult, uploadErr := uploader.UploadPlan(ctx, plan, pm, nil)

	body := map[string]any{"result": uploadResult}
	if uploadErr != nil {
		body["error"] = uploadErr.Error()
	}
	result, err := mcp.NewToolResultJSON(body)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) checkCredentials(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client, err := h.intervalsClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(client.CheckCredentials(ctx))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// --- Parameter helpers ---

func planParam(req mcp.CallToolRequest, name string) (*models.TrainingPlan, *mcp.CallToolResult) {
	text, err := req.RequireString(name)
	if err != nil {
		return nil, mcp.NewToolResultError(name + " parameter is required")
	}
	var plan models.TrainingPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return nil, mcp.NewToolResultError("invalid plan JSON: " + err.Error())
	}
	return &plan, nil
}

func paceMappingParam(req mcp.CallToolRequest) (models.PaceMapping, *mcp.CallToolResult) {
	text := req.GetString("pace_mapping", "")
	if text == "" {
		return nil, nil
	}
	var pm models.PaceMapping
	if err := json.Unmarshal([]byte(text), &pm); err != nil {
		return nil, mcp.NewToolResultError("invalid pace_mapping JSON: " + err.Error())
	}
	return pm, nil
}
