// Package jsonplan imports training plans from the documented JSON file
// format. Unlike the batch-collecting validator, this adapter fails fast:
// the first rule violation aborts the import and nothing partial is
// returned.
package jsonplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/plansync/internal/ingest"
	"github.com/claude/plansync/internal/models"
	"github.com/claude/plansync/internal/validate"
)

// Provider imports plans from JSON files.
type Provider struct {
	log *slog.Logger
}

// Compile-time check: Provider satisfies ingest.Provider.
var _ ingest.Provider = (*Provider)(nil)

// NewProvider creates a JSON plan import provider.
func NewProvider(log *slog.Logger) *Provider {
	return &Provider{log: log}
}

// Import parses and validates a plan file, then assigns identifiers.
func (p *Provider) Import(ctx context.Context, r io.Reader, filename string) (*models.TrainingPlan, error) {
	var file ingest.PlanFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing plan JSON: %w", err)
	}

	plan := file.ToPlan()
	if errs := validate.Plan(plan); len(errs) > 0 {
		return nil, errors.New(errs[0])
	}

	ingest.Finalize(&plan, filename)
	p.log.Info("imported JSON plan",
		"name", plan.Name,
		"workouts", len(plan.Workouts),
		"weeks", plan.Weeks,
	)
	return &plan, nil
}
