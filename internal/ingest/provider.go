// Package ingest defines the common capability shared by all plan import
// adapters: read a file-like input and produce a normalized training plan,
// or fail with a descriptive error. New sources plug in without touching the
// formatter or the uploader.
package ingest

import (
	"context"
	"io"

	"github.com/claude/plansync/internal/models"
	"github.com/google/uuid"
)

// Provider produces a TrainingPlan from a file-like input.
type Provider interface {
	Import(ctx context.Context, r io.Reader, filename string) (*models.TrainingPlan, error)
}

// Finalize assigns fresh identifiers, derives the week count, and records
// the plan's provenance. Called by every adapter once its input has been
// accepted.
func Finalize(p *models.TrainingPlan, source string) {
	p.ID = uuid.NewString()
	for i := range p.Workouts {
		if p.Workouts[i].ID == "" {
			p.Workouts[i].ID = uuid.NewString()
		}
	}
	p.Weeks = models.WeekCount(p.StartDate, p.EndDate)
	p.Source = source
}

// PlanFile is the documented JSON import shape. The PDF adapter instructs
// the model to emit the same shape, so both adapters share one mapping.
type PlanFile struct {
	Name      string        `json:"name"`
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	Workouts  []WorkoutFile `json:"workouts"`
}

// WorkoutFile is one workout entry of a plan file.
type WorkoutFile struct {
	Date        string            `json:"date"`
	Type        string            `json:"type"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Duration    float64           `json:"duration,omitempty"`
	Distance    float64           `json:"distance,omitempty"`
	Intensity   string            `json:"intensity,omitempty"`
	Intervals   []models.Interval `json:"intervals,omitempty"`
	Notes       string            `json:"notes,omitempty"`
}

// ToPlan maps the file shape into the domain model. Identifiers are not
// assigned here; callers validate first and then Finalize.
func (f PlanFile) ToPlan() models.TrainingPlan {
	p := models.TrainingPlan{
		Name:      f.Name,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
	}
	for _, w := range f.Workouts {
		p.Workouts = append(p.Workouts, models.Workout{
			Date:        w.Date,
			Type:        models.Discipline(w.Type),
			Name:        w.Name,
			Description: w.Description,
			Duration:    w.Duration,
			Distance:    w.Distance,
			Intensity:   w.Intensity,
			Intervals:   w.Intervals,
			Notes:       w.Notes,
		})
	}
	return p
}
