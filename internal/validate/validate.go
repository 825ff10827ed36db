// Package validate checks plan and workout records against the schema rules.
// Every function is pure: it returns the full ordered list of violations
// instead of stopping at the first one, so a caller can surface all problems
// in a single pass.
package validate

import (
	"fmt"
	"time"

	"github.com/claude/plansync/internal/models"
)

// Workout returns one human-readable error per violated rule, in rule order.
// An empty slice means the workout is valid.
func Workout(w models.Workout) []string {
	var errs []string

	if w.Date == "" {
		errs = append(errs, "date is required")
	} else if _, err := time.Parse(models.DateLayout, w.Date); err != nil {
		errs = append(errs, fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", w.Date))
	}

	if w.Type == "" {
		errs = append(errs, "type is required")
	} else if !models.ValidDiscipline(w.Type) {
		errs = append(errs, fmt.Sprintf("unknown workout type %q", w.Type))
	}

	if w.Name == "" {
		errs = append(errs, "name is required")
	}

	if w.Intensity != "" && !models.ValidIntensity(w.Intensity) {
		errs = append(errs, fmt.Sprintf("unknown intensity %q", w.Intensity))
	}

	if w.Duration < 0 {
		errs = append(errs, "duration must not be negative")
	}
	if w.Distance < 0 {
		errs = append(errs, "distance must not be negative")
	}

	for i, iv := range w.Intervals {
		if iv.Repeat < 1 {
			errs = append(errs, fmt.Sprintf("interval %d: repeat must be at least 1", i+1))
		}
		if iv.Duration < 0 {
			errs = append(errs, fmt.Sprintf("interval %d: duration must not be negative", i+1))
		}
		if iv.DurationType != "" && iv.DurationType != models.DurationTime && iv.DurationType != models.DurationDistance {
			errs = append(errs, fmt.Sprintf("interval %d: unknown duration type %q", i+1, iv.DurationType))
		}
		if iv.Recovery < 0 {
			errs = append(errs, fmt.Sprintf("interval %d: recovery must not be negative", i+1))
		}
	}

	return errs
}

// Plan validates plan-level rules and every contained workout. Per-workout
// errors are prefixed with the workout's 1-based position for traceability.
func Plan(p models.TrainingPlan) []string {
	var errs []string

	if p.Name == "" {
		errs = append(errs, "plan name is required")
	}

	startOK := false
	if p.StartDate == "" {
		errs = append(errs, "start date is required")
	} else if _, err := time.Parse(models.DateLayout, p.StartDate); err != nil {
		errs = append(errs, fmt.Sprintf("invalid start date %q (expected YYYY-MM-DD)", p.StartDate))
	} else {
		startOK = true
	}

	endOK := false
	if p.EndDate == "" {
		errs = append(errs, "end date is required")
	} else if _, err := time.Parse(models.DateLayout, p.EndDate); err != nil {
		errs = append(errs, fmt.Sprintf("invalid end date %q (expected YYYY-MM-DD)", p.EndDate))
	} else {
		endOK = true
	}

	if startOK && endOK {
		start, _ := time.Parse(models.DateLayout, p.StartDate)
		end, _ := time.Parse(models.DateLayout, p.EndDate)
		if !end.After(start) {
			errs = append(errs, "End date must be after start date")
		}
	}

	if len(p.Workouts) == 0 {
		errs = append(errs, "plan must contain at least one workout")
	}

	for i, w := range p.Workouts {
		for _, e := range Workout(w) {
			errs = append(errs, fmt.Sprintf("workout %d: %s", i+1, e))
		}
	}

	return errs
}
