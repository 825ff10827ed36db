package validate

import (
	"strings"
	"testing"

	"github.com/claude/plansync/internal/models"
)

func validWorkout() models.Workout {
	return models.Workout{
		ID:   "w1",
		Date: "2026-03-02",
		Type: models.DisciplineRun,
		Name: "Easy run",
	}
}

func validPlan() models.TrainingPlan {
	return models.TrainingPlan{
		Name:      "Spring block",
		StartDate: "2026-03-02",
		EndDate:   "2026-04-12",
		Workouts:  []models.Workout{validWorkout()},
	}
}

// TestWorkoutValid verifies that a well-formed workout produces no errors.
func TestWorkoutValid(t *testing.T) {
	if errs := Workout(validWorkout()); len(errs) != 0 {
		t.Errorf("Workout returned %v, want none", errs)
	}
}

// TestWorkoutMissingFields verifies that missing required fields are each
// reported, in rule order, in a single pass.
func TestWorkoutMissingFields(t *testing.T) {
	errs := Workout(models.Workout{})
	want := []string{"date is required", "type is required", "name is required"}
	if len(errs) != len(want) {
		t.Fatalf("Workout returned %d errors %v, want %d", len(errs), errs, len(want))
	}
	for i, e := range want {
		if errs[i] != e {
			t.Errorf("error %d = %q, want %q", i, errs[i], e)
		}
	}
}

// TestWorkoutBadValues verifies the format and enum rules.
func TestWorkoutBadValues(t *testing.T) {
	w := validWorkout()
	w.Date = "03/02/2026"
	w.Type = "yoga"
	w.Intensity = "brutal"
	w.Duration = -5
	w.Distance = -1

	errs := Workout(w)
	want := []string{
		`invalid date "03/02/2026" (expected YYYY-MM-DD)`,
		`unknown workout type "yoga"`,
		`unknown intensity "brutal"`,
		"duration must not be negative",
		"distance must not be negative",
	}
	if len(errs) != len(want) {
		t.Fatalf("Workout returned %d errors %v, want %d", len(errs), errs, len(want))
	}
	for i, e := range want {
		if errs[i] != e {
			t.Errorf("error %d = %q, want %q", i, errs[i], e)
		}
	}
}

// TestWorkoutIntervalRules verifies per-interval checks with 1-based indexes.
func TestWorkoutIntervalRules(t *testing.T) {
	w := validWorkout()
	w.Intervals = []models.Interval{
		{Repeat: 1, Duration: 400, DurationType: models.DurationDistance},
		{Repeat: 0, Duration: -10, DurationType: "laps", Recovery: -5},
	}

	errs := Workout(w)
	want := []string{
		"interval 2: repeat must be at least 1",
		"interval 2: duration must not be negative",
		`interval 2: unknown duration type "laps"`,
		"interval 2: recovery must not be negative",
	}
	if len(errs) != len(want) {
		t.Fatalf("Workout returned %d errors %v, want %d", len(errs), errs, len(want))
	}
	for i, e := range want {
		if errs[i] != e {
			t.Errorf("error %d = %q, want %q", i, errs[i], e)
		}
	}
}

// TestPlanValid verifies that a well-formed plan produces no errors.
func TestPlanValid(t *testing.T) {
	if errs := Plan(validPlan()); len(errs) != 0 {
		t.Errorf("Plan returned %v, want none", errs)
	}
}

// TestPlanDateOrdering verifies that an end date equal to or before the
// start date is rejected with the exact ordering message.
func TestPlanDateOrdering(t *testing.T) {
	for _, end := range []string{"2026-03-02", "2026-02-01"} {
		p := validPlan()
		p.EndDate = end
		errs := Plan(p)
		found := false
		for _, e := range errs {
			if e == "End date must be after start date" {
				found = true
			}
		}
		if !found {
			t.Errorf("Plan(end=%s) = %v, want ordering error", end, errs)
		}
	}
}

// TestPlanOrderingSkippedOnBadDates verifies that the ordering rule is not
// evaluated when either date fails to parse; the parse error stands alone.
func TestPlanOrderingSkippedOnBadDates(t *testing.T) {
	p := validPlan()
	p.EndDate = "soon"
	for _, e := range Plan(p) {
		if e == "End date must be after start date" {
			t.Errorf("ordering rule ran against unparseable end date")
		}
	}
}

// TestPlanEmptyWorkouts verifies the at-least-one-workout rule.
func TestPlanEmptyWorkouts(t *testing.T) {
	p := validPlan()
	p.Workouts = nil
	errs := Plan(p)
	if len(errs) != 1 || errs[0] != "plan must contain at least one workout" {
		t.Errorf("Plan = %v, want the empty-workouts error only", errs)
	}
}

// TestPlanWorkoutPrefix verifies that nested workout errors carry the
// workout's 1-based position.
func TestPlanWorkoutPrefix(t *testing.T) {
	p := validPlan()
	bad := validWorkout()
	bad.Type = "pilates"
	p.Workouts = append(p.Workouts, bad)

	errs := Plan(p)
	if len(errs) != 1 {
		t.Fatalf("Plan returned %d errors %v, want 1", len(errs), errs)
	}
	if want := `workout 2: unknown workout type "pilates"`; errs[0] != want {
		t.Errorf("error = %q, want %q", errs[0], want)
	}
	if strings.HasPrefix(errs[0], "workout 1") {
		t.Errorf("error attributed to the wrong workout: %q", errs[0])
	}
}
