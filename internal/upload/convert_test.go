package upload

import (
	"strings"
	"testing"

	"github.com/claude/plansync/internal/models"
)

// TestBuildEventWorkout verifies the wire mapping for a regular session:
// category, sport, unit conversions, and the external ID.
func TestBuildEventWorkout(t *testing.T) {
	w := models.Workout{
		ID:       "w-42",
		Date:     "2026-03-03",
		Type:     models.DisciplineBike,
		Name:     "Tempo ride",
		Duration: 60,
		Distance: 30,
	}

	ev := BuildEvent(w, nil)
	if ev.Category != "WORKOUT" {
		t.Errorf("category = %q, want WORKOUT", ev.Category)
	}
	if ev.Type != "Ride" {
		t.Errorf("type = %q, want Ride", ev.Type)
	}
	if ev.ExternalID != "w-42" {
		t.Errorf("external_id = %q, want w-42", ev.ExternalID)
	}
	if ev.StartDateLocal != "2026-03-03T00:00:00" {
		t.Errorf("start_date_local = %q", ev.StartDateLocal)
	}
	if ev.MovingTime != 3600 {
		t.Errorf("moving_time = %d, want 3600", ev.MovingTime)
	}
	if ev.Distance != 30000 {
		t.Errorf("distance = %v, want 30000", ev.Distance)
	}
}

// TestBuildEventSportMap verifies every discipline's destination sport and
// the Run default for anything unrecognized.
func TestBuildEventSportMap(t *testing.T) {
	tests := []struct {
		d    models.Discipline
		want string
	}{
		{models.DisciplineRun, "Run"},
		{models.DisciplineBike, "Ride"},
		{models.DisciplineSwim, "Swim"},
		{models.DisciplineStrength, "WeightTraining"},
		{"aqua-jogging", "Run"},
	}
	for _, tt := range tests {
		ev := BuildEvent(models.Workout{Type: tt.d, Name: "x", Date: "2026-03-03"}, nil)
		if ev.Type != tt.want {
			t.Errorf("sport for %q = %q, want %q", tt.d, ev.Type, tt.want)
		}
	}
}

// TestBuildEventRestDay verifies rest days become NOTE entries without a
// sport type or metrics.
func TestBuildEventRestDay(t *testing.T) {
	w := models.Workout{
		ID:          "r-1",
		Date:        "2026-03-04",
		Type:        models.DisciplineRest,
		Name:        "Rest",
		Description: "Full rest day",
	}

	ev := BuildEvent(w, nil)
	if ev.Category != "NOTE" {
		t.Errorf("category = %q, want NOTE", ev.Category)
	}
	if ev.Type != "" {
		t.Errorf("type = %q, want empty for rest", ev.Type)
	}
	if ev.MovingTime != 0 || ev.Distance != 0 {
		t.Errorf("rest event carries metrics: moving_time=%d distance=%v", ev.MovingTime, ev.Distance)
	}
	if ev.Description != "Full rest day" {
		t.Errorf("description = %q", ev.Description)
	}
}

// TestBuildEventNotesAppended verifies workout notes land as a trailing
// paragraph below the structured description.
func TestBuildEventNotesAppended(t *testing.T) {
	w := models.Workout{
		ID:       "w-1",
		Date:     "2026-03-03",
		Type:     models.DisciplineRun,
		Name:     "Easy run",
		Duration: 40,
		Notes:    "Bring gels.",
	}

	ev := BuildEvent(w, nil)
	if !strings.HasSuffix(ev.Description, "\n\nBring gels.") {
		t.Errorf("description = %q, want notes as trailing paragraph", ev.Description)
	}
	if !strings.HasPrefix(ev.Description, "40m") {
		t.Errorf("description = %q, want structured text first", ev.Description)
	}
}

// TestBuildEventPaceMapping verifies the pace mapping flows through to the
// rendered description.
func TestBuildEventPaceMapping(t *testing.T) {
	w := models.Workout{
		ID:   "w-1",
		Date: "2026-03-03",
		Type: models.DisciplineRun,
		Name: "Threshold",
		Intervals: []models.Interval{{
			Repeat: 3, Duration: 600, DurationType: models.DurationTime, Intensity: "Threshold",
		}},
	}
	pm := models.PaceMapping{"Threshold": "4:10/km"}

	ev := BuildEvent(w, pm)
	if !strings.Contains(ev.Description, "4:10/km Pace") {
		t.Errorf("description = %q, want mapped pace", ev.Description)
	}
}
