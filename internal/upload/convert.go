package upload

import (
	"github.com/claude/plansync/internal/format"
	"github.com/claude/plansync/internal/models"
)

// Event is the intervals.icu calendar event wire shape.
type Event struct {
	ExternalID     string  `json:"external_id"`
	Category       string  `json:"category"`
	StartDateLocal string  `json:"start_date_local"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Type           string  `json:"type,omitempty"`
	MovingTime     int     `json:"moving_time,omitempty"`
	Distance       float64 `json:"distance,omitempty"`
}

// sportTypes maps internal disciplines to the intervals.icu sport
// vocabulary. Rest days are handled separately as NOTE entries.
var sportTypes = map[models.Discipline]string{
	models.DisciplineRun:      "Run",
	models.DisciplineBike:     "Ride",
	models.DisciplineSwim:     "Swim",
	models.DisciplineStrength: "WeightTraining",
}

// sportType returns the destination sport for a discipline, defaulting to
// Run for anything unrecognized.
func sportType(d models.Discipline) string {
	if t, ok := sportTypes[d]; ok {
		return t
	}
	return "Run"
}

// BuildEvent converts a workout into its calendar event payload. The
// workout ID travels as external_id so re-uploads of the same logical
// workout can be recognized remotely. Minutes become seconds and
// kilometers become meters on the wire.
func BuildEvent(w models.Workout, pm models.PaceMapping) Event {
	description := format.Describe(w, pm)
	if w.Notes != "" {
		if description != "" {
			description += "\n\n"
		}
		description += w.Notes
	}

	ev := Event{
		ExternalID:     w.ID,
		StartDateLocal: w.Date + "T00:00:00",
		Name:           w.Name,
		Description:    description,
	}

	if w.Type == models.DisciplineRest {
		ev.Category = "NOTE"
		return ev
	}

	ev.Category = "WORKOUT"
	ev.Type = sportType(w.Type)
	if w.Duration > 0 {
		ev.MovingTime = int(w.Duration * 60)
	}
	if w.Distance > 0 {
		ev.Distance = w.Distance * 1000
	}
	return ev
}
