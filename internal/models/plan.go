package models

import (
	"math"
	"time"
)

// DateLayout is the calendar-date format used throughout plan files and the
// intervals.icu API.
const DateLayout = "2006-01-02"

// Discipline is the sport category of a workout.
type Discipline string

const (
	DisciplineRun      Discipline = "run"
	DisciplineBike     Discipline = "bike"
	DisciplineSwim     Discipline = "swim"
	DisciplineStrength Discipline = "strength"
	DisciplineRest     Discipline = "rest"
)

// Disciplines lists every valid discipline value.
var Disciplines = []Discipline{
	DisciplineRun, DisciplineBike, DisciplineSwim, DisciplineStrength, DisciplineRest,
}

// ValidDiscipline reports whether d is a recognized discipline.
func ValidDiscipline(d Discipline) bool {
	for _, v := range Disciplines {
		if d == v {
			return true
		}
	}
	return false
}

// Intensities lists the valid workout-level intensity labels.
var Intensities = []string{"easy", "moderate", "hard", "race"}

// ValidIntensity reports whether s is a recognized workout-level intensity.
func ValidIntensity(s string) bool {
	for _, v := range Intensities {
		if s == v {
			return true
		}
	}
	return false
}

// DurationType selects the unit of an interval's duration value.
type DurationType string

const (
	DurationTime     DurationType = "time"     // seconds
	DurationDistance DurationType = "distance" // meters
)

// Interval is one repeatable work+recovery step within a workout.
// Recovery shares the parent's DurationType; there is no separate unit field.
type Interval struct {
	Repeat            int          `json:"repeat"`
	Duration          float64      `json:"duration"`
	DurationType      DurationType `json:"durationType"`
	Intensity         string       `json:"intensity"`
	Recovery          float64      `json:"recovery,omitempty"`
	RecoveryIntensity string       `json:"recoveryIntensity,omitempty"`
	RampStart         string       `json:"rampStart,omitempty"`
	RampEnd           string       `json:"rampEnd,omitempty"`
}

// IsRamp reports whether the interval carries a ramp range.
func (iv Interval) IsRamp() bool {
	return iv.RampStart != "" && iv.RampEnd != ""
}

// Workout is one scheduled session of a training plan.
// Duration is in minutes, Distance in kilometers.
type Workout struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"`
	Type        Discipline `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Duration    float64    `json:"duration,omitempty"`
	Distance    float64    `json:"distance,omitempty"`
	Intensity   string     `json:"intensity,omitempty"`
	Intervals   []Interval `json:"intervals,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// TrainingPlan is a dated, ordered schedule of workouts. Plans live only for
// one import/edit/upload session; nothing persists them.
type TrainingPlan struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Weeks     int       `json:"weeks"`
	Workouts  []Workout `json:"workouts"`
	Source    string    `json:"source,omitempty"`
}

// PaceMapping translates intensity labels as they appear in the plan to
// user-supplied target values (pace string, zone, percentage). Session-scoped.
type PaceMapping map[string]string

// Preferences holds user-level defaults applied when a plan leaves fields blank.
type Preferences struct {
	DefaultType      Discipline `json:"default_type"`
	DefaultIntensity string     `json:"default_intensity"`
	TimeFormat       string     `json:"time_format"`
	DistanceUnit     string     `json:"distance_unit"`
}

// DefaultPreferences are used when no preferences have been saved.
func DefaultPreferences() Preferences {
	return Preferences{
		DefaultType:      DisciplineRun,
		DefaultIntensity: "easy",
		TimeFormat:       "24h",
		DistanceUnit:     "km",
	}
}

// WeekCount derives the plan length in weeks from its date range:
// ceil(days between start and end / 7), minimum 1 for any valid range.
func WeekCount(startDate, endDate string) int {
	start, err1 := time.Parse(DateLayout, startDate)
	end, err2 := time.Parse(DateLayout, endDate)
	if err1 != nil || err2 != nil {
		return 0
	}
	days := math.Ceil(math.Abs(end.Sub(start).Hours()) / 24)
	weeks := int(math.Ceil(days / 7))
	if weeks < 1 {
		weeks = 1
	}
	return weeks
}

// AddWorkout appends a workout to the plan.
func (p *TrainingPlan) AddWorkout(w Workout) {
	p.Workouts = append(p.Workouts, w)
}

// Rename changes the plan's display name. Blank names are ignored.
func (p *TrainingPlan) Rename(name string) {
	if name != "" {
		p.Name = name
	}
}

// UpdateWorkout replaces the workout with the same ID.
// Returns false if no workout has that ID.
func (p *TrainingPlan) UpdateWorkout(w Workout) bool {
	for i := range p.Workouts {
		if p.Workouts[i].ID == w.ID {
			p.Workouts[i] = w
			return true
		}
	}
	return false
}

// RemoveWorkout deletes the workout with the given ID, preserving order.
// Returns false if no workout has that ID.
func (p *TrainingPlan) RemoveWorkout(id string) bool {
	for i := range p.Workouts {
		if p.Workouts[i].ID == id {
			p.Workouts = append(p.Workouts[:i], p.Workouts[i+1:]...)
			return true
		}
	}
	return false
}

// ShiftStart moves the plan to a new start date, cascading the same day
// offset to the end date and every workout date. Dates that fail to parse
// are left untouched.
func (p *TrainingPlan) ShiftStart(newStart string) error {
	oldStart, err := time.Parse(DateLayout, p.StartDate)
	if err != nil {
		return err
	}
	start, err := time.Parse(DateLayout, newStart)
	if err != nil {
		return err
	}

	offset := int(start.Sub(oldStart).Hours() / 24)
	p.StartDate = newStart
	if end, err := time.Parse(DateLayout, p.EndDate); err == nil {
		p.EndDate = end.AddDate(0, 0, offset).Format(DateLayout)
	}
	for i := range p.Workouts {
		if d, err := time.Parse(DateLayout, p.Workouts[i].Date); err == nil {
			p.Workouts[i].Date = d.AddDate(0, 0, offset).Format(DateLayout)
		}
	}
	return nil
}
