// Package format renders a workout's structured interval data into the
// intervals.icu structured-workout text syntax. The destination service
// parses this text into a machine workout definition for the wearable, so
// output must be deterministic: the same workout and pace mapping always
// produce the same string.
package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/claude/plansync/internal/models"
)

var (
	phaseRe = regexp.MustCompile(`(?i)^\s*(warm[\s-]?up|cool[\s-]?down):?\s*(.*)$`)
	tokenRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(km|min(?:ute)?s?|m)\b`)
)

// phase is a warmup or cooldown extracted from the free-text description.
type phase struct {
	value   float64 // seconds or meters, per durType
	durType models.DurationType
	text    string // remainder after the duration token, or the whole line
	hasDur  bool
}

// Describe renders the workout's interval structure as structured-workout
// text. Absent any interval data it degrades to the raw description; it
// never fails.
func Describe(w models.Workout, pm models.PaceMapping) string {
	intervals := w.Intervals
	if len(intervals) == 0 {
		iv, ok := synthesize(w)
		if !ok {
			return w.Description
		}
		intervals = []models.Interval{iv}
	}

	warmup, cooldown := parsePhases(w.Description)

	// "Main Set" is labeled only when there is more to the workout than one
	// plain interval; a lone simple step reads better as a bare line.
	labeled := len(intervals) > 1 || warmup != nil || cooldown != nil || !simple(intervals[0])

	var sections []string

	if warmup != nil {
		sections = append(sections, "Warmup\n"+phaseLine(*warmup, w.Type, pm))
	}

	var main []string
	if labeled {
		main = append(main, "Main Set")
	}
	for _, iv := range intervals {
		main = append(main, intervalLines(iv, w.Type, pm, labeled)...)
	}
	sections = append(sections, strings.Join(main, "\n"))

	if cooldown != nil {
		sections = append(sections, "Cooldown\n"+phaseLine(*cooldown, w.Type, pm))
	}

	out := strings.TrimSpace(strings.Join(sections, "\n\n"))
	if out == "" {
		return w.Description
	}
	return out
}

// synthesize builds the implicit single interval for workouts that carry only
// scalar duration/distance. Distance wins when both are present.
func synthesize(w models.Workout) (models.Interval, bool) {
	intensity := w.Intensity
	if intensity == "" {
		intensity = "Easy"
	}
	switch {
	case w.Distance > 0:
		return models.Interval{
			Repeat:       1,
			Duration:     w.Distance * 1000,
			DurationType: models.DurationDistance,
			Intensity:    intensity,
		}, true
	case w.Duration > 0:
		return models.Interval{
			Repeat:       1,
			Duration:     w.Duration * 60,
			DurationType: models.DurationTime,
			Intensity:    intensity,
		}, true
	}
	return models.Interval{}, false
}

// simple reports whether the interval renders as a single bare line.
func simple(iv models.Interval) bool {
	return iv.Repeat <= 1 && iv.Recovery <= 0 && !iv.IsRamp()
}

// intervalLines renders one interval: optional Nx multiplier, the work line,
// and the recovery line directly below it. Recovery reuses the parent's
// duration type.
func intervalLines(iv models.Interval, d models.Discipline, pm models.PaceMapping, labeled bool) []string {
	durType := iv.DurationType
	if durType == "" {
		durType = models.DurationTime
	}

	var lines []string
	if iv.Repeat > 1 {
		lines = append(lines, fmt.Sprintf("%dx", iv.Repeat))
	}

	work := quantity(iv.Duration, durType)
	if iv.IsRamp() {
		work += " ramp " + iv.RampStart + "-" + iv.RampEnd
	} else if res := resolveIntensity(iv.Intensity, d, pm); res != "" {
		work += " " + res
	}

	if labeled {
		lines = append(lines, "- "+work)
	} else {
		lines = append(lines, work)
	}

	if iv.Recovery > 0 {
		rec := iv.RecoveryIntensity
		if rec == "" {
			rec = "Easy"
		}
		line := quantity(iv.Recovery, durType)
		if res := resolveIntensity(rec, d, pm); res != "" {
			line += " " + res
		}
		lines = append(lines, "- "+line)
	}

	return lines
}

// phaseLine renders a warmup/cooldown step. Without a parsed duration token
// the phase text passes through verbatim.
func phaseLine(p phase, d models.Discipline, pm models.PaceMapping) string {
	if !p.hasDur {
		return "- " + p.text
	}
	line := "- " + quantity(p.value, p.durType)
	if p.text != "" {
		if res := resolveIntensity(p.text, d, pm); res != "" {
			line += " " + res
		}
	}
	return line
}

// parsePhases scans the description line by line for warmup/cooldown
// markers. The first match of each kind wins.
func parsePhases(description string) (warmup, cooldown *phase) {
	for _, line := range strings.Split(description, "\n") {
		m := phaseRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rest := strings.TrimSpace(m[2])
		if rest == "" {
			continue
		}
		p := parsePhaseText(rest)
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(m[1])), "warm") {
			if warmup == nil {
				warmup = &p
			}
		} else if cooldown == nil {
			cooldown = &p
		}
	}
	return warmup, cooldown
}

// parsePhaseText extracts an embedded duration or distance token from phase
// text, e.g. "10 minutes easy" or "2km Z1". No token means free text.
func parsePhaseText(text string) phase {
	m := tokenRe.FindStringSubmatchIndex(text)
	if m == nil {
		return phase{text: text}
	}

	num, err := strconv.ParseFloat(text[m[2]:m[3]], 64)
	if err != nil {
		return phase{text: text}
	}

	p := phase{hasDur: true}
	switch strings.ToLower(text[m[4]:m[5]]) {
	case "km":
		p.value = num * 1000
		p.durType = models.DurationDistance
	case "m":
		p.value = num
		p.durType = models.DurationDistance
	default: // min, mins, minute, minutes
		p.value = num * 60
		p.durType = models.DurationTime
	}
	p.text = strings.TrimSpace(text[:m[0]] + text[m[1]:])
	return p
}

// quantity renders a duration value in its compact unit form. Distance
// values of a kilometer or more use decimal kilometers; times of a minute
// or more use minutes with any leftover seconds.
func quantity(v float64, t models.DurationType) string {
	if t == models.DurationDistance {
		if v >= 1000 {
			return fmt.Sprintf("%.1fkm", v/1000)
		}
		return fmt.Sprintf("%dm", int(math.Round(v)))
	}
	secs := int(math.Round(v))
	if secs >= 60 {
		if secs%60 != 0 {
			return fmt.Sprintf("%dm%ds", secs/60, secs%60)
		}
		return fmt.Sprintf("%dm", secs/60)
	}
	return fmt.Sprintf("%ds", secs)
}
