package format

import (
	"regexp"
	"strings"

	"github.com/claude/plansync/internal/models"
)

var (
	zoneRe       = regexp.MustCompile(`(?i)^z[1-5]$`)
	pacePrefixRe = regexp.MustCompile(`^\d{1,2}:\d{2}`)
)

// runContextual maps lexicon keywords whose target depends on whether the
// workout is a run (pace vocabulary) or ride/other (zone vocabulary).
var runContextual = map[string]struct{ run, other string }{
	"easy":     {"Easy pace", "Z2"},
	"recovery": {"Easy pace", "Z1"},
}

// lexicon maps lowercase intensity keywords to intervals.icu target tokens.
var lexicon = map[string]string{
	"steady":             "Z2",
	"moderate":           "Z3",
	"tempo":              "Z3",
	"threshold":          "Z4",
	"hard":               "Z4",
	"interval":           "Z5",
	"vo2":                "Z5",
	"vo2max":             "Z5",
	"race":               "Race pace",
	"5k pace":            "5K pace",
	"10k pace":           "10K pace",
	"half marathon pace": "Half marathon pace",
	"marathon pace":      "Marathon pace",
	"ftp":                "100%",
	"sweet spot":         "88-93%",
	"sweetspot":          "88-93%",
}

// resolveIntensity translates an intensity label into its target token.
// Precedence: user pace mapping (case-sensitive on the original label),
// then recognized zone/percentage tokens, then the keyword lexicon, and
// finally the label unchanged.
func resolveIntensity(label string, d models.Discipline, pm models.PaceMapping) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}

	if mapped, ok := pm[label]; ok {
		if looksLikePace(mapped) && !strings.Contains(strings.ToLower(mapped), "pace") {
			return mapped + " Pace"
		}
		return mapped
	}

	if zoneRe.MatchString(label) {
		return strings.ToUpper(label)
	}
	if strings.Contains(label, "%") {
		return label
	}

	lower := strings.ToLower(label)
	if ctx, ok := runContextual[lower]; ok {
		if d == models.DisciplineRun {
			return ctx.run
		}
		return ctx.other
	}
	if tok, ok := lexicon[lower]; ok {
		return tok
	}

	return label
}

// looksLikePace reports whether a mapped value reads as a pace expression,
// e.g. "4:30/km", "7:15/mi", or a bare "5:00".
func looksLikePace(v string) bool {
	if strings.Contains(v, "/km") || strings.Contains(v, "/mi") {
		return true
	}
	return pacePrefixRe.MatchString(v)
}
