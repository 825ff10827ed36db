package pdf

import genai "google.golang.org/genai"

// extractionPrompt is the fixed instruction sent with every PDF.
const extractionPrompt = `You are given a training plan document. Extract the
complete workout schedule as JSON.

Rules:
- Dates must be YYYY-MM-DD. If the plan uses week/day labels instead of
  dates, anchor week 1 day 1 to the plan's stated start date; if no start
  date is given, use the next Monday.
- "type" must be one of: run, bike, swim, strength, rest.
- "duration" is total minutes, "distance" is total kilometers. Omit fields
  the document does not specify.
- "intensity", when present, must be one of: easy, moderate, hard, race.
- Structured sets (e.g. "5x1km @ 5K pace w/ 200m jog") go into "intervals":
  repeat count, work duration with durationType "time" (seconds) or
  "distance" (meters), intensity text as written, and recovery in the same
  unit. Keep warmup/cooldown phases in the description text instead.
- Preserve coach's remarks in "notes".

Return only the JSON object, no commentary.`

// planSchema constrains the model response to the plan file shape.
var planSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":      {Type: genai.TypeString},
		"startDate": {Type: genai.TypeString},
		"endDate":   {Type: genai.TypeString},
		"workouts": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date":        {Type: genai.TypeString},
					"type":        {Type: genai.TypeString, Enum: []string{"run", "bike", "swim", "strength", "rest"}},
					"name":        {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
					"duration":    {Type: genai.TypeNumber},
					"distance":    {Type: genai.TypeNumber},
					"intensity":   {Type: genai.TypeString},
					"notes":       {Type: genai.TypeString},
					"intervals": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"repeat":            {Type: genai.TypeInteger},
								"duration":          {Type: genai.TypeNumber},
								"durationType":      {Type: genai.TypeString, Enum: []string{"time", "distance"}},
								"intensity":         {Type: genai.TypeString},
								"recovery":          {Type: genai.TypeNumber},
								"recoveryIntensity": {Type: genai.TypeString},
								"rampStart":         {Type: genai.TypeString},
								"rampEnd":           {Type: genai.TypeString},
							},
							Required: []string{"repeat", "duration", "durationType", "intensity"},
						},
					},
				},
				Required: []string{"date", "type", "name"},
			},
		},
	},
	Required: []string{"name", "startDate", "endDate", "workouts"},
}
