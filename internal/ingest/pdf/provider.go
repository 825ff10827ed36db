// Package pdf imports training plans from PDF files by asking a hosted
// language model to extract the schedule as schema-constrained JSON.
package pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/claude/plansync/internal/ingest"
	"github.com/claude/plansync/internal/models"
	genai "google.golang.org/genai"
)

// Extractor is the slice of the LLM client this adapter needs.
type Extractor interface {
	ExtractJSON(ctx context.Context, prompt, mimeType string, data []byte, schema *genai.Schema) (string, error)
}

// Provider imports plans from PDFs via LLM extraction.
type Provider struct {
	llm Extractor
	log *slog.Logger
}

// Compile-time check: Provider satisfies ingest.Provider.
var _ ingest.Provider = (*Provider)(nil)

// NewProvider creates a PDF import provider backed by the given extractor.
func NewProvider(llm Extractor, log *slog.Logger) *Provider {
	return &Provider{llm: llm, log: log}
}

// Import sends the PDF to the model, parses its JSON response, and maps the
// result into a normalized plan. Any provider or parse failure surfaces as a
// single extraction error; a rate-limit phrase in the underlying error adds
// a user-facing hint to wait.
func (p *Provider) Import(ctx context.Context, r io.Reader, filename string) (*models.TrainingPlan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("extracting plan from %s: file is empty", filename)
	}

	text, err := p.llm.ExtractJSON(ctx, extractionPrompt, "application/pdf", data, planSchema)
	if err != nil {
		return nil, extractionError(filename, err)
	}

	var file ingest.PlanFile
	if err := json.Unmarshal([]byte(stripFences(text)), &file); err != nil {
		p.log.Warn("model response is not valid JSON", "file", filename, "error", err)
		return nil, extractionError(filename, err)
	}
	if len(file.Workouts) == 0 {
		return nil, fmt.Errorf("extracting plan from %s: no workouts found in document", filename)
	}

	plan := file.ToPlan()
	ingest.Finalize(&plan, filename)
	p.log.Info("extracted plan from PDF",
		"name", plan.Name,
		"workouts", len(plan.Workouts),
		"weeks", plan.Weeks,
	)
	return &plan, nil
}

// extractionError wraps any provider or parse failure into the one generic
// error shape the caller sees, adding a retry hint when the provider looks
// rate limited.
func extractionError(filename string, err error) error {
	msg := strings.ToLower(err.Error())
	for _, phrase := range []string{"quota", "rate limit", "resource exhausted", "429"} {
		if strings.Contains(msg, phrase) {
			return fmt.Errorf("extracting plan from %s: %w (the model appears to be rate limited; wait a moment and try again)", filename, err)
		}
	}
	return fmt.Errorf("extracting plan from %s: %w", filename, err)
}

// stripFences removes a markdown code-fence wrapper from a model response.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		return s
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
