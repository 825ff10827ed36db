package pdf

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	genai "google.golang.org/genai"
)

// fakeExtractor returns a canned response or error and records the request.
type fakeExtractor struct {
	response string
	err      error

	prompt   string
	mimeType string
	data     []byte
	schema   *genai.Schema
}

func (f *fakeExtractor) ExtractJSON(ctx context.Context, prompt, mimeType string, data []byte, schema *genai.Schema) (string, error) {
	f.prompt = prompt
	f.mimeType = mimeType
	f.data = data
	f.schema = schema
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const extractedPlan = `{
  "name": "Half Marathon 10 Week",
  "startDate": "2026-03-02",
  "endDate": "2026-05-10",
  "workouts": [
    {"date": "2026-03-03", "type": "run", "name": "Easy run", "duration": 40}
  ]
}`

// TestImportMapsExtraction verifies the happy path: the PDF bytes and the
// schema reach the model, and the response becomes a finalized plan.
func TestImportMapsExtraction(t *testing.T) {
	fake := &fakeExtractor{response: extractedPlan}
	p := NewProvider(fake, discardLogger())

	plan, err := p.Import(context.Background(), strings.NewReader("%PDF-1.4 fake"), "plan.pdf")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if fake.mimeType != "application/pdf" {
		t.Errorf("mime type = %q, want application/pdf", fake.mimeType)
	}
	if string(fake.data) != "%PDF-1.4 fake" {
		t.Errorf("model did not receive the raw file bytes")
	}
	if fake.schema == nil {
		t.Errorf("extraction request carried no response schema")
	}
	if plan.Name != "Half Marathon 10 Week" {
		t.Errorf("plan name = %q", plan.Name)
	}
	if plan.ID == "" || plan.Workouts[0].ID == "" {
		t.Errorf("identifiers not assigned")
	}
	if plan.Weeks != 10 {
		t.Errorf("weeks = %d, want 10", plan.Weeks)
	}
	if plan.Source != "plan.pdf" {
		t.Errorf("source = %q, want plan.pdf", plan.Source)
	}
}

// TestImportStripsCodeFences verifies a fenced model response still parses.
func TestImportStripsCodeFences(t *testing.T) {
	fake := &fakeExtractor{response: "```json\n" + extractedPlan + "\n```"}
	p := NewProvider(fake, discardLogger())

	plan, err := p.Import(context.Background(), strings.NewReader("pdf"), "plan.pdf")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(plan.Workouts) != 1 {
		t.Errorf("workouts = %d, want 1", len(plan.Workouts))
	}
}

// TestImportEmptyFile verifies an empty upload is rejected before any model
// call.
func TestImportEmptyFile(t *testing.T) {
	fake := &fakeExtractor{response: extractedPlan}
	p := NewProvider(fake, discardLogger())

	if _, err := p.Import(context.Background(), strings.NewReader(""), "empty.pdf"); err == nil {
		t.Fatalf("Import accepted an empty file")
	}
	if fake.data != nil {
		t.Errorf("model was called for an empty file")
	}
}

// TestImportRateLimitHint verifies that rate-limit shaped provider errors
// gain the wait-and-retry hint.
func TestImportRateLimitHint(t *testing.T) {
	fake := &fakeExtractor{err: errors.New("googleapi: Error 429: Resource exhausted")}
	p := NewProvider(fake, discardLogger())

	_, err := p.Import(context.Background(), strings.NewReader("pdf"), "plan.pdf")
	if err == nil {
		t.Fatalf("Import swallowed the provider error")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error = %q, want rate-limit hint", err)
	}
	if !errors.Is(err, fake.err) {
		t.Errorf("underlying error not wrapped")
	}
}

// TestImportOtherProviderError verifies non-rate-limit failures keep the
// plain extraction error shape.
func TestImportOtherProviderError(t *testing.T) {
	fake := &fakeExtractor{err: errors.New("connection reset")}
	p := NewProvider(fake, discardLogger())

	_, err := p.Import(context.Background(), strings.NewReader("pdf"), "plan.pdf")
	if err == nil {
		t.Fatalf("Import swallowed the provider error")
	}
	if strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error = %q, should not carry the rate-limit hint", err)
	}
	if !strings.HasPrefix(err.Error(), "extracting plan from plan.pdf") {
		t.Errorf("error = %q, want extraction context", err)
	}
}

// TestImportNonJSONResponse verifies a prose response from the model becomes
// an extraction error, not a panic or partial plan.
func TestImportNonJSONResponse(t *testing.T) {
	fake := &fakeExtractor{response: "I could not find a training plan in this document."}
	p := NewProvider(fake, discardLogger())

	plan, err := p.Import(context.Background(), strings.NewReader("pdf"), "plan.pdf")
	if err == nil {
		t.Fatalf("Import accepted a non-JSON response")
	}
	if plan != nil {
		t.Errorf("Import returned a plan from a non-JSON response")
	}
}

// TestImportNoWorkouts verifies an empty extraction is rejected.
func TestImportNoWorkouts(t *testing.T) {
	fake := &fakeExtractor{response: `{"name": "Empty", "startDate": "2026-03-02", "endDate": "2026-03-09", "workouts": []}`}
	p := NewProvider(fake, discardLogger())

	_, err := p.Import(context.Background(), strings.NewReader("pdf"), "plan.pdf")
	if err == nil || !strings.Contains(err.Error(), "no workouts found") {
		t.Errorf("error = %v, want no-workouts rejection", err)
	}
}

// TestStripFences covers the fence variants the models actually emit.
func TestStripFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  ```json\n{\"a\":1}\n```  ", "{\"a\":1}"},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
