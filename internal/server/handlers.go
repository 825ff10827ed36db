package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/claude/plansync/internal/format"
	"github.com/claude/plansync/internal/models"
	"github.com/claude/plansync/internal/settings"
	"github.com/claude/plansync/internal/upload"
	"github.com/claude/plansync/internal/validate"
)

const maxImportSize = 32 << 20 // 32 MiB cap on uploaded plan files

// planRequest is the shared body shape for preview and upload.
type planRequest struct {
	Plan        models.TrainingPlan `json:"plan"`
	PaceMapping models.PaceMapping  `json:"pace_mapping,omitempty"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	file, filename, err := importBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	defer file.Close()

	provider := s.jsonPlans
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		if s.pdfPlans == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"error": "PDF import is not configured (missing Gemini API key)",
			})
			return
		}
		provider = s.pdfPlans
	}

	plan, err := provider.Import(r.Context(), file, filename)
	if err != nil {
		s.log.Error("import error", "file", filename, "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// importBody extracts the plan file from a multipart form ("file" field) or
// the raw request body plus a filename query parameter.
func importBody(r *http.Request) (io.ReadCloser, string, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportSize); err != nil {
			return nil, "", errors.New("invalid multipart form: " + err.Error())
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", errors.New(`multipart form must carry a "file" field`)
		}
		return file, header.Filename, nil
	}

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		return nil, "", errors.New("filename query parameter is required for raw uploads")
	}
	return http.MaxBytesReader(nil, r.Body, maxImportSize), filename, nil
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var plan models.TrainingPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	errs := validate.Plan(plan)
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":  len(errs) == 0,
		"errors": errs,
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	type preview struct {
		ID          string `json:"id"`
		Date        string `json:"date"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	previews := make([]preview, 0, len(req.Plan.Workouts))
	for _, wo := range req.Plan.Workouts {
		previews = append(previews, preview{
			ID:          wo.ID,
			Date:        wo.Date,
			Name:        wo.Name,
			Description: format.Describe(wo, req.PaceMapping),
		})
	}

	writeJSON(w, http.StatusOK, previews)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if errs := validate.Plan(req.Plan); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "plan failed validation",
			"errors": errs,
		})
		return
	}

	client, err := s.intervalsClient()
	if err != nil {
		writeJSON(w, http.StatusPreconditionFailed, map[string]string{"error": err.Error()})
		return
	}

	uploader := upload.New(client, s.delay, s.log)
	result, err := uploader.UploadPlan(r.Context(), &req.Plan, req.PaceMapping, nil)

	// Partial failure is a result, not an HTTP failure: succeeded workouts
	// stay on the remote calendar either way.
	body := map[string]any{"result": result}
	if err != nil {
		body["error"] = err.Error()
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleCredentialsCheck(w http.ResponseWriter, r *http.Request) {
	client, err := s.intervalsClient()
	if err != nil {
		writeJSON(w, http.StatusOK, upload.CredentialCheck{
			Status:  upload.CredentialsInvalid,
			Message: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, client.CheckCredentials(r.Context()))
}

// intervalsClient builds a destination client from config, falling back to
// the settings store for anything the config leaves blank.
func (s *Server) intervalsClient() (*upload.Client, error) {
	apiKey := s.intervals.APIKey
	athleteID := s.intervals.AthleteID

	if apiKey == "" {
		v, err := s.store.Get(settings.KeyIntervalsAPIKey)
		if err != nil {
			s.log.Warn("settings read failed", "key", settings.KeyIntervalsAPIKey, "error", err)
		}
		apiKey = v
	}
	if athleteID == "" {
		v, err := s.store.Get(settings.KeyAthleteID)
		if err != nil {
			s.log.Warn("settings read failed", "key", settings.KeyAthleteID, "error", err)
		}
		athleteID = v
	}

	if apiKey == "" || athleteID == "" {
		return nil, errors.New("intervals.icu credentials are not configured")
	}
	return upload.NewClient(s.intervals.BaseURL, athleteID, apiKey), nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
