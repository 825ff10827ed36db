package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/plansync/internal/models"
	"github.com/claude/plansync/internal/settings"
)

// settingsView is what GET /settings returns. Secrets are reported as
// presence flags, never echoed back.
type settingsView struct {
	AthleteID    string             `json:"athlete_id"`
	HasAPIKey    bool               `json:"has_api_key"`
	HasGeminiKey bool               `json:"has_gemini_key"`
	Preferences  models.Preferences `json:"preferences"`
}

// settingsUpdate is the PUT /settings body. Empty fields are left unchanged.
type settingsUpdate struct {
	AthleteID    string              `json:"athlete_id,omitempty"`
	APIKey       string              `json:"api_key,omitempty"`
	GeminiAPIKey string              `json:"gemini_api_key,omitempty"`
	Preferences  *models.Preferences `json:"preferences,omitempty"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	view := settingsView{}

	// Storage failures degrade to defaults; settings are never fatal.
	if v, err := s.store.Get(settings.KeyAthleteID); err == nil {
		view.AthleteID = v
	} else {
		s.log.Warn("settings read failed", "key", settings.KeyAthleteID, "error", err)
	}
	if v, err := s.store.Get(settings.KeyIntervalsAPIKey); err == nil {
		view.HasAPIKey = v != ""
	}
	if v, err := s.store.Get(settings.KeyGeminiAPIKey); err == nil {
		view.HasGeminiKey = v != ""
	}

	prefs, err := s.store.Preferences()
	if err != nil {
		s.log.Warn("preferences read failed", "error", err)
	}
	view.Preferences = prefs

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var update settingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	set := func(key, value string) {
		if value == "" {
			return
		}
		if err := s.store.Set(key, value); err != nil {
			s.log.Warn("settings write failed", "key", key, "error", err)
		}
	}
	set(settings.KeyAthleteID, update.AthleteID)
	set(settings.KeyIntervalsAPIKey, update.APIKey)
	set(settings.KeyGeminiAPIKey, update.GeminiAPIKey)

	if update.Preferences != nil {
		if err := s.store.SetPreferences(*update.Preferences); err != nil {
			s.log.Warn("preferences write failed", "error", err)
		}
	}

	s.handleGetSettings(w, r)
}
