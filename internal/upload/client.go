package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public intervals.icu API host.
const DefaultBaseURL = "https://intervals.icu"

// Client talks to the intervals.icu REST API on behalf of one athlete.
// Authentication is HTTP basic with the literal username "API_KEY".
type Client struct {
	baseURL    string
	athleteID  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an intervals.icu client. An empty baseURL selects the
// public host.
func NewClient(baseURL, athleteID, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		athleteID: athleteID,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateEvent POSTs one calendar event to the athlete's calendar.
func (c *Client) CreateEvent(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/athlete/%s/events", c.baseURL, c.athleteID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("API_KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("event rejected (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// CredentialStatus classifies the outcome of a credential probe.
type CredentialStatus string

const (
	CredentialsValid   CredentialStatus = "valid"
	CredentialsInvalid CredentialStatus = "invalid"
	CredentialsFailed  CredentialStatus = "failed"  // API reachable but probe rejected
	CredentialsUnknown CredentialStatus = "unknown" // transport or parse error
)

// CredentialCheck is the result of CheckCredentials. It is always a value,
// never an error: credential probing must not fault past this boundary.
type CredentialCheck struct {
	Status  CredentialStatus `json:"status"`
	Message string           `json:"message,omitempty"`
}

// CheckCredentials issues a lightweight authenticated read against the
// athlete resource. 401/403 means the key is bad; any other non-success
// status is a generic failure; transport errors are unknown.
func (c *Client) CheckCredentials(ctx context.Context) CredentialCheck {
	url := fmt.Sprintf("%s/api/v1/athlete/%s", c.baseURL, c.athleteID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return CredentialCheck{Status: CredentialsUnknown, Message: err.Error()}
	}
	req.SetBasicAuth("API_KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CredentialCheck{Status: CredentialsUnknown, Message: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return CredentialCheck{Status: CredentialsInvalid, Message: "API key was rejected"}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return CredentialCheck{
			Status:  CredentialsFailed,
			Message: fmt.Sprintf("credential check failed (status %d)", resp.StatusCode),
		}
	}
	return CredentialCheck{Status: CredentialsValid}
}
