package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

// TestLoadValid verifies that a complete config file parses into the
// expected structure.
func TestLoadValid(t *testing.T) {
	path := writeTemp(t, `
server:
  host: 127.0.0.1
  port: 8080
intervals:
  api_key: abc123
  athlete_id: i12345
gemini:
  api_key: g-key
  model: gemini-2.0-flash
upload:
  delay_ms: 500
data_dir: /var/lib/plansync
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 8080 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Intervals.APIKey != "abc123" || cfg.Intervals.AthleteID != "i12345" {
		t.Errorf("intervals = %+v", cfg.Intervals)
	}
	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("gemini model = %q", cfg.Gemini.Model)
	}
	if cfg.Upload.Delay() != 500*time.Millisecond {
		t.Errorf("upload delay = %v, want 500ms", cfg.Upload.Delay())
	}
	if cfg.DataDir != "/var/lib/plansync" {
		t.Errorf("data dir = %q", cfg.DataDir)
	}
}

// TestLoadMissingFile verifies a nonexistent path is an error.
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("Load accepted a missing file")
	}
}

// TestLoadInvalidYAML verifies malformed YAML is an error.
func TestLoadInvalidYAML(t *testing.T) {
	path := writeTemp(t, "server: [not: valid")
	if _, err := Load(path); err == nil {
		t.Errorf("Load accepted invalid YAML")
	}
}

// TestLoadRequiresPort verifies validation rejects a config without a port.
func TestLoadRequiresPort(t *testing.T) {
	path := writeTemp(t, "server:\n  host: 0.0.0.0\n")
	if _, err := Load(path); err == nil {
		t.Errorf("Load accepted a config without server.port")
	}
}

// TestLoadTailscaleHostname verifies the hostname is required only when
// tailscale is enabled.
func TestLoadTailscaleHostname(t *testing.T) {
	path := writeTemp(t, `
server:
  port: 8080
tailscale:
  enabled: true
`)
	if _, err := Load(path); err == nil {
		t.Errorf("Load accepted enabled tailscale without a hostname")
	}

	path = writeTemp(t, `
server:
  port: 8080
tailscale:
  enabled: false
`)
	if _, err := Load(path); err != nil {
		t.Errorf("Load rejected disabled tailscale without a hostname: %v", err)
	}
}

// TestLoadNegativeDelay verifies negative upload delays are rejected.
func TestLoadNegativeDelay(t *testing.T) {
	path := writeTemp(t, "server:\n  port: 8080\nupload:\n  delay_ms: -1\n")
	if _, err := Load(path); err == nil {
		t.Errorf("Load accepted a negative upload delay")
	}
}

// TestEnvOverrides verifies environment variables win over file values.
func TestEnvOverrides(t *testing.T) {
	path := writeTemp(t, `
server:
  host: 127.0.0.1
  port: 8080
intervals:
  api_key: from-file
`)

	t.Setenv("PLANSYNC_SERVER_PORT", "9090")
	t.Setenv("PLANSYNC_INTERVALS_API_KEY", "from-env")
	t.Setenv("PLANSYNC_GEMINI_MODEL", "gemini-2.5-pro")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090 from env", cfg.Server.Port)
	}
	if cfg.Intervals.APIKey != "from-env" {
		t.Errorf("api key = %q, want env override", cfg.Intervals.APIKey)
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("model = %q, want env value", cfg.Gemini.Model)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("host = %q, file value should survive", cfg.Server.Host)
	}
}

// TestDelayDefault verifies the zero value selects the default pause.
func TestDelayDefault(t *testing.T) {
	var u UploadConfig
	if u.Delay() != 200*time.Millisecond {
		t.Errorf("default delay = %v, want 200ms", u.Delay())
	}
}
