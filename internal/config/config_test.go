package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/justestif/spotilyfi/internal/auth"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"SPOTIFY_ID", "SPOTIFY_SECRET",
		"SPOTILYFI_CLIENT_ID", "SPOTILYFI_CLIENT_SECRET",
		"SPOTILYFI_API_BASE_URL", "SPOTILYFI_TOKEN_URL", "SPOTILYFI_LYRICS_BASE_URL",
		"SPOTILYFI_HTTP_TIMEOUT", "SPOTILYFI_LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return dir
}

func TestLoad_Env(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantID     string
		wantSecret string
		wantErr    error
	}{
		{
			name:       "spotify names",
			env:        map[string]string{"SPOTIFY_ID": "id-1", "SPOTIFY_SECRET": "secret-1"},
			wantID:     "id-1",
			wantSecret: "secret-1",
		},
		{
			name:       "prefixed names",
			env:        map[string]string{"SPOTILYFI_CLIENT_ID": "id-2", "SPOTILYFI_CLIENT_SECRET": "secret-2"},
			wantID:     "id-2",
			wantSecret: "secret-2",
		},
		{
			name:    "missing secret",
			env:     map[string]string{"SPOTIFY_ID": "id-1"},
			wantErr: auth.ErrMissingCredentials,
		},
		{
			name:    "nothing set",
			env:     map[string]string{},
			wantErr: auth.ErrMissingCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(t.TempDir())

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if cfg != nil {
					t.Error("Load() returned non-nil config with error")
				}
				return
			}
			if cfg.ClientID != tt.wantID || cfg.ClientSecret != tt.wantSecret {
				t.Errorf("Load() credentials = %q/%q, want %q/%q",
					cfg.ClientID, cfg.ClientSecret, tt.wantID, tt.wantSecret)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	dir := writeConfig(t, `
client_id: file-id
client_secret: file-secret
api_base_url: http://localhost:9000
token_url: http://localhost:9001/token
lyrics_base_url: http://localhost:9002/lyrics/
http_timeout: 5s
log_level: debug
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Config{
		ClientID:      "file-id",
		ClientSecret:  "file-secret",
		APIBaseURL:    "http://localhost:9000",
		TokenURL:      "http://localhost:9001/token",
		LyricsBaseURL: "http://localhost:9002/lyrics/",
		HTTPTimeout:   5 * time.Second,
		LogLevel:      "debug",
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := writeConfig(t, "client_id: file-id\nclient_secret: file-secret\nlog_level: info\n")
	t.Setenv("SPOTIFY_ID", "env-id")
	t.Setenv("SPOTILYFI_LOG_LEVEL", "warn")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ClientID != "env-id" {
		t.Errorf("ClientID = %q, want env-id", cfg.ClientID)
	}
	if cfg.ClientSecret != "file-secret" {
		t.Errorf("ClientSecret = %q, want file-secret", cfg.ClientSecret)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPOTIFY_ID", "id")
	t.Setenv("SPOTIFY_SECRET", "secret")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTPTimeout != 0 || cfg.APIBaseURL != "" || cfg.LogLevel != "" {
		t.Errorf("Load() = %+v, want zero optional settings", *cfg)
	}
}

func TestLoad_BadFile(t *testing.T) {
	clearEnv(t)
	dir := writeConfig(t, "client_id: [unterminated\n")

	if _, err := Load(dir); err == nil || errors.Is(err, auth.ErrMissingCredentials) {
		t.Errorf("Load() error = %v, want a parse error", err)
	}
}
