// Package config loads spotilyfi settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/justestif/spotilyfi/internal/auth"
)

// FileName is the config file searched for, without extension.
const FileName = "spotilyfi"

// Config holds client settings. Empty URLs and a zero timeout select the
// package defaults.
type Config struct {
	ClientID     string
	ClientSecret string

	APIBaseURL    string
	TokenURL      string
	LyricsBaseURL string

	// HTTPTimeout bounds each HTTP request. Zero means no timeout.
	HTTPTimeout time.Duration

	LogLevel string
}

// Load reads spotilyfi.yaml from the first of paths that holds one (the
// working directory when none are given), then overlays the environment.
// The file is optional. Credentials are read from SPOTIFY_ID and
// SPOTIFY_SECRET, or SPOTILYFI_CLIENT_ID and SPOTILYFI_CLIENT_SECRET; other
// keys use the SPOTILYFI_ prefix, e.g. SPOTILYFI_LOG_LEVEL.
//
// Returns auth.ErrMissingCredentials if either credential is unset.
func Load(paths ...string) (*Config, error) {
	v := viper.New()

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("http_timeout", time.Duration(0))
	v.SetDefault("log_level", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SPOTILYFI")
	v.AutomaticEnv()
	if err := v.BindEnv("client_id", "SPOTIFY_ID", "SPOTILYFI_CLIENT_ID"); err != nil {
		return nil, fmt.Errorf("binding env: %w", err)
	}
	if err := v.BindEnv("client_secret", "SPOTIFY_SECRET", "SPOTILYFI_CLIENT_SECRET"); err != nil {
		return nil, fmt.Errorf("binding env: %w", err)
	}

	cfg := &Config{
		ClientID:      v.GetString("client_id"),
		ClientSecret:  v.GetString("client_secret"),
		APIBaseURL:    v.GetString("api_base_url"),
		TokenURL:      v.GetString("token_url"),
		LyricsBaseURL: v.GetString("lyrics_base_url"),
		HTTPTimeout:   v.GetDuration("http_timeout"),
		LogLevel:      v.GetString("log_level"),
	}

	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, auth.ErrMissingCredentials
	}
	return cfg, nil
}
