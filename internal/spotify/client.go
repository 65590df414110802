// Package spotify provides authenticated access to the Spotify Web API.
//
// Requests that fail at the HTTP level return an empty Document rather than
// an error, so a caller walking many resources does not abort on one
// missing record. Only token failures and context cancellation surface as
// errors.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/justestif/spotilyfi/internal/metrics"
)

const (
	// DefaultBaseURL is the Spotify Web API host.
	DefaultBaseURL = "https://api.spotify.com"

	// DefaultVersion is the API version used when none is given.
	DefaultVersion = "v1"

	userAgent = "spotilyfi/1.0"
)

// TokenSource supplies bearer tokens for API requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Config configures a Client.
type Config struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client

	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

// Client issues authenticated requests against the catalog endpoints.
type Client struct {
	tokens     TokenSource
	httpClient *http.Client
	baseURL    string
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

// New creates a Client that authorizes every request with a token from tokens.
func New(tokens TokenSource, cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		tokens:     tokens,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     cfg.Logger.With().Str("component", "spotify").Logger(),
		metrics:    cfg.Metrics,
	}
}

// get performs an authenticated GET and decodes the JSON body.
// Transport failures, non-2xx responses and undecodable bodies yield an
// empty Document. label names the request in logs and metrics.
func (c *Client) get(ctx context.Context, label, reqURL string) (Document, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Warn().Err(err).Str("kind", label).Msg("request failed")
		c.metrics.Request(label, metrics.OutcomeFailed)
		return Document{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn().Int("status", resp.StatusCode).Str("kind", label).Str("url", reqURL).Msg("non-2xx response")
		c.metrics.Request(label, metrics.OutcomeEmpty)
		return Document{}, nil
	}

	doc := Document{}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		c.logger.Warn().Err(err).Str("kind", label).Msg("decoding response body")
		c.metrics.Request(label, metrics.OutcomeFailed)
		return Document{}, nil
	}
	if doc == nil {
		doc = Document{}
	}

	c.metrics.Request(label, metrics.OutcomeOK)
	return doc, nil
}
