// Package lyrics scrapes song lyrics from azlyrics.com.
//
// Page URLs are guessed from normalised artist and title names and the
// lyrics are cut out of the page between two HTML comments the site places
// around them. Neither is a stable contract, so every lookup is best effort.
package lyrics

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/justestif/spotilyfi/internal/metrics"
)

const (
	// DefaultBaseURL is the directory holding lyric pages.
	DefaultBaseURL = "http://azlyrics.com/lyrics/"

	userAgent = "spotilyfi/1.0"
)

// Page markers surrounding the lyrics.
const (
	StartMarker = "<!-- Usage of azlyrics.com content by any third-party lyrics provider is prohibited by our licensing agreement. Sorry about that. -->"
	EndMarker   = "<!-- MxM banner -->"
)

// ErrMarkersNotFound is returned when a page lacks either lyric marker.
var ErrMarkersNotFound = errors.New("lyric markers not found in page")

// Config configures a Client.
type Config struct {
	// BaseURL defaults to DefaultBaseURL. It must end with a slash.
	BaseURL string

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client

	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

// Client fetches lyric pages.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a new lyrics client from the provided configuration.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     cfg.Logger.With().Str("component", "lyrics").Logger(),
		metrics:    cfg.Metrics,
	}
}

// URL returns the page URL guessed for a track.
func (c *Client) URL(artist, title string) string {
	return c.baseURL + PagePath(artist, title)
}

// Fetch looks up the lyrics of a track. Failures are reported in
// Result.Err; Fetch itself never fails.
func (c *Client) Fetch(ctx context.Context, artist, title string) Result {
	result := Result{
		Artist: artist,
		Title:  title,
		URL:    c.URL(artist, title),
	}

	lyrics, err := c.fetchPage(ctx, result.URL)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", result.URL).Msg("lyrics lookup failed")
		c.metrics.LyricsLookup(metrics.OutcomeFailed)
		result.Err = err
		return result
	}

	c.metrics.LyricsLookup(metrics.OutcomeOK)
	result.Lyrics = lyrics
	return result
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP Error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}
	c.logger.Debug().Str("title", strings.TrimSpace(doc.Find("title").First().Text())).Str("url", pageURL).Msg("lyrics page")

	// Sliced from the raw text: re-rendering would escape quotes.
	return extract(string(body))
}

// extract returns the text strictly between StartMarker and EndMarker.
func extract(page string) (string, error) {
	_, rest, found := strings.Cut(page, StartMarker)
	if !found {
		return "", ErrMarkersNotFound
	}
	lyrics, _, found := strings.Cut(rest, EndMarker)
	if !found {
		return "", ErrMarkersNotFound
	}
	return lyrics, nil
}
