package spotilyfi

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/justestif/spotilyfi/internal/auth"
	"github.com/justestif/spotilyfi/internal/discography"
	"github.com/justestif/spotilyfi/internal/logging"
	"github.com/justestif/spotilyfi/internal/lyrics"
	"github.com/justestif/spotilyfi/internal/metrics"
	"github.com/justestif/spotilyfi/internal/spotify"
)

// Client is a Spotify catalog client. It is safe for concurrent use, though
// the aggregation methods issue their own requests one at a time.
type Client struct {
	auth        *auth.Authenticator
	catalog     *spotify.Client
	lyrics      *lyrics.Client
	discography *discography.Service
}

type options struct {
	httpClient    *http.Client
	logger        zerolog.Logger
	registerer    prometheus.Registerer
	apiBaseURL    string
	tokenURL      string
	lyricsBaseURL string
	now           func() time.Time
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRegisterer registers the client's Prometheus collectors on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithAPIBaseURL overrides the Web API host, e.g. for a test server.
func WithAPIBaseURL(u string) Option {
	return func(o *options) {
		o.apiBaseURL = u
	}
}

// WithTokenURL overrides the accounts token endpoint.
func WithTokenURL(u string) Option {
	return func(o *options) {
		o.tokenURL = u
	}
}

// WithLyricsBaseURL overrides the directory lyric pages are fetched from.
// It must end with a slash.
func WithLyricsBaseURL(u string) Option {
	return func(o *options) {
		o.lyricsBaseURL = u
	}
}

// WithClock sets the clock used to judge token expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New creates a Client for the given application credentials. No request
// is made until the first call that needs a token.
//
// Returns an *AuthenticationError wrapping ErrMissingCredentials if either
// credential is empty.
func New(clientID, clientSecret string, opts ...Option) (*Client, error) {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	m := metrics.New(o.registerer)

	authenticator, err := auth.New(auth.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     o.tokenURL,
		HTTPClient:   o.httpClient,
		Now:          o.now,
		Logger:       o.logger,
		Metrics:      m,
	})
	if err != nil {
		return nil, err
	}

	catalog := spotify.New(authenticator, spotify.Config{
		BaseURL:    o.apiBaseURL,
		HTTPClient: o.httpClient,
		Logger:     o.logger,
		Metrics:    m,
	})

	lyricsClient := lyrics.NewClient(lyrics.Config{
		BaseURL:    o.lyricsBaseURL,
		HTTPClient: o.httpClient,
		Logger:     o.logger,
		Metrics:    m,
	})

	return &Client{
		auth:    authenticator,
		catalog: catalog,
		lyrics:  lyricsClient,
		discography: discography.NewService(catalog,
			discography.WithLyrics(lyricsClient),
			discography.WithLogger(o.logger),
		),
	}, nil
}

// NewFromConfig creates a Client from loaded configuration. A non-empty
// LogLevel logs to stderr and a non-zero HTTPTimeout bounds every request.
// Options are applied after the configuration and take precedence.
func NewFromConfig(cfg *Config, opts ...Option) (*Client, error) {
	base := []Option{
		WithAPIBaseURL(cfg.APIBaseURL),
		WithTokenURL(cfg.TokenURL),
		WithLyricsBaseURL(cfg.LyricsBaseURL),
		WithLogger(logging.New(cfg.LogLevel, os.Stderr)),
	}
	if cfg.HTTPTimeout > 0 {
		base = append(base, WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
	}
	return New(cfg.ClientID, cfg.ClientSecret, append(base, opts...)...)
}

// Token returns a valid access token, fetching a new one when the cached
// token is missing or expired.
func (c *Client) Token(ctx context.Context) (string, error) {
	return c.auth.Token(ctx)
}

// TokenExpiresAt returns the expiry of the cached token, or the zero time
// if none has been fetched.
func (c *Client) TokenExpiresAt() time.Time {
	return c.auth.ExpiresAt()
}

// GetResource fetches a catalog object by id. An empty kind selects
// KindAlbums and an empty version selects "v1".
func (c *Client) GetResource(ctx context.Context, id string, kind ResourceKind, version string) (Document, error) {
	return c.catalog.GetResource(ctx, id, kind, version)
}

// Album fetches an album by id.
func (c *Client) Album(ctx context.Context, id string) (Document, error) {
	return c.catalog.Album(ctx, id)
}

// Artist fetches an artist by id.
func (c *Client) Artist(ctx context.Context, id string) (Document, error) {
	return c.catalog.Artist(ctx, id)
}

// Track fetches a track by id.
func (c *Client) Track(ctx context.Context, id string) (Document, error) {
	return c.catalog.Track(ctx, id)
}

// Playlist fetches a playlist by id.
func (c *Client) Playlist(ctx context.Context, id string) (Document, error) {
	return c.catalog.Playlist(ctx, id)
}

// Show fetches a podcast show by id.
func (c *Client) Show(ctx context.Context, id string) (Document, error) {
	return c.catalog.Show(ctx, id)
}

// Episode fetches a podcast episode by id.
func (c *Client) Episode(ctx context.Context, id string) (Document, error) {
	return c.catalog.Episode(ctx, id)
}

// AudioFeatures fetches the audio features of a track.
func (c *Client) AudioFeatures(ctx context.Context, trackID string) (Document, error) {
	return c.catalog.AudioFeatures(ctx, trackID)
}

// AudioAnalysis fetches the audio analysis of a track.
func (c *Client) AudioAnalysis(ctx context.Context, trackID string) (Document, error) {
	return c.catalog.AudioAnalysis(ctx, trackID)
}

// Search runs a catalog search. A nil query fails with *ValidationError.
func (c *Client) Search(ctx context.Context, q Query, opts ...SearchOption) (Document, error) {
	return c.catalog.Search(ctx, q, opts...)
}

// ListAlbums returns the names of an artist's albums in search order.
func (c *Client) ListAlbums(ctx context.Context, artist string) ([]string, error) {
	return c.discography.ListAlbums(ctx, artist)
}

// CollectTrackInfo returns one record per track across all of an artist's
// albums, optionally with lyrics.
func (c *Client) CollectTrackInfo(ctx context.Context, artist string, includeLyrics bool) ([]TrackInfo, error) {
	return c.discography.CollectTrackInfo(ctx, artist, includeLyrics)
}

// FetchLyrics returns the lyrics of a song, or placeholder text starting
// with "Exception occurred" if they could not be fetched.
func (c *Client) FetchLyrics(ctx context.Context, artist, title string) string {
	return c.lyrics.Fetch(ctx, artist, title).Text()
}

// LookupLyrics is FetchLyrics with the failure reported separately.
func (c *Client) LookupLyrics(ctx context.Context, artist, title string) LyricsResult {
	return c.lyrics.Fetch(ctx, artist, title)
}
