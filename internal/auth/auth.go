// Package auth provides Spotify client-credentials authentication with
// in-memory token caching.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/justestif/spotilyfi/internal/metrics"
)

// Config configures an Authenticator.
type Config struct {
	ClientID     string
	ClientSecret string

	// TokenURL defaults to the Spotify accounts token endpoint.
	TokenURL string

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Now defaults to time.Now.
	Now func() time.Time

	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

// Authenticator owns the client identity and the bearer token issued for it.
type Authenticator struct {
	conf       *clientcredentials.Config
	httpClient *http.Client
	cache      *TokenCache
	now        func() time.Time
	logger     zerolog.Logger
	metrics    *metrics.Metrics

	// refreshMu serialises token refreshes.
	refreshMu sync.Mutex
}

// New creates an Authenticator. It does not contact the token endpoint;
// the first token is fetched lazily by Token.
func New(cfg Config) (*Authenticator, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, &AuthenticationError{Err: ErrMissingCredentials}
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Authenticator{
		// Basic auth. oauth2 URL-escapes id and secret before base64,
		// which only changes credentials with reserved characters.
		conf: &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: httpClient,
		cache:      NewTokenCache(),
		now:        now,
		logger:     cfg.Logger.With().Str("component", "auth").Logger(),
		metrics:    cfg.Metrics,
	}, nil
}

// Token returns a usable bearer token, authenticating first when no token
// is cached or the cached one has expired. At most one refresh is attempted
// per call.
func (a *Authenticator) Token(ctx context.Context) (string, error) {
	if token, ok := a.cache.Load(a.now()); ok {
		return token, nil
	}

	a.refreshMu.Lock()
	defer a.refreshMu.Unlock()

	for attempt := 0; attempt < 2; attempt++ {
		if token, ok := a.cache.Load(a.now()); ok {
			return token, nil
		}
		if attempt > 0 {
			break
		}
		if err := a.authenticate(ctx); err != nil {
			return "", err
		}
	}

	a.cache.Clear()
	return "", &AuthenticationError{Err: ErrTokenExpired}
}

// Authenticate unconditionally requests a new token and caches it.
func (a *Authenticator) Authenticate(ctx context.Context) error {
	a.refreshMu.Lock()
	defer a.refreshMu.Unlock()
	return a.authenticate(ctx)
}

// ExpiresAt returns the expiry of the cached token, or the zero time before
// the first successful authentication.
func (a *Authenticator) ExpiresAt() time.Time {
	return a.cache.ExpiresAt()
}

func (a *Authenticator) authenticate(ctx context.Context) error {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)

	a.logger.Debug().Str("token_url", a.conf.TokenURL).Msg("requesting client credentials token")

	tok, err := a.conf.Token(ctx)
	if err != nil {
		a.metrics.TokenRefreshed(false)
		authErr := &AuthenticationError{Err: fmt.Errorf("fetching token: %w", err)}
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			authErr.StatusCode = retrieveErr.Response.StatusCode
		}
		a.logger.Warn().Err(err).Int("status", authErr.StatusCode).Msg("authentication failed")
		return authErr
	}

	expiresAt := tok.Expiry
	if tok.ExpiresIn > 0 {
		expiresAt = a.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}

	a.cache.Save(tok.AccessToken, expiresAt)
	a.metrics.TokenRefreshed(true)
	a.logger.Debug().Time("expires_at", expiresAt).Msg("token refreshed")
	return nil
}
