package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeClock is a settable time source.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// newTokenServer returns a token endpoint that issues "tok-N" tokens and
// counts requests. expiresIn of 0 omits the field.
func newTokenServer(t *testing.T, expiresIn int, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var count atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := count.Add(1)

		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "client_credentials" {
			t.Errorf("grant_type = %q, want client_credentials", got)
		}

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid_client"})
			return
		}

		resp := map[string]any{
			"access_token": "tok-" + string(rune('0'+n)),
			"token_type":   "Bearer",
		}
		if expiresIn > 0 {
			resp["expires_in"] = expiresIn
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)

	return server, &count
}

func newTestAuthenticator(t *testing.T, server *httptest.Server, clock *fakeClock) *Authenticator {
	t.Helper()
	a, err := New(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     server.URL,
		HTTPClient:   server.Client(),
		Now:          clock.Now,
		Logger:       zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func TestNew_MissingCredentials(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		secret string
	}{
		{"missing id", "", "secret"},
		{"missing secret", "id", ""},
		{"missing both", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Config{ClientID: tt.id, ClientSecret: tt.secret})

			if !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("New() error = %v, want ErrMissingCredentials", err)
			}
			var authErr *AuthenticationError
			if !errors.As(err, &authErr) {
				t.Errorf("New() error = %T, want *AuthenticationError", err)
			}
		})
	}
}

func TestAuthenticate_SendsBasicCredentials(t *testing.T) {
	var gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "abc",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	defer server.Close()

	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	a := newTestAuthenticator(t, server, clock)

	if err := a.Authenticate(context.Background()); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("client-id:client-secret"))
	if gotHeader != want {
		t.Errorf("Authorization = %q, want %q", gotHeader, want)
	}

	wantExpiry := clock.Now().Add(time.Hour)
	if !a.ExpiresAt().Equal(wantExpiry) {
		t.Errorf("ExpiresAt() = %v, want %v", a.ExpiresAt(), wantExpiry)
	}
}

func TestAuthenticate_EscapesReservedCredentials(t *testing.T) {
	var gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"access_token": "abc", "token_type": "Bearer", "expires_in": 3600})
	}))
	defer server.Close()

	a, err := New(Config{
		ClientID:     "id+x",
		ClientSecret: "s/y",
		TokenURL:     server.URL,
		HTTPClient:   server.Client(),
		Logger:       zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := a.Authenticate(context.Background()); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("id%2Bx:s%2Fy"))
	if gotHeader != want {
		t.Errorf("Authorization = %q, want %q", gotHeader, want)
	}
}

func TestToken_Caching(t *testing.T) {
	server, count := newTokenServer(t, 3600, http.StatusOK)
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	a := newTestAuthenticator(t, server, clock)

	first, err := a.Token(context.Background())
	if err != nil {
		t.Fatalf("first Token() error = %v", err)
	}

	clock.Advance(30 * time.Minute)

	second, err := a.Token(context.Background())
	if err != nil {
		t.Fatalf("second Token() error = %v", err)
	}

	if first != second {
		t.Errorf("tokens differ: %q then %q", first, second)
	}
	if n := count.Load(); n != 1 {
		t.Errorf("expected 1 token request, got %d", n)
	}
}

func TestToken_RefreshAfterExpiry(t *testing.T) {
	server, count := newTokenServer(t, 3600, http.StatusOK)
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	a := newTestAuthenticator(t, server, clock)

	first, err := a.Token(context.Background())
	if err != nil {
		t.Fatalf("first Token() error = %v", err)
	}
	firstExpiry := a.ExpiresAt()

	// Expiry is exclusive: a token is unusable at exactly expires_at.
	clock.t = firstExpiry

	second, err := a.Token(context.Background())
	if err != nil {
		t.Fatalf("second Token() error = %v", err)
	}

	if first == second {
		t.Errorf("expected a new token after expiry, got %q twice", first)
	}
	if n := count.Load(); n != 2 {
		t.Errorf("expected 2 token requests, got %d", n)
	}
	if !a.ExpiresAt().After(firstExpiry) {
		t.Errorf("ExpiresAt() = %v, want after %v", a.ExpiresAt(), firstExpiry)
	}
}

func TestToken_EndpointRejects(t *testing.T) {
	server, count := newTokenServer(t, 3600, http.StatusUnauthorized)
	clock := &fakeClock{t: time.Now()}
	a := newTestAuthenticator(t, server, clock)

	_, err := a.Token(context.Background())

	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("Token() error = %v, want *AuthenticationError", err)
	}
	if authErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want %d", authErr.StatusCode, http.StatusUnauthorized)
	}
	if n := count.Load(); n != 1 {
		t.Errorf("expected 1 token request, got %d", n)
	}
}

func TestToken_ExpiredOnArrival(t *testing.T) {
	// No expires_in means no usable expiry.
	server, count := newTokenServer(t, 0, http.StatusOK)
	clock := &fakeClock{t: time.Now()}
	a := newTestAuthenticator(t, server, clock)

	_, err := a.Token(context.Background())

	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Token() error = %v, want ErrTokenExpired", err)
	}
	if n := count.Load(); n != 1 {
		t.Errorf("expected exactly 1 token request, got %d", n)
	}
}

func TestTokenCache_Load(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		value  string
		expiry time.Time
		now    time.Time
		wantOK bool
	}{
		{"empty cache", "", time.Time{}, base, false},
		{"valid", "tok", base.Add(time.Minute), base, true},
		{"exactly at expiry", "tok", base, base, false},
		{"past expiry", "tok", base, base.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewTokenCache()
			if tt.value != "" {
				cache.Save(tt.value, tt.expiry)
			}

			got, ok := cache.Load(tt.now)
			if ok != tt.wantOK {
				t.Fatalf("Load() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.value {
				t.Errorf("Load() = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestTokenCache_Clear(t *testing.T) {
	cache := NewTokenCache()
	cache.Save("tok", time.Now().Add(time.Hour))
	cache.Clear()

	if _, ok := cache.Load(time.Now()); ok {
		t.Error("Load() after Clear() should report no token")
	}
	if !cache.ExpiresAt().IsZero() {
		t.Errorf("ExpiresAt() after Clear() = %v, want zero", cache.ExpiresAt())
	}
}
