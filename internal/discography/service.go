// Package discography aggregates an artist's albums and tracks with their
// audio features, audio analysis and optional lyrics.
package discography

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/justestif/spotilyfi/internal/lyrics"
	"github.com/justestif/spotilyfi/internal/spotify"
)

// Catalog abstracts the Spotify client for testing.
type Catalog interface {
	Search(ctx context.Context, q spotify.Query, opts ...spotify.SearchOption) (spotify.Document, error)
	AudioFeatures(ctx context.Context, trackID string) (spotify.Document, error)
	AudioAnalysis(ctx context.Context, trackID string) (spotify.Document, error)
}

// LyricsFetcher abstracts the lyrics client for testing.
type LyricsFetcher interface {
	Fetch(ctx context.Context, artist, title string) lyrics.Result
}

// Service runs the aggregation pipelines. Calls are issued one at a time,
// in order.
type Service struct {
	catalog Catalog
	lyrics  LyricsFetcher
	logger  zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLyrics sets the source used when lyrics are requested.
func WithLyrics(f LyricsFetcher) Option {
	return func(s *Service) {
		s.lyrics = f
	}
}

// WithLogger sets the logger used for progress reporting.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService creates a new aggregation service.
func NewService(catalog Catalog, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "discography").Logger()
	return s
}

// ListAlbums returns the names of the artist's albums in search order.
func (s *Service) ListAlbums(ctx context.Context, artist string) ([]string, error) {
	doc, err := s.catalog.Search(ctx,
		spotify.FieldQuery{{Name: "artist", Value: artist}},
		spotify.WithType(spotify.SearchAlbum),
	)
	if err != nil {
		return nil, fmt.Errorf("searching albums: %w", err)
	}

	albums, err := items(doc, "albums")
	if err != nil {
		return nil, err
	}

	names := make([]string, len(albums))
	for i, album := range albums {
		name, ok := album.String("name")
		if !ok {
			return nil, &ShapeError{Path: fmt.Sprintf("albums.items[%d].name", i), Reason: "missing string"}
		}
		names[i] = name
	}
	return names, nil
}

// CollectTrackInfo builds a TrackInfo for every track of every album of the
// artist, keeping album order and the track order of each album search.
// With includeLyrics, each record also gets the lyrics lookup outcome; a
// failed lookup never stops the run.
//
// Each track costs two extra requests (features and analysis) and each
// album one search. Nothing is cached, even for a track seen twice.
func (s *Service) CollectTrackInfo(ctx context.Context, artist string, includeLyrics bool) ([]TrackInfo, error) {
	if includeLyrics && s.lyrics == nil {
		return nil, ErrNoLyricsSource
	}

	logger := s.logger.With().
		Str("run_id", uuid.NewString()).
		Str("artist", artist).
		Logger()

	albums, err := s.ListAlbums(ctx, artist)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("albums", len(albums)).Msg("collecting track info")

	infos := []TrackInfo{}
	for _, album := range albums {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logger.Info().Str("album", album).Msg("album")

		collected, err := s.collectAlbum(ctx, logger, artist, album, includeLyrics)
		if err != nil {
			return nil, err
		}
		infos = append(infos, collected...)
	}

	logger.Info().Int("tracks", len(infos)).Msg("collected track info")
	return infos, nil
}

func (s *Service) collectAlbum(ctx context.Context, logger zerolog.Logger, artist, album string, includeLyrics bool) ([]TrackInfo, error) {
	doc, err := s.catalog.Search(ctx,
		spotify.FieldQuery{{Name: "artist", Value: artist}, {Name: "album", Value: album}},
		spotify.WithType(spotify.SearchTrack),
	)
	if err != nil {
		return nil, fmt.Errorf("searching tracks of %q: %w", album, err)
	}

	tracks, err := items(doc, "tracks")
	if err != nil {
		return nil, err
	}

	infos := make([]TrackInfo, 0, len(tracks))
	for i, item := range tracks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		track, err := decodeTrack(fmt.Sprintf("tracks.items[%d]", i), item)
		if err != nil {
			return nil, err
		}
		id := string(track.ID)

		featuresDoc, err := s.catalog.AudioFeatures(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetching audio features: %w", err)
		}
		features, err := decodeFeatures(id, featuresDoc)
		if err != nil {
			return nil, err
		}

		analysisDoc, err := s.catalog.AudioAnalysis(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetching audio analysis: %w", err)
		}
		analysis, err := decodeAnalysis(id, analysisDoc)
		if err != nil {
			return nil, err
		}

		info := newTrackInfo(album, track, features, analysis)

		if includeLyrics {
			result := s.lyrics.Fetch(ctx, artist, info.TrackName)
			info.Lyrics = result.Text()
			info.LyricsErr = result.Err
		}

		logger.Info().
			Int("track_number", info.TrackNumber).
			Str("track", info.TrackName).
			Msg("track")
		infos = append(infos, info)
	}
	return infos, nil
}
