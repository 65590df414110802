package spotilyfi

import (
	"github.com/justestif/spotilyfi/internal/auth"
	"github.com/justestif/spotilyfi/internal/config"
	"github.com/justestif/spotilyfi/internal/discography"
	"github.com/justestif/spotilyfi/internal/lyrics"
	"github.com/justestif/spotilyfi/internal/spotify"
)

type (
	// Document is a decoded JSON object returned by the API. A failed
	// request yields an empty, non-nil Document.
	Document = spotify.Document

	// Query is a search query, either a TextQuery or a FieldQuery.
	Query      = spotify.Query
	TextQuery  = spotify.TextQuery
	FieldQuery = spotify.FieldQuery
	Field      = spotify.Field

	SearchOption = spotify.SearchOption
	SearchType   = spotify.SearchType
	ResourceKind = spotify.ResourceKind

	// TrackInfo is one aggregated record per track.
	TrackInfo = discography.TrackInfo

	// LyricsResult is the outcome of a lyric lookup.
	LyricsResult = lyrics.Result

	Config = config.Config

	AuthenticationError = auth.AuthenticationError
	ValidationError     = spotify.ValidationError
	ShapeError          = discography.ShapeError
)

var (
	ErrMissingCredentials = auth.ErrMissingCredentials
	ErrTokenExpired       = auth.ErrTokenExpired
	ErrMissingQuery       = spotify.ErrMissingQuery
	ErrNoLyricsSource     = discography.ErrNoLyricsSource
	ErrMarkersNotFound    = lyrics.ErrMarkersNotFound
)

// Search types.
const (
	SearchAlbum    = spotify.SearchAlbum
	SearchArtist   = spotify.SearchArtist
	SearchPlaylist = spotify.SearchPlaylist
	SearchTrack    = spotify.SearchTrack
	SearchShow     = spotify.SearchShow
	SearchEpisode  = spotify.SearchEpisode
)

// Resource kinds.
const (
	KindAlbums        = spotify.KindAlbums
	KindArtists       = spotify.KindArtists
	KindAudioFeatures = spotify.KindAudioFeatures
	KindAudioAnalysis = spotify.KindAudioAnalysis
	KindPlaylists     = spotify.KindPlaylists
	KindTracks        = spotify.KindTracks
	KindShows         = spotify.KindShows
	KindEpisodes      = spotify.KindEpisodes
)

// WithType sets the object type a search returns. The default is
// SearchArtist.
func WithType(t SearchType) SearchOption {
	return spotify.WithType(t)
}

// WithOperator appends a single " OR text" or " NOT text" clause to a
// search query. Other operators are ignored.
func WithOperator(op, text string) SearchOption {
	return spotify.WithOperator(op, text)
}

// BuildQuery renders the q parameter a search would send.
func BuildQuery(q Query, opts ...SearchOption) (string, error) {
	return spotify.BuildQuery(q, opts...)
}

// LoadConfig reads configuration from spotilyfi.yaml in the given
// directories and from the environment. See NewFromConfig.
func LoadConfig(paths ...string) (*Config, error) {
	return config.Load(paths...)
}
