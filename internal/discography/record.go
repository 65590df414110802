package discography

import (
	"fmt"

	libspotify "github.com/zmb3/spotify/v2"

	"github.com/justestif/spotilyfi/internal/spotify"
)

// TrackInfo is one denormalised record per track, merged from the track
// search result, the audio features and the audio analysis.
type TrackInfo struct {
	Artist      string `json:"artist"`
	ArtistID    string `json:"artist_id"`
	AlbumName   string `json:"album_name"`
	AlbumID     string `json:"album_id"`
	CoverArt    string `json:"cover_art"`
	ReleaseDate string `json:"release_date"`
	TotalTracks int    `json:"total_tracks"`
	TrackName   string `json:"track_name"`
	TrackID     string `json:"track_id"`
	TrackNumber int    `json:"track_number"`
	DiscNumber  int    `json:"disc_number"`
	DurationMs  int    `json:"duration_ms"`
	Popularity  int    `json:"popularity"`

	Danceability            float64 `json:"danceability"`
	Energy                  float64 `json:"energy"`
	Key                     int     `json:"key"`
	KeyConfidence           float64 `json:"key_confidence"`
	Loudness                float64 `json:"loudness"`
	Mode                    int     `json:"mode"`
	ModeConfidence          float64 `json:"mode_confidence"`
	Speechiness             float64 `json:"speechiness"`
	Acousticness            float64 `json:"acousticness"`
	Instrumentalness        float64 `json:"instrumentalness"`
	Liveness                float64 `json:"liveness"`
	Valence                 float64 `json:"valence"`
	Tempo                   float64 `json:"tempo"`
	TempoConfidence         float64 `json:"tempo_confidence"`
	TimeSignature           int     `json:"time_signature"`
	TimeSignatureConfidence float64 `json:"time_signature_confidence"`

	// Lyrics holds the scraped lyrics, or placeholder text when the lookup
	// failed. Empty unless lyrics were requested.
	Lyrics string `json:"lyrics,omitempty"`

	// LyricsErr is the lookup failure behind a placeholder.
	LyricsErr error `json:"-"`
}

// searchTrack is the part of a track search item the record is built from.
type searchTrack struct {
	ID          libspotify.ID `json:"id"`
	Name        string        `json:"name"`
	TrackNumber int           `json:"track_number"`
	DiscNumber  int           `json:"disc_number"`
	DurationMs  int           `json:"duration_ms"`
	Popularity  int           `json:"popularity"`
	Album       struct {
		ID          libspotify.ID             `json:"id"`
		Artists     []libspotify.SimpleArtist `json:"artists"`
		Images      []libspotify.Image        `json:"images"`
		ReleaseDate string                    `json:"release_date"`
		TotalTracks int                       `json:"total_tracks"`
	} `json:"album"`
}

var (
	trackKeys = []string{"id", "name", "track_number", "disc_number", "duration_ms", "popularity", "album"}
	albumKeys = []string{"id", "artists", "images", "release_date", "total_tracks"}

	featureKeys = []string{
		"danceability", "energy", "key", "loudness", "mode", "speechiness",
		"acousticness", "instrumentalness", "liveness", "valence", "tempo",
	}
	analysisKeys = []string{
		"key_confidence", "mode_confidence", "tempo_confidence",
		"time_signature", "time_signature_confidence",
	}
)

// items returns the objects at doc.<kind>.items.
func items(doc spotify.Document, kind string) ([]spotify.Document, error) {
	page, ok := doc.Object(kind)
	if !ok {
		return nil, &ShapeError{Path: kind, Reason: "missing object"}
	}
	raw, ok := page.Array("items")
	if !ok {
		return nil, &ShapeError{Path: kind + ".items", Reason: "missing array"}
	}

	out := make([]spotify.Document, len(raw))
	for i, v := range raw {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, &ShapeError{Path: fmt.Sprintf("%s.items[%d]", kind, i), Reason: "not an object"}
		}
		out[i] = spotify.Document(m)
	}
	return out, nil
}

// decodeTrack validates and decodes one track search item. path locates
// the item in error messages.
func decodeTrack(path string, item spotify.Document) (searchTrack, error) {
	var t searchTrack

	if missing := item.Missing(trackKeys...); len(missing) > 0 {
		return t, missingKeys(path, missing)
	}
	album, ok := item.Object("album")
	if !ok {
		return t, &ShapeError{Path: path + ".album", Reason: "not an object"}
	}
	if missing := album.Missing(albumKeys...); len(missing) > 0 {
		return t, missingKeys(path+".album", missing)
	}

	if err := item.Decode(&t); err != nil {
		return t, &ShapeError{Path: path, Reason: err.Error()}
	}
	if len(t.Album.Artists) == 0 {
		return t, &ShapeError{Path: path + ".album.artists", Reason: "empty"}
	}
	if len(t.Album.Images) == 0 {
		return t, &ShapeError{Path: path + ".album.images", Reason: "empty"}
	}
	return t, nil
}

// audioFeatures mirrors the audio-features object. Floats are decoded as
// float64 so values pass through unchanged.
type audioFeatures struct {
	Danceability     float64            `json:"danceability"`
	Energy           float64            `json:"energy"`
	Key              libspotify.Numeric `json:"key"`
	Loudness         float64            `json:"loudness"`
	Mode             libspotify.Numeric `json:"mode"`
	Speechiness      float64            `json:"speechiness"`
	Acousticness     float64            `json:"acousticness"`
	Instrumentalness float64            `json:"instrumentalness"`
	Liveness         float64            `json:"liveness"`
	Valence          float64            `json:"valence"`
	Tempo            float64            `json:"tempo"`
}

// audioAnalysis is the part of the audio-analysis object a record uses.
type audioAnalysis struct {
	Track struct {
		KeyConfidence           float64            `json:"key_confidence"`
		ModeConfidence          float64            `json:"mode_confidence"`
		TempoConfidence         float64            `json:"tempo_confidence"`
		TimeSignature           libspotify.Numeric `json:"time_signature"`
		TimeSignatureConfidence float64            `json:"time_signature_confidence"`
	} `json:"track"`
}

func decodeFeatures(trackID string, doc spotify.Document) (audioFeatures, error) {
	var f audioFeatures
	path := "audio-features/" + trackID

	if missing := doc.Missing(featureKeys...); len(missing) > 0 {
		return f, missingKeys(path, missing)
	}
	if err := doc.Decode(&f); err != nil {
		return f, &ShapeError{Path: path, Reason: err.Error()}
	}
	return f, nil
}

func decodeAnalysis(trackID string, doc spotify.Document) (audioAnalysis, error) {
	var a audioAnalysis
	path := "audio-analysis/" + trackID

	track, ok := doc.Object("track")
	if !ok {
		return a, &ShapeError{Path: path + ".track", Reason: "missing object"}
	}
	if missing := track.Missing(analysisKeys...); len(missing) > 0 {
		return a, missingKeys(path+".track", missing)
	}
	if err := doc.Decode(&a); err != nil {
		return a, &ShapeError{Path: path, Reason: err.Error()}
	}
	return a, nil
}

// newTrackInfo merges the three source documents into one record.
func newTrackInfo(albumName string, t searchTrack, f audioFeatures, a audioAnalysis) TrackInfo {
	artist := t.Album.Artists[0]

	return TrackInfo{
		Artist:      artist.Name,
		ArtistID:    string(artist.ID),
		AlbumName:   albumName,
		AlbumID:     string(t.Album.ID),
		CoverArt:    t.Album.Images[0].URL,
		ReleaseDate: t.Album.ReleaseDate,
		TotalTracks: t.Album.TotalTracks,
		TrackName:   t.Name,
		TrackID:     string(t.ID),
		TrackNumber: t.TrackNumber,
		DiscNumber:  t.DiscNumber,
		DurationMs:  t.DurationMs,
		Popularity:  t.Popularity,

		Danceability:            f.Danceability,
		Energy:                  f.Energy,
		Key:                     int(f.Key),
		KeyConfidence:           a.Track.KeyConfidence,
		Loudness:                f.Loudness,
		Mode:                    int(f.Mode),
		ModeConfidence:          a.Track.ModeConfidence,
		Speechiness:             f.Speechiness,
		Acousticness:            f.Acousticness,
		Instrumentalness:        f.Instrumentalness,
		Liveness:                f.Liveness,
		Valence:                 f.Valence,
		Tempo:                   f.Tempo,
		TempoConfidence:         a.Track.TempoConfidence,
		TimeSignature:           int(a.Track.TimeSignature),
		TimeSignatureConfidence: a.Track.TimeSignatureConfidence,
	}
}
