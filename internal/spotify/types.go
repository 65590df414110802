package spotify

import "encoding/json"

// Document is a decoded API response. Its shape is not validated here.
type Document map[string]any

// Empty reports whether the document has no fields.
func (d Document) Empty() bool {
	return len(d) == 0
}

// Object returns the nested object stored at key.
func (d Document) Object(key string) (Document, bool) {
	v, ok := d[key].(map[string]any)
	if !ok {
		return nil, false
	}
	return Document(v), true
}

// Array returns the array stored at key.
func (d Document) Array(key string) ([]any, bool) {
	v, ok := d[key].([]any)
	return v, ok
}

// String returns the string stored at key.
func (d Document) String(key string) (string, bool) {
	v, ok := d[key].(string)
	return v, ok
}

// Missing returns the keys from keys that are absent in d, in order.
func (d Document) Missing(keys ...string) []string {
	var missing []string
	for _, k := range keys {
		if _, ok := d[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// Decode re-encodes the document and decodes it into v.
func (d Document) Decode(v any) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// ResourceKind is the catalog object category that selects an endpoint path.
type ResourceKind string

// Resource kinds served by the catalog API.
const (
	KindAlbums        ResourceKind = "albums"
	KindArtists       ResourceKind = "artists"
	KindAudioFeatures ResourceKind = "audio-features"
	KindAudioAnalysis ResourceKind = "audio-analysis"
	KindPlaylists     ResourceKind = "playlists"
	KindTracks        ResourceKind = "tracks"
	KindShows         ResourceKind = "shows"
	KindEpisodes      ResourceKind = "episodes"
)

// SearchType restricts the object types returned by Search.
type SearchType string

// Search types accepted by the search endpoint.
const (
	SearchAlbum    SearchType = "album"
	SearchArtist   SearchType = "artist"
	SearchPlaylist SearchType = "playlist"
	SearchTrack    SearchType = "track"
	SearchShow     SearchType = "show"
	SearchEpisode  SearchType = "episode"
)
