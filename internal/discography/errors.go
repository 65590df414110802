package discography

import (
	"errors"
	"fmt"
)

// ErrNoLyricsSource is returned when lyrics are requested from a Service
// built without a LyricsFetcher.
var ErrNoLyricsSource = errors.New("no lyrics source configured")

// ShapeError reports an upstream document that lacks the structure the
// aggregation relies on.
type ShapeError struct {
	// Path locates the offending value, e.g. "tracks.items[2].album.images".
	Path   string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected document shape at %s: %s", e.Path, e.Reason)
}

func missingKeys(path string, keys []string) *ShapeError {
	return &ShapeError{Path: path, Reason: fmt.Sprintf("missing %v", keys)}
}
