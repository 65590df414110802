package lyrics

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile("[^A-Za-z0-9]+")

// Normalize lower-cases artist and title and strips every character outside
// [A-Za-z0-9]. A leading "the" is then cut from the artist by length, so
// "The Who" becomes "who" and "Theory of a Deadman" becomes
// "oryofadeadman"; the page naming scheme is guessed, not documented.
func Normalize(artist, title string) (string, string) {
	artist = nonAlphanumeric.ReplaceAllString(strings.ToLower(artist), "")
	title = nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "")

	if strings.HasPrefix(artist, "the") {
		artist = artist[3:]
	}
	return artist, title
}

// PagePath returns the lyric page path for a track, relative to the
// lyrics base URL, e.g. "who/mygeneration.html".
func PagePath(artist, title string) string {
	artist, title = Normalize(artist, title)
	return artist + "/" + title + ".html"
}
