package lyrics

// placeholderPrefix starts the text reported in place of lyrics that could
// not be fetched.
const placeholderPrefix = "Exception occurred \n"

// Result is the outcome of a lyric lookup.
type Result struct {
	Artist string
	Title  string
	URL    string

	// Lyrics is the raw HTML fragment found between the page markers.
	Lyrics string

	// Err is non-nil if the lookup failed.
	Err error
}

// OK reports whether lyrics were found.
func (r Result) OK() bool {
	return r.Err == nil
}

// Text returns the lyrics, or a placeholder describing the failure.
func (r Result) Text() string {
	if r.Err != nil {
		return placeholderPrefix + r.Err.Error()
	}
	return r.Lyrics
}
