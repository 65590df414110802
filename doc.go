// Package spotilyfi is a small client for the Spotify Web API catalog.
//
// It authenticates with the client-credentials flow, fetches catalog
// resources and search results as loosely typed documents, and aggregates
// an artist's discography into flat per-track records combining track
// metadata, audio features and audio analysis. Records can optionally carry
// lyrics scraped from azlyrics.com.
//
// Resource requests are fail-soft: an HTTP failure yields an empty Document
// instead of an error. Only authentication failures, invalid arguments,
// context cancellation and malformed documents met during aggregation are
// reported as errors.
package spotilyfi
