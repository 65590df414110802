// Package metrics exposes Prometheus collectors for catalog client activity.
//
// A nil *Metrics is valid and records nothing, so components can be built
// without a registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "spotilyfi"

// Request outcomes recorded for catalog and lyric lookups.
const (
	OutcomeOK     = "ok"
	OutcomeEmpty  = "empty"
	OutcomeFailed = "failed"
)

// Metrics groups the collectors used by the client.
type Metrics struct {
	TokenRefreshes *prometheus.CounterVec
	Requests       *prometheus.CounterVec
	LyricsLookups  *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
// A nil reg leaves the collectors unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TokenRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_refreshes_total",
			Help:      "Client credentials token requests by result.",
		}, []string{"result"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_requests_total",
			Help:      "Catalog API requests by resource kind and outcome.",
		}, []string{"kind", "outcome"}),
		LyricsLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lyrics_lookups_total",
			Help:      "Lyric page lookups by outcome.",
		}, []string{"outcome"}),
	}

	if reg != nil {
		reg.MustRegister(m.TokenRefreshes, m.Requests, m.LyricsLookups)
	}
	return m
}

// TokenRefreshed counts one token request. ok reports whether it succeeded.
func (m *Metrics) TokenRefreshed(ok bool) {
	if m == nil {
		return
	}
	result := OutcomeOK
	if !ok {
		result = OutcomeFailed
	}
	m.TokenRefreshes.WithLabelValues(result).Inc()
}

// Request counts one catalog request for the given resource kind.
func (m *Metrics) Request(kind, outcome string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(kind, outcome).Inc()
}

// LyricsLookup counts one lyric page lookup.
func (m *Metrics) LyricsLookup(outcome string) {
	if m == nil {
		return
	}
	m.LyricsLookups.WithLabelValues(outcome).Inc()
}
