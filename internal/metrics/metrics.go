package metrics

import (
	"sync"
	"time"
)

type upstreamStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type boardStats struct {
	builds         int
	failures       int
	lastGames      int
	unmatchedTeams int
	lastDuration   time.Duration
}

// Recorder captures in-memory metrics about upstream calls and board builds, mirroring them
// to OpenTelemetry instruments when configured. Upstream stats are keyed by "provider.operation"
// (for example "cfbd.games").
type Recorder struct {
	mu     sync.Mutex
	stats  map[string]*upstreamStats
	boards boardStats
	otel   *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*upstreamStats),
		otel:  otel,
	}
}

// Key joins a provider and operation into the recorder's stats key.
func Key(provider, operation string) string {
	if operation == "" {
		return provider
	}
	return provider + "." + operation
}

// RecordProviderAttempt increments counters for an upstream call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(key string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(key)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(key, duration, err)
	}
}

// RecordRateLimit tracks that an upstream response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(key string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(key)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(key, retryAfter)
	}
}

// ProviderCalls returns the total attempts recorded for a key.
func (r *Recorder) ProviderCalls(key string) int {
	return r.Snapshot(key).Calls
}

// ProviderErrors returns the total failed attempts recorded for a key.
func (r *Recorder) ProviderErrors(key string) int {
	return r.Snapshot(key).Errors
}

// RateLimitHits returns the number of rate limit events seen for a key.
func (r *Recorder) RateLimitHits(key string) int {
	return r.Snapshot(key).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a key.
func (r *Recorder) LastRetryAfter(key string) time.Duration {
	return r.Snapshot(key).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a key.
func (r *Recorder) LastCallLatency(key string) time.Duration {
	return r.Snapshot(key).LastCallLatency
}

// Snapshot is a copy of the current stats for one upstream key.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(key string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[key]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// BoardSnapshot summarizes game board builds.
type BoardSnapshot struct {
	Builds         int
	Failures       int
	LastGames      int
	UnmatchedTeams int
	LastDuration   time.Duration
}

// RecordBoardBuild tracks one aggregation pass over a week of games.
func (r *Recorder) RecordBoardBuild(division string, games, unmatched int, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.boards.builds++
	r.boards.lastDuration = duration
	if err != nil {
		r.boards.failures++
	} else {
		r.boards.lastGames = games
		r.boards.unmatchedTeams += unmatched
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordBoardBuild(division, games, unmatched, duration, err)
	}
}

// Boards returns a copy of the board build stats.
func (r *Recorder) Boards() BoardSnapshot {
	if r == nil {
		return BoardSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return BoardSnapshot{
		Builds:         r.boards.builds,
		Failures:       r.boards.failures,
		LastGames:      r.boards.lastGames,
		UnmatchedTeams: r.boards.unmatchedTeams,
		LastDuration:   r.boards.lastDuration,
	}
}

// RecordBreakerState tracks circuit breaker transitions for an upstream.
func (r *Recorder) RecordBreakerState(name, state string) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordBreakerState(name, state)
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks board warmer cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// ensureStats expects r.mu to be held.
func (r *Recorder) ensureStats(key string) *upstreamStats {
	stats, ok := r.stats[key]
	if !ok {
		stats = &upstreamStats{}
		r.stats[key] = stats
	}
	return stats
}
