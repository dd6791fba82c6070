package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestRateLimitPacesCalls(t *testing.T) {
	fp := newFlakey(0, nil)
	limiter := rate.NewLimiter(rate.Every(20*time.Millisecond), 1)
	p := Guard(fp, RateLimit(limiter, "cfbd", nil))

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := p.FetchGames(context.Background(), GameQuery{Year: 2025}); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 35*time.Millisecond {
		t.Fatalf("expected pacing across calls, finished in %s", elapsed)
	}
}

func TestRateLimitSharesBucketAcrossOperations(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	p := Guard(newFlakey(0, nil), RateLimit(limiter, "cfbd", nil))

	if _, err := p.FetchRecords(context.Background(), 2025); err != nil {
		t.Fatalf("first call should use the burst token: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := p.FetchLines(ctx, LineQuery{Year: 2025}); err == nil {
		t.Fatalf("expected second operation to wait on the shared bucket and fail")
	}
}

func TestRateLimitHonorsCancelledContext(t *testing.T) {
	p := Guard(newFlakey(0, nil), RateLimit(NewLimiter(1), "cfbd", nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.FetchVenues(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled error, got %v", err)
	}
}

func TestNilLimiterPassesThrough(t *testing.T) {
	fp := newFlakey(0, nil)
	p := Guard(fp, RateLimit(nil, "cfbd", nil))
	if _, err := p.FetchCalendar(context.Background(), 2025); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestNewLimiter(t *testing.T) {
	if l := NewLimiter(0); l.Limit() != rate.Inf {
		t.Fatalf("expected unlimited bucket, got %v", l.Limit())
	}
	if l := NewLimiter(0.5); l.Burst() != 1 || l.Limit() != rate.Limit(0.5) {
		t.Fatalf("expected fractional rate with burst 1, got %v/%d", l.Limit(), l.Burst())
	}
	if l := NewLimiter(10); l.Burst() != 10 {
		t.Fatalf("expected burst 10, got %d", l.Burst())
	}
}
