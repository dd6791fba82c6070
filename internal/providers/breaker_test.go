package providers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestBreakerOpensAfterFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	fp := newFlakey(100, nil)
	p := Guard(fp, Breaker(BreakerConfig{Provider: "cfbd", MinRequests: 3, FailureRatio: 0.6, OpenTimeout: time.Hour, Logger: logger}))

	for i := 0; i < 3; i++ {
		if _, err := p.FetchGames(context.Background(), GameQuery{}); err == nil || errors.Is(err, ErrProviderUnavailable) {
			t.Fatalf("expected upstream error on call %d, got %v", i, err)
		}
	}

	_, err := p.FetchRecords(context.Background(), 2025)
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected open breaker to fail fast, got %v", err)
	}
	if fp.calls[OpRecords] != 0 {
		t.Fatalf("expected no upstream call while open")
	}
	if !strings.Contains(buf.String(), "upstream breaker state change") {
		t.Fatalf("expected state change log, got %q", buf.String())
	}
}

func TestBreakerIgnoresCancellation(t *testing.T) {
	fp := newFlakey(100, context.Canceled)
	p := Guard(fp, Breaker(BreakerConfig{Provider: "cfbd", MinRequests: 1, OpenTimeout: time.Hour}))

	for i := 0; i < 5; i++ {
		_, err := p.FetchVenues(context.Background())
		if errors.Is(err, ErrProviderUnavailable) {
			t.Fatalf("expected cancellations not to trip the breaker")
		}
	}
	if fp.calls[OpVenues] != 5 {
		t.Fatalf("expected every call to reach upstream, got %d", fp.calls[OpVenues])
	}
}

func TestBreakerPassesSuccess(t *testing.T) {
	p := Guard(newFlakey(0, nil), Breaker(BreakerConfig{Provider: "cfbd"}))
	got, err := p.FetchRatings(context.Background(), 2025)
	if err != nil || len(got) != 1 {
		t.Fatalf("unexpected ratings %+v %v", got, err)
	}
}
