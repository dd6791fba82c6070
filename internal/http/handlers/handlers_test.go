package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/cfb-data-service/internal/app/analysis"
	"github.com/preston-bernstein/cfb-data-service/internal/app/games"
	"github.com/preston-bernstein/cfb-data-service/internal/app/teamstats"
	"github.com/preston-bernstein/cfb-data-service/internal/config"
	domaingames "github.com/preston-bernstein/cfb-data-service/internal/domain/games"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/teams"
	"github.com/preston-bernstein/cfb-data-service/internal/poller"
	"github.com/preston-bernstein/cfb-data-service/internal/providers"
	"github.com/preston-bernstein/cfb-data-service/internal/providers/cfbd"
	"github.com/preston-bernstein/cfb-data-service/internal/providers/fixture"
	"github.com/preston-bernstein/cfb-data-service/internal/testutil"
)

type gamesResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Error    string           `json:"error"`
	Data     []map[string]any `json:"data"`
	Metadata map[string]any   `json:"metadata"`
}

type failingTable struct{ err error }

func (f failingTable) Table(ctx context.Context, q teamstats.TableQuery) ([]teams.StatRow, error) {
	_ = ctx
	_ = q
	return nil, f.err
}

func newFixtureHandler() *Handler {
	provider := fixture.New()
	svc, _ := testutil.NewGamesService(provider)
	stats := teamstats.NewService(provider, nil, nil)
	h := NewHandler(Deps{
		Games:     svc,
		TeamStats: stats,
		Analysis:  analysis.NewService(provider, stats, nil, nil),
	})
	h.now = testutil.NowAt(testutil.FixtureNow)
	return h
}

func gamesRequest(year, rawQuery string) *http.Request {
	target := "/api/games/" + year
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("year", year)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHealth(t *testing.T) {
	h := newFixtureHandler()

	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := newFixtureHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	req = req.WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestReadyReflectsPollerStatus(t *testing.T) {
	status := poller.Status{}
	h := NewHandler(Deps{Status: func() poller.Status { return status }})

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	status = poller.Status{LastError: "cfbd down", ConsecutiveFailures: 3, LastSuccess: time.Now()}
	rr = testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var failed map[string]string
	testutil.DecodeJSON(t, rr, &failed)
	if failed["error"] != "cfbd down" {
		t.Fatalf("expected last error surfaced, got %q", failed["error"])
	}

	status = poller.Status{LastSuccess: time.Now(), LastGames: 2}
	rr = testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var ready map[string]any
	testutil.DecodeJSON(t, rr, &ready)
	if ready["status"] != "ready" || ready["games"] != float64(2) {
		t.Fatalf("unexpected ready body %+v", ready)
	}
}

func TestReadyWithoutPollerIsReady(t *testing.T) {
	h := NewHandler(Deps{})
	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestGamesReturnsEnvelope(t *testing.T) {
	h := newFixtureHandler()

	rr := testutil.ServeRequest(http.HandlerFunc(h.Games), gamesRequest("2025", "week=1&division=fbs"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp gamesResponse
	testutil.DecodeJSON(t, rr, &resp)
	if !resp.Success {
		t.Fatalf("expected success, got %+v", resp)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 fbs games, got %d", len(resp.Data))
	}
	if resp.Metadata["totalGames"] != float64(2) {
		t.Fatalf("expected totalGames 2, got %v", resp.Metadata["totalGames"])
	}
	if resp.Message != "Retrieved 2 games for week 1 of the 2025 season (FBS)" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	first := resp.Data[0]
	if first["lineProvider"] != "DraftKings" {
		t.Fatalf("expected preferred DraftKings line, got %v", first["lineProvider"])
	}
	if _, ok := first["homeRecord"].(map[string]any); !ok {
		t.Fatalf("expected homeRecord object, got %v", first["homeRecord"])
	}
}

func TestGamesDivisionAllIncludesFCS(t *testing.T) {
	h := newFixtureHandler()

	rr := testutil.ServeRequest(http.HandlerFunc(h.Games), gamesRequest("2025", "week=1&division=all"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp gamesResponse
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Data) != 3 {
		t.Fatalf("expected 3 games across divisions, got %d", len(resp.Data))
	}
}

func TestGamesRejectsBadInput(t *testing.T) {
	h := newFixtureHandler()

	cases := map[string]*http.Request{
		"year":     gamesRequest("twenty", ""),
		"week":     gamesRequest("2025", "week=first"),
		"division": gamesRequest("2025", "division=d2"),
		"date":     gamesRequest("2025", "date=08/30/2025"),
	}
	for name, req := range cases {
		rr := testutil.ServeRequest(http.HandlerFunc(h.Games), req)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, rr.Code)
		}
		var resp gamesResponse
		testutil.DecodeJSON(t, rr, &resp)
		if resp.Success || resp.Error == "" {
			t.Fatalf("%s: expected error envelope, got %+v", name, resp)
		}
	}
}

func TestGamesUpstreamOutageReturnsEmptyBoard(t *testing.T) {
	for name, provider := range map[string]testutil.ErrProvider{
		"status":  testutil.NewErrProvider(&providers.UpstreamError{Provider: "cfbd", StatusCode: http.StatusServiceUnavailable}),
		"breaker": testutil.UnavailableProvider(),
	} {
		svc, _ := testutil.NewGamesService(provider)
		h := NewHandler(Deps{Games: svc})

		rr := testutil.ServeRequest(http.HandlerFunc(h.Games), gamesRequest("2025", "week=1"))
		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp gamesResponse
		testutil.DecodeJSON(t, rr, &resp)
		if !resp.Success || resp.Data == nil || len(resp.Data) != 0 {
			t.Fatalf("%s: expected success with empty data, got %+v", name, resp)
		}
		if !strings.HasPrefix(resp.Message, "Retrieved 0 games for week 1") {
			t.Fatalf("%s: unexpected message %q", name, resp.Message)
		}
	}
}

func TestGamesFetchFailureReturnsEmptyData(t *testing.T) {
	svc, _ := testutil.NewGamesService(testutil.NewErrProvider(errors.New("cfbd unreachable")))
	h := NewHandler(Deps{Games: svc})

	rr := testutil.ServeRequest(http.HandlerFunc(h.Games), gamesRequest("2025", "week=1"))
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)

	var resp map[string]any
	testutil.DecodeJSON(t, rr, &resp)
	if resp["success"] != false {
		t.Fatalf("expected success false, got %v", resp["success"])
	}
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 0 {
		t.Fatalf("expected empty data array, got %v", resp["data"])
	}
	if !strings.Contains(resp["error"].(string), "cfbd unreachable") {
		t.Fatalf("expected upstream error in message, got %v", resp["error"])
	}
}

func TestGamesWithoutAPIKeyReturnsEmptyBoard(t *testing.T) {
	client := cfbd.NewClient(cfbd.Config{CFBDConfig: config.CFBDConfig{
		BaseURL: "http://127.0.0.1:1",
		APIKey:  config.PlaceholderAPIKey,
	}})
	svc, _ := testutil.NewGamesService(client)
	h := NewHandler(Deps{Games: svc})

	rr := testutil.ServeRequest(http.HandlerFunc(h.Games), gamesRequest("2025", "week=1"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp gamesResponse
	testutil.DecodeJSON(t, rr, &resp)
	if !resp.Success || len(resp.Data) != 0 {
		t.Fatalf("expected successful empty board, got %+v", resp)
	}
	if !strings.HasPrefix(resp.Message, "Retrieved 0 games") {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestGamesMessageVariants(t *testing.T) {
	cases := []struct {
		meta domaingames.Metadata
		want string
	}{
		{
			meta: domaingames.Metadata{TotalGames: 3, Season: 2025, Date: "2025-08-30", Division: "fbs"},
			want: "Retrieved 3 games on 2025-08-30 of the 2025 season (FBS)",
		},
		{
			meta: domaingames.Metadata{TotalGames: 1, Season: 2025, Division: "all", Cached: true},
			want: "Retrieved 1 games of the 2025 season (ALL) from the warmed board",
		},
	}
	for _, tc := range cases {
		if got := gamesMessage(tc.meta); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestServiceErrorsMapToBadRequest(t *testing.T) {
	svc, _ := testutil.NewGamesService(fixture.New())
	if _, err := svc.Games(context.Background(), games.Query{Season: 1700}); !errors.Is(err, games.ErrInvalidQuery) {
		t.Fatalf("expected invalid query error, got %v", err)
	}
	h := NewHandler(Deps{Games: svc})
	rr := testutil.ServeRequest(http.HandlerFunc(h.Games), gamesRequest("1700", ""))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestTeamStats(t *testing.T) {
	h := newFixtureHandler()

	rr := testutil.Serve(http.HandlerFunc(h.TeamStats), http.MethodGet, "/api/team-stats?year=2025&conference=SEC", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp gamesResponse
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 SEC teams, got %d", len(resp.Data))
	}
	if resp.Data[0]["team"] != "Texas" {
		t.Fatalf("expected Texas first by win pct, got %v", resp.Data[0]["team"])
	}
	if resp.Metadata["totalTeams"] != float64(2) || resp.Metadata["conference"] != "SEC" {
		t.Fatalf("unexpected metadata %+v", resp.Metadata)
	}
	if resp.Message != "Retrieved 2 teams for the 2025 season" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestTeamStatsDefaultsToCurrentSeason(t *testing.T) {
	h := newFixtureHandler()

	rr := testutil.Serve(http.HandlerFunc(h.TeamStats), http.MethodGet, "/api/team-stats", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp gamesResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Metadata["year"] != float64(2025) {
		t.Fatalf("expected current season 2025, got %v", resp.Metadata["year"])
	}
}

func TestTeamStatsErrors(t *testing.T) {
	h := NewHandler(Deps{TeamStats: failingTable{err: errors.New("records down")}, Season: 2025})

	rr := testutil.Serve(http.HandlerFunc(h.TeamStats), http.MethodGet, "/api/team-stats?year=abc", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	rr = testutil.Serve(http.HandlerFunc(h.TeamStats), http.MethodGet, "/api/team-stats", nil)
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	var resp map[string]any
	testutil.DecodeJSON(t, rr, &resp)
	if data, ok := resp["data"].([]any); !ok || len(data) != 0 {
		t.Fatalf("expected empty data array, got %v", resp["data"])
	}
}

type recordsDown struct{ *fixture.Provider }

func (recordsDown) FetchRecords(ctx context.Context, year int) ([]teams.SeasonRecord, error) {
	_ = ctx
	_ = year
	return nil, &providers.UpstreamError{Provider: "cfbd", StatusCode: http.StatusServiceUnavailable}
}

func TestTeamStatsUpstreamOutageReturnsEmptyData(t *testing.T) {
	provider := recordsDown{fixture.New()}
	h := NewHandler(Deps{TeamStats: teamstats.NewService(provider, nil, nil), Season: 2025})

	rr := testutil.Serve(http.HandlerFunc(h.TeamStats), http.MethodGet, "/api/team-stats?year=2025", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp gamesResponse
	testutil.DecodeJSON(t, rr, &resp)
	if !resp.Success || resp.Data == nil || len(resp.Data) != 0 {
		t.Fatalf("expected success with empty data, got %+v", resp)
	}
	if resp.Message != "Retrieved 0 teams for the 2025 season" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestAnalysisRequiresBothTeams(t *testing.T) {
	h := newFixtureHandler()

	for _, path := range []string{
		"/api/llm-analysis?homeTeam=Michigan",
		"/api/llm-analysis?awayTeam=Texas",
		"/api/llm-analysis?homeTeam=Michigan&awayTeam=Texas&year=x",
	} {
		rr := testutil.Serve(http.HandlerFunc(h.Analysis), http.MethodGet, path, nil)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, rr.Code)
		}
		var resp AnalysisEnvelope
		testutil.DecodeJSON(t, rr, &resp)
		if resp.Success || resp.Error == "" {
			t.Fatalf("%s: expected error envelope, got %+v", path, resp)
		}
	}
}

func TestAnalysisReturnsReport(t *testing.T) {
	h := newFixtureHandler()

	rr := testutil.Serve(http.HandlerFunc(h.Analysis), http.MethodGet,
		"/api/llm-analysis?homeTeam=Michigan&awayTeam=Texas&year=2025", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Success  bool           `json:"success"`
		Matchup  map[string]any `json:"matchup"`
		Analysis map[string]any `json:"analysis"`
		Context  string         `json:"context"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if !resp.Success || resp.Matchup["homeTeam"] != "Michigan" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Analysis == nil {
		t.Fatalf("expected analysis body")
	}
	if resp.Context != "" {
		t.Fatalf("expected no narrative on llm-analysis, got %q", resp.Context)
	}
}

func TestAnalysisContextIncludesNarrative(t *testing.T) {
	h := newFixtureHandler()

	rr := testutil.Serve(http.HandlerFunc(h.AnalysisContext), http.MethodGet,
		"/api/llm-context?homeTeam=Michigan&awayTeam=Texas&year=2025&week=1", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp AnalysisEnvelope
	testutil.DecodeJSON(t, rr, &resp)
	if !strings.Contains(resp.Context, "Michigan") || !strings.Contains(resp.Context, "Texas") {
		t.Fatalf("expected narrative naming both teams, got %q", resp.Context)
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := NewHandler(Deps{})

	rr := testutil.Serve(http.HandlerFunc(h.NotFound), http.MethodGet, "/nope", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	rr = testutil.Serve(http.HandlerFunc(h.MethodNotAllowed), http.MethodPost, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)

	rr = testutil.Serve(http.HandlerFunc(h.Preflight), http.MethodOptions, "/api/games/2025", nil)
	testutil.AssertStatus(t, rr, http.StatusNoContent)
}

func BenchmarkGames(b *testing.B) {
	h := newFixtureHandler()
	req := gamesRequest("2025", "week=1")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		h.Games(rr, req)
	}
}
