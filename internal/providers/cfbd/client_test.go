package cfbd

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/cfb-data-service/internal/config"
	"github.com/preston-bernstein/cfb-data-service/internal/providers"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(key string, rt roundTripperFunc) *Client {
	return NewClient(Config{
		CFBDConfig: config.CFBDConfig{BaseURL: "http://example.com/", APIKey: key},
		HTTPClient: &http.Client{Transport: rt},
	})
}

func TestFetchGamesHitsAPIAndMapsResponse(t *testing.T) {
	var captured *http.Request
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		return jsonResponse(http.StatusOK, `[
			{
				"id": 401628374,
				"season": 2024,
				"week": 3,
				"seasonType": "regular",
				"startDate": "2024-09-14T23:30:00.000Z",
				"completed": true,
				"neutralSite": false,
				"conferenceGame": true,
				"venueId": 3958,
				"venue": "Kyle Field",
				"homeId": 245,
				"homeTeam": "Texas A&M",
				"homeConference": "SEC",
				"homeClassification": "FBS",
				"homePoints": 27,
				"awayId": 344,
				"awayTeam": "Florida",
				"awayConference": "SEC",
				"awayClassification": "fbs",
				"awayPoints": 33
			}
		]`), nil
	})

	client := newTestClient("secret", rt)
	games, err := client.FetchGames(context.Background(), providers.GameQuery{Year: 2024, Week: 3, SeasonType: providers.SeasonRegular})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if captured.URL.Path != "/games" {
		t.Fatalf("expected /games path, got %s", captured.URL.Path)
	}
	if got := captured.Header.Get("Authorization"); got != "Bearer secret" {
		t.Fatalf("expected bearer header, got %q", got)
	}
	if got := captured.Header.Get("Accept"); got != "application/json" {
		t.Fatalf("expected json accept header, got %q", got)
	}
	q := captured.URL.Query()
	if q.Get("year") != "2024" || q.Get("week") != "3" || q.Get("seasonType") != "regular" {
		t.Fatalf("unexpected query %s", captured.URL.RawQuery)
	}
	if q.Has("team") {
		t.Fatalf("expected no team filter, got %s", captured.URL.RawQuery)
	}

	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	g := games[0]
	if g.ID != 401628374 || g.VenueID != 3958 || g.Venue != "Kyle Field" {
		t.Fatalf("unexpected identifiers %+v", g)
	}
	if g.HomeClassification != "fbs" {
		t.Fatalf("expected lowercased classification, got %q", g.HomeClassification)
	}
	if pts, ok := g.AwayPoints.Get(); !ok || pts != 33 {
		t.Fatalf("unexpected away points %+v", g.AwayPoints)
	}
	if !g.StartDate.Equal(time.Date(2024, 9, 14, 23, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %s", g.StartDate)
	}
}

func TestMissingKeySkipsNetwork(t *testing.T) {
	for _, key := range []string{"", "  ", config.PlaceholderAPIKey} {
		calls := 0
		client := newTestClient(key, func(*http.Request) (*http.Response, error) {
			calls++
			return jsonResponse(http.StatusOK, `[]`), nil
		})

		if client.Enabled() {
			t.Fatalf("expected client disabled for key %q", key)
		}
		games, err := client.FetchGames(context.Background(), providers.GameQuery{Year: 2024})
		if err != nil || games == nil || len(games) != 0 {
			t.Fatalf("expected empty non-nil games, got %+v %v", games, err)
		}
		records, err := client.FetchRecords(context.Background(), 2024)
		if err != nil || len(records) != 0 {
			t.Fatalf("expected empty records, got %+v %v", records, err)
		}
		if calls != 0 {
			t.Fatalf("expected no upstream calls for key %q, got %d", key, calls)
		}
	}
}

func TestFetchHandlesNon2xx(t *testing.T) {
	client := newTestClient("secret", func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, "boom"), nil
	})

	_, err := client.FetchLines(context.Background(), providers.LineQuery{Year: 2024})
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected status error, got %v", err)
	}
	if !providers.IsUpstreamFailure(err) {
		t.Fatalf("expected upstream failure, got %T", err)
	}
}

func TestFetchHandlesDecodeError(t *testing.T) {
	client := newTestClient("secret", func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "{bad json"), nil
	})

	_, err := client.FetchVenues(context.Background())
	if err == nil {
		t.Fatal("expected decode error")
	}
	if providers.IsUpstreamFailure(err) {
		t.Fatalf("decode error should not read as an outage: %v", err)
	}
}

func TestFetchMapsRateLimit(t *testing.T) {
	client := newTestClient("secret", func(*http.Request) (*http.Response, error) {
		resp := jsonResponse(http.StatusTooManyRequests, "slow down")
		resp.Header.Set("Retry-After", "7")
		return resp, nil
	})

	_, err := client.FetchRatings(context.Background(), 2024)
	rl, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rl.RetryAfter != 7*time.Second || rl.StatusCode != http.StatusTooManyRequests || rl.Provider != "cfbd" {
		t.Fatalf("unexpected rate limit error %+v", rl)
	}
}

func TestFetchPropagatesTransportError(t *testing.T) {
	client := newTestClient("secret", func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: refused")
	})

	_, err := client.FetchCalendar(context.Background(), 2024)
	if err == nil || !strings.Contains(err.Error(), "refused") {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !providers.IsUpstreamFailure(err) {
		t.Fatalf("expected upstream failure, got %T", err)
	}
}

func TestFetchLinesMapsProviders(t *testing.T) {
	client := newTestClient("secret", func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/lines" || req.URL.Query().Get("team") != "Texas" {
			t.Fatalf("unexpected request %s", req.URL)
		}
		return jsonResponse(http.StatusOK, `[
			{
				"id": 7,
				"season": 2024,
				"week": 1,
				"homeTeam": "Texas",
				"awayTeam": "Colorado State",
				"homeScore": null,
				"lines": [
					{"provider": "FanDuel", "spread": -31.5, "formattedSpread": "Texas -31.5", "overUnder": 57.5, "homeMoneyline": null},
					{"provider": "DraftKings", "spread": -31, "overUnder": 58, "homeMoneyline": -10000, "awayMoneyline": 2500}
				]
			}
		]`), nil
	})

	got, err := client.FetchLines(context.Background(), providers.LineQuery{Year: 2024, Team: " Texas "})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(got) != 1 || len(got[0].Lines) != 2 {
		t.Fatalf("unexpected lines %+v", got)
	}
	fd := got[0].Lines[0]
	if spread, _ := fd.Spread.Get(); spread != -31.5 || fd.HomeMoneyline.Available() {
		t.Fatalf("unexpected FanDuel line %+v", fd)
	}
	if got[0].HomeScore.Available() {
		t.Fatalf("expected null score unavailable")
	}
}

func TestFetchSeasonStatsAndRatings(t *testing.T) {
	client := newTestClient("secret", func(req *http.Request) (*http.Response, error) {
		switch req.URL.Path {
		case "/stats/season":
			return jsonResponse(http.StatusOK, `[{"season":2024,"team":"Oregon","conference":"Big Ten","statName":"turnovers","statValue":11}]`), nil
		case "/ratings/sp":
			return jsonResponse(http.StatusOK, `[
				{"year":2024,"team":"Oregon","conference":"Big Ten","rating":27.4,"ranking":3,"sos":0.6,"offense":{"rating":40.1},"defense":{"rating":12.7},"specialTeams":{"rating":0.3}},
				{"year":2024,"team":"nationalAverages","rating":null}
			]`), nil
		}
		t.Fatalf("unexpected path %s", req.URL.Path)
		return nil, nil
	})

	stats, err := client.FetchSeasonStats(context.Background(), 2024)
	if err != nil || len(stats) != 1 || stats[0].StatValue != 11 {
		t.Fatalf("unexpected stats %+v %v", stats, err)
	}
	ratings, err := client.FetchRatings(context.Background(), 2024)
	if err != nil || len(ratings) != 1 {
		t.Fatalf("expected averages row dropped, got %+v %v", ratings, err)
	}
	if ratings[0].Offense != 40.1 || ratings[0].Ranking != 3 {
		t.Fatalf("unexpected rating %+v", ratings[0])
	}
}

type memoryCache struct {
	data map[string][]byte
	sets int
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := m.data[key]
	return b, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, body []byte) error {
	m.data[key] = body
	m.sets++
	return nil
}

func TestCacheServesRepeatRequests(t *testing.T) {
	calls := 0
	mc := &memoryCache{data: map[string][]byte{}}
	client := NewClient(Config{
		CFBDConfig: config.CFBDConfig{BaseURL: "http://example.com", APIKey: "secret"},
		HTTPClient: &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			calls++
			return jsonResponse(http.StatusOK, `[{"id":1,"name":"Kyle Field","city":"College Station","state":"TX","latitude":30.61,"longitude":-96.34}]`), nil
		})},
		Cache: mc,
	})

	for i := 0; i < 2; i++ {
		venues, err := client.FetchVenues(context.Background())
		if err != nil || len(venues) != 1 || venues[0].City != "College Station" {
			t.Fatalf("unexpected venues %+v %v", venues, err)
		}
	}
	if calls != 1 || mc.sets != 1 {
		t.Fatalf("expected a single upstream call, got %d calls and %d cache writes", calls, mc.sets)
	}
	if _, ok := mc.data["/venues"]; !ok {
		t.Fatalf("expected cache keyed by path, got %v", mc.data)
	}
}
