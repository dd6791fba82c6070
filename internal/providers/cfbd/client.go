package cfbd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/cfb-data-service/internal/cache"
	"github.com/preston-bernstein/cfb-data-service/internal/config"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/games"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/lines"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/teams"
	"github.com/preston-bernstein/cfb-data-service/internal/logging"
	"github.com/preston-bernstein/cfb-data-service/internal/providers"
)

// Config controls how the CFBD client reaches the upstream API.
type Config struct {
	config.CFBDConfig
	HTTPClient *http.Client
	Cache      cache.BodyCache
	Logger     *slog.Logger
}

// Client fetches college football data from CFBD and maps it to domain models.
// With no usable API key every fetch returns an empty result without touching the network.
type Client struct {
	baseURL    string
	apiKey     string
	enabled    bool
	httpClient httpDoer
	cache      cache.BodyCache
	logger     *slog.Logger
	now        func() time.Time
}

var _ providers.DataProvider = (*Client)(nil)

// NewClient constructs a CFBD client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		enabled:    cfg.Enabled(),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		cache:      cfg.Cache,
		logger:     cfg.Logger,
		now:        time.Now,
	}
}

// Enabled reports whether the client will call upstream.
func (c *Client) Enabled() bool {
	return c.enabled
}

// FetchGames retrieves fixtures for a season, optionally narrowed to a week or team.
func (c *Client) FetchGames(ctx context.Context, q providers.GameQuery) ([]games.Fixture, error) {
	var payload []gameResponse
	if err := c.get(ctx, pathGames, seasonParams(q.Year, q.Week, q.SeasonType, q.Team), &payload); err != nil {
		return nil, err
	}
	out := make([]games.Fixture, 0, len(payload))
	for _, g := range payload {
		out = append(out, mapGame(g))
	}
	return out, nil
}

// FetchRecords retrieves every team's season record.
func (c *Client) FetchRecords(ctx context.Context, year int) ([]teams.SeasonRecord, error) {
	var payload []recordResponse
	if err := c.get(ctx, pathRecords, yearParams(year), &payload); err != nil {
		return nil, err
	}
	out := make([]teams.SeasonRecord, 0, len(payload))
	for _, r := range payload {
		out = append(out, mapRecord(r))
	}
	return out, nil
}

// FetchLines retrieves betting lines grouped by game.
func (c *Client) FetchLines(ctx context.Context, q providers.LineQuery) ([]lines.GameLines, error) {
	var payload []bettingGameResponse
	if err := c.get(ctx, pathLines, seasonParams(q.Year, q.Week, q.SeasonType, q.Team), &payload); err != nil {
		return nil, err
	}
	out := make([]lines.GameLines, 0, len(payload))
	for _, g := range payload {
		out = append(out, mapGameLines(g))
	}
	return out, nil
}

// FetchRatings retrieves SP+ ratings for a season.
func (c *Client) FetchRatings(ctx context.Context, year int) ([]teams.Rating, error) {
	var payload []spRatingResponse
	if err := c.get(ctx, pathRatingsSP, yearParams(year), &payload); err != nil {
		return nil, err
	}
	out := make([]teams.Rating, 0, len(payload))
	for _, r := range payload {
		if rating, ok := mapRating(r); ok {
			out = append(out, rating)
		}
	}
	return out, nil
}

// FetchVenues retrieves every known venue.
func (c *Client) FetchVenues(ctx context.Context) ([]games.Venue, error) {
	var payload []venueResponse
	if err := c.get(ctx, pathVenues, nil, &payload); err != nil {
		return nil, err
	}
	out := make([]games.Venue, 0, len(payload))
	for _, v := range payload {
		out = append(out, mapVenue(v))
	}
	return out, nil
}

// FetchCalendar retrieves the week calendar for a season.
func (c *Client) FetchCalendar(ctx context.Context, year int) ([]games.CalendarWeek, error) {
	var payload []calendarResponse
	if err := c.get(ctx, pathCalendar, yearParams(year), &payload); err != nil {
		return nil, err
	}
	out := make([]games.CalendarWeek, 0, len(payload))
	for _, w := range payload {
		out = append(out, mapCalendar(w))
	}
	return out, nil
}

// FetchSeasonStats retrieves named season aggregates for every team.
func (c *Client) FetchSeasonStats(ctx context.Context, year int) ([]teams.SeasonStat, error) {
	var payload []seasonStatResponse
	if err := c.get(ctx, pathSeasonStats, yearParams(year), &payload); err != nil {
		return nil, err
	}
	out := make([]teams.SeasonStat, 0, len(payload))
	for _, s := range payload {
		out = append(out, mapSeasonStat(s))
	}
	return out, nil
}

// get decodes path into dest. Disabled clients leave dest untouched and return nil.
func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	if !c.enabled {
		logging.Debug(c.logger, "cfbd api key not configured, skipping fetch", logging.FieldPath, path)
		return nil
	}

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	cacheKey := strings.TrimPrefix(target, c.baseURL)

	if body, ok := c.cached(ctx, cacheKey); ok {
		if err := json.Unmarshal(body, dest); err == nil {
			return nil
		}
	}

	body, err := c.fetch(ctx, target)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("cfbd: decode %s: %w", path, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, body); err != nil {
			logging.Warn(c.logger, "cfbd cache write failed", logging.FieldPath, path, "error", err)
		}
	}
	return nil
}

func (c *Client) cached(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		logging.Warn(c.logger, "cfbd cache read failed", "key", key, "error", err)
		return nil, false
	}
	return body, ok
}

func (c *Client) fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &providers.UpstreamError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-CallLimit-Remaining"),
			Message:    "cfbd: rate limited: " + strings.TrimSpace(string(body)),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &providers.UpstreamError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		return nil, fmt.Errorf("cfbd: read body: %w", err)
	}
	return buf.Bytes(), nil
}

func yearParams(year int) url.Values {
	q := url.Values{}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	return q
}

func seasonParams(year, week int, seasonType, team string) url.Values {
	q := yearParams(year)
	if week > 0 {
		q.Set("week", strconv.Itoa(week))
	}
	if seasonType != "" {
		q.Set("seasonType", seasonType)
	}
	if team = strings.TrimSpace(team); team != "" {
		q.Set("team", team)
	}
	return q
}
