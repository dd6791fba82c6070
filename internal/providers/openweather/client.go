// Package openweather reads current conditions at stadium coordinates from an OpenWeather-style API.
package openweather

import (
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
	"github.com/preston-bernstein/cfb-data-service/internal/domain/weather"
	"github.com/preston-bernstein/cfb-data-service/internal/logging"
	"github.com/preston-bernstein/cfb-data-service/internal/providers"
)

const (
	providerName       = "weather"
	defaultBaseURL     = "https://api.openweathermap.org/data/2.5"
	defaultHTTPTimeout = 10 * time.Second
)

// Config controls the weather client.
type Config struct {
	config.WeatherConfig
	HTTPClient *http.Client
	Cache      cache.BodyCache
	Logger     *slog.Logger
}

// Client fetches current weather by venue coordinates.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      cache.BodyCache
	logger     *slog.Logger
	now        func() time.Time
}

var _ providers.WeatherProvider = (*Client)(nil)

type currentResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		ID   int    `json:"id"`
		Main string `json:"main"`
	} `json:"weather"`
	Dt int64 `json:"dt"`
}

// NewClient constructs a weather client.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	base := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		baseURL:    base,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: httpClient,
		cache:      cfg.Cache,
		logger:     cfg.Logger,
		now:        time.Now,
	}
}

// FetchWeather returns current conditions at the venue. Without a key, or for a venue with
// no coordinates, it returns an empty snapshot and no error.
func (c *Client) FetchWeather(ctx context.Context, venue games.Venue) (weather.Snapshot, error) {
	if c.apiKey == "" || !venue.HasLocation() {
		return weather.Snapshot{Venue: venue.Name}, nil
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(venue.Latitude, 'f', 4, 64))
	params.Set("lon", strconv.FormatFloat(venue.Longitude, 'f', 4, 64))
	params.Set("units", "imperial")
	cacheKey := "/weather?" + params.Encode()
	params.Set("appid", c.apiKey)

	body, err := c.body(ctx, cacheKey, c.baseURL+"/weather?"+params.Encode())
	if err != nil {
		return weather.Snapshot{}, err
	}

	var payload currentResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.Snapshot{}, fmt.Errorf("weather: decode: %w", err)
	}
	return c.toSnapshot(venue.Name, payload), nil
}

func (c *Client) body(ctx context.Context, cacheKey, target string) ([]byte, error) {
	if c.cache != nil {
		if b, ok, err := c.cache.Get(ctx, cacheKey); err == nil && ok {
			return b, nil
		} else if err != nil {
			logging.Warn(c.logger, "weather cache read failed", "error", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error would echo the appid query parameter.
		return nil, &providers.UpstreamError{Provider: providerName, Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{Provider: providerName, StatusCode: resp.StatusCode, Message: "weather: rate limited"}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &providers.UpstreamError{Provider: providerName, StatusCode: resp.StatusCode}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("weather: read body: %w", err)
	}
	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, b); err != nil {
			logging.Warn(c.logger, "weather cache write failed", "error", err)
		}
	}
	return b, nil
}

func (c *Client) toSnapshot(venue string, r currentResponse) weather.Snapshot {
	observed := c.now().UTC()
	if r.Dt > 0 {
		observed = time.Unix(r.Dt, 0).UTC()
	}
	cond := weather.ConditionUnknown
	if len(r.Weather) > 0 {
		cond = mapCondition(r.Weather[0].ID, r.Weather[0].Main)
	}
	return weather.Snapshot{
		Venue:       venue,
		Temperature: r.Main.Temp,
		FeelsLike:   r.Main.FeelsLike,
		Humidity:    r.Main.Humidity,
		WindSpeed:   r.Wind.Speed,
		Condition:   cond,
		ObservedAt:  observed,
	}
}

// mapCondition folds OpenWeather condition codes into the coarse enum. Codes take precedence
// over the free-text group name.
func mapCondition(id int, main string) weather.Condition {
	switch {
	case id >= 200 && id < 300:
		return weather.ConditionStorm
	case id >= 300 && id < 600:
		return weather.ConditionRain
	case id >= 600 && id < 700:
		return weather.ConditionSnow
	case id >= 700 && id < 800:
		return weather.ConditionFog
	case id == 800:
		return weather.ConditionClear
	case id > 800 && id < 900:
		return weather.ConditionClouds
	}

	switch strings.ToLower(strings.TrimSpace(main)) {
	case "thunderstorm":
		return weather.ConditionStorm
	case "rain", "drizzle":
		return weather.ConditionRain
	case "snow":
		return weather.ConditionSnow
	case "mist", "fog", "haze", "smoke":
		return weather.ConditionFog
	case "clear":
		return weather.ConditionClear
	case "clouds":
		return weather.ConditionClouds
	}
	return weather.ConditionUnknown
}

func unwrapURLError(err error) error {
	if ue, ok := err.(*url.Error); ok {
		return ue.Err
	}
	return err
}
