package config

import (
	"strings"
	"time"
)

// CFBDConfig controls how we talk to the CollegeFootballData API.
type CFBDConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	MaxAttempts       int
	RequestsPerSecond float64
	BreakerEnabled    bool
}

// Enabled reports whether upstream calls should be attempted at all. A blank key or the
// development placeholder disables them.
func (c CFBDConfig) Enabled() bool {
	key := strings.TrimSpace(c.APIKey)
	return key != "" && key != PlaceholderAPIKey
}

func loadCFBD(src source) CFBDConfig {
	return CFBDConfig{
		BaseURL:           src.str(envCfbdBaseURL, defaultCfbdBaseURL),
		APIKey:            src.str(envCfbdAPIKey, ""),
		Timeout:           src.duration(envCfbdTimeout, defaultCfbdTimeout),
		MaxAttempts:       src.int(envCfbdAttempts, defaultCfbdAttempts),
		RequestsPerSecond: src.float(envCfbdRPS, defaultCfbdRPS),
		BreakerEnabled:    src.bool(envCfbdBreaker, false),
	}
}
