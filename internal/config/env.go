package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// source reads settings from the environment (and an optional config file) through viper,
// falling back to defaults on missing, malformed, or non-positive values.
type source struct {
	v *viper.Viper
}

func newSource() source {
	v := viper.New()
	v.AutomaticEnv()
	if path := strings.TrimSpace(v.GetString(envConfigFile)); path != "" {
		v.SetConfigFile(path)
		// A missing or unreadable file leaves env + defaults in charge.
		_ = v.ReadInConfig()
	}
	return source{v: v}
}

func (s source) str(key, defaultValue string) string {
	val := strings.TrimSpace(s.v.GetString(key))
	if val != "" {
		return val
	}
	return defaultValue
}

func (s source) duration(key string, defaultValue time.Duration) time.Duration {
	raw := s.str(key, "")
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func (s source) int(key string, defaultValue int) int {
	raw := s.str(key, "")
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func (s source) float(key string, defaultValue float64) float64 {
	raw := s.str(key, "")
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func (s source) bool(key string, defaultValue bool) bool {
	raw := s.str(key, "")
	if raw == "" {
		return defaultValue
	}
	if raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes") {
		return true
	}
	if raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no") {
		return false
	}
	return defaultValue
}

func (s source) list(key, defaultValue string) []string {
	raw := s.str(key, defaultValue)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
