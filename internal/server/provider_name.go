package server

import (
	"strings"

	"github.com/preston-bernstein/cfb-data-service/internal/config"
)

// weatherProviderName labels weather calls in metrics and logs.
const weatherProviderName = "weather"

// providerName returns the lower-cased upstream name used in metrics and logs.
func providerName(cfg config.Config) string {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if name == "" {
		return config.ProviderCFBD
	}
	return name
}
