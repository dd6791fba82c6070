package config

import "strings"

// AggregationConfig tunes the per-request fan-out.
type AggregationConfig struct {
	StatsWorkers           int
	StatsRequestsPerSecond float64
	DefaultDivision        string
}

func loadAggregation(src source) AggregationConfig {
	return AggregationConfig{
		StatsWorkers:           src.int(envStatsWorkers, defaultStatsWorkers),
		StatsRequestsPerSecond: src.float(envStatsRPS, defaultStatsRPS),
		DefaultDivision:        strings.ToLower(src.str(envDefaultDivision, defaultDivision)),
	}
}
