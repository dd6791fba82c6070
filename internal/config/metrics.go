package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func loadMetrics(src source) MetricsConfig {
	return MetricsConfig{
		Enabled:      src.bool(envMetricsOn, true),
		Port:         src.str(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: src.str(envOtelEndpoint, ""),
		ServiceName:  src.str(envOtelService, defaultOtelServiceName),
		OtlpInsecure: src.bool(envOtelInsecure, true),
	}
}
