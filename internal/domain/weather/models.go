package weather

import "time"

// Condition is the coarse sky condition shown on game cards.
type Condition string

const (
	ConditionClear   Condition = "clear"
	ConditionClouds  Condition = "clouds"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionFog     Condition = "fog"
	ConditionUnknown Condition = "unknown"
)

// Snapshot is current weather at a venue. Temperatures are Fahrenheit, wind is mph.
type Snapshot struct {
	Venue       string    `json:"venue"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feelsLike"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	Condition   Condition `json:"condition"`
	ObservedAt  time.Time `json:"observedAt"`
}

// Empty reports whether the snapshot carries no reading.
func (s Snapshot) Empty() bool {
	return s.ObservedAt.IsZero() && s.Condition == ""
}
