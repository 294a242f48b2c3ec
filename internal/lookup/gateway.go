// Package lookup provides a uniform gateway over the external services
// the bot proxies: weather providers, an AI completion endpoint and the
// AI-backed disaster-events feed. All network I/O lives here.
package lookup

import "context"

// Capability names one of the external service categories.
type Capability string

const (
	// CapabilityWeather serves geocoding plus current/daily forecast.
	CapabilityWeather Capability = "weather"
	// CapabilityAI serves free-form text completions.
	CapabilityAI Capability = "ai-completion"
	// CapabilityNews serves the disaster-events feed.
	CapabilityNews Capability = "news"
)

// Request describes a single lookup. Query is the user-facing input;
// System and MaxChars tune the AI-backed capabilities per call site.
type Request struct {
	Capability Capability
	Query      string
	System     string
	MaxChars   int
}

// Payload is the normalized success value of a lookup. Text is set for
// the AI-backed capabilities, Weather for the weather capability.
type Payload struct {
	Text    string
	Weather *WeatherReport
}

// CurrentConditions holds the current weather observation.
type CurrentConditions struct {
	Temp        float64 `json:"temp"`
	Humidity    float64 `json:"humidity"`
	Precip      float64 `json:"precip"`
	WeatherCode int     `json:"weather_code"`
	Pressure    float64 `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	WindDir     float64 `json:"wind_dir"`
	UV          float64 `json:"uv"`
}

// DailyForecast holds one day of the daily forecast series.
type DailyForecast struct {
	Date        string  `json:"date"`
	WeatherCode int     `json:"weather_code"`
	TempMax     float64 `json:"temp_max"`
	TempMin     float64 `json:"temp_min"`
	PrecipSum   float64 `json:"precip_sum"`
	UVMax       float64 `json:"uv_max"`
}

// WeatherReport is the normalized weather payload: the resolved
// location, current conditions and the daily series (today first).
type WeatherReport struct {
	Location string            `json:"location"`
	Timezone string            `json:"timezone"`
	Current  CurrentConditions `json:"current"`
	Daily    []DailyForecast   `json:"daily"`
}

// Tomorrow returns the day-after-today entry of the daily series.
func (r *WeatherReport) Tomorrow() (DailyForecast, bool) {
	if r == nil || len(r.Daily) < 2 {
		return DailyForecast{}, false
	}
	return r.Daily[1], true
}

// Gateway is the single entry point for external lookups. Errors are
// always *Failure values.
type Gateway interface {
	Lookup(ctx context.Context, req Request) (Payload, error)
}
