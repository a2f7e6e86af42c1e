package domain

import "time"

// WeatherCondition is the coarse forecast category used for planning.
type WeatherCondition string

const (
	WeatherSunny  WeatherCondition = "sunny"
	WeatherCloudy WeatherCondition = "cloudy"
	WeatherRainy  WeatherCondition = "rainy"
	WeatherStormy WeatherCondition = "stormy"
	WeatherSnowy  WeatherCondition = "snowy"
)

// Disruptive reports whether outdoor, weather-sensitive plans should be
// reconsidered under this condition.
func (c WeatherCondition) Disruptive() bool {
	return c == WeatherRainy || c == WeatherStormy || c == WeatherSnowy
}

// Forecast is the weather expected at a coordinate on a date.
type Forecast struct {
	Date                       time.Time        `json:"date"`
	Condition                  WeatherCondition `json:"condition"`
	TemperatureC               float64          `json:"temperature_c"`
	PrecipitationChancePercent float64          `json:"precipitation_chance_percent"`
}

// WeatherWarning flags a weather-sensitive activity scheduled on a day whose
// forecast is disruptive.
type WeatherWarning struct {
	DayID      string           `json:"day_id"`
	Date       time.Time        `json:"date"`
	ActivityID string           `json:"activity_id"`
	Title      string           `json:"title"`
	Condition  WeatherCondition `json:"condition"`
}
