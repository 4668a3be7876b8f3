package models

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// DayKeyLayout is the layout of a DailyForecast key (ISO date)
const DayKeyLayout = "2006-01-02"

// ForecastEntry is one forecast observation at an exact hour
type ForecastEntry struct {
	Time          time.Time `json:"time"`          // UTC, minutes and seconds zeroed
	WindSpeed     float64   `json:"windSpeed"`     // knots
	WindGust      float64   `json:"windGust"`      // knots
	WindDirection float64   `json:"windDirection"` // degrees, [0, 360)
	WaveHeight    float64   `json:"waveHeight"`    // meters, 1 decimal
	WavePeriod    float64   `json:"wavePeriod"`    // seconds
	Temperature   float64   `json:"temperature"`   // Celsius
	CloudCover    float64   `json:"cloudCover"`    // percent
	Precipitation float64   `json:"precipitation"` // mm, 1 decimal
	FeelsLike     *float64  `json:"feelsLike,omitempty"`
}

// DailyForecast maps a day key (YYYY-MM-DD) to that day's entries, ordered by time
type DailyForecast map[string][]ForecastEntry

// Days returns the day keys in ascending order
func (d DailyForecast) Days() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ForecastData is a complete generated forecast for one spot
type ForecastData struct {
	SpotName       string        `json:"spotName"`
	GeneratedAt    time.Time     `json:"generatedAt"`
	DailyForecasts DailyForecast `json:"dailyForecasts"`
}

// Day returns the entries for a day key, or nil if the day is missing
func (f *ForecastData) Day(key string) []ForecastEntry {
	if f == nil {
		return nil
	}
	return f.DailyForecasts[key]
}

// Validate checks the structural invariants of a forecast: the expected number
// of consecutive days, a fixed number of entries per day and strictly
// increasing entry times within each day.
func (f *ForecastData) Validate(days, entriesPerDay int) error {
	if f == nil {
		return errors.New("forecast is nil")
	}
	if len(f.DailyForecasts) != days {
		return fmt.Errorf("forecast has %d days, want %d", len(f.DailyForecasts), days)
	}

	keys := f.DailyForecasts.Days()
	var prev, last time.Time
	for i, key := range keys {
		day, err := time.Parse(DayKeyLayout, key)
		if err != nil {
			return fmt.Errorf("invalid day key %q: %w", key, err)
		}
		if i > 0 && !day.Equal(prev.AddDate(0, 0, 1)) {
			return fmt.Errorf("day %s does not follow %s", key, prev.Format(DayKeyLayout))
		}
		prev = day

		entries := f.DailyForecasts[key]
		if len(entries) != entriesPerDay {
			return fmt.Errorf("day %s has %d entries, want %d", key, len(entries), entriesPerDay)
		}
		if i > 0 && len(entries) > 0 && !entries[0].Time.After(last) {
			return fmt.Errorf("day %s starts before the previous day ends", key)
		}
		for j := 1; j < len(entries); j++ {
			if !entries[j].Time.After(entries[j-1].Time) {
				return fmt.Errorf("day %s: entry %d is not after entry %d", key, j, j-1)
			}
		}
		if len(entries) > 0 {
			last = entries[len(entries)-1].Time
		}
	}

	return nil
}
