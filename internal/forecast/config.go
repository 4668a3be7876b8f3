// Package forecast produces synthetic multi-day spot forecasts from diurnal
// models combined with bounded uniform noise.
package forecast

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfig is returned when a Config fails validation
	ErrInvalidConfig = errors.New("invalid forecast config")
	// ErrUnknownVariant is returned for a variant name that has no preset
	ErrUnknownVariant = errors.New("unknown forecast variant")
)

// Variant names accepted by Variant
const (
	VariantStandard   = "standard"
	VariantSimplified = "simplified"
)

// Config enumerates every constant and range the generator uses.
//
// Temperature and wind follow a 24h sinusoid that peaks at TempPeakHour and
// WindPeakHour respectively; the trough sits 12 hours before the peak.
type Config struct {
	Days          int `yaml:"days"`
	EntriesPerDay int `yaml:"entries_per_day"`
	StartHour     int `yaml:"start_hour"`
	StepHours     int `yaml:"step_hours"`

	BaseTemp      float64 `yaml:"base_temp"`      // Celsius
	TempAmplitude float64 `yaml:"temp_amplitude"` // Celsius
	TempNoise     float64 `yaml:"temp_noise"`     // symmetric, Celsius
	TempPeakHour  float64 `yaml:"temp_peak_hour"`

	WindMin              float64 `yaml:"wind_min"` // knots
	WindMax              float64 `yaml:"wind_max"` // knots
	WindDiurnalMean      float64 `yaml:"wind_diurnal_mean"`
	WindDiurnalAmplitude float64 `yaml:"wind_diurnal_amplitude"`
	WindPeakHour         float64 `yaml:"wind_peak_hour"`
	GustMin              float64 `yaml:"gust_min"` // gust factor
	GustMax              float64 `yaml:"gust_max"`

	WaveNoiseMin float64 `yaml:"wave_noise_min"` // meters
	WaveNoiseMax float64 `yaml:"wave_noise_max"`
	PeriodMin    float64 `yaml:"period_min"` // seconds
	PeriodMax    float64 `yaml:"period_max"`

	CloudMin        float64 `yaml:"cloud_min"` // percent
	CloudMax        float64 `yaml:"cloud_max"`
	PrecipThreshold float64 `yaml:"precip_threshold"` // percent cloud cover
	PrecipMin       float64 `yaml:"precip_min"`       // mm
	PrecipMax       float64 `yaml:"precip_max"`

	FeelsLike bool `yaml:"feels_like"`
}

// Standard returns the full variant: 5 days of 3-hourly entries from
// midnight, wind 5-20 kt and unrestricted cloud cover.
func Standard() Config {
	return Config{
		Days:          5,
		EntriesPerDay: 8,
		StartHour:     0,
		StepHours:     3,

		BaseTemp:      18,
		TempAmplitude: 5,
		TempNoise:     1,
		TempPeakHour:  15,

		WindMin:              5,
		WindMax:              20,
		WindDiurnalMean:      0.8,
		WindDiurnalAmplitude: 0.5,
		WindPeakHour:         15,
		GustMin:              1.2,
		GustMax:              1.5,

		WaveNoiseMin: 0.1,
		WaveNoiseMax: 0.5,
		PeriodMin:    4,
		PeriodMax:    10,

		CloudMin:        0,
		CloudMax:        100,
		PrecipThreshold: 70,
		PrecipMin:       0,
		PrecipMax:       2,
	}
}

// Simplified returns the reduced variant with a narrower wind and cloud
// range, wider temperature noise and the feelsLike field.
func Simplified() Config {
	cfg := Standard()
	cfg.TempNoise = 2
	cfg.WindMin = 8
	cfg.CloudMin = 10
	cfg.CloudMax = 90
	cfg.FeelsLike = true
	return cfg
}

// Variant returns the preset config for a variant name
func Variant(name string) (Config, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", VariantStandard:
		return Standard(), nil
	case VariantSimplified:
		return Simplified(), nil
	}
	return Config{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// Hours returns the hour of day of each entry
func (c Config) Hours() []int {
	hours := make([]int, c.EntriesPerDay)
	for i := range hours {
		hours[i] = c.StartHour + i*c.StepHours
	}
	return hours
}

// maxEntryHour is the latest entry offset that fits in every local day
const maxEntryHour = 22

// Validate reports whether the config can produce a well-formed forecast
func (c Config) Validate() error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Days <= 0 {
		add("days must be positive, got %d", c.Days)
	}
	if c.EntriesPerDay <= 0 {
		add("entries per day must be positive, got %d", c.EntriesPerDay)
	}
	if c.StepHours <= 0 {
		add("step hours must be positive, got %d", c.StepHours)
	}
	if c.StartHour < 0 {
		add("start hour must not be negative, got %d", c.StartHour)
	}
	if c.EntriesPerDay > 0 && c.StepHours > 0 {
		// A spring-forward day only has 23 hours
		if last := c.StartHour + (c.EntriesPerDay-1)*c.StepHours; last > maxEntryHour {
			add("last entry falls at hour %d, past the end of the day (latest is %d)", last, maxEntryHour)
		}
	}

	checkRange := func(name string, min, max float64) {
		if min > max {
			add("%s range is inverted (%g > %g)", name, min, max)
		}
	}
	checkRange("wind", c.WindMin, c.WindMax)
	checkRange("gust factor", c.GustMin, c.GustMax)
	checkRange("wave noise", c.WaveNoiseMin, c.WaveNoiseMax)
	checkRange("wave period", c.PeriodMin, c.PeriodMax)
	checkRange("cloud cover", c.CloudMin, c.CloudMax)
	checkRange("precipitation", c.PrecipMin, c.PrecipMax)

	if c.TempNoise < 0 {
		add("temperature noise must not be negative, got %g", c.TempNoise)
	}
	if c.WindMin < 0 {
		add("wind minimum must not be negative, got %g", c.WindMin)
	}
	if c.GustMin < 1 {
		add("gust factor must be at least 1, got %g", c.GustMin)
	}
	if c.WaveNoiseMin < 0 {
		add("wave noise minimum must not be negative, got %g", c.WaveNoiseMin)
	}
	if c.PeriodMin <= 0 {
		add("wave period minimum must be positive, got %g", c.PeriodMin)
	}
	if c.CloudMin < 0 || c.CloudMax > 100 {
		add("cloud cover must stay within [0, 100], got [%g, %g]", c.CloudMin, c.CloudMax)
	}
	if c.PrecipMin < 0 {
		add("precipitation minimum must not be negative, got %g", c.PrecipMin)
	}
	if c.WindDiurnalAmplitude < 0 || c.WindDiurnalMean <= c.WindDiurnalAmplitude {
		add("wind diurnal multiplier must stay positive (mean %g, amplitude %g)",
			c.WindDiurnalMean, c.WindDiurnalAmplitude)
	}
	if c.TempPeakHour < 0 || c.TempPeakHour >= 24 {
		add("temperature peak hour must be in [0, 24), got %g", c.TempPeakHour)
	}
	if c.WindPeakHour < 0 || c.WindPeakHour >= 24 {
		add("wind peak hour must be in [0, 24), got %g", c.WindPeakHour)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
