package forecast

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/ngmaloney/forecast-terminal/internal/models"
)

// ErrInvalidClock is returned when Generate is called with a zero time
var ErrInvalidClock = errors.New("invalid generation time")

// Generator builds synthetic forecasts for a single spot
type Generator struct {
	cfg      Config
	src      Source
	spotName string
}

// NewGenerator validates cfg and returns a generator drawing from src.
// A nil src draws from the non-deterministic global generator.
func NewGenerator(cfg Config, src Source, spotName string) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = NewSource(nil)
	}
	if spotName == "" {
		spotName = models.DefaultSpotName
	}
	return &Generator{cfg: cfg, src: src, spotName: spotName}, nil
}

// Config returns the generator's configuration
func (g *Generator) Config() Config {
	return g.cfg
}

// SpotName returns the spot label stamped on every forecast
func (g *Generator) SpotName() string {
	return g.spotName
}

// WithSpot returns a copy of the generator labelled with another spot
func (g *Generator) WithSpot(name string) *Generator {
	c := *g
	if name != "" {
		c.spotName = name
	}
	return &c
}

// Generate produces cfg.Days days of forecasts starting at the calendar day
// of now, in now's location. Day keys are local dates; entry times are UTC.
//
// Entries sit StepHours of elapsed time apart from the first instant of the
// local day, so they stay strictly increasing across DST changes.
func (g *Generator) Generate(now time.Time) (*models.ForecastData, error) {
	if now.IsZero() {
		return nil, ErrInvalidClock
	}

	hours := g.cfg.Hours()
	daily := make(models.DailyForecast, g.cfg.Days)

	for d := 0; d < g.cfg.Days; d++ {
		// Calendar arithmetic in UTC, where no day is skipped or shifted
		civil := time.Date(now.Year(), now.Month(), now.Day()+d, 0, 0, 0, 0, time.UTC)
		key := civil.Format(models.DayKeyLayout)
		start := startOfDay(civil, now.Location())

		entries := make([]models.ForecastEntry, 0, len(hours))
		for _, hour := range hours {
			at := start.Add(time.Duration(hour) * time.Hour)
			entries = append(entries, g.entry(at.UTC(), float64(hour)))
		}
		daily[key] = entries
	}

	return &models.ForecastData{
		SpotName:       g.spotName,
		GeneratedAt:    now.UTC(),
		DailyForecasts: daily,
	}, nil
}

// startOfDay returns the first instant in loc whose local date is civil's.
// Where DST skips midnight that is the transition itself.
func startOfDay(civil time.Time, loc *time.Location) time.Time {
	t := time.Date(civil.Year(), civil.Month(), civil.Day(), 0, 0, 0, 0, loc)
	for i := 0; i < 2 && localDate(t).Before(civil); i++ {
		_, end := t.ZoneBounds()
		if end.IsZero() {
			break
		}
		t = end
	}
	return t
}

// localDate is t's wall-clock date as midnight UTC
func localDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// entry draws a single observation for the given local hour of day
func (g *Generator) entry(at time.Time, hour float64) models.ForecastEntry {
	cfg := g.cfg

	windFactor := cfg.WindDiurnalMean + cfg.WindDiurnalAmplitude*diurnal(hour, cfg.WindPeakHour)
	windSpeed := g.src.Uniform(cfg.WindMin, cfg.WindMax) * windFactor
	windGust := windSpeed * g.src.Uniform(cfg.GustMin, cfg.GustMax)
	windDirection := scalar.Round(g.src.Uniform(0, 360), 0)
	if windDirection >= 360 {
		windDirection = 0
	}

	waveHeight := windSpeed/10 + g.src.Uniform(cfg.WaveNoiseMin, cfg.WaveNoiseMax)
	wavePeriod := g.src.Uniform(cfg.PeriodMin, cfg.PeriodMax)

	temperature := cfg.BaseTemp +
		cfg.TempAmplitude*diurnal(hour, cfg.TempPeakHour) +
		g.src.Uniform(-cfg.TempNoise, cfg.TempNoise)

	cloudCover := clamp(scalar.Round(g.src.Uniform(cfg.CloudMin, cfg.CloudMax), 0), 0, 100)

	// Gate on the published (rounded) cloud cover so no entry at or below
	// the threshold ever carries precipitation.
	precipitation := 0.0
	if cloudCover > cfg.PrecipThreshold {
		precipitation = nonNegative(scalar.Round(g.src.Uniform(cfg.PrecipMin, cfg.PrecipMax), 1))
	}

	e := models.ForecastEntry{
		Time:          at,
		WindSpeed:     nonNegative(scalar.Round(windSpeed, 0)),
		WindGust:      nonNegative(scalar.Round(windGust, 0)),
		WindDirection: windDirection,
		WaveHeight:    nonNegative(scalar.Round(waveHeight, 1)),
		WavePeriod:    math.Max(1, scalar.Round(wavePeriod, 0)),
		Temperature:   scalar.Round(temperature, 0),
		CloudCover:    cloudCover,
		Precipitation: precipitation,
	}

	if cfg.FeelsLike {
		feels := scalar.Round(temperature-windSpeed/10, 0)
		e.FeelsLike = &feels
	}

	return e
}

// diurnal is a 24h cosine in [-1, 1] peaking at peakHour with its trough
// twelve hours away.
func diurnal(hour, peakHour float64) float64 {
	return math.Cos(2 * math.Pi * (hour - peakHour) / 24)
}

func nonNegative(v float64) float64 {
	return math.Max(0, v)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
