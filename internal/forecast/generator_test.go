package forecast

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
	_ "time/tzdata"

	"gonum.org/v1/gonum/stat"

	"github.com/ngmaloney/forecast-terminal/internal/models"
)

// sourceFunc adapts a function to the Source interface
type sourceFunc func(min, max float64) float64

func (f sourceFunc) Uniform(min, max float64) float64 { return f(min, max) }

var midpoint = sourceFunc(func(min, max float64) float64 { return (min + max) / 2 })

var newYear = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func mustGenerator(t *testing.T, cfg Config, src Source) *Generator {
	t.Helper()
	g, err := NewGenerator(cfg, src, "Test Spot")
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	return g
}

func TestNewGenerator(t *testing.T) {
	g, err := NewGenerator(Standard(), nil, "")
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if g.SpotName() != models.DefaultSpotName {
		t.Errorf("SpotName() = %q, want %q", g.SpotName(), models.DefaultSpotName)
	}

	bad := Standard()
	bad.Days = -1
	if _, err := NewGenerator(bad, nil, "x"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewGenerator() with bad config error = %v, want ErrInvalidConfig", err)
	}
}

func TestGenerate_ZeroClock(t *testing.T) {
	g := mustGenerator(t, Standard(), midpoint)

	if _, err := g.Generate(time.Time{}); !errors.Is(err, ErrInvalidClock) {
		t.Errorf("Generate(zero) error = %v, want ErrInvalidClock", err)
	}
}

func TestGenerate_DayKeysAndHours(t *testing.T) {
	g := mustGenerator(t, Standard(), NewSeededSource(1))

	data, err := g.Generate(newYear)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	days := data.DailyForecasts.Days()
	if len(days) != 5 {
		t.Fatalf("got %d days, want 5", len(days))
	}
	if days[0] != "2024-01-01" {
		t.Errorf("first day = %s, want 2024-01-01", days[0])
	}
	if days[4] != "2024-01-05" {
		t.Errorf("fifth day = %s, want 2024-01-05", days[4])
	}

	wantHours := []int{0, 3, 6, 9, 12, 15, 18, 21}
	for _, day := range days {
		entries := data.Day(day)
		if len(entries) != len(wantHours) {
			t.Fatalf("day %s has %d entries, want %d", day, len(entries), len(wantHours))
		}
		for i, e := range entries {
			if e.Time.Hour() != wantHours[i] {
				t.Errorf("day %s entry %d hour = %d, want %d", day, i, e.Time.Hour(), wantHours[i])
			}
			if e.Time.Minute() != 0 || e.Time.Second() != 0 || e.Time.Nanosecond() != 0 {
				t.Errorf("day %s entry %d time %v is not on the hour", day, i, e.Time)
			}
			if e.Time.Format(models.DayKeyLayout) != day {
				t.Errorf("entry time %v outside day %s", e.Time, day)
			}
		}
	}

	if err := data.Validate(5, 8); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if !data.GeneratedAt.Equal(newYear) {
		t.Errorf("GeneratedAt = %v, want %v", data.GeneratedAt, newYear)
	}
	if data.SpotName != "Test Spot" {
		t.Errorf("SpotName = %q, want Test Spot", data.SpotName)
	}
}

func TestGenerate_LocalDayKeys(t *testing.T) {
	madrid := time.FixedZone("CET", 3600)
	// 00:30 local on Jan 1 is still Dec 31 in UTC
	now := time.Date(2024, 1, 1, 0, 30, 0, 0, madrid)

	g := mustGenerator(t, Standard(), midpoint)
	data, err := g.Generate(now)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	first := data.Day("2024-01-01")
	if len(first) == 0 {
		t.Fatalf("missing local day 2024-01-01, got days %v", data.DailyForecasts.Days())
	}
	want := time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)
	if !first[0].Time.Equal(want) || first[0].Time.Location() != time.UTC {
		t.Errorf("first entry time = %v, want %v in UTC", first[0].Time, want)
	}
}

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%q) error = %v", name, err)
	}
	return loc
}

func hourly() Config {
	cfg := Standard()
	cfg.StepHours = 1
	cfg.EntriesPerDay = 23
	return cfg
}

func TestGenerate_DSTTransitions(t *testing.T) {
	tests := []struct {
		name      string
		zone      string
		now       time.Time // wall clock in zone
		cfg       Config
		wantFirst string
		wantStart string // local time of the first entry on the first day
	}{
		{
			name:      "midnight skipped",
			zone:      "America/Santiago",
			now:       time.Date(2024, 9, 8, 12, 0, 0, 0, time.UTC),
			cfg:       Standard(),
			wantFirst: "2024-09-08",
			wantStart: "2024-09-08 01:00",
		},
		{
			name:      "midnight skipped hourly",
			zone:      "America/Santiago",
			now:       time.Date(2024, 9, 8, 12, 0, 0, 0, time.UTC),
			cfg:       hourly(),
			wantFirst: "2024-09-08",
			wantStart: "2024-09-08 01:00",
		},
		{
			name:      "02:00 skipped hourly",
			zone:      "America/New_York",
			now:       time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
			cfg:       hourly(),
			wantFirst: "2024-03-10",
			wantStart: "2024-03-10 00:00",
		},
		{
			name:      "02:00 skipped",
			zone:      "Europe/Madrid",
			now:       time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC),
			cfg:       Standard(),
			wantFirst: "2024-03-31",
			wantStart: "2024-03-31 00:00",
		},
		{
			name:      "fall back hourly",
			zone:      "America/New_York",
			now:       time.Date(2024, 11, 3, 12, 0, 0, 0, time.UTC),
			cfg:       hourly(),
			wantFirst: "2024-11-03",
			wantStart: "2024-11-03 00:00",
		},
		{
			name:      "day before a skipped midnight",
			zone:      "America/Santiago",
			now:       time.Date(2024, 9, 6, 12, 0, 0, 0, time.UTC),
			cfg:       hourly(),
			wantFirst: "2024-09-06",
			wantStart: "2024-09-06 00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := mustLoadLocation(t, tt.zone)
			n := tt.now
			now := time.Date(n.Year(), n.Month(), n.Day(), n.Hour(), 0, 0, 0, loc)

			g := mustGenerator(t, tt.cfg, midpoint)
			data, err := g.Generate(now)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			if err := data.Validate(tt.cfg.Days, tt.cfg.EntriesPerDay); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}

			days := data.DailyForecasts.Days()
			if days[0] != tt.wantFirst {
				t.Fatalf("first day = %q, want %q (days %v)", days[0], tt.wantFirst, days)
			}

			for _, key := range days {
				for i, e := range data.Day(key) {
					if got := e.Time.In(loc).Format(models.DayKeyLayout); got != key {
						t.Errorf("day %s entry %d falls on local %s", key, i, got)
					}
				}
			}

			first := data.Day(days[0])
			if got := first[0].Time.In(loc).Format("2006-01-02 15:04"); got != tt.wantStart {
				t.Errorf("first entry local time = %s, want %s", got, tt.wantStart)
			}

			// Entries are evenly spaced in elapsed time
			step := time.Duration(tt.cfg.StepHours) * time.Hour
			for i := 1; i < len(first); i++ {
				if d := first[i].Time.Sub(first[i-1].Time); d != step {
					t.Errorf("entry %d is %v after entry %d, want %v", i, d, i-1, step)
				}
			}
		})
	}
}

func TestGenerate_MidpointValues(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		index     int
		want      models.ForecastEntry
		wantFeels *float64
	}{
		{
			name:  "standard afternoon peak",
			cfg:   Standard(),
			index: 5, // 15:00
			want: models.ForecastEntry{
				WindSpeed: 16, WindGust: 22, WindDirection: 180,
				WaveHeight: 1.9, WavePeriod: 7, Temperature: 23,
				CloudCover: 50, Precipitation: 0,
			},
		},
		{
			name:  "standard pre-dawn trough",
			cfg:   Standard(),
			index: 1, // 03:00
			want: models.ForecastEntry{
				WindSpeed: 4, WindGust: 5, WindDirection: 180,
				WaveHeight: 0.7, WavePeriod: 7, Temperature: 13,
				CloudCover: 50, Precipitation: 0,
			},
		},
		{
			name:  "simplified afternoon with feels like",
			cfg:   Simplified(),
			index: 5,
			want: models.ForecastEntry{
				WindSpeed: 18, WindGust: 25, WindDirection: 180,
				WaveHeight: 2.1, WavePeriod: 7, Temperature: 23,
				CloudCover: 50, Precipitation: 0,
			},
			wantFeels: func() *float64 { v := 21.0; return &v }(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGenerator(t, tt.cfg, midpoint)
			data, err := g.Generate(newYear)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			got := data.Day("2024-01-01")[tt.index]
			tt.want.Time = got.Time
			gotFeels := got.FeelsLike
			got.FeelsLike = nil

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("entry = %+v, want %+v", got, tt.want)
			}

			switch {
			case tt.wantFeels == nil && gotFeels != nil:
				t.Errorf("FeelsLike = %v, want nil", *gotFeels)
			case tt.wantFeels != nil && gotFeels == nil:
				t.Errorf("FeelsLike = nil, want %v", *tt.wantFeels)
			case tt.wantFeels != nil && *gotFeels != *tt.wantFeels:
				t.Errorf("FeelsLike = %v, want %v", *gotFeels, *tt.wantFeels)
			}
		})
	}
}

func TestGenerate_DiurnalShape(t *testing.T) {
	g := mustGenerator(t, Standard(), midpoint)
	data, err := g.Generate(newYear)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	entries := data.Day("2024-01-01")
	maxIdx, minIdx := 0, 0
	for i, e := range entries {
		if e.Temperature > entries[maxIdx].Temperature {
			maxIdx = i
		}
		if e.Temperature < entries[minIdx].Temperature {
			minIdx = i
		}
	}

	if h := entries[maxIdx].Time.Hour(); h != 15 {
		t.Errorf("temperature peak at %02d:00, want 15:00", h)
	}
	if h := entries[minIdx].Time.Hour(); h != 3 {
		t.Errorf("temperature trough at %02d:00, want 03:00", h)
	}
	if entries[5].WindSpeed <= entries[1].WindSpeed {
		t.Errorf("afternoon wind %v should exceed pre-dawn wind %v", entries[5].WindSpeed, entries[1].WindSpeed)
	}
}

func TestGenerate_PrecipitationGate(t *testing.T) {
	tests := []struct {
		name       string
		cloud      float64
		wantCloud  float64
		wantPrecip bool
	}{
		{"clear sky", 10, 10, false},
		{"exactly at threshold", 70, 70, false},
		{"rounds down to threshold", 70.4, 70, false},
		{"rounds above threshold", 70.6, 71, true},
		{"overcast", 100, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := sourceFunc(func(min, max float64) float64 {
				switch {
				case min == 0 && max == 100: // cloud cover
					return tt.cloud
				case min == 0 && max == 2: // precipitation
					return 1.26
				}
				return (min + max) / 2
			})

			g := mustGenerator(t, Standard(), src)
			data, err := g.Generate(newYear)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			for _, e := range data.Day("2024-01-03") {
				if e.CloudCover != tt.wantCloud {
					t.Errorf("CloudCover = %v, want %v", e.CloudCover, tt.wantCloud)
				}
				if tt.wantPrecip && e.Precipitation != 1.3 {
					t.Errorf("Precipitation = %v, want 1.3", e.Precipitation)
				}
				if !tt.wantPrecip && e.Precipitation != 0 {
					t.Errorf("Precipitation = %v, want exactly 0", e.Precipitation)
				}
			}
		})
	}
}

func TestGenerate_DirectionWrapsAt360(t *testing.T) {
	src := sourceFunc(func(min, max float64) float64 {
		if min == 0 && max == 360 {
			return 359.7
		}
		return min
	})

	g := mustGenerator(t, Standard(), src)
	data, err := g.Generate(newYear)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for _, e := range data.Day("2024-01-01") {
		if e.WindDirection != 0 {
			t.Errorf("WindDirection = %v, want 0 after wrapping 360", e.WindDirection)
		}
	}
}

func TestGenerate_SeededReproducible(t *testing.T) {
	a, err := mustGenerator(t, Simplified(), NewSeededSource(42)).Generate(newYear)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := mustGenerator(t, Simplified(), NewSeededSource(42)).Generate(newYear)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different forecasts")
	}
}

func TestGenerate_RangeInvariants(t *testing.T) {
	for name, cfg := range map[string]Config{"standard": Standard(), "simplified": Simplified()} {
		t.Run(name, func(t *testing.T) {
			g := mustGenerator(t, cfg, NewSeededSource(7))

			var clouds, directions []float64
			now := newYear
			// 250 generations x 40 entries = 10,000 samples
			for run := 0; run < 250; run++ {
				data, err := g.Generate(now)
				if err != nil {
					t.Fatalf("Generate() error = %v", err)
				}
				if err := data.Validate(cfg.Days, cfg.EntriesPerDay); err != nil {
					t.Fatalf("Validate() error = %v", err)
				}

				for _, day := range data.DailyForecasts.Days() {
					for _, e := range data.Day(day) {
						checkEntry(t, cfg, e)
						clouds = append(clouds, e.CloudCover)
						directions = append(directions, e.WindDirection)
					}
				}
				now = now.Add(7 * time.Hour)
			}

			if len(clouds) != 10000 {
				t.Fatalf("sampled %d entries, want 10000", len(clouds))
			}
			wantCloudMean := (cfg.CloudMin + cfg.CloudMax) / 2
			if mean := stat.Mean(clouds, nil); math.Abs(mean-wantCloudMean) > 3 {
				t.Errorf("cloud cover mean = %.2f, want about %.0f", mean, wantCloudMean)
			}
			if mean := stat.Mean(directions, nil); math.Abs(mean-180) > 10 {
				t.Errorf("wind direction mean = %.2f, want about 180", mean)
			}
		})
	}
}

func checkEntry(t *testing.T, cfg Config, e models.ForecastEntry) {
	t.Helper()

	if e.WindGust < e.WindSpeed {
		t.Fatalf("gust %v below speed %v", e.WindGust, e.WindSpeed)
	}
	if e.WindDirection < 0 || e.WindDirection >= 360 {
		t.Fatalf("direction %v outside [0, 360)", e.WindDirection)
	}
	if e.CloudCover < 0 || e.CloudCover > 100 {
		t.Fatalf("cloud cover %v outside [0, 100]", e.CloudCover)
	}
	if e.CloudCover <= cfg.PrecipThreshold && e.Precipitation != 0 {
		t.Fatalf("precipitation %v with cloud cover %v", e.Precipitation, e.CloudCover)
	}
	if e.Precipitation < 0 || e.Precipitation > cfg.PrecipMax {
		t.Fatalf("precipitation %v outside [0, %v]", e.Precipitation, cfg.PrecipMax)
	}
	if e.WaveHeight < 0 || e.WavePeriod <= 0 || e.WindSpeed < 0 {
		t.Fatalf("negative physical quantity in %+v", e)
	}
	if e.WavePeriod < cfg.PeriodMin || e.WavePeriod > cfg.PeriodMax {
		t.Fatalf("wave period %v outside [%v, %v]", e.WavePeriod, cfg.PeriodMin, cfg.PeriodMax)
	}
	if math.Abs(e.WaveHeight*10-math.Round(e.WaveHeight*10)) > 1e-9 {
		t.Fatalf("wave height %v has more than one decimal", e.WaveHeight)
	}
	if e.Temperature != math.Round(e.Temperature) {
		t.Fatalf("temperature %v is not a whole degree", e.Temperature)
	}
	maxTemp := cfg.BaseTemp + cfg.TempAmplitude + cfg.TempNoise
	minTemp := cfg.BaseTemp - cfg.TempAmplitude - cfg.TempNoise
	if e.Temperature < math.Floor(minTemp) || e.Temperature > math.Ceil(maxTemp) {
		t.Fatalf("temperature %v outside [%v, %v]", e.Temperature, minTemp, maxTemp)
	}
	if cfg.FeelsLike != (e.FeelsLike != nil) {
		t.Fatalf("feelsLike presence = %v, want %v", e.FeelsLike != nil, cfg.FeelsLike)
	}
}
