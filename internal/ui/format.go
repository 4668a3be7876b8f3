package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/ngmaloney/forecast-terminal/internal/models"
)

var (
	weekdaysES = [...]string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}
	monthsES   = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

	// Arrow points where the wind blows to, so a northerly shows as ↓.
	windArrows   = [...]string{"↓", "↙", "←", "↖", "↑", "↗", "→", "↘"}
	compassNames = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
)

// HourLabel formats an entry time as a column label such as "15h".
func HourLabel(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15") + "h"
}

// TooltipTime formats an entry time as "15:00".
func TooltipTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}

// Tooltip renders a single chart series value, e.g. "Viento: 12 nudos".
func Tooltip(series string, value float64, unit string) string {
	return fmt.Sprintf("%s: %s %s", series, trimFloat(value), unit)
}

// compassIndex maps degrees onto one of eight 45° sectors centred on N.
func compassIndex(deg float64) int {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return int(math.Round(d/45)) % 8
}

// WindArrow returns an eight-point arrow glyph for a direction in degrees.
func WindArrow(deg float64) string {
	return windArrows[compassIndex(deg)]
}

// CompassPoint returns the eight-point compass name for a direction.
func CompassPoint(deg float64) string {
	return compassNames[compassIndex(deg)]
}

// WeatherIcon picks a glyph from precipitation first, then cloud cover.
func WeatherIcon(cloudCover, precipitation float64) string {
	switch {
	case precipitation > 0:
		return "🌧"
	case cloudCover >= 75:
		return "☁"
	case cloudCover >= 25:
		return "⛅"
	default:
		return "☀"
	}
}

// DayLabel renders a YYYY-MM-DD key as a tab title. The first two days are
// named relative to today.
func DayLabel(key string, index int) string {
	switch index {
	case 0:
		return "Hoy"
	case 1:
		return "Mañana"
	}
	d, err := time.Parse(models.DayKeyLayout, key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s %d %s", weekdaysES[d.Weekday()], d.Day(), monthsES[d.Month()-1])
}

func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
