package ui

import "github.com/charmbracelet/lipgloss"

// scale buckets a value by ascending exclusive upper bounds. A value below
// bounds[i] falls into level i; anything else lands in the last level.
type scale struct {
	bounds []float64
	styles []lipgloss.Style
}

func (s scale) level(v float64) int {
	for i, b := range s.bounds {
		if v < b {
			return i
		}
	}
	return len(s.bounds)
}

func (s scale) style(v float64) lipgloss.Style {
	return s.styles[s.level(v)]
}

func badge(bg, fg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg)).
		Bold(true).
		Align(lipgloss.Center).
		Padding(0, 1)
}

var (
	// cold, cool, warm, hot
	temperatureScale = scale{
		bounds: []float64{10, 20, 25},
		styles: []lipgloss.Style{
			badge("#DBEAFE", "#1E40AF"),
			badge("#CFFAFE", "#155E75"),
			badge("#FEF3C7", "#92400E"),
			badge("#FEE2E2", "#991B1B"),
		},
	}

	// clear, partly, overcast
	cloudScale = scale{
		bounds: []float64{25, 75},
		styles: []lipgloss.Style{
			badge("#F1F5F9", "#334155"),
			badge("#E2E8F0", "#1E293B"),
			badge("#CBD5E1", "#0F172A"),
		},
	}

	windScale = scale{
		bounds: []float64{10, 15, 20, 25},
		styles: []lipgloss.Style{
			badge("#DCFCE7", "#166534"),
			badge("#ECFCCB", "#3F6212"),
			badge("#FEF9C3", "#854D0E"),
			badge("#FFEDD5", "#9A3412"),
			badge("#FEE2E2", "#991B1B"),
		},
	}

	waveScale = scale{
		bounds: []float64{1, 2, 3},
		styles: []lipgloss.Style{
			badge("#E0F2FE", "#075985"),
			badge("#DBEAFE", "#1E40AF"),
			badge("#E0E7FF", "#3730A3"),
			badge("#F3E8FF", "#6B21A8"),
		},
	}
)

// TemperatureLevel returns 0 (cold) through 3 (hot) for degrees Celsius.
func TemperatureLevel(c float64) int { return temperatureScale.level(c) }

// CloudLevel returns 0 (clear) through 2 (overcast) for a cover percentage.
func CloudLevel(pct float64) int { return cloudScale.level(pct) }

// WindLevel returns 0 through 4 for a speed in knots.
func WindLevel(knots float64) int { return windScale.level(knots) }

// WaveLevel returns 0 through 3 for a height in meters.
func WaveLevel(m float64) int { return waveScale.level(m) }
