package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ngmaloney/forecast-terminal/internal/models"
)

// desktopMinWidth is the terminal width at which the parameter table
// replaces the per-entry cards.
const desktopMinWidth = 100

const cardWidth = 22

// paramRow is one forecast parameter shown as a table row or card line.
type paramRow struct {
	label  string
	value  func(models.ForecastEntry) string
	scale  *scale
	metric func(models.ForecastEntry) float64
}

func forecastRows(entries []models.ForecastEntry) []paramRow {
	rows := []paramRow{
		{
			label:  "Temperatura",
			value:  func(e models.ForecastEntry) string { return fmt.Sprintf("%.0f°", e.Temperature) },
			scale:  &temperatureScale,
			metric: func(e models.ForecastEntry) float64 { return e.Temperature },
		},
	}

	if hasFeelsLike(entries) {
		rows = append(rows, paramRow{
			label: "Sensación",
			value: func(e models.ForecastEntry) string {
				if e.FeelsLike == nil {
					return "-"
				}
				return fmt.Sprintf("%.0f°", *e.FeelsLike)
			},
			scale: &temperatureScale,
			metric: func(e models.ForecastEntry) float64 {
				if e.FeelsLike == nil {
					return e.Temperature
				}
				return *e.FeelsLike
			},
		})
	}

	rows = append(rows,
		paramRow{
			label:  "Nubosidad",
			value:  func(e models.ForecastEntry) string { return fmt.Sprintf("%.0f%%", e.CloudCover) },
			scale:  &cloudScale,
			metric: func(e models.ForecastEntry) float64 { return e.CloudCover },
		},
		paramRow{
			label:  "Viento (racha)",
			value:  func(e models.ForecastEntry) string { return fmt.Sprintf("%.0f (%.0f)", e.WindSpeed, e.WindGust) },
			scale:  &windScale,
			metric: func(e models.ForecastEntry) float64 { return e.WindSpeed },
		},
		paramRow{
			label: "Dirección",
			value: func(e models.ForecastEntry) string {
				return WindArrow(e.WindDirection) + " " + CompassPoint(e.WindDirection)
			},
		},
		paramRow{
			label: "Clima",
			value: func(e models.ForecastEntry) string {
				icon := WeatherIcon(e.CloudCover, e.Precipitation)
				if e.Precipitation > 0 {
					return fmt.Sprintf("%s %.1fmm", icon, e.Precipitation)
				}
				return icon
			},
		},
		paramRow{
			label:  "Olas",
			value:  func(e models.ForecastEntry) string { return fmt.Sprintf("%.1f m", e.WaveHeight) },
			scale:  &waveScale,
			metric: func(e models.ForecastEntry) float64 { return e.WaveHeight },
		},
		paramRow{
			label: "Periodo",
			value: func(e models.ForecastEntry) string { return fmt.Sprintf("%.0f s", e.WavePeriod) },
		},
	)
	return rows
}

func hasFeelsLike(entries []models.ForecastEntry) bool {
	for _, e := range entries {
		if e.FeelsLike != nil {
			return true
		}
	}
	return false
}

func (r paramRow) style(e models.ForecastEntry) lipgloss.Style {
	if r.scale == nil {
		return cellStyle
	}
	return r.scale.style(r.metric(e))
}

// renderTable lays parameters out as rows and entries as columns.
func renderTable(entries []models.ForecastEntry, loc *time.Location, cursor int) string {
	rows := forecastRows(entries)

	headers := make([]string, 0, len(entries)+1)
	headers = append(headers, "")
	for _, e := range entries {
		headers = append(headers, HourLabel(e.Time, loc))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...)

	for _, r := range rows {
		cells := make([]string, 0, len(entries)+1)
		cells = append(cells, r.label)
		for _, e := range entries {
			cells = append(cells, r.value(e))
		}
		t.Row(cells...)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		var s lipgloss.Style
		switch {
		case row == table.HeaderRow:
			s = headerCellStyle
		case col == 0:
			return labelStyle.Padding(0, 1)
		default:
			s = rows[row].style(entries[col-1])
		}
		if col-1 == cursor {
			s = s.Underline(true)
		}
		return s
	})

	return t.Render()
}

// cardWindow returns the [start, end) range of n cards that keeps cursor
// visible when only perPage fit on screen.
func cardWindow(n, cursor, perPage int) (int, int) {
	if perPage < 1 {
		perPage = 1
	}
	if perPage >= n {
		return 0, n
	}
	start := 0
	if cursor >= perPage {
		start = cursor - perPage + 1
	}
	return start, start + perPage
}

// renderCards shows one bordered card per entry, scrolled so the cursor is
// on screen.
func renderCards(entries []models.ForecastEntry, loc *time.Location, cursor, width int) string {
	rows := forecastRows(entries)
	start, end := cardWindow(len(entries), cursor, width/cardWidth)

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		e := entries[i]
		lines := []string{titleStyle.Render(HourLabel(e.Time, loc))}
		for _, r := range rows {
			lines = append(lines, labelStyle.Render(r.label)+" "+r.style(e).Render(r.value(e)))
		}

		style := cardStyle
		if i == cursor {
			style = activeCardStyle
		}
		cards = append(cards, style.Render(strings.Join(lines, "\n")))
	}

	position := mutedStyle.Render(fmt.Sprintf("← %d-%d / %d →", start+1, end, len(entries)))
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		position,
	)
}
