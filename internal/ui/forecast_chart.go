package ui

import (
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/forecast-terminal/internal/models"
)

const (
	chartHeight = 8

	seriesWind = "Viento"
	seriesGust = "Ráfaga"
	seriesWave = "Olas"
)

var (
	windLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	gustLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316"))
	waveLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
)

// renderChart draws the day's wind/gust and wave series side by side.
func renderChart(entries []models.ForecastEntry, loc *time.Location, width int) string {
	if len(entries) == 0 {
		return mutedStyle.Render("Sin datos")
	}

	half := (width - 4) / 2
	if half < 20 {
		half = 20
	}

	var maxGust, maxWave float64
	for _, e := range entries {
		maxGust = max(maxGust, e.WindGust)
		maxWave = max(maxWave, e.WaveHeight)
	}

	first, last := entries[0].Time, entries[len(entries)-1].Time
	hourLabels := timeserieslinechart.WithXLabelFormatter(func(_ int, v float64) string {
		return HourLabel(time.Unix(int64(v), 0), loc)
	})

	wind := timeserieslinechart.New(half, chartHeight,
		timeserieslinechart.WithTimeRange(first, last),
		timeserieslinechart.WithYRange(0, maxGust+1),
		hourLabels,
	)
	wind.SetDataSetStyle(seriesWind, windLineStyle)
	wind.SetDataSetStyle(seriesGust, gustLineStyle)

	wave := timeserieslinechart.New(half, chartHeight,
		timeserieslinechart.WithTimeRange(first, last),
		timeserieslinechart.WithYRange(0, maxWave+0.5),
		hourLabels,
	)
	wave.SetStyle(waveLineStyle)

	for _, e := range entries {
		wind.PushDataSet(seriesWind, timeserieslinechart.TimePoint{Time: e.Time, Value: e.WindSpeed})
		wind.PushDataSet(seriesGust, timeserieslinechart.TimePoint{Time: e.Time, Value: e.WindGust})
		wave.Push(timeserieslinechart.TimePoint{Time: e.Time, Value: e.WaveHeight})
	}
	wind.DrawBrailleAll()
	wave.DrawBrailleAll()

	windPane := lipgloss.JoinVertical(lipgloss.Left,
		windLineStyle.Render("━ "+seriesWind)+"  "+gustLineStyle.Render("━ "+seriesGust)+mutedStyle.Render(" (nudos)"),
		wind.View(),
	)
	wavePane := lipgloss.JoinVertical(lipgloss.Left,
		waveLineStyle.Render("━ "+seriesWave)+mutedStyle.Render(" (m)"),
		wave.View(),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, windPane, "  ", wavePane)
}

// entryTooltip describes the selected entry the way a chart hover would.
func entryTooltip(e models.ForecastEntry, loc *time.Location) string {
	parts := []string{
		TooltipTime(e.Time, loc),
		Tooltip(seriesWind, e.WindSpeed, "nudos"),
		Tooltip(seriesGust, e.WindGust, "nudos"),
		Tooltip(seriesWave, e.WaveHeight, "m"),
	}
	return tooltipStyle.Render(strings.Join(parts, " · "))
}
