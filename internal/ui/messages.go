package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/forecast-terminal/internal/forecast"
	"github.com/ngmaloney/forecast-terminal/internal/models"
	"github.com/ngmaloney/forecast-terminal/internal/spots"
)

// Message types for async operations

// forecastFetchedMsg is sent when a forecast has been generated
type forecastFetchedMsg struct {
	data *models.ForecastData
	err  error
}

// spotsFetchedMsg is sent when saved spots have been loaded
type spotsFetchedMsg struct {
	spots []models.Spot
	err   error
}

// spotSavedMsg is sent when a new spot has been saved
type spotSavedMsg struct {
	spot *models.Spot
	err  error
}

// spotDeletedMsg is sent when a saved spot has been removed
type spotDeletedMsg struct {
	name string
	err  error
}

// errMsg is a message type for errors
type errMsg struct {
	err error
}

// fetchForecast generates a forecast in the background
func fetchForecast(svc *forecast.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		data, err := svc.Fetch(ctx)
		return forecastFetchedMsg{data: data, err: err}
	}
}

func fetchSavedSpots(s *spots.Service) tea.Cmd {
	return func() tea.Msg {
		list, err := s.ListSpots()
		return spotsFetchedMsg{spots: list, err: err}
	}
}

func saveSpot(s *spots.Service, name string) tea.Cmd {
	return func() tea.Msg {
		spot, err := s.CreateSpot(name, 0, 0)
		return spotSavedMsg{spot: spot, err: err}
	}
}

func deleteSpot(s *spots.Service, name string) tea.Cmd {
	return func() tea.Msg {
		err := s.DeleteSpot(name)
		return spotDeletedMsg{name: name, err: err}
	}
}
