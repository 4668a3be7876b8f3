package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/ngmaloney/forecast-terminal/internal/models"
)

// spotItem wraps a Spot for use in a list
type spotItem struct {
	spot models.Spot
}

// FilterValue implements list.Item
func (s spotItem) FilterValue() string {
	return s.spot.Name
}

// Title implements list.DefaultItem
func (s spotItem) Title() string {
	return s.spot.Name
}

// Description implements list.DefaultItem
func (s spotItem) Description() string {
	if s.spot.Latitude == 0 && s.spot.Longitude == 0 {
		return "Saved " + s.spot.CreatedAt.Format("Jan 2, 2006")
	}
	return fmt.Sprintf("%.4f, %.4f", s.spot.Latitude, s.spot.Longitude)
}

// createSpotList creates a list.Model from saved spots
func createSpotList(spots []models.Spot, width, height int) list.Model {
	items := make([]list.Item, len(spots))
	for i, spot := range spots {
		items[i] = spotItem{spot: spot}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Select a Saved Spot"
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)

	return l
}
