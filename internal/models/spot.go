package models

import "time"

// DefaultSpotName is the spot shown when nothing has been saved yet
const DefaultSpotName = "Arenales del Sol, Spain"

// Spot is a user-saved forecast location label
type Spot struct {
	ID        int64     `json:"id"` // Database Primary Key (0 if not saved)
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}
