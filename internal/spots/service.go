package spots

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ngmaloney/forecast-terminal/internal/log"
	"github.com/ngmaloney/forecast-terminal/internal/models"
)

// ErrInvalidSpot is returned when a spot fails validation before saving
var ErrInvalidSpot = errors.New("invalid spot")

// Service orchestrates spot operations
type Service struct {
	repo *Repository
}

// NewService creates a new spot service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// CreateSpot validates and saves a spot label
func (s *Service) CreateSpot(name string, lat, lon float64) (*models.Spot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidSpot)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: coordinates %.4f, %.4f out of range", ErrInvalidSpot, lat, lon)
	}

	spot := &models.Spot{
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
	}
	if err := s.repo.SaveSpot(spot); err != nil {
		log.Errorw("saving spot failed", "name", name, "error", err)
		return nil, fmt.Errorf("saving spot: %w", err)
	}

	log.Infow("spot saved", "name", spot.Name, "id", spot.ID)
	return spot, nil
}

// ListSpots returns all saved spots
func (s *Service) ListSpots() ([]models.Spot, error) {
	return s.repo.ListSpots()
}

// GetSpot returns the saved spot with the given name
func (s *Service) GetSpot(name string) (*models.Spot, error) {
	return s.repo.GetSpot(strings.TrimSpace(name))
}

// DeleteSpot removes a saved spot
func (s *Service) DeleteSpot(name string) error {
	if err := s.repo.DeleteSpot(strings.TrimSpace(name)); err != nil {
		return err
	}
	log.Infow("spot deleted", "name", name)
	return nil
}
