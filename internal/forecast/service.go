package forecast

import (
	"context"
	"time"

	"github.com/ngmaloney/forecast-terminal/internal/log"
	"github.com/ngmaloney/forecast-terminal/internal/models"
)

// DefaultDelay mimics the latency of a remote forecast API
const DefaultDelay = time.Second

// Service wraps a Generator behind a fetch call with simulated latency.
// The delay never affects the generated values.
type Service struct {
	gen   *Generator
	delay time.Duration
	clock func() time.Time
}

// NewService creates a forecast service. A nil clock uses time.Now.
func NewService(gen *Generator, delay time.Duration, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	if delay < 0 {
		delay = 0
	}
	return &Service{gen: gen, delay: delay, clock: clock}
}

// Generator returns the underlying generator
func (s *Service) Generator() *Generator {
	return s.gen
}

// ForSpot returns a service producing forecasts labelled with spot
func (s *Service) ForSpot(spot string) *Service {
	c := *s
	c.gen = s.gen.WithSpot(spot)
	return &c
}

// Fetch waits out the simulated latency and then generates a forecast.
// It returns ctx.Err() if the context ends first.
func (s *Service) Fetch(ctx context.Context) (*models.ForecastData, error) {
	log.Debugw("forecast fetch started", "spot", s.gen.SpotName(), "delay", s.delay)

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			log.Warnw("forecast fetch cancelled", "spot", s.gen.SpotName(), "error", ctx.Err())
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	now := s.clock()
	data, err := s.gen.Generate(now)
	if err != nil {
		log.Errorw("forecast generation failed", "spot", s.gen.SpotName(), "error", err)
		return nil, err
	}

	log.Infow("forecast generated",
		"spot", data.SpotName,
		"days", len(data.DailyForecasts),
		"generated_at", data.GeneratedAt,
	)
	return data, nil
}
