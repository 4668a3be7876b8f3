package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/forecast-terminal/internal/config"
	"github.com/ngmaloney/forecast-terminal/internal/database"
	"github.com/ngmaloney/forecast-terminal/internal/forecast"
	"github.com/ngmaloney/forecast-terminal/internal/log"
	"github.com/ngmaloney/forecast-terminal/internal/spots"
	"github.com/ngmaloney/forecast-terminal/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	spot := flag.String("spot", "", "Spot name to label the forecast with (e.g., \"Tarifa, Spain\")")
	variant := flag.String("variant", "", "Generator variant: standard or simplified")
	jsonOut := flag.Bool("json", false, "Print one forecast as JSON and exit")
	delay := flag.Duration("delay", forecast.DefaultDelay, "Simulated fetch latency")
	tz := flag.String("tz", "", "IANA timezone for day boundaries and labels (default Local)")
	dbPath := flag.String("db", "", "Path to the saved spots database")
	logPath := flag.String("log", "", "Path to the log file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	seed := flag.Uint64("seed", 0, "Seed for a reproducible forecast (0 picks a random one)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "spot":
			cfg.Spot = *spot
		case "variant":
			cfg.Variant = *variant
		case "delay":
			cfg.Delay = *delay
		case "tz":
			cfg.Timezone = *tz
		case "db":
			cfg.DBPath = *dbPath
		case "log":
			cfg.LogPath = *logPath
		case "debug":
			cfg.Debug = *debug
		}
	})

	if *jsonOut {
		err = runJSON(cfg, *seed, os.Stdout)
	} else {
		err = runTUI(cfg, *seed)
	}
	if err != nil {
		log.Errorf("forecast terminal failed: %v", err)
		log.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newService builds the generator and fetch service described by cfg
func newService(cfg *config.Config, seed uint64, delay time.Duration) (*forecast.Service, *time.Location, error) {
	fc, err := cfg.ForecastConfig()
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	var src forecast.Source
	if seed != 0 {
		src = forecast.NewSeededSource(seed)
	}

	gen, err := forecast.NewGenerator(fc, src, cfg.Spot)
	if err != nil {
		return nil, nil, err
	}

	clock := func() time.Time { return time.Now().In(loc) }
	return forecast.NewService(gen, delay, clock), loc, nil
}

func runJSON(cfg *config.Config, seed uint64, w io.Writer) error {
	if err := log.Init(cfg.LogPath, cfg.Debug); err != nil {
		return err
	}
	defer log.Sync()

	// No one is watching a spinner here, so skip the latency
	svc, _, err := newService(cfg, seed, 0)
	if err != nil {
		return err
	}

	data, err := svc.Fetch(context.Background())
	if err != nil {
		return err
	}
	fc := svc.Generator().Config()
	if err := data.Validate(fc.Days, fc.EntriesPerDay); err != nil {
		return fmt.Errorf("generated forecast is inconsistent: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("writing forecast: %w", err)
	}
	log.Infof("exported %d-day forecast for %s", len(data.DailyForecasts), data.SpotName)
	return nil
}

func runTUI(cfg *config.Config, seed uint64) error {
	if err := log.Init(cfg.LogPath, cfg.Debug); err != nil {
		return err
	}
	defer log.Sync()

	// Saved spots are optional; the forecast works without a database
	var spotSvc *spots.Service
	if err := database.EnsureSchema(cfg.DBPath); err != nil {
		log.Warnw("saved spots disabled", "db", cfg.DBPath, "error", err)
	} else {
		spotSvc = spots.NewService(spots.NewRepository(cfg.DBPath))
		cfg.Spot = resolveSpot(spotSvc, cfg.Spot)
	}

	svc, loc, err := newService(cfg, seed, cfg.Delay)
	if err != nil {
		return err
	}

	log.Infow("starting forecast terminal", "spot", cfg.Spot, "variant", cfg.Variant, "timezone", loc.String())

	p := tea.NewProgram(ui.NewModel(svc, spotSvc, loc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

// resolveSpot returns the stored name when spot matches a saved spot and
// spot unchanged otherwise.
func resolveSpot(spotSvc *spots.Service, spot string) string {
	saved, err := spotSvc.GetSpot(spot)
	switch {
	case err == nil:
		log.Debugw("using saved spot", "name", saved.Name, "id", saved.ID)
		return saved.Name
	case !errors.Is(err, spots.ErrSpotNotFound):
		log.Warnw("looking up saved spot", "name", spot, "error", err)
	}
	return spot
}
