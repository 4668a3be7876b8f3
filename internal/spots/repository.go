package spots

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ngmaloney/forecast-terminal/internal/database"
	"github.com/ngmaloney/forecast-terminal/internal/models"
)

// ErrSpotNotFound is returned when no saved spot matches a name
var ErrSpotNotFound = errors.New("spot not found")

// Repository handles persistence for user-saved spots
type Repository struct {
	dbPath string
}

// NewRepository creates a spot repository backed by the sqlite file at dbPath
func NewRepository(dbPath string) *Repository {
	if dbPath == "" {
		dbPath = database.DBPath()
	}
	return &Repository{dbPath: dbPath}
}

// SaveSpot inserts a spot or updates the one with the same name
func (r *Repository) SaveSpot(spot *models.Spot) error {
	db, err := database.Open(r.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	query := `
		INSERT INTO spots (name, latitude, longitude, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			created_at = excluded.created_at
		RETURNING id
	`

	if spot.CreatedAt.IsZero() {
		spot.CreatedAt = time.Now()
	}

	var id int64
	err = db.QueryRow(query,
		spot.Name,
		spot.Latitude,
		spot.Longitude,
		spot.CreatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("saving spot: %w", err)
	}
	spot.ID = id

	return nil
}

// ListSpots retrieves all saved spots ordered by name
func (r *Repository) ListSpots() ([]models.Spot, error) {
	db, err := database.Open(r.dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT id, name, latitude, longitude, created_at FROM spots ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying spots: %w", err)
	}
	defer rows.Close()

	var spots []models.Spot
	for rows.Next() {
		var s models.Spot
		if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning spot: %w", err)
		}
		spots = append(spots, s)
	}

	return spots, rows.Err()
}

// GetSpot retrieves a saved spot by name
func (r *Repository) GetSpot(name string) (*models.Spot, error) {
	db, err := database.Open(r.dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var s models.Spot
	err = db.QueryRow(
		"SELECT id, name, latitude, longitude, created_at FROM spots WHERE name = ?",
		name,
	).Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSpotNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("querying spot by name: %w", err)
	}

	return &s, nil
}

// DeleteSpot removes a spot by name
func (r *Repository) DeleteSpot(name string) error {
	db, err := database.Open(r.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.Exec("DELETE FROM spots WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting spot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrSpotNotFound, name)
	}

	return nil
}
