package testhelpers

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// InsertCity создаёт город и возвращает его ID
func InsertCity(ctx context.Context, db *sqlx.DB, title string, lat, lon float64) (string, error) {
	var id string
	err := db.QueryRowContext(ctx,
		`INSERT INTO cities (title, center_lat, center_lon) VALUES ($1, $2, $3) RETURNING id::text`,
		title, lat, lon).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert city %s: %w", title, err)
	}
	return id, nil
}

// InsertPointRegion создаёт регион в режиме точки и возвращает его ID
func InsertPointRegion(ctx context.Context, db *sqlx.DB, cityID, title string, lat, lon, radius float64) (string, error) {
	var id string
	err := db.QueryRowContext(ctx,
		`INSERT INTO regions (title, city_id, center_lat, center_lon, service_radius_meters)
		 VALUES ($1, $2::uuid, $3, $4, $5) RETURNING id::text`,
		title, cityID, lat, lon, radius).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert region %s: %w", title, err)
	}
	return id, nil
}

// InsertDriver создаёт водителя в регионе
func InsertDriver(ctx context.Context, db *sqlx.DB, regionID, name string, active bool) (string, error) {
	var id string
	err := db.QueryRowContext(ctx,
		`INSERT INTO drivers (region_id, full_name, is_active) VALUES ($1::uuid, $2, $3) RETURNING id::text`,
		regionID, name, active).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert driver %s: %w", name, err)
	}
	return id, nil
}

// InsertOrder создаёт заказ в регионе с заданным временем создания
func InsertOrder(ctx context.Context, db *sqlx.DB, regionID string, createdAt time.Time) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO orders (region_id, created_at) VALUES ($1::uuid, $2)`,
		regionID, createdAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}
