package postgres

import (
	"context"

	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/domain/repository"
	"github.com/invotaxi/region-service/internal/pkg/errors"
)

type cityRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCityRepository создает репозиторий городов
func NewCityRepository(db *DB, logger *zap.Logger) repository.CityRepository {
	return &cityRepository{
		db:     db,
		logger: logger,
	}
}

const citySelect = `
	SELECT id::text AS id, title, center_lat, center_lon, created_at, updated_at
	FROM cities
`

func (r *cityRepository) List(ctx context.Context) ([]*domain.City, error) {
	cities := []*domain.City{}
	if err := r.db.SelectContext(ctx, &cities, citySelect+` ORDER BY title`); err != nil {
		r.logger.Error("failed to list cities", zap.Error(err))
		return nil, mapError(err, errors.ErrCityNotFound, nil)
	}
	return cities, nil
}

func (r *cityRepository) GetByID(ctx context.Context, id string) (*domain.City, error) {
	var city domain.City
	if err := r.db.GetContext(ctx, &city, citySelect+` WHERE id = $1::uuid`, id); err != nil {
		return nil, mapError(err, errors.ErrCityNotFound, nil)
	}
	return &city, nil
}

func (r *cityRepository) Create(ctx context.Context, city *domain.City) (*domain.City, error) {
	query := `
		INSERT INTO cities (title, center_lat, center_lon)
		VALUES ($1, $2, $3)
		RETURNING id::text AS id, title, center_lat, center_lon, created_at, updated_at
	`
	var created domain.City
	if err := r.db.GetContext(ctx, &created, query, city.Title, city.CenterLat, city.CenterLon); err != nil {
		r.logger.Warn("failed to create city", zap.String("title", city.Title), zap.Error(err))
		return nil, mapError(err, errors.ErrCityNotFound, nil)
	}
	return &created, nil
}

func (r *cityRepository) Update(ctx context.Context, city *domain.City) (*domain.City, error) {
	query := `
		UPDATE cities SET title = $2, center_lat = $3, center_lon = $4, updated_at = NOW()
		WHERE id = $1::uuid
		RETURNING id::text AS id, title, center_lat, center_lon, created_at, updated_at
	`
	var updated domain.City
	if err := r.db.GetContext(ctx, &updated, query, city.ID, city.Title, city.CenterLat, city.CenterLon); err != nil {
		return nil, mapError(err, errors.ErrCityNotFound, nil)
	}
	return &updated, nil
}

// Delete удаляет город; город с регионами удалить нельзя
func (r *cityRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cities WHERE id = $1::uuid`, id)
	if err != nil {
		return mapError(err, errors.ErrCityNotFound, errors.ErrCityInUse)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrCityNotFound
	}
	return nil
}
