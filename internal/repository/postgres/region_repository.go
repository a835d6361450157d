package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/domain/repository"
	"github.com/invotaxi/region-service/internal/pkg/errors"
)

type regionRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewRegionRepository создает репозиторий регионов
func NewRegionRepository(db *DB, logger *zap.Logger) repository.RegionRepository {
	return &regionRepository{
		db:     db,
		logger: logger,
	}
}

// regionRow - строка regions с названием города; jsonb читается как текст
type regionRow struct {
	ID                  string          `db:"id"`
	Title               string          `db:"title"`
	CityID              string          `db:"city_id"`
	CityTitle           sql.NullString  `db:"city_title"`
	CenterLat           float64         `db:"center_lat"`
	CenterLon           float64         `db:"center_lon"`
	PolygonCoordinates  sql.NullString  `db:"polygon_coordinates"`
	ServiceRadiusMeters sql.NullFloat64 `db:"service_radius_meters"`
	CreatedAt           time.Time       `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
}

func (r regionRow) toDomain() (*domain.Region, error) {
	region := &domain.Region{
		ID:        r.ID,
		Title:     r.Title,
		CityID:    r.CityID,
		CityTitle: r.CityTitle.String,
		CenterLat: r.CenterLat,
		CenterLon: r.CenterLon,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.PolygonCoordinates.Valid {
		if err := json.Unmarshal([]byte(r.PolygonCoordinates.String), &region.PolygonCoordinates); err != nil {
			return nil, fmt.Errorf("decode polygon_coordinates of region %s: %w", r.ID, err)
		}
	}
	if r.ServiceRadiusMeters.Valid {
		v := r.ServiceRadiusMeters.Float64
		region.ServiceRadiusMeters = &v
	}
	return region, nil
}

const regionSelect = `
	SELECT
		r.id::text AS id,
		r.title,
		r.city_id::text AS city_id,
		c.title AS city_title,
		r.center_lat,
		r.center_lon,
		r.polygon_coordinates::text AS polygon_coordinates,
		r.service_radius_meters,
		r.created_at,
		r.updated_at
	FROM regions r
	JOIN cities c ON c.id = r.city_id
`

// polygonParam - значение параметра jsonb: NULL для режима точки
func polygonParam(coords [][]float64) (interface{}, error) {
	if coords == nil {
		return nil, nil
	}
	data, err := json.Marshal(coords)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (r *regionRepository) List(ctx context.Context, cityID string) ([]*domain.Region, error) {
	var rows []regionRow
	var err error
	if cityID == "" {
		err = r.db.SelectContext(ctx, &rows, regionSelect+` ORDER BY c.title, r.title`)
	} else {
		err = r.db.SelectContext(ctx, &rows, regionSelect+` WHERE r.city_id = $1::uuid ORDER BY r.title`, cityID)
	}
	if err != nil {
		if sqlState(err) == sqlStateInvalidText {
			return []*domain.Region{}, nil
		}
		r.logger.Error("failed to list regions", zap.String("city_id", cityID), zap.Error(err))
		return nil, mapError(err, errors.ErrRegionNotFound, nil)
	}

	regions := make([]*domain.Region, 0, len(rows))
	for _, row := range rows {
		region, err := row.toDomain()
		if err != nil {
			return nil, errors.ErrDatabaseError.Wrap(err)
		}
		regions = append(regions, region)
	}
	return regions, nil
}

func (r *regionRepository) GetByID(ctx context.Context, id string) (*domain.Region, error) {
	var row regionRow
	if err := r.db.GetContext(ctx, &row, regionSelect+` WHERE r.id = $1::uuid`, id); err != nil {
		return nil, mapError(err, errors.ErrRegionNotFound, nil)
	}
	region, err := row.toDomain()
	if err != nil {
		return nil, errors.ErrDatabaseError.Wrap(err)
	}
	return region, nil
}

func (r *regionRepository) Create(ctx context.Context, region *domain.Region) (*domain.Region, error) {
	polygon, err := polygonParam(region.PolygonCoordinates)
	if err != nil {
		return nil, errors.ErrInvalidValue.Wrap(err)
	}

	query := `
		INSERT INTO regions (title, city_id, center_lat, center_lon, polygon_coordinates, service_radius_meters)
		VALUES ($1, $2::uuid, $3, $4, $5::jsonb, $6)
		RETURNING id::text
	`

	var id string
	err = r.db.QueryRowxContext(ctx, query,
		region.Title,
		region.CityID,
		region.CenterLat,
		region.CenterLon,
		polygon,
		region.ServiceRadiusMeters,
	).Scan(&id)
	if err != nil {
		r.logger.Warn("failed to create region", zap.String("city_id", region.CityID), zap.Error(err))
		return nil, mapError(err, errors.ErrCityNotFound, errors.ErrCityNotFound)
	}

	return r.GetByID(ctx, id)
}

func (r *regionRepository) Update(ctx context.Context, region *domain.Region) (*domain.Region, error) {
	polygon, err := polygonParam(region.PolygonCoordinates)
	if err != nil {
		return nil, errors.ErrInvalidValue.Wrap(err)
	}

	query := `
		UPDATE regions SET
			title = $2,
			city_id = $3::uuid,
			center_lat = $4,
			center_lon = $5,
			polygon_coordinates = $6::jsonb,
			service_radius_meters = $7,
			updated_at = NOW()
		WHERE id = $1::uuid
	`

	res, err := r.db.ExecContext(ctx, query,
		region.ID,
		region.Title,
		region.CityID,
		region.CenterLat,
		region.CenterLon,
		polygon,
		region.ServiceRadiusMeters,
	)
	if err != nil {
		if sqlState(err) == sqlStateForeignKeyViolation {
			return nil, errors.ErrCityNotFound
		}
		return nil, mapError(err, errors.ErrRegionNotFound, nil)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, errors.ErrRegionNotFound
	}

	return r.GetByID(ctx, region.ID)
}

func (r *regionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM regions WHERE id = $1::uuid`, id)
	if err != nil {
		return mapError(err, errors.ErrRegionNotFound, nil)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrRegionNotFound
	}
	return nil
}
