package dto

import (
	"github.com/invotaxi/region-service/internal/domain"
)

// RegionRequest - тело POST /regions/ и PATCH /regions/{id}/
type RegionRequest struct {
	Title               string      `json:"title" validate:"required,max=255"`
	CityID              string      `json:"city_id" validate:"required,uuid"`
	CenterLat           float64     `json:"center_lat" validate:"latitude"`
	CenterLon           float64     `json:"center_lon" validate:"longitude"`
	PolygonCoordinates  [][]float64 `json:"polygon_coordinates" validate:"omitempty,min=3,dive,len=2"`
	ServiceRadiusMeters *float64    `json:"service_radius_meters" validate:"omitempty,gt=0,lte=100000"`
}

// ToMutation - запрос в доменную форму
func (r RegionRequest) ToMutation() domain.RegionMutation {
	return domain.RegionMutation{
		Title:               r.Title,
		CityID:              r.CityID,
		CenterLat:           r.CenterLat,
		CenterLon:           r.CenterLon,
		PolygonCoordinates:  r.PolygonCoordinates,
		ServiceRadiusMeters: r.ServiceRadiusMeters,
	}
}

// CityRequest - тело POST /regions/cities/ и PATCH /regions/cities/{id}/
type CityRequest struct {
	Title     string  `json:"title" validate:"required,max=255"`
	CenterLat float64 `json:"center_lat" validate:"latitude"`
	CenterLon float64 `json:"center_lon" validate:"longitude"`
}

// RegionListQuery - фильтр списка регионов
type RegionListQuery struct {
	CityID string `query:"city_id" json:"city_id" validate:"omitempty,uuid"`
}

// HealthResponse - ответ /health
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
