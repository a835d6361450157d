package form_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/invotaxi/region-service/internal/domain"
)

type MockRegionAPI struct {
	mock.Mock
}

func (m *MockRegionAPI) ListRegions(ctx context.Context) ([]*domain.Region, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Region), args.Error(1)
}

func (m *MockRegionAPI) CreateRegion(ctx context.Context, mut domain.RegionMutation) (*domain.Region, error) {
	args := m.Called(ctx, mut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Region), args.Error(1)
}

func (m *MockRegionAPI) UpdateRegion(ctx context.Context, id string, mut domain.RegionMutation) (*domain.Region, error) {
	args := m.Called(ctx, id, mut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Region), args.Error(1)
}

func (m *MockRegionAPI) DeleteRegion(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRegionAPI) GetRegionStats(ctx context.Context, id string) (*domain.RegionStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegionStats), args.Error(1)
}

func (m *MockRegionAPI) ListCities(ctx context.Context) ([]*domain.City, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.City), args.Error(1)
}

func (m *MockRegionAPI) CreateCity(ctx context.Context, mut domain.CityMutation) (*domain.City, error) {
	args := m.Called(ctx, mut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockRegionAPI) UpdateCity(ctx context.Context, id string, mut domain.CityMutation) (*domain.City, error) {
	args := m.Called(ctx, id, mut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockRegionAPI) DeleteCity(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
