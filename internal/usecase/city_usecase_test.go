package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/pkg/errors"
	"github.com/invotaxi/region-service/internal/usecase"
	"github.com/invotaxi/region-service/internal/usecase/dto"
)

func TestCityUseCase_Create(t *testing.T) {
	ctx := context.Background()
	cities := &MockCityRepository{}
	uc := usecase.NewCityUseCase(cities, &MockCacheRepository{}, zap.NewNop())

	cities.On("Create", ctx, mock.MatchedBy(func(c *domain.City) bool {
		return c.Title == "Алматы" && c.CenterLat == 43.238949
	})).Return(&domain.City{ID: testCityID, Title: "Алматы"}, nil)

	city, err := uc.Create(ctx, dto.CityRequest{Title: " Алматы ", CenterLat: 43.238949, CenterLon: 76.889709})

	require.NoError(t, err)
	assert.Equal(t, testCityID, city.ID)
}

func TestCityUseCase_CreateValidation(t *testing.T) {
	ctx := context.Background()
	cities := &MockCityRepository{}
	uc := usecase.NewCityUseCase(cities, &MockCacheRepository{}, zap.NewNop())

	_, err := uc.Create(ctx, dto.CityRequest{Title: "X", CenterLat: 10, CenterLon: 200})
	assert.Equal(t, errors.CodeInvalidRange, errors.CodeOf(err))

	_, err = uc.Create(ctx, dto.CityRequest{Title: " ", CenterLat: 10, CenterLon: 20})
	assert.Equal(t, errors.CodeInvalidValue, errors.CodeOf(err))

	cities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCityUseCase_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	cities := &MockCityRepository{}
	uc := usecase.NewCityUseCase(cities, &MockCacheRepository{}, zap.NewNop())
	cities.On("Create", ctx, mock.Anything).Return(nil, errors.ErrCityExists)

	_, err := uc.Create(ctx, dto.CityRequest{Title: "Алматы", CenterLat: 1, CenterLon: 1})

	assert.True(t, errors.Is(err, errors.ErrCityExists))
}

func TestCityUseCase_UpdateInvalidatesLists(t *testing.T) {
	ctx := context.Background()
	cities := &MockCityRepository{}
	cache := &MockCacheRepository{}
	uc := usecase.NewCityUseCase(cities, cache, zap.NewNop())

	cities.On("Update", ctx, mock.MatchedBy(func(c *domain.City) bool { return c.ID == testCityID })).
		Return(&domain.City{ID: testCityID, Title: "Астана"}, nil)
	cache.On("InvalidateRegion", ctx, "").Return(nil)

	city, err := uc.Update(ctx, testCityID, dto.CityRequest{Title: "Астана", CenterLat: 51.16, CenterLon: 71.47})

	require.NoError(t, err)
	assert.Equal(t, "Астана", city.Title)
	cache.AssertExpectations(t)
}

func TestCityUseCase_DeleteInUse(t *testing.T) {
	ctx := context.Background()
	cities := &MockCityRepository{}
	cache := &MockCacheRepository{}
	uc := usecase.NewCityUseCase(cities, cache, zap.NewNop())
	cities.On("Delete", ctx, testCityID).Return(errors.ErrCityInUse)

	err := uc.Delete(ctx, testCityID)

	assert.True(t, errors.Is(err, errors.ErrCityInUse))
	cache.AssertNotCalled(t, "InvalidateRegion", mock.Anything, mock.Anything)

	assert.True(t, errors.Is(uc.Delete(ctx, "nope"), errors.ErrCityNotFound))
}
