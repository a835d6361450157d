package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/domain/repository"
	"github.com/invotaxi/region-service/internal/pkg/errors"
	"github.com/invotaxi/region-service/internal/repository/postgres/testhelpers"
)

// RegionRepositoryTestSuite тестирует репозитории регионов и городов на реальной базе
type RegionRepositoryTestSuite struct {
	suite.Suite
	testDB  *testhelpers.TestDB
	regions repository.RegionRepository
	cities  repository.CityRepository
	ctx     context.Context
	cityID  string
}

func (s *RegionRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())
	s.Require().NoError(testhelpers.ApplyMigrations(context.Background(), s.testDB.DB, s.testDB.Logger))

	s.regions = testhelpers.NewRegionRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.cities = testhelpers.NewCityRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *RegionRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *RegionRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))

	city, err := s.cities.Create(s.ctx, &domain.City{Title: "Алматы", CenterLat: 43.238949, CenterLon: 76.889709})
	s.Require().NoError(err)
	s.cityID = city.ID
}

func (s *RegionRepositoryTestSuite) TestCreatePolygonRegion_RoundTrip() {
	coords := [][]float64{{43.25, 76.9}, {43.26, 76.91}, {43.24, 76.92}}
	b, err := domain.Region{PolygonCoordinates: coords}.Boundary()
	s.Require().NoError(err)
	m := domain.NewRegionMutation("Алмалинский", s.cityID, b)

	created, err := s.regions.Create(s.ctx, &domain.Region{
		Title:              m.Title,
		CityID:             m.CityID,
		CenterLat:          m.CenterLat,
		CenterLon:          m.CenterLon,
		PolygonCoordinates: m.PolygonCoordinates,
	})

	s.Require().NoError(err)
	s.NotEmpty(created.ID)
	s.Equal("Алматы", created.CityTitle)
	s.Equal(coords, created.PolygonCoordinates)
	s.Nil(created.ServiceRadiusMeters)
}

func (s *RegionRepositoryTestSuite) TestUpdateSwitchesToPointMode() {
	radius := 5000.0
	created, err := s.regions.Create(s.ctx, &domain.Region{
		Title:              "Медеу",
		CityID:             s.cityID,
		CenterLat:          43.25,
		CenterLon:          76.91,
		PolygonCoordinates: [][]float64{{43.25, 76.9}, {43.26, 76.91}, {43.24, 76.92}},
	})
	s.Require().NoError(err)

	created.PolygonCoordinates = nil
	created.ServiceRadiusMeters = &radius
	updated, err := s.regions.Update(s.ctx, created)

	s.Require().NoError(err)
	s.Nil(updated.PolygonCoordinates)
	s.Require().NotNil(updated.ServiceRadiusMeters)
	s.Equal(5000.0, *updated.ServiceRadiusMeters)
}

func (s *RegionRepositoryTestSuite) TestBoundaryExclusivityIsEnforced() {
	radius := 100.0
	_, err := s.regions.Create(s.ctx, &domain.Region{
		Title:               "Неверный",
		CityID:              s.cityID,
		PolygonCoordinates:  [][]float64{{1, 1}, {2, 2}, {3, 3}},
		ServiceRadiusMeters: &radius,
	})

	s.ErrorIs(err, errors.ErrInvalidValue)
}

func (s *RegionRepositoryTestSuite) TestUnknownCity() {
	_, err := s.regions.Create(s.ctx, &domain.Region{
		Title:  "Сирота",
		CityID: "00000000-0000-0000-0000-000000000000",
	})

	s.ErrorIs(err, errors.ErrCityNotFound)
}

func (s *RegionRepositoryTestSuite) TestNotFound() {
	_, err := s.regions.GetByID(s.ctx, "00000000-0000-0000-0000-000000000000")
	s.ErrorIs(err, errors.ErrRegionNotFound)

	_, err = s.regions.GetByID(s.ctx, "not-a-uuid")
	s.ErrorIs(err, errors.ErrRegionNotFound)

	s.ErrorIs(s.regions.Delete(s.ctx, "00000000-0000-0000-0000-000000000000"), errors.ErrRegionNotFound)
}

func (s *RegionRepositoryTestSuite) TestListFiltersByCity() {
	other, err := s.cities.Create(s.ctx, &domain.City{Title: "Астана", CenterLat: 51.1, CenterLon: 71.4})
	s.Require().NoError(err)

	_, err = testhelpers.InsertPointRegion(s.ctx, s.testDB.DB, s.cityID, "А", 43.2, 76.9, 1000)
	s.Require().NoError(err)
	_, err = testhelpers.InsertPointRegion(s.ctx, s.testDB.DB, other.ID, "Б", 51.1, 71.4, 1000)
	s.Require().NoError(err)

	all, err := s.regions.List(s.ctx, "")
	s.Require().NoError(err)
	s.Len(all, 2)

	filtered, err := s.regions.List(s.ctx, other.ID)
	s.Require().NoError(err)
	s.Require().Len(filtered, 1)
	s.Equal("Б", filtered[0].Title)
}

func (s *RegionRepositoryTestSuite) TestCityRules() {
	_, err := s.cities.Create(s.ctx, &domain.City{Title: "алматы", CenterLat: 43, CenterLon: 76})
	s.ErrorIs(err, errors.ErrCityExists)

	_, err = testhelpers.InsertPointRegion(s.ctx, s.testDB.DB, s.cityID, "А", 43.2, 76.9, 1000)
	s.Require().NoError(err)
	s.ErrorIs(s.cities.Delete(s.ctx, s.cityID), errors.ErrCityInUse)

	city, err := s.cities.Update(s.ctx, &domain.City{ID: s.cityID, Title: "Almaty", CenterLat: 43.2, CenterLon: 76.8})
	s.Require().NoError(err)
	s.Equal("Almaty", city.Title)
}

func TestRegionRepositorySuite(t *testing.T) {
	suite.Run(t, new(RegionRepositoryTestSuite))
}
