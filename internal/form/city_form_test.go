package form_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/form"
	"github.com/invotaxi/region-service/internal/pkg/errors"
)

func TestCityForm_Submit(t *testing.T) {
	api := &MockRegionAPI{}
	var saved []*domain.City
	f := form.NewCityForm(api, func(c *domain.City) { saved = append(saved, c) }, zap.NewNop())

	t.Run("validation", func(t *testing.T) {
		f.Open(nil)
		_, err := f.Submit(context.Background())
		assert.Equal(t, form.FieldTitle, form.FieldOf(err))

		f.SetTitle("Астана")
		f.SetLatText("51.1")
		f.SetLonText("181")
		_, err = f.Submit(context.Background())
		assert.Equal(t, errors.CodeInvalidRange, errors.CodeOf(err))
		assert.Equal(t, form.FieldLon, form.FieldOf(f.Error()))
	})

	t.Run("network error", func(t *testing.T) {
		f.SetLonText("71.4")
		api.On("CreateCity", mock.Anything, domain.CityMutation{Title: "Астана", CenterLat: 51.1, CenterLon: 71.4}).
			Return(nil, stderrors.New("timeout")).Once()

		_, err := f.Submit(context.Background())
		assert.Equal(t, errors.CodeNetworkError, errors.CodeOf(err))
		assert.Empty(t, saved)
	})

	t.Run("update existing", func(t *testing.T) {
		existing := &domain.City{ID: "city-3", Title: "Астана", CenterLat: 51.1, CenterLon: 71.4}
		f.Open(existing)
		f.SetTitle("Нур-Султан")
		api.On("UpdateCity", mock.Anything, "city-3", domain.CityMutation{Title: "Нур-Султан", CenterLat: 51.1, CenterLon: 71.4}).
			Return(existing, nil).Once()

		city, err := f.Submit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "city-3", city.ID)
		require.Len(t, saved, 1)

		_, err = f.Submit(context.Background())
		assert.ErrorIs(t, err, form.ErrFormClosed)
	})

	api.AssertExpectations(t)
}
