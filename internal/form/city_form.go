package form

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/domain/repository"
	"github.com/invotaxi/region-service/internal/metrics"
	"github.com/invotaxi/region-service/internal/pkg/errors"
)

// CityForm - форма города: название и центр
type CityForm struct {
	api       repository.RegionAPI
	logger    *zap.Logger
	onSuccess func(*domain.City)

	mu         sync.Mutex
	open       bool
	generation uint64
	submitting bool

	cityID  string
	title   string
	latText string
	lonText string
	err     error
}

func NewCityForm(api repository.RegionAPI, onSuccess func(*domain.City), logger *zap.Logger) *CityForm {
	return &CityForm{
		api:       api,
		logger:    logger.Named("city_form"),
		onSuccess: onSuccess,
	}
}

// Open открывает форму для нового города (nil) или для изменения существующего
func (f *CityForm) Open(existing *domain.City) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
	f.generation++
	f.submitting = false
	f.err = nil
	f.cityID, f.title, f.latText, f.lonText = "", "", "", ""
	if existing != nil {
		f.cityID = existing.ID
		f.title = existing.Title
		f.latText = formatFloat(existing.CenterLat)
		f.lonText = formatFloat(existing.CenterLon)
	}
}

func (f *CityForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	f.generation++
	f.submitting = false
}

func (f *CityForm) SetTitle(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.title = title
}

func (f *CityForm) SetLatText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latText = text
}

func (f *CityForm) SetLonText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lonText = text
}

func (f *CityForm) Error() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Submit проверяет название и центр и создаёт или изменяет город
func (f *CityForm) Submit(ctx context.Context) (*domain.City, error) {
	f.mu.Lock()
	if !f.open {
		f.mu.Unlock()
		return nil, ErrFormClosed
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	f.submitting = true
	gen := f.generation
	cityID, title, latText, lonText := f.cityID, strings.TrimSpace(f.title), f.latText, f.lonText
	f.mu.Unlock()

	var m domain.CityMutation
	err := func() error {
		if title == "" {
			return fieldError(errors.ErrInvalidValue, FieldTitle, "Title is required")
		}
		center, err := parseCenter(latText, lonText)
		if err != nil {
			return err
		}
		m = domain.CityMutation{Title: title, CenterLat: center.Lat, CenterLon: center.Lon}
		return nil
	}()
	if err != nil {
		f.mu.Lock()
		if gen == f.generation {
			f.submitting = false
			f.err = err
		}
		f.mu.Unlock()
		metrics.FormSubmitsTotal.WithLabelValues("city", "invalid").Inc()
		return nil, err
	}

	var city *domain.City
	if cityID == "" {
		city, err = f.api.CreateCity(ctx, m)
	} else {
		city, err = f.api.UpdateCity(ctx, cityID, m)
	}

	f.mu.Lock()
	if gen != f.generation {
		f.mu.Unlock()
		return nil, ErrFormClosed
	}
	f.submitting = false
	if err != nil {
		submitErr := toSubmitError(err)
		f.err = submitErr
		f.mu.Unlock()
		metrics.FormSubmitsTotal.WithLabelValues("city", "failed").Inc()
		f.logger.Warn("Failed to save city", zap.String("city_id", cityID), zap.Error(err))
		return nil, submitErr
	}
	f.open = false
	f.generation++
	f.err = nil
	f.mu.Unlock()

	metrics.FormSubmitsTotal.WithLabelValues("city", "success").Inc()
	f.logger.Info("City saved", zap.String("city_id", city.ID))
	if f.onSuccess != nil {
		f.onSuccess(city)
	}
	return city, nil
}
