// Package form - форма региона и города: ручной ввод координат, синхронизация
// с редактором границы, валидация и отправка во внешний API.
package form

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/domain/repository"
	"github.com/invotaxi/region-service/internal/editor"
	"github.com/invotaxi/region-service/internal/mapsurface"
	"github.com/invotaxi/region-service/internal/metrics"
	"github.com/invotaxi/region-service/internal/pkg/errors"
	"github.com/invotaxi/region-service/internal/pkg/geo"
)

// RegionFormConfig - параметры формы региона
type RegionFormConfig struct {
	DefaultCenter domain.GeoPoint
	// OnSuccess вызывается после успешного сохранения, форма к этому моменту закрыта
	OnSuccess func(region *domain.Region)
}

// RegionForm - форма создания и изменения региона. Геометрию форма получает только
// через колбэки редактора; напрямую она задаёт её лишь при открытии.
type RegionForm struct {
	api    repository.RegionAPI
	editor *editor.Editor
	logger *zap.Logger
	cfg    RegionFormConfig

	mu         sync.Mutex
	open       bool
	generation uint64
	submitting bool

	regionID   string
	title      string
	cityID     string
	latText    string
	lonText    string
	radiusText string
	boundary   domain.Boundary
	cities     []*domain.City

	insufficient bool
	err          error
	// >0, пока форма сама передаёт введённые значения в редактор
	pushing int
}

// NewRegionForm создаёт форму и редактор границы поверх surface
func NewRegionForm(api repository.RegionAPI, surface *mapsurface.Surface, cfg RegionFormConfig, logger *zap.Logger) *RegionForm {
	f := &RegionForm{
		api:    api,
		logger: logger.Named("region_form"),
		cfg:    cfg,
	}
	f.boundary = domain.NewPointBoundary(cfg.DefaultCenter, nil)
	f.editor = editor.New(surface, editor.Config{
		Initial:         f.boundary,
		DefaultCenter:   cfg.DefaultCenter,
		OnPointChange:   f.onPointChange,
		OnPolygonChange: f.onPolygonChange,
	}, logger)
	return f
}

// Editor - редактор границы формы
func (f *RegionForm) Editor() *editor.Editor {
	return f.editor
}

// LoadCities загружает список городов для выбора
func (f *RegionForm) LoadCities(ctx context.Context) ([]*domain.City, error) {
	cities, err := f.api.ListCities(ctx)
	if err != nil {
		f.logger.Warn("Failed to load cities", zap.Error(err))
		return nil, toSubmitError(err)
	}
	f.mu.Lock()
	f.cities = cities
	f.mu.Unlock()
	return cities, nil
}

// Open открывает форму для нового региона (nil) или для изменения существующего
func (f *RegionForm) Open(existing *domain.Region) error {
	b := domain.NewPointBoundary(f.cfg.DefaultCenter, nil)
	if existing != nil {
		var err error
		if b, err = existing.Boundary(); err != nil {
			return err
		}
	}

	f.editor.Reset(b)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.open = true
	f.generation++
	f.submitting = false
	f.err = nil
	f.regionID, f.title, f.cityID = "", "", ""
	if existing != nil {
		f.regionID = existing.ID
		f.title = existing.Title
		f.cityID = existing.CityID
	}
	f.boundary = b
	f.latText, f.lonText, f.radiusText = "", "", ""
	if c, ok := b.Center(); ok {
		f.latText = formatFloat(c.Lat)
		f.lonText = formatFloat(c.Lon)
	}
	if b.Point != nil && b.Point.RadiusMeters != nil {
		f.radiusText = formatFloat(*b.Point.RadiusMeters)
	}
	f.insufficient = b.Mode == domain.BoundaryModePolygon && !b.Polygon.Ready()

	f.logger.Debug("Region form opened",
		zap.String("region_id", f.regionID),
		zap.String("mode", string(b.Mode)))
	return nil
}

// Close закрывает форму. Ответ на незавершённую отправку после этого игнорируется.
func (f *RegionForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	f.generation++
	f.submitting = false
}

func (f *RegionForm) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Submitting - идёт отправка, кнопка сохранения должна быть недоступна
func (f *RegionForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

func (f *RegionForm) SetTitle(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.title = title
}

// SelectCity выбирает город. Если список загружен, город должен в нём быть.
func (f *RegionForm) SelectCity(cityID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cities != nil && cityID != "" {
		found := false
		for _, c := range f.cities {
			if c.ID == cityID {
				found = true
				break
			}
		}
		if !found {
			return errors.ErrCityNotFound.WithDetails(map[string]interface{}{"field": FieldCity})
		}
	}
	f.cityID = cityID
	return nil
}

func (f *RegionForm) SetLatText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latText = text
}

func (f *RegionForm) SetLonText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lonText = text
}

func (f *RegionForm) SetRadiusText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.radiusText = text
}

// Fields - текущие значения текстовых полей
type Fields struct {
	Title  string
	CityID string
	Lat    string
	Lon    string
	Radius string
}

func (f *RegionForm) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Fields{
		Title:  f.title,
		CityID: f.cityID,
		Lat:    f.latText,
		Lon:    f.lonText,
		Radius: f.radiusText,
	}
}

// Error - первое нарушенное правило или ошибка последней отправки
func (f *RegionForm) Error() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// InsufficientVertices - у полигона меньше минимального числа вершин
func (f *RegionForm) InsufficientVertices() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insufficient
}

// Boundary - граница, полученная от редактора
func (f *RegionForm) Boundary() domain.Boundary {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.boundary
}

// BlurCoordinates проверяет введённые широту и долготу и передаёт их на карту.
// Неверное значение на карту не попадает.
func (f *RegionForm) BlurCoordinates() error {
	f.mu.Lock()
	latText, lonText := f.latText, f.lonText
	f.mu.Unlock()

	p, err := parseCenter(latText, lonText)
	if err == nil && f.editor.Mode() == domain.BoundaryModePoint {
		err = f.push(func() error { return f.editor.SetCenter(p) })
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = nil
	if err != nil {
		f.err = err
		return err
	}
	return nil
}

// BlurRadius проверяет радиус и передаёт его на карту. Пустое поле убирает радиус.
func (f *RegionForm) BlurRadius() error {
	f.mu.Lock()
	text := f.radiusText
	f.mu.Unlock()

	r, err := parseRadius(text)
	if err == nil && f.editor.Mode() == domain.BoundaryModePoint {
		err = f.push(func() error { return f.editor.SetRadius(r) })
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = nil
	if err != nil {
		f.err = err
		return err
	}
	return nil
}

// push передаёт введённые значения в редактор. Граница возвращается через onPointChange,
// текст полей остаётся таким, как его ввёл пользователь.
func (f *RegionForm) push(fn func() error) error {
	f.mu.Lock()
	f.pushing++
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.pushing--
		f.mu.Unlock()
	}()
	return fn()
}

// SwitchMode переключает режим границы через редактор
func (f *RegionForm) SwitchMode(mode domain.BoundaryMode) {
	f.editor.SwitchMode(mode)
}

func (f *RegionForm) onPointChange(center domain.GeoPoint, radius *float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boundary = domain.NewPointBoundary(center, radius)
	f.insufficient = false
	if f.pushing > 0 {
		return
	}
	f.latText = formatFloat(center.Lat)
	f.lonText = formatFloat(center.Lon)
	f.radiusText = ""
	if radius != nil {
		f.radiusText = formatFloat(*radius)
	}
	f.err = nil
}

func (f *RegionForm) onPolygonChange(change editor.PolygonChange) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boundary = domain.NewPolygonBoundary(change.Vertices)
	f.insufficient = !change.Ready
}

// Submit проверяет поля по порядку (название, город, широта, долгота, радиус, вершины)
// и отправляет ровно один запрос создания или изменения. При ошибке форма остаётся открытой
// с введёнными данными.
func (f *RegionForm) Submit(ctx context.Context) (*domain.Region, error) {
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
	fields := Fields{Title: f.title, CityID: f.cityID, Lat: f.latText, Lon: f.lonText, Radius: f.radiusText}
	regionID := f.regionID
	boundary := f.boundary
	f.mu.Unlock()

	mutation, err := f.validate(fields, boundary)
	if err != nil {
		f.mu.Lock()
		if gen == f.generation {
			f.submitting = false
			f.err = err
			f.insufficient = errors.Is(err, errors.ErrInsufficientVertices)
		}
		f.mu.Unlock()
		metrics.FormSubmitsTotal.WithLabelValues("region", "invalid").Inc()
		f.logger.Debug("Region form validation failed", zap.Error(err))
		return nil, err
	}

	var region *domain.Region
	if regionID == "" {
		region, err = f.api.CreateRegion(ctx, mutation)
	} else {
		region, err = f.api.UpdateRegion(ctx, regionID, mutation)
	}

	f.mu.Lock()
	if gen != f.generation {
		f.mu.Unlock()
		f.logger.Debug("Dropping response for closed form", zap.String("region_id", regionID))
		return nil, ErrFormClosed
	}
	f.submitting = false
	if err != nil {
		submitErr := toSubmitError(err)
		f.err = submitErr
		f.mu.Unlock()
		metrics.FormSubmitsTotal.WithLabelValues("region", "failed").Inc()
		f.logger.Warn("Failed to save region",
			zap.String("region_id", regionID),
			zap.Error(err))
		return nil, submitErr
	}
	f.open = false
	f.generation++
	f.err = nil
	f.insufficient = false
	f.mu.Unlock()

	metrics.FormSubmitsTotal.WithLabelValues("region", "success").Inc()
	f.logger.Info("Region saved", zap.String("region_id", region.ID))
	if f.cfg.OnSuccess != nil {
		f.cfg.OnSuccess(region)
	}
	return region, nil
}

// validate возвращает тело запроса или первое нарушенное правило. Проверенные
// координаты и радиус передаются в редактор, граница возвращается через onPointChange.
func (f *RegionForm) validate(fields Fields, boundary domain.Boundary) (domain.RegionMutation, error) {
	if strings.TrimSpace(fields.Title) == "" {
		return domain.RegionMutation{}, fieldError(errors.ErrInvalidValue, FieldTitle, "Title is required")
	}
	if fields.CityID == "" {
		return domain.RegionMutation{}, fieldError(errors.ErrInvalidValue, FieldCity, "City is required")
	}

	if boundary.Mode == domain.BoundaryModePoint {
		center, err := parseCenter(fields.Lat, fields.Lon)
		if err != nil {
			return domain.RegionMutation{}, err
		}
		radius, err := parseRadius(fields.Radius)
		if err != nil {
			return domain.RegionMutation{}, err
		}
		err = f.push(func() error {
			if err := f.editor.SetCenter(center); err != nil {
				return err
			}
			return f.editor.SetRadius(radius)
		})
		if err != nil {
			return domain.RegionMutation{}, err
		}
		f.mu.Lock()
		boundary = f.boundary
		f.mu.Unlock()
	}

	if boundary.Mode == domain.BoundaryModePolygon && (boundary.Polygon == nil || !boundary.Polygon.Ready()) {
		count := 0
		if boundary.Polygon != nil {
			count = len(boundary.Polygon.Vertices)
		}
		return domain.RegionMutation{}, errors.ErrInsufficientVertices.WithDetails(map[string]interface{}{
			"field":   FieldPolygon,
			"count":   count,
			"minimum": domain.MinPolygonVertices,
		})
	}
	if err := boundary.Validate(); err != nil {
		return domain.RegionMutation{}, err
	}

	return domain.NewRegionMutation(strings.TrimSpace(fields.Title), fields.CityID, boundary), nil
}

func parseCenter(latText, lonText string) (domain.GeoPoint, error) {
	lat, err := geo.ParseLat(latText)
	if err != nil {
		return domain.GeoPoint{}, err
	}
	lon, err := geo.ParseLon(lonText)
	if err != nil {
		return domain.GeoPoint{}, err
	}
	return domain.GeoPoint{Lat: lat, Lon: lon}, nil
}

func parseRadius(text string) (*float64, error) {
	r, err := geo.ParseRadius(text)
	if err != nil {
		return nil, err
	}
	if r != nil && *r > geo.MaxRadiusMeters {
		return nil, fieldError(errors.ErrInvalidValue, FieldRadius,
			fmt.Sprintf("Radius must not exceed %g meters", geo.MaxRadiusMeters))
	}
	return r, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
