package editor

import (
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/mapsurface"
	"github.com/invotaxi/region-service/internal/metrics"
	"github.com/invotaxi/region-service/internal/pkg/errors"
)

// PolygonChange - полное состояние полигона после зафиксированного изменения
type PolygonChange struct {
	Vertices []domain.GeoPoint
	// Ready - вершин достаточно для сохранения
	Ready bool
}

// Coordinates - вершины в формате API: [[lat, lon], ...]
func (c PolygonChange) Coordinates() [][]float64 {
	return domain.PolygonBoundary{Vertices: c.Vertices}.Coordinates()
}

// Config - параметры редактора
type Config struct {
	Initial       domain.Boundary
	DefaultCenter domain.GeoPoint
	// OnPointChange вызывается с центром и радиусом после каждого изменения в режиме точки
	OnPointChange func(center domain.GeoPoint, radius *float64)
	// OnPolygonChange вызывается с полным списком вершин после каждого изменения в режиме полигона
	OnPolygonChange func(change PolygonChange)
}

// Status - прогресс заполнения границы для формы
type Status struct {
	Mode       domain.BoundaryMode `json:"mode"`
	Count      int                 `json:"count"`
	Minimum    int                 `json:"minimum"`
	Incomplete bool                `json:"incomplete"`
	Progress   string              `json:"progress"`
}

// ErrDragInProgress - значение из формы пришло, пока пользователь тянет маркер
var ErrDragInProgress = stderrors.New("marker drag is in progress")

// Editor связывает модель границы с поверхностью карты.
// Жесты приходят через mapsurface.Listener, зафиксированные изменения уходят в колбэки.
// Не потокобезопасен: вызывается из того же цикла событий, что и Surface.
type Editor struct {
	model   *Model
	surface *mapsurface.Surface
	logger  *zap.Logger

	onPoint   func(domain.GeoPoint, *float64)
	onPolygon func(PolygonChange)

	dragging bool
}

// New создаёт редактор и отрисовывает начальную границу
func New(surface *mapsurface.Surface, cfg Config, logger *zap.Logger) *Editor {
	e := &Editor{
		model:     NewModel(cfg.Initial, cfg.DefaultCenter),
		surface:   surface,
		logger:    logger.Named("boundary_editor"),
		onPoint:   cfg.OnPointChange,
		onPolygon: cfg.OnPolygonChange,
	}
	surface.SetListener(e)
	e.render()
	if c, ok := e.model.Boundary().Center(); ok {
		surface.Recenter(c)
	}
	return e
}

// Mode - текущий режим
func (e *Editor) Mode() domain.BoundaryMode {
	return e.model.Mode()
}

// Boundary - снимок текущей границы
func (e *Editor) Boundary() domain.Boundary {
	return e.model.Boundary()
}

// Status возвращает число точек и признак неполного полигона
func (e *Editor) Status() Status {
	s := Status{Mode: e.model.Mode(), Count: e.model.Count()}
	if s.Mode == domain.BoundaryModePolygon {
		s.Minimum = domain.MinPolygonVertices
		s.Incomplete = s.Count < s.Minimum
		s.Progress = fmt.Sprintf("%d of minimum %d points", s.Count, s.Minimum)
		return s
	}
	s.Minimum = 1
	s.Progress = "1 point"
	return s
}

// SetCenter переносит точку по значению, введённому в форме. Значение проверяется,
// карта центрируется без смены масштаба.
func (e *Editor) SetCenter(p domain.GeoPoint) error {
	if e.model.Mode() != domain.BoundaryModePoint {
		return ErrWrongMode
	}
	if !p.Valid() {
		return errors.ErrInvalidRange.WithMessage(fmt.Sprintf("Coordinates %s are out of range", p))
	}
	if err := e.apply(func() error { return e.model.SetCenter(p) }); err != nil {
		return err
	}
	e.surface.Recenter(p)
	return nil
}

// SetRadius задаёт радиус из формы; nil убирает окружность
func (e *Editor) SetRadius(r *float64) error {
	if e.model.Mode() != domain.BoundaryModePoint {
		return ErrWrongMode
	}
	return e.apply(func() error { return e.model.SetRadius(r) })
}

// apply - изменение от хоста. Фиксируется тем же commit, что и жесты, поэтому
// хост получает границу только через колбэк. Во время перетаскивания не применяется.
func (e *Editor) apply(mutate func() error) error {
	if e.dragging {
		return ErrDragInProgress
	}
	if err := mutate(); err != nil {
		return err
	}
	e.commit()
	return nil
}

// SwitchMode переключает режим и сообщает новое состояние
func (e *Editor) SwitchMode(mode domain.BoundaryMode) {
	if !e.model.SwitchMode(mode) {
		return
	}
	e.dragging = false
	e.logger.Debug("Boundary mode switched", zap.String("mode", string(mode)))
	e.commit()
	if mode == domain.BoundaryModePoint {
		e.surface.Recenter(e.model.Center())
	}
}

// Reset заменяет границу без вызова колбэков, например при повторном открытии формы
func (e *Editor) Reset(b domain.Boundary) {
	e.dragging = false
	e.model.Reset(b)
	e.render()
	if c, ok := e.model.Boundary().Center(); ok {
		e.surface.Recenter(c)
	}
}

// MapClick реализует mapsurface.Listener
func (e *Editor) MapClick(p domain.GeoPoint) {
	var err error
	if e.model.Mode() == domain.BoundaryModePolygon {
		err = e.model.AddVertex(p)
	} else {
		err = e.model.SetCenter(p)
	}
	if err != nil {
		e.logger.Debug("Map click ignored", zap.Error(err))
		return
	}
	e.commit()
}

// VertexDrag реализует mapsurface.Listener. Поверхность уже сдвинула оверлей,
// модель обновляется без фиксации.
func (e *Editor) VertexDrag(index int, p domain.GeoPoint) {
	if err := e.move(index, p); err != nil {
		e.logger.Debug("Drag ignored", zap.Int("index", index), zap.Error(err))
		return
	}
	e.dragging = true
}

// VertexDragEnd реализует mapsurface.Listener
func (e *Editor) VertexDragEnd(index int, p domain.GeoPoint) {
	e.dragging = false
	if err := e.move(index, p); err != nil {
		e.logger.Debug("Drag end ignored", zap.Int("index", index), zap.Error(err))
		return
	}
	e.commit()
}

// VertexRemove реализует mapsurface.Listener
func (e *Editor) VertexRemove(index int) {
	if !e.model.RemoveVertex(index) {
		return
	}
	e.commit()
}

func (e *Editor) move(index int, p domain.GeoPoint) error {
	p = p.Clamp()
	if index == mapsurface.PointMarker {
		return e.model.SetCenter(p)
	}
	return e.model.MoveVertex(index, p)
}

func (e *Editor) render() {
	e.surface.Render(mapsurface.OverlayFromBoundary(e.model.Boundary()))
}

// commit отрисовывает модель и вызывает ровно один колбэк с полным состоянием
func (e *Editor) commit() {
	e.render()
	metrics.EditorCommitsTotal.WithLabelValues(string(e.model.Mode())).Inc()

	if e.model.Mode() == domain.BoundaryModePolygon {
		vertices := e.model.Vertices()
		change := PolygonChange{
			Vertices: vertices,
			Ready:    domain.PolygonBoundary{Vertices: vertices}.Ready(),
		}
		if e.onPolygon != nil {
			e.onPolygon(change)
		}
		return
	}

	if e.onPoint != nil {
		e.onPoint(e.model.Center(), e.model.Radius())
	}
}
