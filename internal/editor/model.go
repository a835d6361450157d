// Package editor - редактор границы региона: модель "точка + радиус" или полигон
// и её синхронизация с поверхностью карты.
package editor

import (
	"errors"

	"github.com/invotaxi/region-service/internal/domain"
)

// ErrWrongMode - операция недопустима в текущем режиме границы
var ErrWrongMode = errors.New("operation is not allowed in current boundary mode")

// ErrVertexIndex - нет вершины с таким индексом
var ErrVertexIndex = errors.New("vertex index out of range")

// Model - конечный автомат границы с двумя состояниями: Point и Polygon.
// Инвариант: в режиме точки vertices пуст, в режиме полигона center и radius не используются.
type Model struct {
	mode     domain.BoundaryMode
	center   domain.GeoPoint
	radius   *float64
	vertices []domain.GeoPoint

	// последнее состояние режима точки, восстанавливается при возврате из полигона
	lastPoint     *domain.PointBoundary
	defaultCenter domain.GeoPoint
}

// NewModel создаёт модель из начальной границы. Пустая граница означает режим точки в defaultCenter.
func NewModel(initial domain.Boundary, defaultCenter domain.GeoPoint) *Model {
	m := &Model{defaultCenter: defaultCenter}
	m.Reset(initial)
	return m
}

// Reset заменяет состояние модели границей b
func (m *Model) Reset(b domain.Boundary) {
	m.lastPoint = nil
	m.vertices = nil
	m.radius = nil
	m.center = m.defaultCenter

	switch {
	case b.Mode == domain.BoundaryModePolygon:
		m.mode = domain.BoundaryModePolygon
		if b.Polygon != nil {
			m.vertices = b.Polygon.Clone().Vertices
		} else {
			m.vertices = []domain.GeoPoint{}
		}
	default:
		m.mode = domain.BoundaryModePoint
		if b.Point != nil {
			m.center = b.Point.Center
			m.radius = copyRadius(b.Point.RadiusMeters)
		}
	}
}

func (m *Model) Mode() domain.BoundaryMode {
	return m.mode
}

// SwitchMode переключает режим. Возвращает false, если режим уже установлен.
func (m *Model) SwitchMode(mode domain.BoundaryMode) bool {
	if mode == m.mode {
		return false
	}

	switch mode {
	case domain.BoundaryModePolygon:
		m.lastPoint = &domain.PointBoundary{Center: m.center, RadiusMeters: copyRadius(m.radius)}
		m.center = domain.GeoPoint{}
		m.radius = nil
		m.vertices = []domain.GeoPoint{}
	case domain.BoundaryModePoint:
		m.vertices = nil
		m.center = m.defaultCenter
		m.radius = nil
		if m.lastPoint != nil {
			m.center = m.lastPoint.Center
			m.radius = copyRadius(m.lastPoint.RadiusMeters)
		}
	default:
		return false
	}
	m.mode = mode
	return true
}

// AddVertex добавляет вершину в конец. Верхней границы числа вершин нет.
func (m *Model) AddVertex(p domain.GeoPoint) error {
	if m.mode != domain.BoundaryModePolygon {
		return ErrWrongMode
	}
	m.vertices = append(m.vertices, p)
	return nil
}

// RemoveVertex удаляет вершину. При трёх вершинах и меньше ничего не делает.
func (m *Model) RemoveVertex(index int) bool {
	if m.mode != domain.BoundaryModePolygon {
		return false
	}
	if len(m.vertices) <= domain.MinPolygonVertices {
		return false
	}
	if index < 0 || index >= len(m.vertices) {
		return false
	}
	m.vertices = append(m.vertices[:index], m.vertices[index+1:]...)
	return true
}

// MoveVertex заменяет вершину index
func (m *Model) MoveVertex(index int, p domain.GeoPoint) error {
	if m.mode != domain.BoundaryModePolygon {
		return ErrWrongMode
	}
	if index < 0 || index >= len(m.vertices) {
		return ErrVertexIndex
	}
	m.vertices[index] = p
	return nil
}

func (m *Model) SetCenter(p domain.GeoPoint) error {
	if m.mode != domain.BoundaryModePoint {
		return ErrWrongMode
	}
	m.center = p
	return nil
}

// SetRadius задаёт радиус; nil - радиуса нет
func (m *Model) SetRadius(r *float64) error {
	if m.mode != domain.BoundaryModePoint {
		return ErrWrongMode
	}
	m.radius = copyRadius(r)
	return nil
}

func (m *Model) Center() domain.GeoPoint {
	return m.center
}

func (m *Model) Radius() *float64 {
	return copyRadius(m.radius)
}

// Vertices возвращает копию вершин
func (m *Model) Vertices() []domain.GeoPoint {
	out := make([]domain.GeoPoint, len(m.vertices))
	copy(out, m.vertices)
	return out
}

// Count - число точек границы: вершины полигона или 1 для точки
func (m *Model) Count() int {
	if m.mode == domain.BoundaryModePolygon {
		return len(m.vertices)
	}
	return 1
}

// Boundary - снимок текущей границы
func (m *Model) Boundary() domain.Boundary {
	if m.mode == domain.BoundaryModePolygon {
		return domain.NewPolygonBoundary(m.vertices)
	}
	return domain.NewPointBoundary(m.center, m.radius)
}

func copyRadius(r *float64) *float64 {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}
