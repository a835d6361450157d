// Package mapsurface связывает редактор границ с движком карты: рисует оверлеи по желаемому
// состоянию и переводит жесты пользователя в события редактора.
package mapsurface

import (
	"github.com/invotaxi/region-service/internal/domain"
)

// Handle - идентификатор объекта, созданного движком карты
type Handle int64

// MarkerStyle - вид маркера
type MarkerStyle int

const (
	// MarkerPoint - маркер центра в режиме точки
	MarkerPoint MarkerStyle = iota
	// MarkerVertex - маркер вершины полигона
	MarkerVertex
)

func (s MarkerStyle) String() string {
	switch s {
	case MarkerPoint:
		return "point"
	case MarkerVertex:
		return "vertex"
	}
	return "unknown"
}

// View - центр и масштаб карты
type View struct {
	Center domain.GeoPoint `json:"center"`
	Zoom   float64         `json:"zoom"`
}

// Options - явная конфигурация движка (иконки, атрибуция, пределы масштаба).
// Передаётся при инициализации вместо глобальных настроек библиотеки карт.
type Options struct {
	IconURL       string
	VertexIconURL string
	Attribution   string
	MinZoom       float64
	MaxZoom       float64
}

// DefaultOptions - настройки по умолчанию
func DefaultOptions() Options {
	return Options{
		IconURL:       "/static/map/marker-icon.png",
		VertexIconURL: "/static/map/vertex-icon.png",
		Attribution:   "© OpenStreetMap contributors",
		MinZoom:       3,
		MaxZoom:       19,
	}
}

// Engine - базовый движок карты. Реализации рисуют объекты и сообщают о жестах через EngineHandler.
type Engine interface {
	// Initialize создаёт карту в контейнере; вызывается один раз
	Initialize(view View, opts Options) error
	// InvalidateSize сообщает движку новые размеры контейнера
	InvalidateSize(width, height int)

	View() View
	SetView(v View)

	AddMarker(p domain.GeoPoint, style MarkerStyle, draggable bool) Handle
	MoveMarker(h Handle, p domain.GeoPoint)
	RemoveMarker(h Handle)

	// AddPolygon рисует контур; closed=false - незамкнутая линия
	AddPolygon(path []domain.GeoPoint, closed bool) Handle
	SetPolygonPath(h Handle, path []domain.GeoPoint, closed bool)
	RemovePolygon(h Handle)

	AddCircle(center domain.GeoPoint, radiusMeters float64) Handle
	UpdateCircle(h Handle, center domain.GeoPoint, radiusMeters float64)
	RemoveCircle(h Handle)

	// Subscribe подписывает обработчик на клики по карте и жесты с маркерами
	Subscribe(h EngineHandler)
}

// EngineHandler получает сырые события движка
type EngineHandler interface {
	// MapClick - клик по карте мимо маркеров
	MapClick(p domain.GeoPoint)
	// MarkerDrag - промежуточная позиция перетаскиваемого маркера
	MarkerDrag(h Handle, p domain.GeoPoint)
	// MarkerDragEnd - окончание перетаскивания
	MarkerDragEnd(h Handle, p domain.GeoPoint)
	// MarkerDoubleClick - жест удаления на маркере
	MarkerDoubleClick(h Handle)
}

// PointMarker - индекс, с которым приходят события маркера центра в режиме точки
const PointMarker = -1

// Listener получает события поверхности карты в терминах вершин
type Listener interface {
	MapClick(p domain.GeoPoint)
	VertexDrag(index int, p domain.GeoPoint)
	VertexDragEnd(index int, p domain.GeoPoint)
	VertexRemove(index int)
}
