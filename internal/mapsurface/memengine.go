package mapsurface

import (
	"errors"
	"sort"
	"sync"

	"github.com/invotaxi/region-service/internal/domain"
)

// ErrAlreadyInitialized - повторная инициализация движка
var ErrAlreadyInitialized = errors.New("map engine already initialized")

// MemMarker - маркер в памяти
type MemMarker struct {
	Handle    Handle
	Point     domain.GeoPoint
	Style     MarkerStyle
	Draggable bool
}

// MemPolygon - контур в памяти
type MemPolygon struct {
	Handle Handle
	Path   []domain.GeoPoint
	Closed bool
}

// MemCircle - окружность в памяти
type MemCircle struct {
	Handle       Handle
	Center       domain.GeoPoint
	RadiusMeters float64
}

// MemEngine - движок карты без отрисовки. Хранит объекты в памяти и позволяет
// имитировать жесты пользователя; используется CLI и тестами.
type MemEngine struct {
	mu sync.Mutex

	next        Handle
	initialized int
	width       int
	height      int
	view        View
	opts        Options
	calls       int

	markers  map[Handle]*MemMarker
	polygons map[Handle]*MemPolygon
	circles  map[Handle]*MemCircle
	handlers []EngineHandler
}

// NewMemEngine создаёт пустой движок
func NewMemEngine() *MemEngine {
	return &MemEngine{
		markers:  make(map[Handle]*MemMarker),
		polygons: make(map[Handle]*MemPolygon),
		circles:  make(map[Handle]*MemCircle),
	}
}

func (m *MemEngine) Initialize(view View, opts Options) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized > 0 {
		return ErrAlreadyInitialized
	}
	m.initialized++
	m.view = view
	m.opts = opts
	return nil
}

func (m *MemEngine) InvalidateSize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.width, m.height = width, height
}

func (m *MemEngine) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

func (m *MemEngine) SetView(v View) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.opts.MaxZoom > 0 && v.Zoom > m.opts.MaxZoom {
		v.Zoom = m.opts.MaxZoom
	}
	if v.Zoom < m.opts.MinZoom {
		v.Zoom = m.opts.MinZoom
	}
	m.view = v
}

func (m *MemEngine) handle() Handle {
	m.next++
	m.calls++
	return m.next
}

func (m *MemEngine) AddMarker(p domain.GeoPoint, style MarkerStyle, draggable bool) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.handle()
	m.markers[h] = &MemMarker{Handle: h, Point: p, Style: style, Draggable: draggable}
	return h
}

func (m *MemEngine) MoveMarker(h Handle, p domain.GeoPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if mk, ok := m.markers[h]; ok {
		mk.Point = p
	}
}

func (m *MemEngine) RemoveMarker(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	delete(m.markers, h)
}

func (m *MemEngine) AddPolygon(path []domain.GeoPoint, closed bool) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.handle()
	m.polygons[h] = &MemPolygon{Handle: h, Path: clonePath(path), Closed: closed}
	return h
}

func (m *MemEngine) SetPolygonPath(h Handle, path []domain.GeoPoint, closed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if pg, ok := m.polygons[h]; ok {
		pg.Path = clonePath(path)
		pg.Closed = closed
	}
}

func (m *MemEngine) RemovePolygon(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	delete(m.polygons, h)
}

func (m *MemEngine) AddCircle(center domain.GeoPoint, radiusMeters float64) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.handle()
	m.circles[h] = &MemCircle{Handle: h, Center: center, RadiusMeters: radiusMeters}
	return h
}

func (m *MemEngine) UpdateCircle(h Handle, center domain.GeoPoint, radiusMeters float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if c, ok := m.circles[h]; ok {
		c.Center = center
		c.RadiusMeters = radiusMeters
	}
}

func (m *MemEngine) RemoveCircle(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	delete(m.circles, h)
}

func (m *MemEngine) Subscribe(h EngineHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, h)
}

func (m *MemEngine) subscribers() []EngineHandler {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EngineHandler, len(m.handlers))
	copy(out, m.handlers)
	return out
}

// Click имитирует клик по карте
func (m *MemEngine) Click(p domain.GeoPoint) {
	for _, h := range m.subscribers() {
		h.MapClick(p)
	}
}

// Drag имитирует перетаскивание маркера по точкам path: промежуточные события
// на каждую точку и одно событие окончания на последней
func (m *MemEngine) Drag(h Handle, path ...domain.GeoPoint) {
	if len(path) == 0 {
		return
	}
	handlers := m.subscribers()
	for _, p := range path {
		m.moveSilently(h, p)
		for _, eh := range handlers {
			eh.MarkerDrag(h, p)
		}
	}
	last := path[len(path)-1]
	for _, eh := range handlers {
		eh.MarkerDragEnd(h, last)
	}
}

// DoubleClick имитирует жест удаления на маркере
func (m *MemEngine) DoubleClick(h Handle) {
	for _, eh := range m.subscribers() {
		eh.MarkerDoubleClick(h)
	}
}

func (m *MemEngine) moveSilently(h Handle, p domain.GeoPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mk, ok := m.markers[h]; ok {
		mk.Point = p
	}
}

// Markers возвращает маркеры в порядке создания
func (m *MemEngine) Markers() []MemMarker {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MemMarker, 0, len(m.markers))
	for _, mk := range m.markers {
		out = append(out, *mk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// VertexMarkers - только маркеры вершин
func (m *MemEngine) VertexMarkers() []MemMarker {
	var out []MemMarker
	for _, mk := range m.Markers() {
		if mk.Style == MarkerVertex {
			out = append(out, mk)
		}
	}
	return out
}

// Polygons возвращает контуры в порядке создания
func (m *MemEngine) Polygons() []MemPolygon {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MemPolygon, 0, len(m.polygons))
	for _, pg := range m.polygons {
		out = append(out, MemPolygon{Handle: pg.Handle, Path: clonePath(pg.Path), Closed: pg.Closed})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// Circles возвращает окружности в порядке создания
func (m *MemEngine) Circles() []MemCircle {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MemCircle, 0, len(m.circles))
	for _, c := range m.circles {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// Calls - число вызовов, менявших объекты
func (m *MemEngine) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Initialized - сколько раз вызывалась инициализация
func (m *MemEngine) Initialized() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Subscribers - число подписанных обработчиков
func (m *MemEngine) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handlers)
}

// Size - последние размеры контейнера
func (m *MemEngine) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}
