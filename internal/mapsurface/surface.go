package mapsurface

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/domain"
)

// DefaultZoom - масштаб карты при первой инициализации
const DefaultZoom = 12

// Surface - поверхность карты редактора. Инициализирует движок только когда у контейнера
// появились ненулевые размеры, рисует оверлеи через Reconcile и переводит жесты в события Listener.
// Не потокобезопасна: все вызовы выполняются из одного цикла событий.
type Surface struct {
	engine   Engine
	opts     Options
	logger   *zap.Logger
	listener Listener

	ready      bool
	subscribed bool
	view       View

	current Overlay
	pending *Overlay

	marker     Handle
	hasMarker  bool
	circle     Handle
	hasCircle  bool
	outline    Handle
	hasOutline bool
	vertices   []Handle
}

// NewSurface создаёт поверхность; движок ещё не инициализирован
func NewSurface(engine Engine, opts Options, initial domain.GeoPoint, logger *zap.Logger) *Surface {
	return &Surface{
		engine: engine,
		opts:   opts,
		logger: logger.Named("map_surface"),
		view:   View{Center: initial.Clamp(), Zoom: DefaultZoom},
	}
}

// SetListener задаёт получателя событий
func (s *Surface) SetListener(l Listener) {
	s.listener = l
}

// Ready - движок инициализирован
func (s *Surface) Ready() bool {
	return s.ready
}

// ContainerReady сообщает размеры контейнера. Пока размер нулевой, инициализация откладывается.
// Повторные вызовы после инициализации только пересчитывают размер.
func (s *Surface) ContainerReady(width, height int) error {
	if width <= 0 || height <= 0 {
		s.logger.Debug("Container has no size yet, deferring map init",
			zap.Int("width", width),
			zap.Int("height", height))
		return nil
	}

	if s.ready {
		s.engine.InvalidateSize(width, height)
		return nil
	}

	if err := s.engine.Initialize(s.view, s.opts); err != nil {
		return fmt.Errorf("failed to initialize map engine: %w", err)
	}
	s.engine.InvalidateSize(width, height)
	if !s.subscribed {
		s.engine.Subscribe(s)
		s.subscribed = true
	}
	s.ready = true

	s.logger.Debug("Map engine initialized",
		zap.Stringer("center", s.view.Center),
		zap.Float64("zoom", s.view.Zoom))

	if s.pending != nil {
		next := *s.pending
		s.pending = nil
		s.Render(next)
	}
	return nil
}

// Render приводит карту к желаемому оверлею. До инициализации оверлей запоминается.
func (s *Surface) Render(next Overlay) {
	next = next.Clone()
	if !s.ready {
		s.pending = &next
		return
	}

	ops := Reconcile(s.current, next)
	for _, op := range ops {
		s.apply(op)
	}
	s.current = next

	if len(ops) > 0 {
		s.logger.Debug("Overlay reconciled", zap.Int("ops", len(ops)))
	}
}

// Current возвращает копию отрисованного оверлея
func (s *Surface) Current() Overlay {
	return s.current.Clone()
}

// Recenter переносит центр карты, сохраняя текущий масштаб
func (s *Surface) Recenter(center domain.GeoPoint) {
	center = center.Clamp()
	if s.ready {
		s.view = s.engine.View()
	}
	s.view.Center = center
	if s.ready {
		s.engine.SetView(s.view)
	}
}

// View - текущий вид карты
func (s *Surface) View() View {
	if s.ready {
		return s.engine.View()
	}
	return s.view
}

func (s *Surface) apply(op Op) {
	e := s.engine
	switch op.Kind {
	case OpAddMarker:
		s.marker = e.AddMarker(op.Point, MarkerPoint, true)
		s.hasMarker = true
	case OpMoveMarker:
		e.MoveMarker(s.marker, op.Point)
	case OpRemoveMarker:
		e.RemoveMarker(s.marker)
		s.hasMarker = false
	case OpAddCircle:
		s.circle = e.AddCircle(op.Point, op.Radius)
		s.hasCircle = true
	case OpUpdateCircle:
		e.UpdateCircle(s.circle, op.Point, op.Radius)
	case OpRemoveCircle:
		e.RemoveCircle(s.circle)
		s.hasCircle = false
	case OpAddVertex:
		s.vertices = append(s.vertices, e.AddMarker(op.Point, MarkerVertex, true))
	case OpMoveVertex:
		e.MoveMarker(s.vertices[op.Index], op.Point)
	case OpRemoveVertex:
		e.RemoveMarker(s.vertices[op.Index])
		s.vertices = s.vertices[:op.Index]
	case OpAddOutline:
		s.outline = e.AddPolygon(op.Path, op.Closed)
		s.hasOutline = true
	case OpUpdateOutline:
		e.SetPolygonPath(s.outline, op.Path, op.Closed)
	case OpRemoveOutline:
		e.RemovePolygon(s.outline)
		s.hasOutline = false
	}
}

// indexOf возвращает индекс вершины по маркеру или PointMarker для маркера центра
func (s *Surface) indexOf(h Handle) (int, bool) {
	if s.hasMarker && h == s.marker {
		return PointMarker, true
	}
	for i, vh := range s.vertices {
		if vh == h {
			return i, true
		}
	}
	return 0, false
}

// follow обновляет отрисованное состояние вслед за перетаскиваемым маркером,
// чтобы контур и окружность двигались вместе с ним. Маркер, вытащенный за
// допустимые координаты, возвращается на границу; возвращает прижатую точку.
func (s *Surface) follow(h Handle, index int, raw domain.GeoPoint) domain.GeoPoint {
	p := raw.Clamp()
	if p != raw {
		s.engine.MoveMarker(h, p)
	}

	if index == PointMarker {
		s.current.Marker = &p
		if s.current.Circle != nil {
			s.current.Circle.Center = p
			s.engine.UpdateCircle(s.circle, p, s.current.Circle.RadiusMeters)
		}
		return p
	}
	s.current.Vertices[index] = p
	if path, closed, ok := s.current.Outline(); ok && s.hasOutline {
		s.engine.SetPolygonPath(s.outline, clonePath(path), closed)
	}
	return p
}

// MapClick реализует EngineHandler
func (s *Surface) MapClick(p domain.GeoPoint) {
	if s.listener == nil {
		return
	}
	s.listener.MapClick(p.Clamp())
}

// MarkerDrag реализует EngineHandler
func (s *Surface) MarkerDrag(h Handle, p domain.GeoPoint) {
	idx, ok := s.indexOf(h)
	if !ok {
		return
	}
	p = s.follow(h, idx, p)
	if s.listener != nil {
		s.listener.VertexDrag(idx, p)
	}
}

// MarkerDragEnd реализует EngineHandler
func (s *Surface) MarkerDragEnd(h Handle, p domain.GeoPoint) {
	idx, ok := s.indexOf(h)
	if !ok {
		return
	}
	p = s.follow(h, idx, p)
	if s.listener != nil {
		s.listener.VertexDragEnd(idx, p)
	}
}

// MarkerDoubleClick реализует EngineHandler
func (s *Surface) MarkerDoubleClick(h Handle) {
	idx, ok := s.indexOf(h)
	if !ok || idx == PointMarker {
		return
	}
	if !s.current.VerticesRemovable {
		s.logger.Debug("Vertex removal suppressed", zap.Int("vertices", len(s.current.Vertices)))
		return
	}
	if s.listener != nil {
		s.listener.VertexRemove(idx)
	}
}
