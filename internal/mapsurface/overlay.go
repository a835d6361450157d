package mapsurface

import (
	"github.com/invotaxi/region-service/internal/domain"
)

// Circle - окружность радиуса обслуживания
type Circle struct {
	Center       domain.GeoPoint
	RadiusMeters float64
}

// Overlay - желаемое состояние оверлеев карты. Строится из границы, движок не хранит бизнес-состояние.
type Overlay struct {
	Marker   *domain.GeoPoint
	Circle   *Circle
	Vertices []domain.GeoPoint
	// VerticesRemovable - разрешён ли жест удаления вершины
	VerticesRemovable bool
}

// OverlayFromBoundary строит оверлей по границе
func OverlayFromBoundary(b domain.Boundary) Overlay {
	var o Overlay
	switch b.Mode {
	case domain.BoundaryModePoint:
		if b.Point == nil {
			return o
		}
		c := b.Point.Center
		o.Marker = &c
		if b.Point.RadiusMeters != nil {
			o.Circle = &Circle{Center: c, RadiusMeters: *b.Point.RadiusMeters}
		}
	case domain.BoundaryModePolygon:
		if b.Polygon == nil {
			return o
		}
		o.Vertices = b.Polygon.Clone().Vertices
		o.VerticesRemovable = len(o.Vertices) > domain.MinPolygonVertices
	}
	return o
}

// Outline - контур по вершинам: от двух вершин линия, от трёх замкнутый полигон
func (o Overlay) Outline() (path []domain.GeoPoint, closed bool, ok bool) {
	if len(o.Vertices) < 2 {
		return nil, false, false
	}
	return o.Vertices, len(o.Vertices) >= domain.MinPolygonVertices, true
}

// Clone возвращает глубокую копию
func (o Overlay) Clone() Overlay {
	out := Overlay{VerticesRemovable: o.VerticesRemovable}
	if o.Marker != nil {
		m := *o.Marker
		out.Marker = &m
	}
	if o.Circle != nil {
		c := *o.Circle
		out.Circle = &c
	}
	if o.Vertices != nil {
		out.Vertices = make([]domain.GeoPoint, len(o.Vertices))
		copy(out.Vertices, o.Vertices)
	}
	return out
}

// Empty - на карте ничего нет
func (o Overlay) Empty() bool {
	return o.Marker == nil && o.Circle == nil && len(o.Vertices) == 0
}

// OpKind - вид операции над объектами движка
type OpKind int

const (
	OpAddMarker OpKind = iota
	OpMoveMarker
	OpRemoveMarker
	OpAddCircle
	OpUpdateCircle
	OpRemoveCircle
	OpAddVertex
	OpMoveVertex
	OpRemoveVertex
	OpAddOutline
	OpUpdateOutline
	OpRemoveOutline
)

var opNames = map[OpKind]string{
	OpAddMarker:     "add_marker",
	OpMoveMarker:    "move_marker",
	OpRemoveMarker:  "remove_marker",
	OpAddCircle:     "add_circle",
	OpUpdateCircle:  "update_circle",
	OpRemoveCircle:  "remove_circle",
	OpAddVertex:     "add_vertex",
	OpMoveVertex:    "move_vertex",
	OpRemoveVertex:  "remove_vertex",
	OpAddOutline:    "add_outline",
	OpUpdateOutline: "update_outline",
	OpRemoveOutline: "remove_outline",
}

func (k OpKind) String() string {
	if n, ok := opNames[k]; ok {
		return n
	}
	return "unknown"
}

// Op - одна операция над оверлеем
type Op struct {
	Kind   OpKind
	Index  int
	Point  domain.GeoPoint
	Radius float64
	Path   []domain.GeoPoint
	Closed bool
}

// Reconcile вычисляет операции, переводящие prev в next. Для одинаковых оверлеев операций нет.
// Вершины сопоставляются по позиции: удаление из середины сдвигает хвост и снимает последний маркер.
func Reconcile(prev, next Overlay) []Op {
	var ops []Op

	switch {
	case prev.Marker == nil && next.Marker != nil:
		ops = append(ops, Op{Kind: OpAddMarker, Point: *next.Marker})
	case prev.Marker != nil && next.Marker == nil:
		ops = append(ops, Op{Kind: OpRemoveMarker})
	case prev.Marker != nil && next.Marker != nil && *prev.Marker != *next.Marker:
		ops = append(ops, Op{Kind: OpMoveMarker, Point: *next.Marker})
	}

	switch {
	case prev.Circle == nil && next.Circle != nil:
		ops = append(ops, Op{Kind: OpAddCircle, Point: next.Circle.Center, Radius: next.Circle.RadiusMeters})
	case prev.Circle != nil && next.Circle == nil:
		ops = append(ops, Op{Kind: OpRemoveCircle})
	case prev.Circle != nil && next.Circle != nil && *prev.Circle != *next.Circle:
		ops = append(ops, Op{Kind: OpUpdateCircle, Point: next.Circle.Center, Radius: next.Circle.RadiusMeters})
	}

	common := min(len(prev.Vertices), len(next.Vertices))
	for i := 0; i < common; i++ {
		if prev.Vertices[i] != next.Vertices[i] {
			ops = append(ops, Op{Kind: OpMoveVertex, Index: i, Point: next.Vertices[i]})
		}
	}
	for i := common; i < len(next.Vertices); i++ {
		ops = append(ops, Op{Kind: OpAddVertex, Index: i, Point: next.Vertices[i]})
	}
	// хвост снимаем с конца, чтобы индексы оставшихся маркеров не сдвигались
	for i := len(prev.Vertices) - 1; i >= common; i-- {
		ops = append(ops, Op{Kind: OpRemoveVertex, Index: i})
	}

	prevPath, prevClosed, hadOutline := prev.Outline()
	nextPath, nextClosed, hasOutline := next.Outline()
	switch {
	case !hadOutline && hasOutline:
		ops = append(ops, Op{Kind: OpAddOutline, Path: clonePath(nextPath), Closed: nextClosed})
	case hadOutline && !hasOutline:
		ops = append(ops, Op{Kind: OpRemoveOutline})
	case hadOutline && hasOutline && (prevClosed != nextClosed || !samePath(prevPath, nextPath)):
		ops = append(ops, Op{Kind: OpUpdateOutline, Path: clonePath(nextPath), Closed: nextClosed})
	}

	return ops
}

func samePath(a, b []domain.GeoPoint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func clonePath(p []domain.GeoPoint) []domain.GeoPoint {
	out := make([]domain.GeoPoint, len(p))
	copy(out, p)
	return out
}
