package domain

import "time"

// Stream names
const (
	StreamRegionChanged = "stream:region:changed"
)

// RegionEventType - вид изменения региона
type RegionEventType string

const (
	RegionCreated RegionEventType = "created"
	RegionUpdated RegionEventType = "updated"
	RegionDeleted RegionEventType = "deleted"
)

// RegionEvent - событие изменения региона, публикуется в Redis Stream
type RegionEvent struct {
	Type     RegionEventType `json:"type"`
	RegionID string          `json:"region_id"`
	CityID   string          `json:"city_id,omitempty"`
	At       time.Time       `json:"at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
