package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultOrderStream - стрим событий о размещённых заказах
const DefaultOrderStream = "stream:taxi:order:placed"

// OrderPlacedEvent - сводка по обработанному заказу для внешних потребителей.
// Ответ диспетчерской целиком не публикуется.
type OrderPlacedEvent struct {
	EventID      uuid.UUID `json:"event_id"`
	RequestID    string    `json:"request_id,omitempty"`
	TaxiID       int64     `json:"taxi_id"`
	RouteID      int64     `json:"route_id"`
	RouteCreated bool      `json:"route_created"`
	Points       int       `json:"points"`
	Status       bool      `json:"status"`
	Error        string    `json:"error,omitempty"`
	PlacedAt     time.Time `json:"placed_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
