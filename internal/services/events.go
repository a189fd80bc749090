package services

import (
	"encoding/json"
	"time"

	"katalog/internal/models"

	"go.uber.org/zap"
)

// Product event types.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher delivers product lifecycle events to a broker.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// ProductEvent is the message body of a product lifecycle event.
type ProductEvent struct {
	Event string    `json:"event"`
	ID    string    `json:"id"`
	Slug  string    `json:"slug"`
	Name  string    `json:"name"`
	At    time.Time `json:"at"`
}

// publishProductEvent sends an event when a publisher is configured. Failures
// are logged and never fail the request that caused the event.
func publishProductEvent(pub EventPublisher, log *zap.Logger, eventType string, p *models.Product) {
	if pub == nil {
		return
	}

	body, err := json.Marshal(ProductEvent{
		Event: eventType,
		ID:    p.ID,
		Slug:  p.Slug,
		Name:  p.Name,
		At:    time.Now().UTC(),
	})
	if err != nil {
		log.Warn("failed to marshal product event", zap.String("event", eventType), zap.Error(err))
		return
	}
	if err := pub.Publish(eventType, body); err != nil {
		log.Warn("failed to publish product event",
			zap.String("event", eventType),
			zap.String("product_id", p.ID),
			zap.Error(err))
		return
	}
	log.Debug("published product event", zap.String("event", eventType), zap.String("product_id", p.ID))
}
