package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pawmart-backend/internal/metrics"
	"pawmart-backend/internal/models"
	"pawmart-backend/pkg/messagequeue"
)

// Domain event types.
const (
	EventListingCreated     = "listing.created"
	EventListingApproved    = "listing.approved"
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// Event is the envelope put on the queue.
type Event struct {
	Type       string          `json:"type"`
	ID         string          `json:"id"`
	OccurredAt time.Time       `json:"occurredAt"`
	Data       json.RawMessage `json:"data"`
}

// ListingEvent is the payload of listing events.
type ListingEvent struct {
	Listing models.Listing `json:"listing"`
}

// OrderEvent is the payload of order events.
type OrderEvent struct {
	Order          models.Order `json:"order"`
	SellerEmail    string       `json:"sellerEmail,omitempty"`
	PreviousStatus string       `json:"previousStatus,omitempty"`
}

type queuePublisher struct {
	mq     messagequeue.MessageQueue
	queue  string
	logger *zap.Logger
	now    func() time.Time
}

// NewEventPublisher publishes events to queue. With a nil mq events are
// dropped.
func NewEventPublisher(mq messagequeue.MessageQueue, queue string, logger *zap.Logger) EventPublisher {
	if mq == nil {
		return noopPublisher{}
	}
	return &queuePublisher{mq: mq, queue: queue, logger: logger, now: time.Now}
}

func (p *queuePublisher) Publish(ctx context.Context, eventType string, data interface{}) {
	body, err := encodeEvent(eventType, data, p.now())
	if err != nil {
		metrics.EventsPublished.WithLabelValues(eventType, "error").Inc()
		p.logger.Error("Failed to encode event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := p.mq.Publish(ctx, p.queue, body); err != nil {
		metrics.EventsPublished.WithLabelValues(eventType, "error").Inc()
		p.logger.Warn("Failed to publish event", zap.String("type", eventType), zap.Error(err))
		return
	}
	metrics.EventsPublished.WithLabelValues(eventType, "ok").Inc()
}

func encodeEvent(eventType string, data interface{}, at time.Time) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{
		Type:       eventType,
		ID:         uuid.NewString(),
		OccurredAt: at.UTC(),
		Data:       raw,
	})
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, interface{}) {}
