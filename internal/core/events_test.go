package core

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pawmart-backend/internal/models"
	"pawmart-backend/pkg/messagequeue"
)

type recordingQueue struct {
	queue string
	body  []byte
	err   error
}

func (q *recordingQueue) Publish(_ context.Context, queueName string, body []byte) error {
	q.queue, q.body = queueName, body
	return q.err
}

func (q *recordingQueue) Consume(context.Context, string, messagequeue.Handler) error { return nil }
func (q *recordingQueue) Close() error                                                { return nil }

func TestEventEnvelope(t *testing.T) {
	q := &recordingQueue{}
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := &queuePublisher{mq: q, queue: "pawmart.events", logger: zap.NewNop(), now: func() time.Time { return at }}

	p.Publish(context.Background(), EventListingApproved, ListingEvent{Listing: models.Listing{ID: "l1", Name: "Budgie"}})

	assert.Equal(t, "pawmart.events", q.queue)
	var ev Event
	require.NoError(t, json.Unmarshal(q.body, &ev))
	assert.Equal(t, EventListingApproved, ev.Type)
	assert.NotEmpty(t, ev.ID)
	assert.True(t, at.Equal(ev.OccurredAt))

	var payload ListingEvent
	require.NoError(t, json.Unmarshal(ev.Data, &payload))
	assert.Equal(t, "l1", payload.Listing.ID)
}

func TestPublishFailureDoesNotPanic(t *testing.T) {
	q := &recordingQueue{err: errors.New("channel closed")}
	p := NewEventPublisher(q, "pawmart.events", zap.NewNop())

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), EventOrderCreated, OrderEvent{})
	})
}

func TestNilQueueDropsEvents(t *testing.T) {
	p := NewEventPublisher(nil, "pawmart.events", zap.NewNop())
	assert.IsType(t, noopPublisher{}, p)
}
