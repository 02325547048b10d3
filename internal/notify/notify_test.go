package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pawmart-backend/internal/core"
	"pawmart-backend/internal/models"
	"pawmart-backend/pkg/mailer"
)

type fakeSender struct {
	sent []mailer.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func envelope(t *testing.T, eventType string, data interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	body, err := json.Marshal(core.Event{Type: eventType, ID: "ev-1", OccurredAt: time.Now(), Data: raw})
	require.NoError(t, err)
	return body
}

func TestHandleOrderCreatedMailsBuyerAndSeller(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, zap.NewNop())

	body := envelope(t, core.EventOrderCreated, core.OrderEvent{
		Order:       models.Order{ID: "o1", Email: "buyer@example.com", BuyerName: "Bea", ListingName: "Kibble", Quantity: 2},
		SellerEmail: "seller@example.com",
	})
	require.NoError(t, n.Handle(context.Background(), body))

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "buyer@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Body, "2 x Kibble")
	assert.Equal(t, "seller@example.com", sender.sent[1].To)
}

func TestHandleOrderCreatedSkipsSellerWhenSameAsBuyer(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, zap.NewNop())

	body := envelope(t, core.EventOrderCreated, core.OrderEvent{
		Order:       models.Order{ID: "o1", Email: "me@example.com"},
		SellerEmail: "ME@example.com",
	})
	require.NoError(t, n.Handle(context.Background(), body))
	assert.Len(t, sender.sent, 1)
}

func TestHandleListingApproved(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, zap.NewNop())

	body := envelope(t, core.EventListingApproved, core.ListingEvent{
		Listing: models.Listing{ID: "l1", Name: "Puppy", Email: "owner@example.com"},
	})
	require.NoError(t, n.Handle(context.Background(), body))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "owner@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Subject, "Puppy")
}

func TestHandleOrderStatusChanged(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, zap.NewNop())

	body := envelope(t, core.EventOrderStatusChanged, core.OrderEvent{
		Order:          models.Order{ID: "o1", Email: "buyer@example.com", Status: "shipped"},
		PreviousStatus: "pending",
	})
	require.NoError(t, n.Handle(context.Background(), body))
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Body, `"pending"`)
	assert.Contains(t, sender.sent[0].Body, `"shipped"`)
}

func TestHandleIgnoresUnknownAndEmailLessEvents(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, zap.NewNop())

	require.NoError(t, n.Handle(context.Background(), envelope(t, core.EventListingCreated, core.ListingEvent{})))
	require.NoError(t, n.Handle(context.Background(), envelope(t, core.EventListingApproved, core.ListingEvent{})))
	assert.Empty(t, sender.sent)
}

func TestHandleErrors(t *testing.T) {
	n := NewNotifier(&fakeSender{}, zap.NewNop())
	assert.Error(t, n.Handle(context.Background(), []byte("not json")))

	failing := NewNotifier(&fakeSender{err: errors.New("relay down")}, zap.NewNop())
	body := envelope(t, core.EventListingApproved, core.ListingEvent{Listing: models.Listing{Email: "a@example.com"}})
	err := failing.Handle(context.Background(), body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relay down")
}
