// Package notify turns domain events into e-mail.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pawmart-backend/internal/core"
	"pawmart-backend/pkg/mailer"
)

// Sender delivers one message. *mailer.Mailer satisfies it.
type Sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Notifier handles events consumed from the queue.
type Notifier struct {
	sender Sender
	logger *zap.Logger
}

// NewNotifier creates a Notifier that delivers through sender.
//
// The notifier keeps no state between events; every message it sends is
// derived from the event payload alone, so the same Notifier can serve any
// number of consumers. Delivery errors are returned to the consumer, which
// rejects the message without requeueing it.
func NewNotifier(sender Sender, logger *zap.Logger) *Notifier {
	return &Notifier{sender: sender, logger: logger}
}

// Handle decodes one event envelope and sends the matching messages.
// Undecodable bodies are returned as errors so the consumer drops them;
// unknown event types are ignored.
func (n *Notifier) Handle(ctx context.Context, body []byte) error {
	var ev core.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	var msgs []mailer.Message
	switch ev.Type {
	case core.EventOrderCreated:
		var data core.OrderEvent
		if err := json.Unmarshal(ev.Data, &data); err != nil {
			return fmt.Errorf("decode %s: %w", ev.Type, err)
		}
		msgs = orderCreated(data)
	case core.EventOrderStatusChanged:
		var data core.OrderEvent
		if err := json.Unmarshal(ev.Data, &data); err != nil {
			return fmt.Errorf("decode %s: %w", ev.Type, err)
		}
		msgs = orderStatusChanged(data)
	case core.EventListingApproved:
		var data core.ListingEvent
		if err := json.Unmarshal(ev.Data, &data); err != nil {
			return fmt.Errorf("decode %s: %w", ev.Type, err)
		}
		msgs = listingApproved(data)
	default:
		n.logger.Debug("Ignoring event", zap.String("type", ev.Type), zap.String("id", ev.ID))
		return nil
	}

	for _, msg := range msgs {
		if err := n.sender.Send(ctx, msg); err != nil {
			return fmt.Errorf("send %s to %s: %w", ev.Type, msg.To, err)
		}
		n.logger.Info("Notification sent", zap.String("type", ev.Type), zap.String("id", ev.ID), zap.String("to", msg.To))
	}
	return nil
}

func orderCreated(data core.OrderEvent) []mailer.Message {
	o := data.Order
	var msgs []mailer.Message
	if o.Email != "" {
		msgs = append(msgs, mailer.Message{
			To:      o.Email,
			Subject: fmt.Sprintf("Your Paw-Mart order for %s", o.ListingName),
			Body: fmt.Sprintf("Hi %s,\n\nWe received your order for %d x %s (%.2f each).\nPickup date: %s\nAddress: %s\n\nOrder id: %s\n",
				o.BuyerName, o.Quantity, o.ListingName, o.Price, o.PickupDate, o.Address, o.ID),
		})
	}
	if data.SellerEmail != "" && !strings.EqualFold(data.SellerEmail, o.Email) {
		msgs = append(msgs, mailer.Message{
			To:      data.SellerEmail,
			Subject: fmt.Sprintf("New order for %s", o.ListingName),
			Body: fmt.Sprintf("%s ordered %d x %s.\nContact: %s %s\nPickup date: %s\nNotes: %s\n",
				o.BuyerName, o.Quantity, o.ListingName, o.Email, o.Phone, o.PickupDate, o.Notes),
		})
	}
	return msgs
}

func orderStatusChanged(data core.OrderEvent) []mailer.Message {
	o := data.Order
	if o.Email == "" {
		return nil
	}
	return []mailer.Message{{
		To:      o.Email,
		Subject: fmt.Sprintf("Order %s is now %s", o.ID, o.Status),
		Body:    fmt.Sprintf("Hi %s,\n\nYour order for %s changed from %q to %q.\n", o.BuyerName, o.ListingName, data.PreviousStatus, o.Status),
	}}
}

func listingApproved(data core.ListingEvent) []mailer.Message {
	l := data.Listing
	if l.Email == "" {
		return nil
	}
	return []mailer.Message{{
		To:      l.Email,
		Subject: fmt.Sprintf("Your listing %q is live", l.Name),
		Body:    fmt.Sprintf("Good news: %q was approved and is now visible on Paw-Mart.\n", l.Name),
	}}
}
