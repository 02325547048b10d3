package normalize

import (
	"strings"

	"pawmart-backend/internal/models"
)

// Order maps a stored order document onto models.Order.
func Order(doc map[string]interface{}) models.Order {
	o := models.Order{
		ID:          identifier(doc["_id"]),
		BuyerName:   text(doc["buyerName"]),
		Email:       text(doc["email"]),
		ListingID:   identifier(doc["listingId"]),
		ListingName: text(doc["listingName"]),
		Quantity:    quantity(doc["quantity"]),
		Price:       Price(doc),
		Address:     text(doc["address"]),
		PickupDate:  firstText(doc, "pickupDate", "date"),
		Phone:       text(doc["phone"]),
		Notes:       text(doc["notes"]),
		Status:      strings.TrimSpace(text(doc["status"])),
		CreatedAt:   firstTime(doc, "createdAt", "created_at"),
	}
	if o.Status == "" {
		o.Status = models.OrderPending
	}
	return o
}

// Orders normalizes every document in docs.
func Orders(docs []map[string]interface{}) []models.Order {
	out := make([]models.Order, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Order(doc))
	}
	return out
}

func quantity(v interface{}) int {
	n, ok := integer(v)
	if !ok || n < 1 {
		return 1
	}
	return int(n)
}
