package normalize

import (
	"strings"

	"pawmart-backend/internal/models"
)

// Listing maps a stored listing document onto models.Listing. The document id
// is read from "_id"; repositories inject it when loading from Firestore.
func Listing(doc map[string]interface{}) models.Listing {
	l := models.Listing{
		ID:          identifier(doc["_id"]),
		Name:        text(doc["name"]),
		Category:    text(doc["category"]),
		Price:       Price(doc),
		Location:    text(doc["location"]),
		Description: text(doc["description"]),
		ImageURL:    firstText(doc, "imageUrl", "image"),
		Email:       text(doc["email"]),
		PickupDate:  firstText(doc, "pickupDate", "date"),
		UserID:      optionalText(doc["userId"]),
		UserName:    optionalText(doc["userName"]),
		Status:      listingStatus(doc["status"]),
		CreatedAt:   firstTime(doc, "createdAt", "created_at"),
	}
	if t, ok := timestamp(doc["updatedAt"]); ok {
		l.UpdatedAt = &t
	}
	return l
}

// Listings normalizes every document in docs.
func Listings(docs []map[string]interface{}) []models.Listing {
	out := make([]models.Listing, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Listing(doc))
	}
	return out
}

// listingStatus only recognizes approval; anything else stays hidden as pending.
func listingStatus(v interface{}) string {
	if strings.EqualFold(strings.TrimSpace(text(v)), models.ListingApproved) {
		return models.ListingApproved
	}
	return models.ListingPending
}
