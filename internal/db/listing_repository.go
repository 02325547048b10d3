package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"pawmart-backend/internal/models"
)

const listingsCollection = "listings"

// firestoreListingRepository implements ListingRepository using Firestore.
type firestoreListingRepository struct {
	client *firestore.Client
}

// NewFirestoreListingRepository creates a new instance of firestoreListingRepository.
func NewFirestoreListingRepository(client *firestore.Client, logger *zap.Logger) ListingRepository {
	if client == nil {
		logger.Fatal("Firestore client is not initialized for ListingRepository.")
	}
	return &firestoreListingRepository{client: client}
}

// Create adds a new listing document with an auto-generated ID.
func (r *firestoreListingRepository) Create(ctx context.Context, listing *models.Listing) (string, error) {
	docRef := r.client.Collection(listingsCollection).NewDoc()
	if _, err := docRef.Create(ctx, listing); err != nil {
		return "", classify(err, "create listing")
	}
	listing.ID = docRef.ID
	return docRef.ID, nil
}

// GetByID retrieves a listing document by its ID.
func (r *firestoreListingRepository) GetByID(ctx context.Context, listingID string) (Document, error) {
	if err := requireID(listingID, "listing"); err != nil {
		return nil, err
	}
	snap, err := r.client.Collection(listingsCollection).Doc(listingID).Get(ctx)
	if err != nil {
		return nil, classify(err, fmt.Sprintf("get listing '%s'", listingID))
	}
	return documentData(snap), nil
}

// ListByStatus lists listings with the given status. An empty status lists
// every listing.
func (r *firestoreListingRepository) ListByStatus(ctx context.Context, status string) ([]Document, error) {
	query := r.client.Collection(listingsCollection).Query
	if status != "" {
		query = query.Where("status", "==", status)
	}
	return collect(query.Documents(ctx), "list listings")
}

// ListByOwner returns the listings anchored to either of owner's fields.
//
// Each non-empty anchor is its own equality query; an empty anchor is skipped
// so it can never match documents that lack the field. Older documents may
// carry only an email and newer ones both, so a listing can come back from
// both queries; results are merged by document ID.
func (r *firestoreListingRepository) ListByOwner(ctx context.Context, owner models.Owner) ([]Document, error) {
	coll := r.client.Collection(listingsCollection)
	seen := make(map[string]struct{})
	var out []Document

	anchors := []struct{ field, value string }{
		{"userId", owner.UserID},
		{"email", owner.Email},
	}
	for _, a := range anchors {
		if a.value == "" {
			continue
		}
		docs, err := collect(coll.Where(a.field, "==", a.value).Documents(ctx), "list listings by "+a.field)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			id, _ := doc["_id"].(string)
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, doc)
		}
	}
	return out, nil
}

// Update writes the given fields. It fails with ErrNotFound when the listing
// does not exist.
func (r *firestoreListingRepository) Update(ctx context.Context, listingID string, fields map[string]interface{}) error {
	if err := requireID(listingID, "listing"); err != nil {
		return err
	}
	_, err := r.client.Collection(listingsCollection).Doc(listingID).Update(ctx, toUpdates(fields))
	return classify(err, fmt.Sprintf("update listing '%s'", listingID))
}

func (r *firestoreListingRepository) Delete(ctx context.Context, listingID string) error {
	if err := requireID(listingID, "listing"); err != nil {
		return err
	}
	_, err := r.client.Collection(listingsCollection).Doc(listingID).Delete(ctx, firestore.Exists)
	return classify(err, fmt.Sprintf("delete listing '%s'", listingID))
}
