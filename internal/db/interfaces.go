package db

import (
	"context"

	"pawmart-backend/internal/models"
)

// Document is the raw field map of a stored document. The document ID is
// always present under "_id".
type Document = map[string]interface{}

// ListingRepository defines storage operations for listings. Reads return raw
// documents; callers normalize them.
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) (string, error)
	GetByID(ctx context.Context, listingID string) (Document, error)
	// ListByStatus returns listings with the given status, or every listing
	// when status is empty.
	ListByStatus(ctx context.Context, status string) ([]Document, error)
	// ListByOwner returns listings anchored on either owner.UserID or
	// owner.Email, without duplicates.
	ListByOwner(ctx context.Context, owner models.Owner) ([]Document, error)
	Update(ctx context.Context, listingID string, fields map[string]interface{}) error
	Delete(ctx context.Context, listingID string) error
}

// OrderRepository defines storage operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) (string, error)
	GetByID(ctx context.Context, orderID string) (Document, error)
	// ListByEmail returns the orders placed by email, or every order when
	// email is empty.
	ListByEmail(ctx context.Context, email string) ([]Document, error)
	Update(ctx context.Context, orderID string, fields map[string]interface{}) error
	Delete(ctx context.Context, orderID string) error
}

// UserRepository defines storage operations for user records.
type UserRepository interface {
	GetByID(ctx context.Context, uid string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, uid string, fields map[string]interface{}) error
	List(ctx context.Context) ([]*models.User, error)
}

// AuditRepository defines the interface for audit log storage.
type AuditRepository interface {
	Create(ctx context.Context, entry models.AuditLog) error
}
