package core

import (
	"context"

	"pawmart-backend/internal/models"
)

// Authorizer is the authorization policy consulted by every service.
type Authorizer interface {
	IsAdmin(ctx context.Context, principal *models.Principal) (bool, error)
	Authorize(ctx context.Context, principal *models.Principal, owner models.Owner, requiredRole string) error
	AuthorizeListingCategory(ctx context.Context, principal *models.Principal, category string) error
}

// ListingService defines the interface for listing operations.
type ListingService interface {
	// ListPublic returns approved listings, newest first.
	ListPublic(ctx context.Context, query models.ListingQuery) ([]models.Listing, error)
	Latest(ctx context.Context) ([]models.Listing, error)
	Search(ctx context.Context, term string) ([]models.Listing, error)
	// Get returns one listing. A pending listing is only visible to its
	// owner or an admin; everyone else gets ErrNotFound. principal may be nil.
	Get(ctx context.Context, principal *models.Principal, listingID string) (*models.Listing, error)
	Create(ctx context.Context, principal *models.Principal, req models.CreateListingRequest) (*models.Listing, error)
	Update(ctx context.Context, principal *models.Principal, listingID string, req models.UpdateListingRequest) (*models.Listing, error)
	Delete(ctx context.Context, principal *models.Principal, listingID string) error
	ListByUser(ctx context.Context, principal *models.Principal, userID string) ([]models.Listing, error)
	AdminList(ctx context.Context, principal *models.Principal, status string) ([]models.Listing, error)
	Approve(ctx context.Context, principal *models.Principal, req models.ApproveListingRequest) (*models.Listing, error)
}

// OrderService defines the interface for order operations.
type OrderService interface {
	Create(ctx context.Context, principal *models.Principal, req models.CreateOrderRequest) (*models.Order, error)
	// List returns the orders placed by email. An admin passing an empty
	// email gets every order; anyone else gets their own.
	List(ctx context.Context, principal *models.Principal, email string) ([]models.Order, error)
	Get(ctx context.Context, principal *models.Principal, orderID string) (*models.Order, error)
	Delete(ctx context.Context, principal *models.Principal, orderID string) error
	UpdateStatus(ctx context.Context, principal *models.Principal, orderID, status string) (*models.Order, error)
}

// UserService defines the interface for user-related operations.
type UserService interface {
	// Upsert creates the caller's user record on first sync and refreshes
	// profile fields afterwards. It never changes the role. The bool reports
	// whether the record was created.
	Upsert(ctx context.Context, principal *models.Principal, req models.UpsertProfileRequest) (*models.User, bool, error)
	// Profile returns the caller's record, or a default shape when none exists.
	Profile(ctx context.Context, principal *models.Principal) (*models.User, error)
	List(ctx context.Context, principal *models.Principal) ([]*models.User, error)
	AdminUpdate(ctx context.Context, principal *models.Principal, uid string, req models.AdminUpdateUserRequest) (*models.User, error)
	AssignRole(ctx context.Context, principal *models.Principal, uid, role string) (*models.User, error)
}

// AuditService defines the interface for audit logging operations.
type AuditService interface {
	CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error
}

// EventPublisher emits domain events. Publishing never fails the caller.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{})
}
