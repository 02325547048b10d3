package core

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"pawmart-backend/internal/db"
	"pawmart-backend/internal/models"
	"pawmart-backend/internal/normalize"
)

// orderService implements the OrderService interface. Orders are owned by
// the buyer's email.
type orderService struct {
	orderRepo   db.OrderRepository
	listingRepo db.ListingRepository
	policy      Authorizer
	audit       AuditService
	events      EventPublisher
	logger      *zap.Logger
	now         func() time.Time
}

// NewOrderService creates a new OrderService instance.
func NewOrderService(
	or db.OrderRepository,
	lr db.ListingRepository,
	policy Authorizer,
	as AuditService,
	events EventPublisher,
	logger *zap.Logger,
) OrderService {
	if events == nil {
		events = noopPublisher{}
	}
	return &orderService{
		orderRepo:   or,
		listingRepo: lr,
		policy:      policy,
		audit:       as,
		events:      events,
		logger:      logger,
		now:         time.Now,
	}
}

// Create places an order for an approved listing. Email and status come from
// the server; listing name and price are copied from the listing.
func (s *orderService) Create(ctx context.Context, principal *models.Principal, req models.CreateOrderRequest) (*models.Order, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}
	if principal.Email == "" {
		return nil, invalidInput("an email address is required to place an order")
	}
	buyer := strings.TrimSpace(req.BuyerName)
	if buyer == "" {
		return nil, invalidInput("buyerName is required")
	}
	if req.Quantity < 0 {
		return nil, invalidInput("quantity must be positive")
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if err := validateDocID(req.ListingID, "listing"); err != nil {
		return nil, err
	}

	doc, err := s.listingRepo.GetByID(ctx, req.ListingID)
	if err != nil {
		return nil, translateRepoError(err, "get ordered listing")
	}
	listing := normalize.Listing(doc)
	if listing.Status != models.ListingApproved {
		return nil, ErrNotFound
	}

	order := &models.Order{
		BuyerName:   buyer,
		Email:       principal.Email,
		ListingID:   listing.ID,
		ListingName: listing.Name,
		Quantity:    quantity,
		Price:       listing.Price,
		Address:     req.Address,
		PickupDate:  req.PickupDate,
		Phone:       req.Phone,
		Notes:       req.Notes,
		Status:      models.OrderPending,
		CreatedAt:   s.now().UTC(),
	}
	if _, err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, translateRepoError(err, "create order")
	}

	s.events.Publish(ctx, EventOrderCreated, OrderEvent{Order: *order, SellerEmail: listing.Email})
	return order, nil
}

// List returns orders newest first.
//
// An explicit email is an ownership claim and goes through the policy like
// any other owner check: the caller must be that buyer or an admin. Without
// an email an admin gets every order and anyone else gets their own. A
// caller whose token carries no email owns no orders, since orders anchor on
// email only.
func (s *orderService) List(ctx context.Context, principal *models.Principal, email string) ([]models.Order, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}
	email = strings.TrimSpace(email)
	if email == "" {
		admin, err := s.policy.IsAdmin(ctx, principal)
		if err != nil {
			return nil, err
		}
		if !admin {
			email = principal.Email
			if email == "" {
				return []models.Order{}, nil
			}
		}
	} else if err := s.policy.Authorize(ctx, principal, models.Owner{Email: email}, ""); err != nil {
		return nil, err
	}

	docs, err := s.orderRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, translateRepoError(err, "list orders")
	}
	orders := normalize.Orders(docs)
	slices.SortStableFunc(orders, func(a, b models.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return orders, nil
}

func (s *orderService) load(ctx context.Context, orderID string) (*models.Order, error) {
	if err := validateDocID(orderID, "order"); err != nil {
		return nil, err
	}
	doc, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, translateRepoError(err, "get order")
	}
	order := normalize.Order(doc)
	return &order, nil
}

// Get returns an order to its buyer or to an admin.
func (s *orderService) Get(ctx context.Context, principal *models.Principal, orderID string) (*models.Order, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(ctx, principal, order.Owner(), ""); err != nil {
		return nil, err
	}
	return order, nil
}

// Delete removes an order. It reuses Get for the lookup and the owner-or-admin
// check, so a caller that may not read an order may not delete it either.
func (s *orderService) Delete(ctx context.Context, principal *models.Principal, orderID string) error {
	if _, err := s.Get(ctx, principal, orderID); err != nil {
		return err
	}
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return translateRepoError(err, "delete order")
	}
	return nil
}

// UpdateStatus sets a free-form, non-empty status. Admin only.
func (s *orderService) UpdateStatus(ctx context.Context, principal *models.Principal, orderID, status string) (*models.Order, error) {
	if err := s.policy.Authorize(ctx, principal, models.Owner{}, models.RoleAdmin); err != nil {
		return nil, err
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, invalidInput("status is required")
	}
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	if err := s.orderRepo.Update(ctx, order.ID, map[string]interface{}{"status": status}); err != nil {
		return nil, translateRepoError(err, "update order status")
	}
	order.Status = status

	recordAudit(ctx, s.audit, s.logger, models.AuditLog{
		UserID:     principal.SubjectID,
		Action:     models.AuditOrderStatus,
		TargetType: models.AuditTargetOrder,
		TargetID:   order.ID,
		Details:    map[string]interface{}{"previousStatus": previous, "status": status},
	})
	s.events.Publish(ctx, EventOrderStatusChanged, OrderEvent{Order: *order, PreviousStatus: previous})
	return order, nil
}
