package core

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"pawmart-backend/internal/db"
	"pawmart-backend/internal/metrics"
	"pawmart-backend/internal/models"
	"pawmart-backend/internal/normalize"
	"pawmart-backend/pkg/cache"
)

const (
	approvedListingsKey   = "pawmart:listings:approved"
	approvedGenerationKey = "pawmart:listings:generation"
	latestListingsCount   = 6
)

// cachedListings is the cached approved set, stamped with the cache
// generation that was current when the set was read from the store.
type cachedListings struct {
	Generation int64            `json:"generation"`
	Listings   []models.Listing `json:"listings"`
}

// listingService implements the ListingService interface.
//
// Updates, deletes and approval read the document, check the policy and then
// write. Nothing guards the window in between: two racing authorized writers
// resolve as last write wins.
type listingService struct {
	listingRepo db.ListingRepository
	userRepo    db.UserRepository
	policy      Authorizer
	audit       AuditService
	events      EventPublisher
	cache       cache.Cache
	cacheTTL    time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewListingService creates a new ListingService instance. A nil cache
// disables caching; a nil events publisher drops events.
func NewListingService(
	lr db.ListingRepository,
	ur db.UserRepository,
	policy Authorizer,
	as AuditService,
	events EventPublisher,
	listingCache cache.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) ListingService {
	if listingCache == nil {
		listingCache = cache.Noop{}
	}
	if events == nil {
		events = noopPublisher{}
	}
	return &listingService{
		listingRepo: lr,
		userRepo:    ur,
		policy:      policy,
		audit:       as,
		events:      events,
		cache:       listingCache,
		cacheTTL:    cacheTTL,
		logger:      logger,
		now:         time.Now,
	}
}

// ListPublic filters the approved set by category (case-insensitive) and name
// substring, stopping at query.Limit when it is positive.
func (s *listingService) ListPublic(ctx context.Context, query models.ListingQuery) ([]models.Listing, error) {
	if query.Limit < 0 {
		return nil, invalidInput("limit must not be negative")
	}
	listings, err := s.approved(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Listing, 0, len(listings))
	search := strings.ToLower(strings.TrimSpace(query.Search))
	for _, l := range listings {
		if query.Category != "" && !strings.EqualFold(l.Category, query.Category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(l.Name), search) {
			continue
		}
		out = append(out, l)
		if query.Limit > 0 && len(out) == query.Limit {
			break
		}
	}
	return out, nil
}

func (s *listingService) Latest(ctx context.Context) ([]models.Listing, error) {
	return s.ListPublic(ctx, models.ListingQuery{Limit: latestListingsCount})
}

func (s *listingService) Search(ctx context.Context, term string) ([]models.Listing, error) {
	return s.ListPublic(ctx, models.ListingQuery{Search: term})
}

// approved returns the approved listings, newest first. The cached set only
// ever holds approved listings.
//
// A reader can load the set from the store, lose the race against a writer,
// and store its copy after the writer's invalidation. The generation stamp
// handles that: every invalidation bumps the generation, and a cached set
// whose stamp differs from the current generation is treated as a miss and
// reloaded. When the generation cannot be read the cache is bypassed
// entirely, both for reads and for the fill.
func (s *listingService) approved(ctx context.Context) ([]models.Listing, error) {
	gen, genErr := s.generation(ctx)
	if genErr != nil {
		metrics.ListingCache.WithLabelValues("error").Inc()
	} else if listings, ok := s.cached(ctx, gen); ok {
		return listings, nil
	}

	docs, err := s.listingRepo.ListByStatus(ctx, models.ListingApproved)
	if err != nil {
		return nil, translateRepoError(err, "list approved listings")
	}
	listings := make([]models.Listing, 0, len(docs))
	for _, l := range normalize.Listings(docs) {
		if l.Status == models.ListingApproved {
			listings = append(listings, l)
		}
	}
	sortNewestFirst(listings)

	if genErr == nil {
		if raw, err := json.Marshal(cachedListings{Generation: gen, Listings: listings}); err == nil {
			_ = s.cache.Set(ctx, approvedListingsKey, raw, s.cacheTTL)
		}
	}
	return listings, nil
}

func (s *listingService) generation(ctx context.Context) (int64, error) {
	raw, err := s.cache.Get(ctx, approvedGenerationKey)
	if errors.Is(err, cache.ErrMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(raw), 10, 64)
}

func (s *listingService) cached(ctx context.Context, gen int64) ([]models.Listing, bool) {
	raw, err := s.cache.Get(ctx, approvedListingsKey)
	switch {
	case errors.Is(err, cache.ErrMiss):
		metrics.ListingCache.WithLabelValues("miss").Inc()
		return nil, false
	case err != nil:
		metrics.ListingCache.WithLabelValues("error").Inc()
		return nil, false
	}
	var entry cachedListings
	if err := json.Unmarshal(raw, &entry); err != nil {
		metrics.ListingCache.WithLabelValues("error").Inc()
		return nil, false
	}
	if entry.Generation != gen {
		metrics.ListingCache.WithLabelValues("stale").Inc()
		return nil, false
	}
	metrics.ListingCache.WithLabelValues("hit").Inc()
	return entry.Listings, true
}

// invalidate runs after every listing write. Bumping the generation is what
// rejects fills that raced the write; deleting the entry only saves the next
// reader a stale decode.
func (s *listingService) invalidate(ctx context.Context) {
	if _, err := s.cache.Incr(ctx, approvedGenerationKey); err != nil {
		s.logger.Warn("Failed to bump listing cache generation", zap.Error(err))
	}
	if err := s.cache.Delete(ctx, approvedListingsKey); err != nil {
		s.logger.Warn("Failed to invalidate listing cache", zap.Error(err))
	}
}

// load fetches and normalizes a listing.
func (s *listingService) load(ctx context.Context, listingID string) (*models.Listing, error) {
	if err := validateDocID(listingID, "listing"); err != nil {
		return nil, err
	}
	doc, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, translateRepoError(err, "get listing")
	}
	listing := normalize.Listing(doc)
	return &listing, nil
}

// Get returns a single listing. principal may be nil.
//
// An approved listing is visible to everyone. A pending one is visible to its
// owner and to admins; everyone else, anonymous callers included, gets
// ErrNotFound rather than ErrForbidden so the listing's existence does not
// leak.
func (s *listingService) Get(ctx context.Context, principal *models.Principal, listingID string) (*models.Listing, error) {
	listing, err := s.load(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status == models.ListingApproved {
		return listing, nil
	}

	if principal == nil {
		return nil, ErrNotFound
	}
	if err := s.policy.Authorize(ctx, principal, listing.Owner(), ""); err != nil {
		if errors.Is(err, ErrForbidden) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return listing, nil
}

// Create stores a new listing owned by the caller. The status is always
// pending and the ownership anchors come from the principal.
func (s *listingService) Create(ctx context.Context, principal *models.Principal, req models.CreateListingRequest) (*models.Listing, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}
	name := strings.TrimSpace(req.Name)
	category := strings.TrimSpace(req.Category)
	if name == "" {
		return nil, invalidInput("name is required")
	}
	if category == "" {
		return nil, invalidInput("category is required")
	}
	if req.Price == nil || *req.Price < 0 {
		return nil, invalidInput("price must be a non-negative number")
	}
	if err := s.policy.AuthorizeListingCategory(ctx, principal, category); err != nil {
		return nil, err
	}

	uid := principal.SubjectID
	listing := &models.Listing{
		Name:        name,
		Category:    category,
		Price:       *req.Price,
		Location:    req.Location,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Email:       principal.Email,
		PickupDate:  req.PickupDate,
		UserID:      &uid,
		UserName:    firstNonEmpty(req.UserName, principal.Name),
		Status:      models.ListingPending,
		CreatedAt:   s.now().UTC(),
	}
	if _, err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, translateRepoError(err, "create listing")
	}

	s.invalidate(ctx)
	s.events.Publish(ctx, EventListingCreated, ListingEvent{Listing: *listing})
	return listing, nil
}

func (s *listingService) Update(ctx context.Context, principal *models.Principal, listingID string, req models.UpdateListingRequest) (*models.Listing, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}
	listing, err := s.load(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(ctx, principal, listing.Owner(), ""); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalidInput("name must not be empty")
		}
		fields["name"] = name
		listing.Name = name
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return nil, invalidInput("category must not be empty")
		}
		if category != listing.Category {
			if err := s.policy.AuthorizeListingCategory(ctx, principal, category); err != nil {
				return nil, err
			}
		}
		fields["category"] = category
		listing.Category = category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, invalidInput("price must be a non-negative number")
		}
		fields["price"] = *req.Price
		listing.Price = *req.Price
	}
	setText(fields, "location", req.Location, &listing.Location)
	setText(fields, "description", req.Description, &listing.Description)
	setText(fields, "imageUrl", req.ImageURL, &listing.ImageURL)
	setText(fields, "pickupDate", req.PickupDate, &listing.PickupDate)
	if req.UserName != nil {
		fields["userName"] = *req.UserName
		listing.UserName = req.UserName
	}
	if req.Email != nil {
		admin, err := s.policy.IsAdmin(ctx, principal)
		if err != nil {
			return nil, err
		}
		if admin {
			fields["email"] = *req.Email
			listing.Email = *req.Email
		}
	}

	if len(fields) == 0 {
		return listing, nil
	}
	now := s.now().UTC()
	fields["updatedAt"] = now
	listing.UpdatedAt = &now

	if err := s.listingRepo.Update(ctx, listing.ID, fields); err != nil {
		return nil, translateRepoError(err, "update listing")
	}
	s.invalidate(ctx)
	return listing, nil
}

func (s *listingService) Delete(ctx context.Context, principal *models.Principal, listingID string) error {
	if principal == nil {
		return ErrUnauthenticated
	}
	listing, err := s.load(ctx, listingID)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(ctx, principal, listing.Owner(), ""); err != nil {
		return err
	}
	if err := s.listingRepo.Delete(ctx, listing.ID); err != nil {
		return translateRepoError(err, "delete listing")
	}
	s.invalidate(ctx)
	return nil
}

// ListByUser returns every listing of userID, pending ones included. An empty
// userID means the caller.
func (s *listingService) ListByUser(ctx context.Context, principal *models.Principal, userID string) ([]models.Listing, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}
	if userID == "" {
		userID = principal.SubjectID
	}

	owner := models.Owner{UserID: userID}
	if userID == principal.SubjectID {
		owner.Email = principal.Email
	}
	if err := s.policy.Authorize(ctx, principal, owner, ""); err != nil {
		return nil, err
	}

	if owner.Email == "" {
		// Older listings only carry the owner's email.
		user, err := s.userRepo.GetByID(ctx, userID)
		switch {
		case err == nil:
			owner.Email = user.Email
		case !errors.Is(err, db.ErrNotFound):
			return nil, translateRepoError(err, "get listing owner")
		}
	}

	docs, err := s.listingRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, translateRepoError(err, "list user listings")
	}
	listings := normalize.Listings(docs)
	sortNewestFirst(listings)
	return listings, nil
}

func (s *listingService) AdminList(ctx context.Context, principal *models.Principal, status string) ([]models.Listing, error) {
	if err := s.policy.Authorize(ctx, principal, models.Owner{}, models.RoleAdmin); err != nil {
		return nil, err
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && status != models.ListingPending && status != models.ListingApproved {
		return nil, invalidInput("status must be %q or %q", models.ListingPending, models.ListingApproved)
	}

	docs, err := s.listingRepo.ListByStatus(ctx, "")
	if err != nil {
		return nil, translateRepoError(err, "list listings")
	}
	all := normalize.Listings(docs)
	listings := all[:0]
	for _, l := range all {
		if status == "" || l.Status == status {
			listings = append(listings, l)
		}
	}
	sortNewestFirst(listings)
	return listings, nil
}

// Approve is the only transition out of pending.
func (s *listingService) Approve(ctx context.Context, principal *models.Principal, req models.ApproveListingRequest) (*models.Listing, error) {
	if err := s.policy.Authorize(ctx, principal, models.Owner{}, models.RoleAdmin); err != nil {
		return nil, err
	}
	if !strings.EqualFold(strings.TrimSpace(req.Status), models.ListingApproved) {
		return nil, invalidInput("status must be %q", models.ListingApproved)
	}
	listing, err := s.load(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	previous := listing.Status
	now := s.now().UTC()
	fields := map[string]interface{}{
		"status":    models.ListingApproved,
		"updatedAt": now,
	}
	if err := s.listingRepo.Update(ctx, listing.ID, fields); err != nil {
		return nil, translateRepoError(err, "approve listing")
	}
	listing.Status = models.ListingApproved
	listing.UpdatedAt = &now

	s.invalidate(ctx)
	recordAudit(ctx, s.audit, s.logger, models.AuditLog{
		UserID:     principal.SubjectID,
		Action:     models.AuditListingApprove,
		TargetType: models.AuditTargetListing,
		TargetID:   listing.ID,
		Details:    map[string]interface{}{"previousStatus": previous},
	})
	s.events.Publish(ctx, EventListingApproved, ListingEvent{Listing: *listing})
	return listing, nil
}

func setText(fields map[string]interface{}, key string, value *string, target *string) {
	if value == nil {
		return
	}
	fields[key] = *value
	*target = *value
}

func firstNonEmpty(values ...string) *string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return &v
		}
	}
	return nil
}

func sortNewestFirst(listings []models.Listing) {
	slices.SortStableFunc(listings, func(a, b models.Listing) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
