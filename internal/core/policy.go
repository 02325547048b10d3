package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"pawmart-backend/internal/db"
	"pawmart-backend/internal/metrics"
	"pawmart-backend/internal/models"
)

// Rule labels reported on the authorization decision metric.
const (
	ruleNone     = "none"
	ruleSelf     = "self"
	ruleAdmin    = "admin"
	ruleCategory = "category"
)

// Policy decides whether a principal may act on a resource.
//
// Self-access compares the principal's uid and then its email with the
// resource's owner anchors. Admin override reads the caller's user record on
// every decision; the role is never cached, so a revoked admin loses access on
// the next request.
type Policy struct {
	users  db.UserRepository
	logger *zap.Logger
}

// NewPolicy creates a Policy backed by the users collection.
func NewPolicy(users db.UserRepository, logger *zap.Logger) *Policy {
	return &Policy{users: users, logger: logger}
}

// IsAdmin reports whether the principal's user record carries the admin role.
// A missing record is a regular user, not an error.
func (p *Policy) IsAdmin(ctx context.Context, principal *models.Principal) (bool, error) {
	if principal == nil || principal.SubjectID == "" {
		return false, nil
	}
	user, err := p.users.GetByID(ctx, principal.SubjectID)
	if errors.Is(err, db.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		p.logger.Error("Role lookup failed", zap.String("uid", principal.SubjectID), zap.Error(err))
		return false, translateRepoError(err, "role lookup")
	}
	return user.Role == models.RoleAdmin, nil
}

// Authorize allows the principal when it owns the resource or is an admin.
// With requiredRole set to models.RoleAdmin only the admin check applies.
func (p *Policy) Authorize(ctx context.Context, principal *models.Principal, owner models.Owner, requiredRole string) error {
	if principal == nil {
		record("deny", ruleNone)
		return ErrUnauthenticated
	}

	if requiredRole != models.RoleAdmin && owns(principal, owner) {
		record("allow", ruleSelf)
		return nil
	}

	admin, err := p.IsAdmin(ctx, principal)
	if err != nil {
		record("error", ruleAdmin)
		return err
	}
	if admin {
		record("allow", ruleAdmin)
		return nil
	}

	record("deny", ruleAdmin)
	p.logger.Debug("Access denied", zap.String("uid", principal.SubjectID), zap.String("requiredRole", requiredRole))
	return fmt.Errorf("%w: insufficient permissions", ErrForbidden)
}

// AuthorizeListingCategory restricts non-admins to the Pets category.
func (p *Policy) AuthorizeListingCategory(ctx context.Context, principal *models.Principal, category string) error {
	if principal == nil {
		record("deny", ruleNone)
		return ErrUnauthenticated
	}
	if category == models.PetsCategory {
		record("allow", ruleCategory)
		return nil
	}

	admin, err := p.IsAdmin(ctx, principal)
	if err != nil {
		record("error", ruleCategory)
		return err
	}
	if !admin {
		record("deny", ruleCategory)
		return fmt.Errorf("%w: only admins may list outside the %s category", ErrForbidden, models.PetsCategory)
	}
	record("allow", ruleCategory)
	return nil
}

// owns compares uid first, then email. Empty anchors never match.
func owns(principal *models.Principal, owner models.Owner) bool {
	if principal.SubjectID != "" && principal.SubjectID == owner.UserID {
		return true
	}
	return principal.Email != "" && principal.Email == owner.Email
}

func record(decision, rule string) {
	metrics.AuthzDecisions.WithLabelValues(decision, rule).Inc()
}
