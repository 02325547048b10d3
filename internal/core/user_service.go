package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"pawmart-backend/internal/db"
	"pawmart-backend/internal/models"
)

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
	policy   Authorizer
	audit    AuditService
	logger   *zap.Logger
	now      func() time.Time
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, policy Authorizer, as AuditService, logger *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		policy:   policy,
		audit:    as,
		logger:   logger,
		now:      time.Now,
	}
}

// Upsert syncs the caller's profile from the verified token and the request.
//
// The first call creates the record with the user role and reports created.
// Later calls refresh email, display name and photo, and never touch the
// role: roles only change through AssignRole. Email always comes from the
// token, never from the body.
func (s *userService) Upsert(ctx context.Context, principal *models.Principal, req models.UpsertProfileRequest) (*models.User, bool, error) {
	if principal == nil {
		return nil, false, ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(ctx, principal.SubjectID)
	if errors.Is(err, db.ErrNotFound) {
		now := s.now().UTC()
		newUser := &models.User{
			UID:         principal.SubjectID,
			Email:       principal.Email,
			DisplayName: strings.TrimSpace(firstValue(req.DisplayName, principal.Name)),
			PhotoURL:    req.PhotoURL,
			Role:        models.RoleUser,
			CreatedAt:   &now,
			UpdatedAt:   &now,
		}
		createErr := s.userRepo.Create(ctx, newUser)
		if createErr == nil {
			return newUser, true, nil
		}
		if !errors.Is(createErr, db.ErrAlreadyExists) {
			return nil, false, translateRepoError(createErr, "create user")
		}
		// A concurrent first sync won; refresh that record instead.
		user, err = s.userRepo.GetByID(ctx, principal.SubjectID)
	}
	if err != nil {
		return nil, false, translateRepoError(err, "get user")
	}

	now := s.now().UTC()
	fields := map[string]interface{}{"updatedAt": now}
	if principal.Email != "" && principal.Email != user.Email {
		fields["email"] = principal.Email
		user.Email = principal.Email
	}
	if name := strings.TrimSpace(req.DisplayName); name != "" {
		fields["displayName"] = name
		user.DisplayName = name
	}
	if req.PhotoURL != "" {
		fields["photoURL"] = req.PhotoURL
		user.PhotoURL = req.PhotoURL
	}
	if err := s.userRepo.Update(ctx, user.UID, fields); err != nil {
		return nil, false, translateRepoError(err, "update user")
	}
	user.UpdatedAt = &now
	return user, false, nil
}

// Profile returns the caller's record, or the default shape built from the
// token when the caller has never synced.
func (s *userService) Profile(ctx context.Context, principal *models.Principal) (*models.User, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(ctx, principal.SubjectID)
	if errors.Is(err, db.ErrNotFound) {
		return &models.User{
			UID:         principal.SubjectID,
			Email:       principal.Email,
			DisplayName: principal.Name,
			Role:        models.RoleUser,
		}, nil
	}
	if err != nil {
		return nil, translateRepoError(err, "get user")
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, principal *models.Principal) ([]*models.User, error) {
	if err := s.policy.Authorize(ctx, principal, models.Owner{}, models.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, translateRepoError(err, "list users")
	}
	return users, nil
}

func (s *userService) AdminUpdate(ctx context.Context, principal *models.Principal, uid string, req models.AdminUpdateUserRequest) (*models.User, error) {
	if err := s.policy.Authorize(ctx, principal, models.Owner{}, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateDocID(uid, "user"); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.DisplayName != nil {
		fields["displayName"] = strings.TrimSpace(*req.DisplayName)
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			return nil, invalidInput("email must not be empty")
		}
		fields["email"] = email
	}
	if req.PhotoURL != nil {
		fields["photoURL"] = *req.PhotoURL
	}
	if len(fields) == 0 {
		return nil, invalidInput("no fields to update")
	}
	fields["updatedAt"] = s.now().UTC()

	return s.updateAndAudit(ctx, principal, uid, fields, models.AuditUserUpdate)
}

func (s *userService) AssignRole(ctx context.Context, principal *models.Principal, uid, role string) (*models.User, error) {
	if err := s.policy.Authorize(ctx, principal, models.Owner{}, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateDocID(uid, "user"); err != nil {
		return nil, err
	}
	role = strings.ToLower(strings.TrimSpace(role))
	if !models.IsValidRole(role) {
		return nil, invalidInput("role must be one of %s, %s, %s", models.RoleUser, models.RoleAdmin, models.RoleDemo)
	}

	fields := map[string]interface{}{
		"role":      role,
		"updatedAt": s.now().UTC(),
	}
	return s.updateAndAudit(ctx, principal, uid, fields, models.AuditUserRoleAssign)
}

func (s *userService) updateAndAudit(ctx context.Context, principal *models.Principal, uid string, fields map[string]interface{}, action string) (*models.User, error) {
	if err := s.userRepo.Update(ctx, uid, fields); err != nil {
		return nil, translateRepoError(err, "update user")
	}

	details := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if k != "updatedAt" {
			details[k] = v
		}
	}
	recordAudit(ctx, s.audit, s.logger, models.AuditLog{
		UserID:     principal.SubjectID,
		Action:     action,
		TargetType: models.AuditTargetUser,
		TargetID:   uid,
		Details:    details,
	})

	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, translateRepoError(err, "get updated user")
	}
	return user, nil
}

func firstValue(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
