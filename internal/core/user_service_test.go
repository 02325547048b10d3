package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pawmart-backend/internal/models"
)

func newUserFixture() (UserService, *fakeUserRepo, *fakeAuditRepo) {
	users := defaultUsers()
	audit := &fakeAuditRepo{}
	logger := zap.NewNop()
	return NewUserService(users, NewPolicy(users, logger), NewAuditService(audit), logger), users, audit
}

func TestUpsertCreatesUserWithDefaultRole(t *testing.T) {
	svc, users, _ := newUserFixture()

	user, created, err := svc.Upsert(context.Background(), bob, models.UpsertProfileRequest{PhotoURL: "https://img/bob.png"})
	require.NoError(t, err)
	assert.True(t, created)

	assert.Equal(t, bob.SubjectID, user.UID)
	assert.Equal(t, "Bob", user.DisplayName)
	assert.Equal(t, models.RoleUser, user.Role)
	require.Contains(t, users.users, bob.SubjectID)
	assert.NotNil(t, users.users[bob.SubjectID].CreatedAt)
}

func TestUpsertNeverChangesRole(t *testing.T) {
	svc, users, _ := newUserFixture()

	user, created, err := svc.Upsert(context.Background(), admin, models.UpsertProfileRequest{DisplayName: "Head Admin"})
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, "Head Admin", users.users[admin.SubjectID].DisplayName)
	assert.Equal(t, models.RoleAdmin, users.users[admin.SubjectID].Role)
}

func TestProfileDefaultShape(t *testing.T) {
	svc, _, _ := newUserFixture()

	user, err := svc.Profile(context.Background(), bob)
	require.NoError(t, err)
	assert.Equal(t, &models.User{UID: bob.SubjectID, Email: bob.Email, DisplayName: "Bob", Role: models.RoleUser}, user)

	_, err = svc.Profile(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAssignRole(t *testing.T) {
	svc, users, audit := newUserFixture()
	ctx := context.Background()

	_, err := svc.AssignRole(ctx, alice, alice.SubjectID, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.AssignRole(ctx, admin, alice.SubjectID, "owner")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AssignRole(ctx, admin, "uid-nobody", models.RoleDemo)
	assert.ErrorIs(t, err, ErrNotFound)

	user, err := svc.AssignRole(ctx, admin, alice.SubjectID, "Admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, models.RoleAdmin, users.users[alice.SubjectID].Role)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditUserRoleAssign, audit.entries[0].Action)
	assert.Equal(t, models.RoleAdmin, audit.entries[0].Details["role"])
}

func TestAdminUpdateUser(t *testing.T) {
	svc, _, audit := newUserFixture()
	ctx := context.Background()

	_, err := svc.AdminUpdate(ctx, admin, alice.SubjectID, models.AdminUpdateUserRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	name := "Alice A."
	user, err := svc.AdminUpdate(ctx, admin, alice.SubjectID, models.AdminUpdateUserRequest{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, user.DisplayName)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditUserUpdate, audit.entries[0].Action)

	_, err = svc.AdminUpdate(ctx, bob, alice.SubjectID, models.AdminUpdateUserRequest{DisplayName: &name})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListUsersIsAdminOnly(t *testing.T) {
	svc, _, _ := newUserFixture()
	ctx := context.Background()

	_, err := svc.List(ctx, alice)
	assert.ErrorIs(t, err, ErrForbidden)

	users, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
