package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pawmart-backend/internal/db"
	"pawmart-backend/internal/models"
)

func newTestPolicy(users *fakeUserRepo) *Policy {
	return NewPolicy(users, zap.NewNop())
}

func TestAuthorizeSelfAccess(t *testing.T) {
	users := defaultUsers()
	p := newTestPolicy(users)
	ctx := context.Background()

	require.NoError(t, p.Authorize(ctx, alice, models.Owner{UserID: alice.SubjectID}, ""))
	require.NoError(t, p.Authorize(ctx, alice, models.Owner{Email: alice.Email}, ""))
	assert.Zero(t, users.lookups, "self access must not consult the users collection")
}

func TestAuthorizeEmptyAnchorsNeverMatch(t *testing.T) {
	p := newTestPolicy(defaultUsers())
	anonymousish := &models.Principal{SubjectID: "uid-x"}

	err := p.Authorize(context.Background(), anonymousish, models.Owner{}, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeAdminOverride(t *testing.T) {
	users := defaultUsers()
	p := newTestPolicy(users)

	err := p.Authorize(context.Background(), admin, models.Owner{UserID: alice.SubjectID, Email: alice.Email}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, users.lookups)
}

func TestAuthorizeRequiredAdminSkipsSelfAccess(t *testing.T) {
	p := newTestPolicy(defaultUsers())

	err := p.Authorize(context.Background(), alice, models.Owner{UserID: alice.SubjectID}, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeMissingUserRecordIsNotAdmin(t *testing.T) {
	p := newTestPolicy(defaultUsers())

	err := p.Authorize(context.Background(), bob, models.Owner{UserID: alice.SubjectID}, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeDemoRoleIsNotAdmin(t *testing.T) {
	users := defaultUsers()
	users.users["uid-demo"] = &models.User{UID: "uid-demo", Role: models.RoleDemo}
	p := newTestPolicy(users)

	err := p.Authorize(context.Background(), &models.Principal{SubjectID: "uid-demo"}, models.Owner{}, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeRoleRevocationTakesEffectImmediately(t *testing.T) {
	users := defaultUsers()
	p := newTestPolicy(users)
	ctx := context.Background()

	require.NoError(t, p.Authorize(ctx, admin, models.Owner{}, models.RoleAdmin))

	users.setRole(admin.SubjectID, models.RoleUser)
	err := p.Authorize(ctx, admin, models.Owner{}, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 2, users.lookups)
}

func TestAuthorizeNilPrincipal(t *testing.T) {
	p := newTestPolicy(defaultUsers())

	err := p.Authorize(context.Background(), nil, models.Owner{UserID: "x"}, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthorizeLookupFailureNeverAllows(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"unavailable", fmt.Errorf("get user: %w", db.ErrUnavailable), ErrUnavailable},
		{"other", errors.New("permission denied by rules"), ErrInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := defaultUsers()
			users.getErr = tc.err
			p := newTestPolicy(users)

			err := p.Authorize(context.Background(), admin, models.Owner{}, models.RoleAdmin)
			assert.ErrorIs(t, err, tc.want)
			assert.NotErrorIs(t, err, ErrForbidden)
		})
	}
}

func TestAuthorizeListingCategory(t *testing.T) {
	p := newTestPolicy(defaultUsers())
	ctx := context.Background()

	assert.NoError(t, p.AuthorizeListingCategory(ctx, alice, models.PetsCategory))
	assert.ErrorIs(t, p.AuthorizeListingCategory(ctx, alice, "Supplies"), ErrForbidden)
	assert.ErrorIs(t, p.AuthorizeListingCategory(ctx, alice, "pets"), ErrForbidden)
	assert.NoError(t, p.AuthorizeListingCategory(ctx, admin, "Supplies"))
	assert.ErrorIs(t, p.AuthorizeListingCategory(ctx, nil, models.PetsCategory), ErrUnauthenticated)
}

func TestIsAdmin(t *testing.T) {
	p := newTestPolicy(defaultUsers())
	ctx := context.Background()

	ok, err := p.IsAdmin(ctx, admin)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.IsAdmin(ctx, bob)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.IsAdmin(ctx, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}
