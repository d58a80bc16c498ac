package access

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/domain/user"
	permissionInfra "github.com/labpool/labpool/internal/infrastructure/permission"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
)

var factory = permissionInfra.NewAbilityFactory(logger.NewNopLogger())

func perm(id, resource, action string) *permission.Permission {
	return permission.ReconstructPermission(permission.PermissionReconstructParams{
		ID: id, Name: resource + "." + action, Resource: resource, Action: action, IsActive: true,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
}

func roleWith(name string, perms ...*permission.Permission) *permission.Role {
	return permission.ReconstructRole(permission.RoleReconstructParams{
		ID: "role-" + name, Name: name, IsActive: true, Permissions: perms,
	})
}

func principalFor(id string, roles ...*permission.Role) *Principal {
	u := user.ReconstructUser(user.UserReconstructParams{
		ID: id, Name: "U", Email: id + "@example.com", IsActive: true, Roles: roles,
	})
	return &Principal{User: u, Ability: factory.For(u.Subject())}
}

func params(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestAuthorize_EmptyRequirementsAllowAnonymous(t *testing.T) {
	assert.NoError(t, AuthorizeOperation(nil, OpDonationsCreateOrder, nil))
	assert.NoError(t, AuthorizeOperation(nil, OpDonationsPoolStats, nil))
}

func TestAuthorize_NoPrincipalIsUnauthorized(t *testing.T) {
	err := AuthorizeOperation(nil, OpUsersList, nil)
	assert.True(t, errors.IsUnauthorizedError(err))
}

func TestAuthorize_ZeroRoleUserReadsOnlySelf(t *testing.T) {
	p := principalFor("u1")

	assert.NoError(t, AuthorizeOperation(p, OpUsersGet, params(map[string]string{"id": "u1"})))

	err := AuthorizeOperation(p, OpUsersGet, params(map[string]string{"id": "u2"}))
	assert.True(t, errors.IsForbiddenError(err))

	err = AuthorizeOperation(p, OpUsersList, nil)
	assert.True(t, errors.IsForbiddenError(err))
}

func TestAuthorize_RequirementsAreConjunctive(t *testing.T) {
	p := principalFor("u1", roleWith("editor", perm("p1", "user", "update")))
	err := AuthorizeOperation(p, OpUsersAssignRoles, params(nil))
	assert.True(t, errors.IsForbiddenError(err))

	p = principalFor("u1", roleWith("editor", perm("p1", "user", "update"), perm("p2", "role", "update")))
	assert.NoError(t, AuthorizeOperation(p, OpUsersAssignRoles, params(nil)))
}

func TestAuthorize_ManageImpliesEveryAction(t *testing.T) {
	p := principalFor("u1", roleWith("files", perm("p1", "file", "manage")))
	for _, op := range []Operation{OpFilesUpload, OpFilesList, OpFilesUpdate, OpFilesHardDelete} {
		assert.NoError(t, AuthorizeOperation(p, op, nil), op)
	}
	assert.Error(t, AuthorizeOperation(p, OpUsersList, nil))
}

func TestAuthorize_RouteOnlySubjectsNeedAll(t *testing.T) {
	admin := principalFor("u1", roleWith("admin",
		perm("p1", "user", "manage"), perm("p2", "role", "manage"), perm("p3", "file", "manage"),
	))
	assert.True(t, errors.IsForbiddenError(AuthorizeOperation(admin, OpPoolsCreate, nil)))
	assert.True(t, errors.IsForbiddenError(AuthorizeOperation(admin, OpDonationsList, nil)))

	manager := principalFor("u2", roleWith("ops", perm("p9", "all", "manage")))
	assert.NoError(t, AuthorizeOperation(manager, OpPoolsApprove, nil))
	assert.NoError(t, AuthorizeOperation(manager, OpSampleProductsCreate, nil))

	super := principalFor("u3", roleWith("superadmin"))
	assert.NoError(t, AuthorizeOperation(super, OpPoolsHardDelete, nil))
	assert.NoError(t, AuthorizeOperation(super, OpUsersGet, params(map[string]string{"id": "anyone"})))
}

func TestAuthorizeOperation_UnknownOperationDenied(t *testing.T) {
	super := principalFor("u3", roleWith("superadmin"))
	assert.True(t, errors.IsForbiddenError(AuthorizeOperation(super, Operation("nope"), nil)))
}

func TestRequirementsTableCoversAllOperations(t *testing.T) {
	for op, reqs := range requirements {
		for _, r := range reqs {
			assert.NotEmpty(t, r.Action, op)
			assert.NotEmpty(t, r.Resource, op)
		}
	}
}

type stubUserRepo struct {
	user.Repository
	users map[string]*user.User
}

func (s stubUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, errors.NewNotFoundError("User not found")
}

func TestResolver(t *testing.T) {
	active := user.ReconstructUser(user.UserReconstructParams{ID: "u1", Name: "A", Email: "a@example.com", IsActive: true})
	inactive := user.ReconstructUser(user.UserReconstructParams{ID: "u2", Name: "B", Email: "b@example.com"})
	r := NewResolver(stubUserRepo{users: map[string]*user.User{"u1": active, "u2": inactive}}, factory, logger.NewNopLogger())
	ctx := context.Background()

	p, err := r.Resolve(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID())
	assert.NotNil(t, p.Ability)

	_, err = r.Resolve(ctx, "u2")
	assert.True(t, errors.IsUnauthorizedError(err))

	_, err = r.Resolve(ctx, "missing")
	assert.True(t, errors.IsUnauthorizedError(err))
}
