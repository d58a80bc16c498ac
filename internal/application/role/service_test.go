package role

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/application/role/dto"
	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
	"github.com/labpool/labpool/internal/infrastructure/repository"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
)

func setup(t *testing.T) (*Service, permission.PermissionRepository) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	log := logger.NewNopLogger()
	perms := repository.NewPermissionRepository(gdb, log)
	return NewService(repository.NewRoleRepository(gdb, log), perms, log), perms
}

func seedPermission(t *testing.T, repo permission.PermissionRepository, name, resource, action string) string {
	p, err := permission.NewPermission(name, resource, action, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), p))
	return p.ID()
}

func TestService_SuperadminCannotBeDeleted(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, dto.CreateRoleRequest{Name: "superadmin"})
	require.NoError(t, err)

	err = svc.Delete(ctx, r.ID)
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	assert.Contains(t, err.Error(), "Cannot delete superadmin role")

	other, err := svc.Create(ctx, dto.CreateRoleRequest{Name: "editor"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, other.ID))

	restored, err := svc.Restore(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "editor", restored.Name)
}

func TestService_AssignAndRemovePermissions(t *testing.T) {
	svc, perms := setup(t)
	ctx := context.Background()

	read := seedPermission(t, perms, "files.read", "file", "read")
	write := seedPermission(t, perms, "files.update", "file", "update")

	r, err := svc.Create(ctx, dto.CreateRoleRequest{Name: "editor"})
	require.NoError(t, err)
	assert.Empty(t, r.Permissions)

	_, err = svc.AssignPermissions(ctx, r.ID, dto.PermissionIDsRequest{PermissionIDs: []string{read, "missing"}})
	assert.True(t, errors.IsNotFoundError(err))

	r, err = svc.AssignPermissions(ctx, r.ID, dto.PermissionIDsRequest{PermissionIDs: []string{read, write, read}})
	require.NoError(t, err)
	assert.Len(t, r.Permissions, 2)

	r, err = svc.RemovePermissions(ctx, r.ID, dto.PermissionIDsRequest{PermissionIDs: []string{read}})
	require.NoError(t, err)
	require.Len(t, r.Permissions, 1)
	assert.Equal(t, write, r.Permissions[0].ID)

	reloaded, err := svc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Permissions, 1)
}

func TestService_DuplicateName(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateRoleRequest{Name: "admin"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateRoleRequest{Name: "admin"})
	assert.True(t, errors.IsConflictError(err))
}
