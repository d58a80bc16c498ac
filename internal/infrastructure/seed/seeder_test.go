package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/infrastructure/auth"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
	"github.com/labpool/labpool/internal/infrastructure/repository"
	"github.com/labpool/labpool/internal/shared/config"
	"github.com/labpool/labpool/internal/shared/logger"
)

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	assert.Len(t, c.Permissions, 20)
	require.Len(t, c.Roles, 3)
	assert.True(t, c.Roles[0].AllPermissions)
	assert.Len(t, c.Roles[1].Permissions, 9)
	assert.ElementsMatch(t, []string{"users.read", "roles.read", "files.read", "files.create"}, c.Roles[2].Permissions)
}

func TestParseCatalog_UnknownPermission(t *testing.T) {
	_, err := parseCatalog([]byte(`
permissions:
  - {name: users.read, resource: user, action: read}
roles:
  - name: viewer
    permissions: [users.write]
`))
	assert.Error(t, err)
}

func TestSeeder_RunIsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.All()...))

	log := logger.NewNopLogger()
	permRepo := repository.NewPermissionRepository(db, log)
	roleRepo := repository.NewRoleRepository(db, log)
	userRepo := repository.NewUserRepository(db, log)

	catalog, err := LoadCatalog()
	require.NoError(t, err)

	seeder := NewSeeder(catalog, permRepo, roleRepo, userRepo, auth.NewBcryptPasswordHasher(4), config.SeedConfig{
		SuperadminName:     "Root",
		SuperadminEmail:    "root@example.com",
		SuperadminPassword: "Secret123!",
	}, log)

	ctx := context.Background()
	require.NoError(t, seeder.Run(ctx))
	require.NoError(t, seeder.Run(ctx))

	_, total, err := permRepo.List(ctx, permission.PermissionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(20), total)

	admin, err := roleRepo.GetByName(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, admin.Permissions(), 9)

	super, err := roleRepo.GetByName(ctx, "superadmin")
	require.NoError(t, err)
	assert.Len(t, super.Permissions(), 20)

	root, err := userRepo.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.True(t, root.IsSuperadmin())
}
