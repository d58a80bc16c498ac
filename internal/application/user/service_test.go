package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/application/user/dto"
	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/infrastructure/auth"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
	"github.com/labpool/labpool/internal/infrastructure/repository"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
)

type testEnv struct {
	users *Service
	auth  *AuthService
	roles permission.RoleRepository
}

func setup(t *testing.T) *testEnv {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	log := logger.NewNopLogger()
	userRepo := repository.NewUserRepository(gdb, log)
	roleRepo := repository.NewRoleRepository(gdb, log)
	hasher := auth.NewBcryptPasswordHasher(4)

	return &testEnv{
		users: NewService(userRepo, roleRepo, hasher, log),
		auth:  NewAuthService(userRepo, hasher, auth.NewJWTService("test-secret", 15, 7), log),
		roles: roleRepo,
	}
}

func TestService_Create(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	u, err := env.users.Create(ctx, dto.CreateUserRequest{Name: "Asha", Email: "Asha@Example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.Empty(t, u.Roles)

	_, err = env.users.Create(ctx, dto.CreateUserRequest{Name: "Other", Email: "asha@example.com", Password: "password123"})
	assert.True(t, errors.IsConflictError(err))

	_, err = env.users.Create(ctx, dto.CreateUserRequest{
		Name: "Ravi", Email: "ravi@example.com", Password: "password123", RoleIDs: []string{"missing"},
	})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestService_AssignRoles(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	role, err := permission.NewRole("admin", "")
	require.NoError(t, err)
	require.NoError(t, env.roles.Create(ctx, role))

	u, err := env.users.Create(ctx, dto.CreateUserRequest{Name: "Asha", Email: "asha@example.com", Password: "password123"})
	require.NoError(t, err)

	updated, err := env.users.AssignRoles(ctx, u.ID, dto.AssignRolesRequest{RoleIDs: []string{role.ID()}})
	require.NoError(t, err)
	require.Len(t, updated.Roles, 1)
	assert.Equal(t, "admin", updated.Roles[0].Name)

	cleared, err := env.users.AssignRoles(ctx, u.ID, dto.AssignRolesRequest{RoleIDs: []string{}})
	require.NoError(t, err)
	assert.Empty(t, cleared.Roles)
}

func TestService_UpdateAndDelete(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	u, err := env.users.Create(ctx, dto.CreateUserRequest{Name: "Asha", Email: "asha@example.com", Password: "password123"})
	require.NoError(t, err)

	name := "Asha K"
	updated, err := env.users.Update(ctx, u.ID, dto.UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", updated.Name)

	require.NoError(t, env.users.Delete(ctx, u.ID))
	_, err = env.users.Get(ctx, u.ID)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestAuthService(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	u, err := env.users.Create(ctx, dto.CreateUserRequest{Name: "Asha", Email: "asha@example.com", Password: "password123"})
	require.NoError(t, err)

	t.Run("login and refresh", func(t *testing.T) {
		resp, err := env.auth.Login(ctx, dto.LoginRequest{Email: "asha@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, u.ID, resp.User.ID)

		refreshed, err := env.auth.Refresh(ctx, dto.RefreshRequest{RefreshToken: resp.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)

		_, err = env.auth.Refresh(ctx, dto.RefreshRequest{RefreshToken: resp.AccessToken})
		assert.True(t, errors.IsUnauthorizedError(err))
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, err := env.auth.Login(ctx, dto.LoginRequest{Email: "asha@example.com", Password: "nope"})
		assert.True(t, errors.IsUnauthorizedError(err))

		_, err = env.auth.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
		assert.True(t, errors.IsUnauthorizedError(err))
	})

	t.Run("inactive user cannot log in", func(t *testing.T) {
		inactive := false
		_, err := env.users.Update(ctx, u.ID, dto.UpdateUserRequest{IsActive: &inactive})
		require.NoError(t, err)

		_, err = env.auth.Login(ctx, dto.LoginRequest{Email: "asha@example.com", Password: "password123"})
		assert.True(t, errors.IsUnauthorizedError(err))
	})
}
