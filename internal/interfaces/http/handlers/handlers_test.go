package handlers

import (
	"time"

	"github.com/labpool/labpool/internal/application/access"
	"github.com/labpool/labpool/internal/application/shaping"
	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/domain/user"
	permissionInfra "github.com/labpool/labpool/internal/infrastructure/permission"
	"github.com/labpool/labpool/internal/shared/constants"
	"github.com/labpool/labpool/internal/shared/logger"
)

const (
	testUserID  = "4b0d7a4e-3c55-4a5f-9a43-0f3f8f3d6a01"
	testPoolID  = "7f1c2e9a-1d2b-4c3d-8e4f-5a6b7c8d9e02"
	testFileID  = "0c9b8a7f-6e5d-4c3b-2a19-08f7e6d5c403"
	testOtherID = "9a8b7c6d-5e4f-4a3b-9c2d-1e0f9a8b7c04"
)

var (
	testLogger = logger.NewNopLogger()
	testShaper = shaping.NewShaper(testLogger)
	abilities  = permissionInfra.NewAbilityFactory(testLogger)
)

func principal(userID string, roles ...*permission.Role) *access.Principal {
	u := user.ReconstructUser(user.UserReconstructParams{
		ID: userID, Name: "Test User", Email: "test@example.com", IsActive: true, Roles: roles,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	return &access.Principal{User: u, Ability: abilities.For(u.Subject())}
}

func adminPrincipal(userID string) *access.Principal {
	return principal(userID, permission.ReconstructRole(permission.RoleReconstructParams{
		ID: "role-superadmin", Name: constants.SuperadminRoleName, IsActive: true,
	}))
}
