package http

import (
	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/domain/donation"
	"github.com/labpool/labpool/internal/domain/file"
	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/domain/pool"
	"github.com/labpool/labpool/internal/domain/sampleproduct"
	"github.com/labpool/labpool/internal/domain/user"
	"github.com/labpool/labpool/internal/infrastructure/repository"
	"github.com/labpool/labpool/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo          user.Repository
	roleRepo          permission.RoleRepository
	permissionRepo    permission.PermissionRepository
	fileRepo          file.Repository
	sampleProductRepo sampleproduct.Repository
	poolRepo          pool.Repository
	donationRepo      donation.Repository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:          repository.NewUserRepository(db, log),
		roleRepo:          repository.NewRoleRepository(db, log),
		permissionRepo:    repository.NewPermissionRepository(db, log),
		fileRepo:          repository.NewFileRepository(db, log),
		sampleProductRepo: repository.NewSampleProductRepository(db, log),
		poolRepo:          repository.NewPoolRepository(db, log),
		donationRepo:      repository.NewDonationRepository(db, log),
	}
}
