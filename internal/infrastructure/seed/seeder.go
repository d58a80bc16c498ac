package seed

import (
	"context"
	"fmt"

	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/domain/user"
	"github.com/labpool/labpool/internal/shared/config"
	"github.com/labpool/labpool/internal/shared/constants"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Seeder inserts whatever part of the catalog is missing. Existing rows
// are left alone, and a role keeps its permissions once it has any.
type Seeder struct {
	catalog        *Catalog
	permissionRepo permission.PermissionRepository
	roleRepo       permission.RoleRepository
	userRepo       user.Repository
	hasher         PasswordHasher
	cfg            config.SeedConfig
	logger         logger.Interface
}

func NewSeeder(
	catalog *Catalog,
	permissionRepo permission.PermissionRepository,
	roleRepo permission.RoleRepository,
	userRepo user.Repository,
	hasher PasswordHasher,
	cfg config.SeedConfig,
	log logger.Interface,
) *Seeder {
	return &Seeder{
		catalog:        catalog,
		permissionRepo: permissionRepo,
		roleRepo:       roleRepo,
		userRepo:       userRepo,
		hasher:         hasher,
		cfg:            cfg,
		logger:         log,
	}
}

func (s *Seeder) Run(ctx context.Context) error {
	s.logger.Infow("starting database seeding")

	perms, err := s.seedPermissions(ctx)
	if err != nil {
		return err
	}
	roles, err := s.seedRoles(ctx, perms)
	if err != nil {
		return err
	}
	if err := s.seedSuperadmin(ctx, roles[constants.SuperadminRoleName]); err != nil {
		return err
	}

	s.logger.Infow("database seeding completed")
	return nil
}

func (s *Seeder) seedPermissions(ctx context.Context) (map[string]*permission.Permission, error) {
	out := make(map[string]*permission.Permission, len(s.catalog.Permissions))
	for _, entry := range s.catalog.Permissions {
		existing, err := s.permissionRepo.GetByName(ctx, entry.Name)
		if err == nil {
			out[entry.Name] = existing
			continue
		}
		if !errors.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to look up permission %s: %w", entry.Name, err)
		}

		p, err := permission.NewPermission(entry.Name, entry.Resource, entry.Action, entry.Description)
		if err != nil {
			return nil, err
		}
		if err := s.permissionRepo.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to create permission %s: %w", entry.Name, err)
		}
		s.logger.Infow("created permission", "name", entry.Name)
		out[entry.Name] = p
	}
	return out, nil
}

func (s *Seeder) seedRoles(ctx context.Context, perms map[string]*permission.Permission) (map[string]*permission.Role, error) {
	out := make(map[string]*permission.Role, len(s.catalog.Roles))
	for _, entry := range s.catalog.Roles {
		role, err := s.roleRepo.GetByName(ctx, entry.Name)
		switch {
		case err == nil:
		case errors.IsNotFoundError(err):
			role, err = permission.NewRole(entry.Name, entry.Description)
			if err != nil {
				return nil, err
			}
			if err := s.roleRepo.Create(ctx, role); err != nil {
				return nil, fmt.Errorf("failed to create role %s: %w", entry.Name, err)
			}
			s.logger.Infow("created role", "name", entry.Name)
		default:
			return nil, fmt.Errorf("failed to look up role %s: %w", entry.Name, err)
		}
		out[entry.Name] = role

		if len(role.Permissions()) > 0 {
			continue
		}
		role.ReplacePermissions(s.permissionsFor(entry, perms))
		if err := s.roleRepo.Update(ctx, role); err != nil {
			return nil, fmt.Errorf("failed to assign permissions to role %s: %w", entry.Name, err)
		}
		s.logger.Infow("assigned permissions to role", "name", entry.Name, "count", len(role.Permissions()))
	}
	return out, nil
}

func (s *Seeder) permissionsFor(entry RoleEntry, perms map[string]*permission.Permission) []*permission.Permission {
	names := entry.Permissions
	if entry.AllPermissions {
		names = make([]string, 0, len(s.catalog.Permissions))
		for _, p := range s.catalog.Permissions {
			names = append(names, p.Name)
		}
	}

	out := make([]*permission.Permission, 0, len(names))
	for _, name := range names {
		if p, ok := perms[name]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *Seeder) seedSuperadmin(ctx context.Context, role *permission.Role) error {
	if s.cfg.SuperadminEmail == "" {
		s.logger.Warnw("superadmin email not configured, skipping superadmin user")
		return nil
	}
	exists, err := s.userRepo.ExistsByEmail(ctx, s.cfg.SuperadminEmail)
	if err != nil {
		return err
	}
	if exists {
		s.logger.Infow("superadmin user already exists", "email", s.cfg.SuperadminEmail)
		return nil
	}
	if role == nil {
		return errors.NewInternalError("superadmin role not found, cannot create superadmin user")
	}

	hash, err := s.hasher.Hash(s.cfg.SuperadminPassword)
	if err != nil {
		return err
	}
	u, err := user.NewUser(s.cfg.SuperadminName, s.cfg.SuperadminEmail, hash)
	if err != nil {
		return err
	}
	u.AssignRoles([]*permission.Role{role})
	if err := s.userRepo.Create(ctx, u); err != nil {
		return fmt.Errorf("failed to create superadmin user: %w", err)
	}

	s.logger.Infow("created superadmin user", "email", u.Email())
	return nil
}
