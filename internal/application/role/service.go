package role

import (
	"context"

	"github.com/labpool/labpool/internal/application/role/dto"
	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
)

// Service manages roles and the permissions grouped under them.
type Service struct {
	roleRepo       permission.RoleRepository
	permissionRepo permission.PermissionRepository
	logger         logger.Interface
}

func NewService(
	roleRepo permission.RoleRepository,
	permissionRepo permission.PermissionRepository,
	logger logger.Interface,
) *Service {
	return &Service{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		logger:         logger,
	}
}

func (s *Service) Create(ctx context.Context, req dto.CreateRoleRequest) (*dto.RoleDTO, error) {
	r, err := permission.NewRole(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if len(req.PermissionIDs) > 0 {
		perms, err := s.loadPermissions(ctx, req.PermissionIDs)
		if err != nil {
			return nil, err
		}
		r.ReplacePermissions(perms)
	}
	if err := s.roleRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return dto.ToRoleDTO(r), nil
}

func (s *Service) Get(ctx context.Context, id string) (*dto.RoleDTO, error) {
	r, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToRoleDTO(r), nil
}

func (s *Service) List(ctx context.Context, req dto.ListRolesRequest) ([]*dto.RoleDTO, int64, error) {
	list, total, err := s.roleRepo.List(ctx, permission.RoleFilter{
		Page:           req.Page,
		PageSize:       req.PageSize,
		Search:         req.Search,
		IncludeDeleted: req.IncludeDeleted,
	})
	if err != nil {
		return nil, 0, err
	}
	return dto.ToRoleDTOs(list), total, nil
}

func (s *Service) Update(ctx context.Context, id string, req dto.UpdateRoleRequest) (*dto.RoleDTO, error) {
	r, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.IsSuperadmin() && req.Name != nil && *req.Name != r.Name() {
		return nil, errors.NewConflictError("Cannot rename superadmin role")
	}
	err = r.Apply(permission.RoleUpdate{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return nil, err
	}
	if req.PermissionIDs != nil {
		perms, err := s.loadPermissions(ctx, *req.PermissionIDs)
		if err != nil {
			return nil, err
		}
		r.ReplacePermissions(perms)
	}
	if err := s.roleRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return dto.ToRoleDTO(r), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	r, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.EnsureDeletable(); err != nil {
		return err
	}
	return s.roleRepo.Delete(ctx, id)
}

func (s *Service) Restore(ctx context.Context, id string) (*dto.RoleDTO, error) {
	if err := s.roleRepo.Restore(ctx, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// AssignPermissions replaces the role's permission set.
func (s *Service) AssignPermissions(ctx context.Context, id string, req dto.PermissionIDsRequest) (*dto.RoleDTO, error) {
	r, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	perms, err := s.loadPermissions(ctx, req.PermissionIDs)
	if err != nil {
		return nil, err
	}
	r.ReplacePermissions(perms)
	if err := s.roleRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Infow("role permissions replaced", "role_id", id, "count", len(perms))
	return dto.ToRoleDTO(r), nil
}

func (s *Service) RemovePermissions(ctx context.Context, id string, req dto.PermissionIDsRequest) (*dto.RoleDTO, error) {
	r, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.RemovePermissions(req.PermissionIDs)
	if err := s.roleRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return dto.ToRoleDTO(r), nil
}

// loadPermissions resolves every id or fails with the first one missing.
func (s *Service) loadPermissions(ctx context.Context, ids []string) ([]*permission.Permission, error) {
	found, err := s.permissionRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(found))
	for _, p := range found {
		known[p.ID()] = true
	}
	for _, pid := range ids {
		if !known[pid] {
			return nil, errors.NewNotFoundError("One or more permissions not found", pid)
		}
	}
	return found, nil
}
