package permission

import (
	"context"

	"github.com/labpool/labpool/internal/application/permission/dto"
	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/shared/logger"
)

// TransactionManager runs fn in one database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages the permission catalog.
type Service struct {
	permissionRepo permission.PermissionRepository
	txManager      TransactionManager
	logger         logger.Interface
}

func NewService(
	permissionRepo permission.PermissionRepository,
	txManager TransactionManager,
	logger logger.Interface,
) *Service {
	return &Service{
		permissionRepo: permissionRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

func (s *Service) Create(ctx context.Context, req dto.CreatePermissionRequest) (*dto.PermissionDTO, error) {
	p, err := permission.NewPermission(req.Name, req.Resource, req.Action, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.permissionRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return dto.ToPermissionDTO(p), nil
}

// BulkCreate stores all permissions or none.
func (s *Service) BulkCreate(ctx context.Context, req dto.BulkCreatePermissionsRequest) ([]*dto.PermissionDTO, error) {
	created := make([]*permission.Permission, 0, len(req.Permissions))
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, item := range req.Permissions {
			p, err := permission.NewPermission(item.Name, item.Resource, item.Action, item.Description)
			if err != nil {
				return err
			}
			if err := s.permissionRepo.Create(ctx, p); err != nil {
				return err
			}
			created = append(created, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("permissions created in bulk", "count", len(created))
	return dto.ToPermissionDTOs(created), nil
}

func (s *Service) Get(ctx context.Context, id string) (*dto.PermissionDTO, error) {
	p, err := s.permissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToPermissionDTO(p), nil
}

func (s *Service) List(ctx context.Context, req dto.ListPermissionsRequest) ([]*dto.PermissionDTO, int64, error) {
	list, total, err := s.permissionRepo.List(ctx, permission.PermissionFilter{
		Page:           req.Page,
		PageSize:       req.PageSize,
		Search:         req.Search,
		Resource:       req.Resource,
		IncludeDeleted: req.IncludeDeleted,
	})
	if err != nil {
		return nil, 0, err
	}
	return dto.ToPermissionDTOs(list), total, nil
}

func (s *Service) Update(ctx context.Context, id string, req dto.UpdatePermissionRequest) (*dto.PermissionDTO, error) {
	p, err := s.permissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = p.Apply(permission.PermissionUpdate{
		Name:        req.Name,
		Resource:    req.Resource,
		Action:      req.Action,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return nil, err
	}
	if err := s.permissionRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return dto.ToPermissionDTO(p), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.permissionRepo.Delete(ctx, id)
}

func (s *Service) Restore(ctx context.Context, id string) (*dto.PermissionDTO, error) {
	if err := s.permissionRepo.Restore(ctx, id); err != nil {
		return nil, err
	}
	p, err := s.permissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToPermissionDTO(p), nil
}
