package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/infrastructure/persistence/mappers"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
	"github.com/labpool/labpool/internal/shared/db"
	"github.com/labpool/labpool/internal/shared/id"
	"github.com/labpool/labpool/internal/shared/logger"
)

const (
	msgPermissionNotFound = "Permission not found"
	msgPermissionExists   = "Permission with this name already exists"
)

type PermissionRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPermissionRepository(db *gorm.DB, logger logger.Interface) permission.PermissionRepository {
	return &PermissionRepository{db: db, logger: logger}
}

func (r *PermissionRepository) Create(ctx context.Context, p *permission.Permission) error {
	if p.ID() == "" {
		if err := p.SetID(id.NewUUID()); err != nil {
			return err
		}
	}

	model := mappers.PermissionToModel(p)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create permission", "name", p.Name(), "error", err)
		return translate(err, "create permission", msgPermissionNotFound, msgPermissionExists)
	}

	r.logger.Infow("permission created", "id", model.ID, "name", model.Name)
	return nil
}

func (r *PermissionRepository) GetByID(ctx context.Context, id string) (*permission.Permission, error) {
	var model models.PermissionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "get permission", msgPermissionNotFound, "")
	}
	return mappers.PermissionToDomain(&model), nil
}

func (r *PermissionRepository) GetByIDWithDeleted(ctx context.Context, id string) (*permission.Permission, error) {
	var model models.PermissionModel
	if err := db.GetTxFromContext(ctx, r.db).Unscoped().Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "get permission", msgPermissionNotFound, "")
	}
	return mappers.PermissionToDomain(&model), nil
}

func (r *PermissionRepository) GetByIDs(ctx context.Context, ids []string) ([]*permission.Permission, error) {
	if len(ids) == 0 {
		return []*permission.Permission{}, nil
	}

	var list []*models.PermissionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&list).Error; err != nil {
		r.logger.Errorw("failed to get permissions by IDs", "ids", ids, "error", err)
		return nil, translate(err, "get permissions", msgPermissionNotFound, "")
	}

	result := make([]*permission.Permission, 0, len(list))
	for _, m := range list {
		result = append(result, mappers.PermissionToDomain(m))
	}
	return result, nil
}

func (r *PermissionRepository) GetByName(ctx context.Context, name string) (*permission.Permission, error) {
	var model models.PermissionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, translate(err, "get permission", msgPermissionNotFound, "")
	}
	return mappers.PermissionToDomain(&model), nil
}

func (r *PermissionRepository) Update(ctx context.Context, p *permission.Permission) error {
	model := mappers.PermissionToModel(p)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.PermissionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"resource":    model.Resource,
			"action":      model.Action,
			"description": model.Description,
			"is_active":   model.IsActive,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update permission", "id", model.ID, "error", result.Error)
		return translate(result.Error, "update permission", msgPermissionNotFound, msgPermissionExists)
	}
	return nil
}

func (r *PermissionRepository) Delete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.PermissionModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete permission", "id", id, "error", result.Error)
		return translate(result.Error, "delete permission", msgPermissionNotFound, "")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "", msgPermissionNotFound, "")
	}

	r.logger.Infow("permission soft deleted", "id", id)
	return nil
}

func (r *PermissionRepository) Restore(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Unscoped().Model(&models.PermissionModel{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Updates(map[string]interface{}{"deleted_at": nil, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return translate(result.Error, "restore permission", msgPermissionNotFound, msgPermissionExists)
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "", "Permission not found or not deleted", "")
	}
	return nil
}

func (r *PermissionRepository) List(ctx context.Context, filter permission.PermissionFilter) ([]*permission.Permission, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.PermissionModel{})
	if filter.IncludeDeleted {
		query = query.Unscoped()
	}
	if filter.Resource != "" {
		query = query.Where("resource = ?", filter.Resource)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?"+likeEscape, likePattern(filter.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count permissions", "error", err)
		return nil, 0, translate(err, "count permissions", msgPermissionNotFound, "")
	}

	var list []*models.PermissionModel
	if err := query.Order("resource ASC, action ASC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list permissions", "error", err)
		return nil, 0, translate(err, "list permissions", msgPermissionNotFound, "")
	}

	result := make([]*permission.Permission, 0, len(list))
	for _, m := range list {
		result = append(result, mappers.PermissionToDomain(m))
	}
	return result, total, nil
}
