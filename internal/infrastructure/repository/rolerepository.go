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
	msgRoleNotFound = "Role not found"
	msgRoleExists   = "Role with this name already exists"
)

type RoleRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewRoleRepository(db *gorm.DB, logger logger.Interface) permission.RoleRepository {
	return &RoleRepository{db: db, logger: logger}
}

func (r *RoleRepository) Create(ctx context.Context, role *permission.Role) error {
	if role.ID() == "" {
		if err := role.SetID(id.NewUUID()); err != nil {
			return err
		}
	}

	model := mappers.RoleToModel(role)
	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Permissions").Create(model).Error; err != nil {
			return err
		}
		return replaceRolePermissions(tx, model.ID, role.PermissionIDs())
	})
	if err != nil {
		r.logger.Errorw("failed to create role", "name", role.Name(), "error", err)
		return translate(err, "create role", msgRoleNotFound, msgRoleExists)
	}

	r.logger.Infow("role created", "id", model.ID, "name", model.Name)
	return nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id string) (*permission.Role, error) {
	var model models.RoleModel
	if err := db.GetTxFromContext(ctx, r.db).Preload("Permissions").Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "get role", msgRoleNotFound, "")
	}
	return mappers.RoleToDomain(&model), nil
}

func (r *RoleRepository) GetByIDWithDeleted(ctx context.Context, id string) (*permission.Role, error) {
	var model models.RoleModel
	if err := db.GetTxFromContext(ctx, r.db).Unscoped().Preload("Permissions").Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "get role", msgRoleNotFound, "")
	}
	return mappers.RoleToDomain(&model), nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*permission.Role, error) {
	var model models.RoleModel
	if err := db.GetTxFromContext(ctx, r.db).Preload("Permissions").Where("name = ?", name).First(&model).Error; err != nil {
		return nil, translate(err, "get role", msgRoleNotFound, "")
	}
	return mappers.RoleToDomain(&model), nil
}

func (r *RoleRepository) GetByIDs(ctx context.Context, ids []string) ([]*permission.Role, error) {
	if len(ids) == 0 {
		return []*permission.Role{}, nil
	}

	var list []models.RoleModel
	if err := db.GetTxFromContext(ctx, r.db).Preload("Permissions").Where("id IN ?", ids).Find(&list).Error; err != nil {
		r.logger.Errorw("failed to get roles by IDs", "ids", ids, "error", err)
		return nil, translate(err, "get roles", msgRoleNotFound, "")
	}
	return mappers.RolesToDomain(list), nil
}

func (r *RoleRepository) Update(ctx context.Context, role *permission.Role) error {
	model := mappers.RoleToModel(role)

	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.RoleModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]interface{}{
				"name":        model.Name,
				"description": model.Description,
				"is_active":   model.IsActive,
				"updated_at":  model.UpdatedAt,
			}).Error; err != nil {
			return err
		}
		return replaceRolePermissions(tx, model.ID, role.PermissionIDs())
	})
	if err != nil {
		r.logger.Errorw("failed to update role", "id", model.ID, "error", err)
		return translate(err, "update role", msgRoleNotFound, msgRoleExists)
	}
	return nil
}

func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.RoleModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete role", "id", id, "error", result.Error)
		return translate(result.Error, "delete role", msgRoleNotFound, "")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "", msgRoleNotFound, "")
	}

	r.logger.Infow("role soft deleted", "id", id)
	return nil
}

func (r *RoleRepository) Restore(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Unscoped().Model(&models.RoleModel{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Updates(map[string]interface{}{"deleted_at": nil, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return translate(result.Error, "restore role", msgRoleNotFound, msgRoleExists)
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "", "Role not found or not deleted", "")
	}
	return nil
}

func (r *RoleRepository) List(ctx context.Context, filter permission.RoleFilter) ([]*permission.Role, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.RoleModel{})
	if filter.IncludeDeleted {
		query = query.Unscoped()
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?"+likeEscape, likePattern(filter.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count roles", "error", err)
		return nil, 0, translate(err, "count roles", msgRoleNotFound, "")
	}

	var list []models.RoleModel
	if err := query.Preload("Permissions").
		Order("name ASC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list roles", "error", err)
		return nil, 0, translate(err, "list roles", msgRoleNotFound, "")
	}
	return mappers.RolesToDomain(list), total, nil
}

func replaceRolePermissions(tx *gorm.DB, roleID string, permissionIDs []string) error {
	if err := tx.Where("role_id = ?", roleID).Delete(&models.RolePermissionModel{}).Error; err != nil {
		return err
	}
	if len(permissionIDs) == 0 {
		return nil
	}

	rows := make([]models.RolePermissionModel, 0, len(permissionIDs))
	for _, pid := range permissionIDs {
		rows = append(rows, models.RolePermissionModel{RoleID: roleID, PermissionID: pid})
	}
	return tx.Create(&rows).Error
}
