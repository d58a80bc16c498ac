package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/domain/user"
	"github.com/labpool/labpool/internal/infrastructure/persistence/mappers"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
	"github.com/labpool/labpool/internal/shared/db"
	"github.com/labpool/labpool/internal/shared/id"
	"github.com/labpool/labpool/internal/shared/logger"
)

const (
	msgUserNotFound = "User not found"
	msgUserExists   = "User with this email already exists"
)

// UserRepository loads users together with the roles and permissions the
// ability evaluator needs. Soft-deleted roles and permissions are skipped
// by the preloads.
type UserRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepository{db: db, logger: logger}
}

func (r *UserRepository) withRoles(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db).Preload("Roles.Permissions")
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if u.ID() == "" {
		if err := u.SetID(id.NewUUID()); err != nil {
			return err
		}
	}

	model := mappers.UserToModel(u)
	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Roles").Create(model).Error; err != nil {
			return err
		}
		return replaceUserRoles(tx, model.ID, u.RoleIDs())
	})
	if err != nil {
		r.logger.Errorw("failed to create user", "email", u.Email(), "error", err)
		return translate(err, "create user", msgUserNotFound, msgUserExists)
	}

	r.logger.Infow("user created", "id", model.ID)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var model models.UserModel
	if err := r.withRoles(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "get user", msgUserNotFound, "")
	}
	return mappers.UserToDomain(&model), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	if err := r.withRoles(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		return nil, translate(err, "get user", msgUserNotFound, "")
	}
	return mappers.UserToDomain(&model), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return false, translate(err, "check user email", msgUserNotFound, "")
	}
	return count > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := mappers.UserToModel(u)

	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.UserModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]interface{}{
				"name":          model.Name,
				"email":         model.Email,
				"password_hash": model.PasswordHash,
				"is_active":     model.IsActive,
				"updated_at":    model.UpdatedAt,
			}).Error; err != nil {
			return err
		}
		return replaceUserRoles(tx, model.ID, u.RoleIDs())
	})
	if err != nil {
		r.logger.Errorw("failed to update user", "id", model.ID, "error", err)
		return translate(err, "update user", msgUserNotFound, msgUserExists)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	var affected int64
	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserRoleModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.UserModel{})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		r.logger.Errorw("failed to delete user", "id", id, "error", err)
		return translate(err, "delete user", msgUserNotFound, "")
	}
	if affected == 0 {
		return translate(gorm.ErrRecordNotFound, "", msgUserNotFound, "")
	}

	r.logger.Infow("user deleted", "id", id)
	return nil
}

func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{})
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(name LIKE ?"+likeEscape+" OR email LIKE ?"+likeEscape+")", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count users", "error", err)
		return nil, 0, translate(err, "count users", msgUserNotFound, "")
	}

	var list []*models.UserModel
	if err := query.Preload("Roles.Permissions").
		Order("created_at DESC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list users", "error", err)
		return nil, 0, translate(err, "list users", msgUserNotFound, "")
	}

	result := make([]*user.User, 0, len(list))
	for _, m := range list {
		result = append(result, mappers.UserToDomain(m))
	}
	return result, total, nil
}

func replaceUserRoles(tx *gorm.DB, userID string, roleIDs []string) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.UserRoleModel{}).Error; err != nil {
		return err
	}
	if len(roleIDs) == 0 {
		return nil
	}

	rows := make([]models.UserRoleModel, 0, len(roleIDs))
	for _, rid := range roleIDs {
		rows = append(rows, models.UserRoleModel{UserID: userID, RoleID: rid})
	}
	return tx.Create(&rows).Error
}
