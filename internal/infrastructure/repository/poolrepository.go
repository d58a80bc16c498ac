package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/domain/pool"
	"github.com/labpool/labpool/internal/infrastructure/persistence/mappers"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
	"github.com/labpool/labpool/internal/shared/db"
	"github.com/labpool/labpool/internal/shared/id"
	"github.com/labpool/labpool/internal/shared/logger"
)

const (
	msgPoolNotFound = "Pool not found"
	msgPoolExists   = "A pool with this batch number and category already exists"
)

type PoolRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPoolRepository(db *gorm.DB, logger logger.Interface) pool.Repository {
	return &PoolRepository{db: db, logger: logger}
}

func (r *PoolRepository) Create(ctx context.Context, p *pool.Pool) error {
	if p.ID() == "" {
		if err := p.SetID(id.NewUUID()); err != nil {
			return err
		}
	}

	model := mappers.PoolToModel(p)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create pool", "name", p.Name(), "error", err)
		return translate(err, "create pool", msgPoolNotFound, msgPoolExists)
	}

	r.logger.Infow("pool created", "id", model.ID, "user_id", model.UserID)
	return nil
}

func (r *PoolRepository) GetByID(ctx context.Context, id string) (*pool.Pool, error) {
	var model models.PoolModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "get pool", msgPoolNotFound, "")
	}
	return mappers.PoolToDomain(&model), nil
}

func (r *PoolRepository) GetByIDWithDeleted(ctx context.Context, id string) (*pool.Pool, error) {
	var model models.PoolModel
	if err := db.GetTxFromContext(ctx, r.db).Unscoped().Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "get pool", msgPoolNotFound, "")
	}
	return mappers.PoolToDomain(&model), nil
}

// Update writes the editable columns. amount_received and
// total_contributors are only ever changed by Credit.
func (r *PoolRepository) Update(ctx context.Context, p *pool.Pool) error {
	model := mappers.PoolToModel(p)
	result := db.GetTxFromContext(ctx, r.db).Model(&models.PoolModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":            model.Name,
			"sample_source":   model.SampleSource,
			"batch_number":    model.BatchNumber,
			"description":     model.Description,
			"pool_price":      model.PoolPrice,
			"status":          model.Status,
			"is_active":       model.IsActive,
			"is_approved":     model.IsApproved,
			"category_id":     model.CategoryID,
			"sample_image_id": model.SampleImageID,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update pool", "id", model.ID, "error", result.Error)
		return translate(result.Error, "update pool", msgPoolNotFound, msgPoolExists)
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "", msgPoolNotFound, "")
	}
	return nil
}

func (r *PoolRepository) SoftDelete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.PoolModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete pool", "id", id, "error", result.Error)
		return translate(result.Error, "delete pool", msgPoolNotFound, "")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "", msgPoolNotFound, "")
	}

	r.logger.Infow("pool soft deleted", "id", id)
	return nil
}

func (r *PoolRepository) HardDelete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Unscoped().Where("id = ?", id).Delete(&models.PoolModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to hard delete pool", "id", id, "error", result.Error)
		return translate(result.Error, "hard delete pool", msgPoolNotFound, "")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "", msgPoolNotFound, "")
	}

	r.logger.Infow("pool permanently deleted", "id", id)
	return nil
}

func (r *PoolRepository) Restore(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Unscoped().Model(&models.PoolModel{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Updates(map[string]interface{}{"deleted_at": nil, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return translate(result.Error, "restore pool", msgPoolNotFound, msgPoolExists)
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "", "Pool not found or not deleted", "")
	}
	return nil
}

func (r *PoolRepository) List(ctx context.Context, filter pool.ListFilter) ([]*pool.Pool, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.PoolModel{})
	if filter.IncludeDeleted {
		query = query.Unscoped()
	}
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if !filter.IncludeUnapproved {
		query = query.Where("is_approved = ?", true)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count pools", "error", err)
		return nil, 0, translate(err, "count pools", msgPoolNotFound, "")
	}

	var list []*models.PoolModel
	if err := query.Order("created_at DESC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list pools", "error", err)
		return nil, 0, translate(err, "list pools", msgPoolNotFound, "")
	}

	result := make([]*pool.Pool, 0, len(list))
	for _, m := range list {
		result = append(result, mappers.PoolToDomain(m))
	}
	return result, total, nil
}

func (r *PoolRepository) ExistsByBatchAndCategory(ctx context.Context, batchNumber, categoryID, excludeID string) (bool, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.PoolModel{}).
		Where("batch_number = ? AND category_id = ?", batchNumber, categoryID)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translate(err, "check pool batch", msgPoolNotFound, "")
	}
	return count > 0, nil
}

// Credit runs two statements. The first adds the amount and moves a Created
// pool to Funding. The second flips a Funding pool to Target Reached; the
// status guard makes the flip happen for exactly one credit and never pulls
// a pool back from Sent to Lab or Results Ready.
func (r *PoolRepository) Credit(ctx context.Context, id string, amount int64) (pool.CreditResult, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	now := time.Now().UTC()

	result := tx.Model(&models.PoolModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"amount_received":    gorm.Expr("amount_received + ?", amount),
			"total_contributors": gorm.Expr("total_contributors + 1"),
			"status": gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END",
				pool.StatusCreated.String(), pool.StatusFunding.String()),
			"updated_at": now,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to credit pool", "id", id, "amount", amount, "error", result.Error)
		return pool.CreditResult{}, translate(result.Error, "credit pool", msgPoolNotFound, "")
	}
	if result.RowsAffected == 0 {
		return pool.CreditResult{}, translate(gorm.ErrRecordNotFound, "", msgPoolNotFound, "")
	}

	reached := tx.Model(&models.PoolModel{}).
		Where("id = ? AND pool_price IS NOT NULL AND amount_received >= pool_price AND status = ?",
			id, pool.StatusFunding.String()).
		Updates(map[string]interface{}{
			"status":     pool.StatusTargetReached.String(),
			"updated_at": now,
		})
	if reached.Error != nil {
		r.logger.Errorw("failed to update pool status", "id", id, "error", reached.Error)
		return pool.CreditResult{}, translate(reached.Error, "update pool status", msgPoolNotFound, "")
	}

	if reached.RowsAffected > 0 {
		r.logger.Infow("pool reached its target", "id", id)
	}
	return pool.CreditResult{TargetReached: reached.RowsAffected > 0}, nil
}
