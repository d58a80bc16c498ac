package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/domain/sampleproduct"
	"github.com/labpool/labpool/internal/infrastructure/persistence/mappers"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
	"github.com/labpool/labpool/internal/shared/db"
	"github.com/labpool/labpool/internal/shared/id"
	"github.com/labpool/labpool/internal/shared/logger"
)

const (
	msgSampleProductNotFound = "Sample product not found"
	msgSampleProductExists   = "Sample product with this name or code already exists"
)

type SampleProductRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSampleProductRepository(db *gorm.DB, logger logger.Interface) sampleproduct.Repository {
	return &SampleProductRepository{db: db, logger: logger}
}

func (r *SampleProductRepository) Create(ctx context.Context, s *sampleproduct.SampleProduct) error {
	if s.ID() == "" {
		if err := s.SetID(id.NewUUID()); err != nil {
			return err
		}
	}

	model := mappers.SampleProductToModel(s)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create sample product", "name", s.Name(), "error", err)
		return translate(err, "create sample product", msgSampleProductNotFound, msgSampleProductExists)
	}

	r.logger.Infow("sample product created", "id", model.ID)
	return nil
}

func (r *SampleProductRepository) GetByID(ctx context.Context, id string) (*sampleproduct.SampleProduct, error) {
	var model models.SampleProductModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "get sample product", msgSampleProductNotFound, "")
	}
	return mappers.SampleProductToDomain(&model), nil
}

func (r *SampleProductRepository) GetByIDWithDeleted(ctx context.Context, id string) (*sampleproduct.SampleProduct, error) {
	var model models.SampleProductModel
	if err := db.GetTxFromContext(ctx, r.db).Unscoped().Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "get sample product", msgSampleProductNotFound, "")
	}
	return mappers.SampleProductToDomain(&model), nil
}

func (r *SampleProductRepository) GetActiveByID(ctx context.Context, id string) (*sampleproduct.SampleProduct, error) {
	var model models.SampleProductModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("id = ? AND is_active = ?", id, true).
		First(&model).Error; err != nil {
		return nil, translate(err, "get sample product", msgSampleProductNotFound, "")
	}
	return mappers.SampleProductToDomain(&model), nil
}

func (r *SampleProductRepository) ExistsByNameOrCode(ctx context.Context, name string, code *string, excludeID string) (bool, error) {
	query := db.GetTxFromContext(ctx, r.db).Unscoped().Model(&models.SampleProductModel{})
	if code != nil && *code != "" {
		query = query.Where("(name = ? OR code = ?)", name, *code)
	} else {
		query = query.Where("name = ?", name)
	}
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translate(err, "check sample product", msgSampleProductNotFound, "")
	}
	return count > 0, nil
}

func (r *SampleProductRepository) Update(ctx context.Context, s *sampleproduct.SampleProduct) error {
	model := mappers.SampleProductToModel(s)
	result := db.GetTxFromContext(ctx, r.db).Model(&models.SampleProductModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"description": model.Description,
			"code":        model.Code,
			"is_active":   model.IsActive,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update sample product", "id", model.ID, "error", result.Error)
		return translate(result.Error, "update sample product", msgSampleProductNotFound, msgSampleProductExists)
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "", msgSampleProductNotFound, "")
	}
	return nil
}

func (r *SampleProductRepository) SoftDelete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.SampleProductModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete sample product", "id", id, "error", result.Error)
		return translate(result.Error, "delete sample product", msgSampleProductNotFound, "")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "", msgSampleProductNotFound, "")
	}
	return nil
}

func (r *SampleProductRepository) Restore(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Unscoped().Model(&models.SampleProductModel{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Updates(map[string]interface{}{"deleted_at": nil, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return translate(result.Error, "restore sample product", msgSampleProductNotFound, msgSampleProductExists)
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "", "Sample product not found or not deleted", "")
	}
	return nil
}

func (r *SampleProductRepository) List(ctx context.Context, filter sampleproduct.ListFilter) ([]*sampleproduct.SampleProduct, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.SampleProductModel{})
	if filter.IncludeDeleted {
		query = query.Unscoped()
	}
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count sample products", "error", err)
		return nil, 0, translate(err, "count sample products", msgSampleProductNotFound, "")
	}

	var list []*models.SampleProductModel
	if err := query.Order("name ASC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list sample products", "error", err)
		return nil, 0, translate(err, "list sample products", msgSampleProductNotFound, "")
	}

	result := make([]*sampleproduct.SampleProduct, 0, len(list))
	for _, m := range list {
		result = append(result, mappers.SampleProductToDomain(m))
	}
	return result, total, nil
}
