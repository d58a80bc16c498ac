package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/domain/file"
	"github.com/labpool/labpool/internal/infrastructure/persistence/mappers"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
	"github.com/labpool/labpool/internal/shared/db"
	"github.com/labpool/labpool/internal/shared/id"
	"github.com/labpool/labpool/internal/shared/logger"
)

const msgFileNotFound = "File not found"

type FileRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewFileRepository(db *gorm.DB, logger logger.Interface) file.Repository {
	return &FileRepository{db: db, logger: logger}
}

func (r *FileRepository) Create(ctx context.Context, f *file.File) error {
	if f.ID() == "" {
		if err := f.SetID(id.NewUUID()); err != nil {
			return err
		}
	}

	model := mappers.FileToModel(f)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create file record", "name", f.FileName(), "error", err)
		return translate(err, "create file", msgFileNotFound, "")
	}
	return nil
}

func (r *FileRepository) GetByID(ctx context.Context, id string) (*file.File, error) {
	var model models.FileModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "get file", msgFileNotFound, "")
	}
	return mappers.FileToDomain(&model), nil
}

func (r *FileRepository) Update(ctx context.Context, f *file.File) error {
	model := mappers.FileToModel(f)
	result := db.GetTxFromContext(ctx, r.db).Model(&models.FileModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"file_name":   model.FileName,
			"module_name": model.ModuleName,
			"is_deleted":  model.IsDeleted,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update file record", "id", model.ID, "error", result.Error)
		return translate(result.Error, "update file", msgFileNotFound, "")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "", msgFileNotFound, "")
	}
	return nil
}

func (r *FileRepository) HardDelete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.FileModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete file record", "id", id, "error", result.Error)
		return translate(result.Error, "delete file", msgFileNotFound, "")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "", msgFileNotFound, "")
	}
	return nil
}

func (r *FileRepository) List(ctx context.Context, filter file.ListFilter) ([]*file.File, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.FileModel{})
	if !filter.IncludeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	if filter.ModuleName != "" {
		query = query.Where("module_name = ?", string(filter.ModuleName))
	}
	if filter.UploaderID != "" {
		query = query.Where("uploader_id = ?", filter.UploaderID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count files", "error", err)
		return nil, 0, translate(err, "count files", msgFileNotFound, "")
	}

	var list []*models.FileModel
	if err := query.Order("upload_date DESC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list files", "error", err)
		return nil, 0, translate(err, "list files", msgFileNotFound, "")
	}

	result := make([]*file.File, 0, len(list))
	for _, m := range list {
		result = append(result, mappers.FileToDomain(m))
	}
	return result, total, nil
}
