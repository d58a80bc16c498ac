package mappers

import (
	"github.com/labpool/labpool/internal/domain/file"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
)

func FileToModel(f *file.File) *models.FileModel {
	return &models.FileModel{
		ID:         f.ID(),
		FileName:   f.FileName(),
		FileType:   f.FileType(),
		FileSize:   f.FileSize(),
		FilePath:   f.FilePath(),
		ModuleName: string(f.ModuleName()),
		UploaderID: f.UploaderID(),
		IsDeleted:  f.IsDeleted(),
		UploadDate: f.UploadDate(),
		UpdatedAt:  f.UpdatedAt(),
	}
}

func FileToDomain(m *models.FileModel) *file.File {
	return file.ReconstructFileWithParams(file.FileReconstructParams{
		ID:         m.ID,
		FileName:   m.FileName,
		FileType:   m.FileType,
		FileSize:   m.FileSize,
		FilePath:   m.FilePath,
		ModuleName: file.ModuleName(m.ModuleName),
		UploaderID: m.UploaderID,
		IsDeleted:  m.IsDeleted,
		UploadDate: m.UploadDate,
		UpdatedAt:  m.UpdatedAt,
	})
}
