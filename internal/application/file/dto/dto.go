package dto

import (
	"time"

	"github.com/labpool/labpool/internal/domain/file"
	"github.com/labpool/labpool/internal/shared/mapper"
)

type FileDTO struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	FileType   string    `json:"fileType"`
	FileSize   int64     `json:"fileSize"`
	FilePath   string    `json:"filePath"`
	ModuleName string    `json:"moduleName"`
	UploaderID string    `json:"uploaderId"`
	IsDeleted  bool      `json:"isDeleted"`
	UploadDate time.Time `json:"uploadDate"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func ToFileDTO(f *file.File) *FileDTO {
	if f == nil {
		return nil
	}
	return &FileDTO{
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

func ToFileDTOs(list []*file.File) []*FileDTO {
	return mapper.MapSlice(list, ToFileDTO)
}

// CreateFileRequest registers metadata for bytes stored elsewhere.
type CreateFileRequest struct {
	FileName   string `json:"fileName" binding:"required,max=500"`
	FileType   string `json:"fileType" binding:"required,max=100"`
	FileSize   int64  `json:"fileSize" binding:"min=0"`
	FilePath   string `json:"filePath" binding:"required,max=1000"`
	ModuleName string `json:"moduleName"`
}

type UpdateFileRequest struct {
	FileName   *string `json:"fileName" binding:"omitempty,max=500"`
	ModuleName *string `json:"moduleName"`
}

type ListFilesRequest struct {
	Page           int
	PageSize       int
	ModuleName     string
	UploaderID     string
	IncludeDeleted bool
}
