package models

import (
	"time"

	"github.com/labpool/labpool/internal/shared/constants"
)

type FileModel struct {
	ID         string    `gorm:"primaryKey;size:36"`
	FileName   string    `gorm:"not null;size:500"`
	FileType   string    `gorm:"not null;size:100"`
	FileSize   int64     `gorm:"not null"`
	FilePath   string    `gorm:"not null;size:1000"`
	ModuleName string    `gorm:"not null;size:32;default:general;index"`
	UploaderID string    `gorm:"not null;size:36;index"`
	IsDeleted  bool      `gorm:"not null;default:false"`
	UploadDate time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time
}

func (FileModel) TableName() string {
	return constants.TableFiles
}
