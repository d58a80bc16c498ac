package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/shared/constants"
)

type SampleProductModel struct {
	ID          string  `gorm:"primaryKey;size:36"`
	Name        string  `gorm:"uniqueIndex;not null;size:255"`
	Description string  `gorm:"type:text"`
	Code        *string `gorm:"uniqueIndex;size:100"`
	IsActive    bool    `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (SampleProductModel) TableName() string {
	return constants.TableSampleProducts
}
