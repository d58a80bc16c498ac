package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/shared/constants"
)

// PoolModel stores money columns in minor units.
type PoolModel struct {
	ID                string `gorm:"primaryKey;size:36"`
	Name              string `gorm:"not null;size:255"`
	SampleSource      string `gorm:"not null;size:255"`
	BatchNumber       string `gorm:"not null;size:100;index:idx_pools_batch_category"`
	Description       string `gorm:"type:text"`
	PoolPrice         *int64
	AmountReceived    int64   `gorm:"not null;default:0"`
	Status            string  `gorm:"not null;size:32;default:Created;index"`
	TotalContributors int     `gorm:"not null;default:0"`
	IsActive          bool    `gorm:"not null;default:true"`
	IsApproved        bool    `gorm:"not null;default:false"`
	CategoryID        string  `gorm:"not null;size:36;index:idx_pools_batch_category"`
	SampleImageID     *string `gorm:"size:36"`
	UserID            string  `gorm:"not null;size:36;index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (PoolModel) TableName() string {
	return constants.TablePools
}
