package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/shared/constants"
)

type PermissionModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"uniqueIndex;not null;size:100"`
	Resource    string `gorm:"not null;size:100;index:idx_permissions_resource_action"`
	Action      string `gorm:"not null;size:50;index:idx_permissions_resource_action"`
	Description string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (PermissionModel) TableName() string {
	return constants.TablePermissions
}
