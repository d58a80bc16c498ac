package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/shared/constants"
)

type RoleModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"uniqueIndex;not null;size:100"`
	Description string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	Permissions []PermissionModel `gorm:"many2many:role_permissions;joinForeignKey:RoleID;joinReferences:PermissionID"`
}

func (RoleModel) TableName() string {
	return constants.TableRoles
}

// RolePermissionModel is the join row between roles and permissions.
type RolePermissionModel struct {
	RoleID       string `gorm:"primaryKey;size:36"`
	PermissionID string `gorm:"primaryKey;size:36;index"`
}

func (RolePermissionModel) TableName() string {
	return constants.TableRolePermissions
}

// UserRoleModel is the join row between users and roles.
type UserRoleModel struct {
	UserID string `gorm:"primaryKey;size:36"`
	RoleID string `gorm:"primaryKey;size:36;index"`
}

func (UserRoleModel) TableName() string {
	return constants.TableUserRoles
}
