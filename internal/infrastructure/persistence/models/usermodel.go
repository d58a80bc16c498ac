package models

import (
	"time"

	"github.com/labpool/labpool/internal/shared/constants"
)

// UserModel is the persistence shape of a user. Users are hard-deleted.
type UserModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"not null;size:100"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string `gorm:"not null;size:255"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Roles []RoleModel `gorm:"many2many:user_roles;joinForeignKey:UserID;joinReferences:RoleID"`
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
