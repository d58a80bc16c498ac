package dto

import (
	"time"

	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/shared/mapper"
)

type PermissionDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Resource    string     `json:"resource"`
	Action      string     `json:"action"`
	Description string     `json:"description"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

func ToPermissionDTO(p *permission.Permission) *PermissionDTO {
	if p == nil {
		return nil
	}
	return &PermissionDTO{
		ID:          p.ID(),
		Name:        p.Name(),
		Resource:    p.Resource(),
		Action:      p.Action(),
		Description: p.Description(),
		IsActive:    p.IsActive(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
		DeletedAt:   p.DeletedAt(),
	}
}

func ToPermissionDTOs(list []*permission.Permission) []*PermissionDTO {
	return mapper.MapSlice(list, ToPermissionDTO)
}

type CreatePermissionRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Resource    string `json:"resource" binding:"required,max=100"`
	Action      string `json:"action" binding:"required,max=50"`
	Description string `json:"description"`
}

type BulkCreatePermissionsRequest struct {
	Permissions []CreatePermissionRequest `json:"permissions" binding:"required,min=1,dive"`
}

type UpdatePermissionRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Resource    *string `json:"resource" binding:"omitempty,max=100"`
	Action      *string `json:"action" binding:"omitempty,max=50"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type ListPermissionsRequest struct {
	Page           int
	PageSize       int
	Search         string
	Resource       string
	IncludeDeleted bool
}
