package dto

import (
	"time"

	permdto "github.com/labpool/labpool/internal/application/permission/dto"
	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/shared/mapper"
)

type RoleDTO struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	IsActive    bool                     `json:"isActive"`
	Permissions []*permdto.PermissionDTO `json:"permissions"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
	DeletedAt   *time.Time               `json:"deletedAt,omitempty"`
}

func ToRoleDTO(r *permission.Role) *RoleDTO {
	if r == nil {
		return nil
	}
	perms := permdto.ToPermissionDTOs(r.Permissions())
	if perms == nil {
		perms = []*permdto.PermissionDTO{}
	}
	return &RoleDTO{
		ID:          r.ID(),
		Name:        r.Name(),
		Description: r.Description(),
		IsActive:    r.IsActive(),
		Permissions: perms,
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
		DeletedAt:   r.DeletedAt(),
	}
}

func ToRoleDTOs(list []*permission.Role) []*RoleDTO {
	return mapper.MapSlice(list, ToRoleDTO)
}

type CreateRoleRequest struct {
	Name          string   `json:"name" binding:"required,max=100"`
	Description   string   `json:"description"`
	PermissionIDs []string `json:"permissionIds"`
}

type UpdateRoleRequest struct {
	Name          *string   `json:"name" binding:"omitempty,max=100"`
	Description   *string   `json:"description"`
	IsActive      *bool     `json:"isActive"`
	PermissionIDs *[]string `json:"permissionIds"`
}

type PermissionIDsRequest struct {
	PermissionIDs []string `json:"permissionIds" binding:"required,min=1"`
}

type ListRolesRequest struct {
	Page           int
	PageSize       int
	Search         string
	IncludeDeleted bool
}
