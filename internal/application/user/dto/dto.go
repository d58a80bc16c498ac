package dto

import (
	"time"

	roledto "github.com/labpool/labpool/internal/application/role/dto"
	"github.com/labpool/labpool/internal/domain/user"
	"github.com/labpool/labpool/internal/shared/mapper"
)

type UserDTO struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	IsActive  bool               `json:"isActive"`
	Roles     []*roledto.RoleDTO `json:"roles"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	roles := roledto.ToRoleDTOs(u.Roles())
	if roles == nil {
		roles = []*roledto.RoleDTO{}
	}
	return &UserDTO{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		IsActive:  u.IsActive(),
		Roles:     roles,
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func ToUserDTOs(list []*user.User) []*UserDTO {
	return mapper.MapSlice(list, ToUserDTO)
}

type CreateUserRequest struct {
	Name     string   `json:"name" binding:"required,max=100"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	RoleIDs  []string `json:"roleIds"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	IsActive *bool   `json:"isActive"`
}

type AssignRolesRequest struct {
	RoleIDs []string `json:"roleIds" binding:"required"`
}

type ListUsersRequest struct {
	Page     int
	PageSize int
	Search   string
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResponse is shaped like an OAuth2 token response.
type LoginResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	User         *UserDTO `json:"user,omitempty"`
}
