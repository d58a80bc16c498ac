package mappers

import (
	"time"

	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
	"github.com/labpool/labpool/internal/shared/mapper"
)

func PermissionToModel(p *permission.Permission) *models.PermissionModel {
	return &models.PermissionModel{
		ID:          p.ID(),
		Name:        p.Name(),
		Resource:    p.Resource(),
		Action:      p.Action(),
		Description: p.Description(),
		IsActive:    p.IsActive(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
		DeletedAt:   toDeletedAt(p.DeletedAt()),
	}
}

func PermissionToDomain(m *models.PermissionModel) *permission.Permission {
	return permission.ReconstructPermission(permission.PermissionReconstructParams{
		ID:          m.ID,
		Name:        m.Name,
		Resource:    m.Resource,
		Action:      m.Action,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   fromDeletedAt(m.DeletedAt),
	})
}

func RoleToModel(r *permission.Role) *models.RoleModel {
	return &models.RoleModel{
		ID:          r.ID(),
		Name:        r.Name(),
		Description: r.Description(),
		IsActive:    r.IsActive(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
		DeletedAt:   toDeletedAt(r.DeletedAt()),
	}
}

// RoleToDomain expects Permissions to be preloaded when they matter.
func RoleToDomain(m *models.RoleModel) *permission.Role {
	perms := make([]*permission.Permission, 0, len(m.Permissions))
	for i := range m.Permissions {
		perms = append(perms, PermissionToDomain(&m.Permissions[i]))
	}
	return permission.ReconstructRole(permission.RoleReconstructParams{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		Permissions: perms,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   fromDeletedAt(m.DeletedAt),
	})
}

func RolesToDomain(ms []models.RoleModel) []*permission.Role {
	ptrs := make([]*models.RoleModel, 0, len(ms))
	for i := range ms {
		ptrs = append(ptrs, &ms[i])
	}
	return mapper.MapSlice(ptrs, RoleToDomain)
}

func toDeletedAt(t *time.Time) gorm.DeletedAt {
	if t == nil {
		return gorm.DeletedAt{}
	}
	return gorm.DeletedAt{Time: *t, Valid: true}
}

func fromDeletedAt(d gorm.DeletedAt) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
