package permission

import (
	"strings"
	"time"

	"github.com/labpool/labpool/internal/shared/constants"
	"github.com/labpool/labpool/internal/shared/errors"
)

const maxRoleNameLength = 100

// Role groups permissions under a unique name.
type Role struct {
	id          string
	name        string
	description string
	isActive    bool
	permissions []*Permission
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

func NewRole(name, description string) (*Role, error) {
	if err := validateRoleName(name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Role{
		name:        strings.TrimSpace(name),
		description: description,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

type RoleReconstructParams struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	Permissions []*Permission
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

func ReconstructRole(p RoleReconstructParams) *Role {
	return &Role{
		id:          p.ID,
		name:        p.Name,
		description: p.Description,
		isActive:    p.IsActive,
		permissions: p.Permissions,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
		deletedAt:   p.DeletedAt,
	}
}

func validateRoleName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewValidationError("role name is required")
	}
	if len(name) > maxRoleNameLength {
		return errors.NewValidationError("role name too long (max 100 characters)")
	}
	return nil
}

func (r *Role) ID() string { return r.id }
func (r *Role) Name() string { return r.name }
func (r *Role) Description() string { return r.description }
func (r *Role) IsActive() bool { return r.isActive }
func (r *Role) Permissions() []*Permission { return r.permissions }
func (r *Role) CreatedAt() time.Time { return r.createdAt }
func (r *Role) UpdatedAt() time.Time { return r.updatedAt }
func (r *Role) DeletedAt() *time.Time { return r.deletedAt }

func (r *Role) SetID(id string) error {
	if r.id != "" {
		return errors.NewInternalError("role ID is already set")
	}
	r.id = id
	return nil
}

// IsSuperadmin reports the conventional all-powerful role.
func (r *Role) IsSuperadmin() bool {
	return r.name == constants.SuperadminRoleName
}

// EnsureDeletable refuses to delete the superadmin role.
func (r *Role) EnsureDeletable() error {
	if r.IsSuperadmin() {
		return errors.NewConflictError("Cannot delete superadmin role")
	}
	return nil
}

type RoleUpdate struct {
	Name        *string
	Description *string
	IsActive    *bool
}

func (r *Role) Apply(u RoleUpdate) error {
	if u.Name != nil {
		if err := validateRoleName(*u.Name); err != nil {
			return err
		}
		r.name = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		r.description = *u.Description
	}
	if u.IsActive != nil {
		r.isActive = *u.IsActive
	}
	r.updatedAt = time.Now().UTC()
	return nil
}

// ReplacePermissions sets the permission set, dropping duplicates.
func (r *Role) ReplacePermissions(perms []*Permission) {
	seen := make(map[string]bool, len(perms))
	out := make([]*Permission, 0, len(perms))
	for _, p := range perms {
		if seen[p.ID()] {
			continue
		}
		seen[p.ID()] = true
		out = append(out, p)
	}
	r.permissions = out
	r.updatedAt = time.Now().UTC()
}

// RemovePermissions drops the given ids and keeps the rest.
func (r *Role) RemovePermissions(ids []string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := r.permissions[:0:0]
	for _, p := range r.permissions {
		if !drop[p.ID()] {
			kept = append(kept, p)
		}
	}
	r.permissions = kept
	r.updatedAt = time.Now().UTC()
}

func (r *Role) PermissionIDs() []string {
	ids := make([]string, 0, len(r.permissions))
	for _, p := range r.permissions {
		ids = append(ids, p.ID())
	}
	return ids
}
