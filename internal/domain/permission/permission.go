package permission

import (
	"strings"
	"time"

	"github.com/labpool/labpool/internal/shared/errors"
)

const (
	maxNameLength     = 100
	maxResourceLength = 100
	maxActionLength   = 50
)

// Permission is a named (resource, action) pair. Resource and action are
// stored verbatim; the ability evaluator decides what they grant.
type Permission struct {
	id          string
	name        string
	resource    string
	action      string
	description string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

func NewPermission(name, resource, action, description string) (*Permission, error) {
	if err := validatePermissionFields(name, resource, action); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Permission{
		name:        strings.TrimSpace(name),
		resource:    strings.TrimSpace(resource),
		action:      strings.TrimSpace(action),
		description: description,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

type PermissionReconstructParams struct {
	ID          string
	Name        string
	Resource    string
	Action      string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

func ReconstructPermission(p PermissionReconstructParams) *Permission {
	return &Permission{
		id:          p.ID,
		name:        p.Name,
		resource:    p.Resource,
		action:      p.Action,
		description: p.Description,
		isActive:    p.IsActive,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
		deletedAt:   p.DeletedAt,
	}
}

func validatePermissionFields(name, resource, action string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.NewValidationError("permission name is required")
	case len(name) > maxNameLength:
		return errors.NewValidationError("permission name too long (max 100 characters)")
	case strings.TrimSpace(resource) == "":
		return errors.NewValidationError("permission resource is required")
	case len(resource) > maxResourceLength:
		return errors.NewValidationError("permission resource too long (max 100 characters)")
	case strings.TrimSpace(action) == "":
		return errors.NewValidationError("permission action is required")
	case len(action) > maxActionLength:
		return errors.NewValidationError("permission action too long (max 50 characters)")
	}
	return nil
}

func (p *Permission) ID() string { return p.id }
func (p *Permission) Name() string { return p.name }
func (p *Permission) Resource() string { return p.resource }
func (p *Permission) Action() string { return p.action }
func (p *Permission) Description() string { return p.description }
func (p *Permission) IsActive() bool { return p.isActive }
func (p *Permission) CreatedAt() time.Time { return p.createdAt }
func (p *Permission) UpdatedAt() time.Time { return p.updatedAt }
func (p *Permission) DeletedAt() *time.Time { return p.deletedAt }

func (p *Permission) SetID(id string) error {
	if p.id != "" {
		return errors.NewInternalError("permission ID is already set")
	}
	p.id = id
	return nil
}

// Code renders the pair as "resource:action".
func (p *Permission) Code() string {
	return p.resource + ":" + p.action
}

type PermissionUpdate struct {
	Name        *string
	Resource    *string
	Action      *string
	Description *string
	IsActive    *bool
}

// Apply changes the mutable fields. The (resource, action) identity can be
// restated but never changed.
func (p *Permission) Apply(u PermissionUpdate) error {
	if u.Resource != nil && !strings.EqualFold(strings.TrimSpace(*u.Resource), p.resource) {
		return errors.NewValidationError("Permission resource cannot be changed")
	}
	if u.Action != nil && !strings.EqualFold(strings.TrimSpace(*u.Action), p.action) {
		return errors.NewValidationError("Permission action cannot be changed")
	}
	name := p.name
	if u.Name != nil {
		name = *u.Name
	}
	if err := validatePermissionFields(name, p.resource, p.action); err != nil {
		return err
	}

	p.name = strings.TrimSpace(name)
	if u.Description != nil {
		p.description = *u.Description
	}
	if u.IsActive != nil {
		p.isActive = *u.IsActive
	}
	p.updatedAt = time.Now().UTC()
	return nil
}
