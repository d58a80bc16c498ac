package sampleproduct

import (
	"strings"
	"time"

	"github.com/labpool/labpool/internal/shared/errors"
)

// SampleProduct is a category pools are filed under. The description is
// markdown.
type SampleProduct struct {
	id          string
	name        string
	description string
	code        *string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

func NewSampleProduct(name, description string, code *string) (*SampleProduct, error) {
	if err := validate(name, code); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &SampleProduct{
		name:        strings.TrimSpace(name),
		description: description,
		code:        trimCode(code),
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

type SampleProductReconstructParams struct {
	ID          string
	Name        string
	Description string
	Code        *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

func ReconstructSampleProductWithParams(p SampleProductReconstructParams) *SampleProduct {
	return &SampleProduct{
		id:          p.ID,
		name:        p.Name,
		description: p.Description,
		code:        p.Code,
		isActive:    p.IsActive,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
		deletedAt:   p.DeletedAt,
	}
}

func validate(name string, code *string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return errors.NewValidationError("name must be at least 2 characters")
	}
	if len(name) > 255 {
		return errors.NewValidationError("name too long (max 255 characters)")
	}
	if code != nil && len(*code) > 100 {
		return errors.NewValidationError("code too long (max 100 characters)")
	}
	return nil
}

func trimCode(code *string) *string {
	if code == nil {
		return nil
	}
	c := strings.TrimSpace(*code)
	if c == "" {
		return nil
	}
	return &c
}

func (s *SampleProduct) ID() string { return s.id }
func (s *SampleProduct) Name() string { return s.name }
func (s *SampleProduct) Description() string { return s.description }
func (s *SampleProduct) Code() *string { return s.code }
func (s *SampleProduct) IsActive() bool { return s.isActive }
func (s *SampleProduct) CreatedAt() time.Time { return s.createdAt }
func (s *SampleProduct) UpdatedAt() time.Time { return s.updatedAt }
func (s *SampleProduct) DeletedAt() *time.Time { return s.deletedAt }
func (s *SampleProduct) IsDeleted() bool { return s.deletedAt != nil }

func (s *SampleProduct) SetID(id string) error {
	if s.id != "" {
		return errors.NewInternalError("sample product ID is already set")
	}
	s.id = id
	return nil
}

type SampleProductUpdate struct {
	Name        *string
	Description *string
	Code        *string
	IsActive    *bool
}

func (s *SampleProduct) Apply(u SampleProductUpdate) error {
	name := s.name
	if u.Name != nil {
		name = *u.Name
	}
	if err := validate(name, u.Code); err != nil {
		return err
	}

	s.name = strings.TrimSpace(name)
	if u.Description != nil {
		s.description = *u.Description
	}
	if u.Code != nil {
		s.code = trimCode(u.Code)
	}
	if u.IsActive != nil {
		s.isActive = *u.IsActive
	}
	s.updatedAt = time.Now().UTC()
	return nil
}
