package dto

import (
	"time"

	"github.com/labpool/labpool/internal/domain/sampleproduct"
)

type SampleProductDTO struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	DescriptionHTML string     `json:"descriptionHtml"`
	Code            *string    `json:"code"`
	IsActive        bool       `json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	DeletedAt       *time.Time `json:"deletedAt,omitempty"`
}

// ToSampleProductDTO takes the already rendered description HTML.
func ToSampleProductDTO(s *sampleproduct.SampleProduct, descriptionHTML string) *SampleProductDTO {
	if s == nil {
		return nil
	}
	return &SampleProductDTO{
		ID:              s.ID(),
		Name:            s.Name(),
		Description:     s.Description(),
		DescriptionHTML: descriptionHTML,
		Code:            s.Code(),
		IsActive:        s.IsActive(),
		CreatedAt:       s.CreatedAt(),
		UpdatedAt:       s.UpdatedAt(),
		DeletedAt:       s.DeletedAt(),
	}
}

type CreateSampleProductRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Description string  `json:"description"`
	Code        *string `json:"code" binding:"omitempty,max=100"`
}

type UpdateSampleProductRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string `json:"description"`
	Code        *string `json:"code" binding:"omitempty,max=100"`
	IsActive    *bool   `json:"isActive"`
}

type ListSampleProductsRequest struct {
	Page            int
	PageSize        int
	IncludeInactive bool
	IncludeDeleted  bool
}
