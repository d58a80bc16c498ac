package mappers

import (
	"github.com/labpool/labpool/internal/domain/sampleproduct"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
)

func SampleProductToModel(s *sampleproduct.SampleProduct) *models.SampleProductModel {
	return &models.SampleProductModel{
		ID:          s.ID(),
		Name:        s.Name(),
		Description: s.Description(),
		Code:        s.Code(),
		IsActive:    s.IsActive(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
		DeletedAt:   toDeletedAt(s.DeletedAt()),
	}
}

func SampleProductToDomain(m *models.SampleProductModel) *sampleproduct.SampleProduct {
	return sampleproduct.ReconstructSampleProductWithParams(sampleproduct.SampleProductReconstructParams{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Code:        m.Code,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   fromDeletedAt(m.DeletedAt),
	})
}
