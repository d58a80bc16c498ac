package mappers

import (
	"github.com/labpool/labpool/internal/domain/pool"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
)

func PoolToModel(p *pool.Pool) *models.PoolModel {
	return &models.PoolModel{
		ID:                p.ID(),
		Name:              p.Name(),
		SampleSource:      p.SampleSource(),
		BatchNumber:       p.BatchNumber(),
		Description:       p.Description(),
		PoolPrice:         p.PoolPrice(),
		AmountReceived:    p.AmountReceived(),
		Status:            p.Status().String(),
		TotalContributors: p.TotalContributors(),
		IsActive:          p.IsActive(),
		IsApproved:        p.IsApproved(),
		CategoryID:        p.CategoryID(),
		SampleImageID:     p.SampleImageID(),
		UserID:            p.UserID(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
		DeletedAt:         toDeletedAt(p.DeletedAt()),
	}
}

func PoolToDomain(m *models.PoolModel) *pool.Pool {
	return pool.ReconstructPoolWithParams(pool.PoolReconstructParams{
		ID:                m.ID,
		Name:              m.Name,
		SampleSource:      m.SampleSource,
		BatchNumber:       m.BatchNumber,
		Description:       m.Description,
		PoolPrice:         m.PoolPrice,
		AmountReceived:    m.AmountReceived,
		Status:            pool.Status(m.Status),
		TotalContributors: m.TotalContributors,
		IsActive:          m.IsActive,
		IsApproved:        m.IsApproved,
		CategoryID:        m.CategoryID,
		SampleImageID:     m.SampleImageID,
		UserID:            m.UserID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		DeletedAt:         fromDeletedAt(m.DeletedAt),
	})
}
