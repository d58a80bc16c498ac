package sampleproduct

import (
	"context"

	"github.com/labpool/labpool/internal/application/sampleproduct/dto"
	"github.com/labpool/labpool/internal/domain/sampleproduct"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
	"github.com/labpool/labpool/internal/shared/services/markdown"
)

const msgNameOrCodeExists = "Sample product with this name or code already exists"

// Service manages the sample product categories pools are filed under.
type Service struct {
	repo     sampleproduct.Repository
	renderer markdown.Renderer
	logger   logger.Interface
}

func NewService(repo sampleproduct.Repository, renderer markdown.Renderer, logger logger.Interface) *Service {
	return &Service{repo: repo, renderer: renderer, logger: logger}
}

// ToDTO renders the description and maps the product.
func (s *Service) ToDTO(sp *sampleproduct.SampleProduct) *dto.SampleProductDTO {
	if sp == nil {
		return nil
	}
	return dto.ToSampleProductDTO(sp, markdown.Render(s.renderer, sp.Description()))
}

func (s *Service) Create(ctx context.Context, req dto.CreateSampleProductRequest) (*dto.SampleProductDTO, error) {
	sp, err := sampleproduct.NewSampleProduct(req.Name, req.Description, req.Code)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, sp, ""); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, sp); err != nil {
		return nil, err
	}
	return s.ToDTO(sp), nil
}

func (s *Service) Get(ctx context.Context, id string) (*dto.SampleProductDTO, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.ToDTO(sp), nil
}

func (s *Service) List(ctx context.Context, req dto.ListSampleProductsRequest) ([]*dto.SampleProductDTO, int64, error) {
	list, total, err := s.repo.List(ctx, sampleproduct.ListFilter{
		Page:            req.Page,
		PageSize:        req.PageSize,
		IncludeInactive: req.IncludeInactive,
		IncludeDeleted:  req.IncludeDeleted,
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]*dto.SampleProductDTO, 0, len(list))
	for _, sp := range list {
		out = append(out, s.ToDTO(sp))
	}
	return out, total, nil
}

func (s *Service) Update(ctx context.Context, id string, req dto.UpdateSampleProductRequest) (*dto.SampleProductDTO, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = sp.Apply(sampleproduct.SampleProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Code:        req.Code,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, sp, sp.ID()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, sp); err != nil {
		return nil, err
	}
	return s.ToDTO(sp), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) Restore(ctx context.Context, id string) (*dto.SampleProductDTO, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) ensureUnique(ctx context.Context, sp *sampleproduct.SampleProduct, excludeID string) error {
	exists, err := s.repo.ExistsByNameOrCode(ctx, sp.Name(), sp.Code(), excludeID)
	if err != nil {
		return err
	}
	if exists {
		return errors.NewConflictError(msgNameOrCodeExists)
	}
	return nil
}
