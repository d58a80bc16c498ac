package pool

import (
	"context"

	filedto "github.com/labpool/labpool/internal/application/file/dto"
	"github.com/labpool/labpool/internal/application/pool/dto"
	spdto "github.com/labpool/labpool/internal/application/sampleproduct/dto"
	userdto "github.com/labpool/labpool/internal/application/user/dto"
	"github.com/labpool/labpool/internal/domain/file"
	"github.com/labpool/labpool/internal/domain/pool"
	"github.com/labpool/labpool/internal/domain/sampleproduct"
	"github.com/labpool/labpool/internal/domain/user"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
	"github.com/labpool/labpool/internal/shared/money"
	"github.com/labpool/labpool/internal/shared/services/markdown"
)

const (
	msgBatchExists      = "Pool with this batch number already exists for this category"
	msgCategoryInactive = "Category not found or inactive"
	msgImageNotFound    = "Sample image not found"
	msgNotOwner         = "You can only modify your own pools"
)

// Service manages pools. Funding fields are changed only by donation
// verification.
type Service struct {
	poolRepo    pool.Repository
	productRepo sampleproduct.Repository
	fileRepo    file.Repository
	userRepo    user.Repository
	renderer    markdown.Renderer
	logger      logger.Interface
}

func NewService(
	poolRepo pool.Repository,
	productRepo sampleproduct.Repository,
	fileRepo file.Repository,
	userRepo user.Repository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *Service {
	return &Service{
		poolRepo:    poolRepo,
		productRepo: productRepo,
		fileRepo:    fileRepo,
		userRepo:    userRepo,
		renderer:    renderer,
		logger:      logger,
	}
}

func (s *Service) Create(ctx context.Context, ownerID string, req dto.CreatePoolRequest) (*dto.PoolDTO, error) {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !owner.IsActive() {
		return nil, errors.NewValidationError("User account is inactive")
	}
	if err := s.checkReferences(ctx, req.CategoryID, req.SampleImageID); err != nil {
		return nil, err
	}
	if err := s.checkBatch(ctx, req.BatchNumber, req.CategoryID, ""); err != nil {
		return nil, err
	}

	p, err := pool.NewPool(pool.NewPoolParams{
		Name:          req.Name,
		SampleSource:  req.SampleSource,
		BatchNumber:   req.BatchNumber,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		SampleImageID: req.SampleImageID,
		UserID:        ownerID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.poolRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Infow("pool created", "pool_id", p.ID(), "owner_id", ownerID)
	return s.toDTO(ctx, p), nil
}

func (s *Service) Get(ctx context.Context, id string) (*dto.PoolDTO, error) {
	p, err := s.poolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, p), nil
}

func (s *Service) List(ctx context.Context, req dto.ListPoolsRequest) ([]*dto.PoolDTO, int64, error) {
	list, total, err := s.poolRepo.List(ctx, pool.ListFilter{
		Page:              req.Page,
		PageSize:          req.PageSize,
		UserID:            req.UserID,
		IncludeInactive:   req.IncludeInactive,
		IncludeDeleted:    req.IncludeDeleted,
		IncludeUnapproved: req.IncludeUnapproved,
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]*dto.PoolDTO, 0, len(list))
	for _, p := range list {
		out = append(out, s.toDTO(ctx, p))
	}
	return out, total, nil
}

// ListMine lists every pool the caller owns, approved or not.
func (s *Service) ListMine(ctx context.Context, ownerID string, page, pageSize int) ([]*dto.PoolDTO, int64, error) {
	return s.List(ctx, dto.ListPoolsRequest{
		Page:              page,
		PageSize:          pageSize,
		UserID:            ownerID,
		IncludeInactive:   true,
		IncludeUnapproved: true,
	})
}

func (s *Service) Update(ctx context.Context, callerID, id string, req dto.UpdatePoolRequest) (*dto.PoolDTO, error) {
	p, err := s.ownedPool(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	categoryID := p.CategoryID()
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
	}
	batch := p.BatchNumber()
	if req.BatchNumber != nil {
		batch = *req.BatchNumber
	}
	if req.CategoryID != nil || req.SampleImageID != nil {
		if err := s.checkReferences(ctx, categoryID, req.SampleImageID); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil || req.BatchNumber != nil {
		if err := s.checkBatch(ctx, batch, categoryID, p.ID()); err != nil {
			return nil, err
		}
	}

	upd := pool.PoolUpdate{
		Name:          req.Name,
		SampleSource:  req.SampleSource,
		BatchNumber:   req.BatchNumber,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		SampleImageID: req.SampleImageID,
		IsActive:      req.IsActive,
		IsApproved:    req.IsApproved,
	}
	if req.Status != nil {
		st := pool.Status(*req.Status)
		upd.Status = &st
	}
	if req.PoolPrice != nil {
		price := money.ToMinor(*req.PoolPrice)
		upd.PoolPrice = &price
	}
	if err := p.Apply(upd); err != nil {
		return nil, err
	}
	if err := s.poolRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.toDTO(ctx, p), nil
}

func (s *Service) Delete(ctx context.Context, callerID, id string) error {
	if _, err := s.ownedPool(ctx, callerID, id); err != nil {
		return err
	}
	return s.poolRepo.SoftDelete(ctx, id)
}

func (s *Service) HardDelete(ctx context.Context, id string) error {
	if err := s.poolRepo.HardDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("pool hard deleted", "pool_id", id)
	return nil
}

func (s *Service) Restore(ctx context.Context, id string) (*dto.PoolDTO, error) {
	if err := s.poolRepo.Restore(ctx, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Approve(ctx context.Context, id string) (*dto.PoolDTO, error) {
	return s.setApproval(ctx, id, true)
}

func (s *Service) Reject(ctx context.Context, id string) (*dto.PoolDTO, error) {
	return s.setApproval(ctx, id, false)
}

func (s *Service) setApproval(ctx context.Context, id string, approved bool) (*dto.PoolDTO, error) {
	p, err := s.poolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if approved {
		p.Approve()
	} else {
		p.Reject()
	}
	if err := s.poolRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Infow("pool approval changed", "pool_id", id, "approved", approved)
	return s.toDTO(ctx, p), nil
}

func (s *Service) ownedPool(ctx context.Context, callerID, id string) (*pool.Pool, error) {
	p, err := s.poolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsOwnedBy(callerID) {
		return nil, errors.NewForbiddenError(msgNotOwner)
	}
	return p, nil
}

func (s *Service) checkReferences(ctx context.Context, categoryID string, imageID *string) error {
	if _, err := s.productRepo.GetActiveByID(ctx, categoryID); err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewNotFoundError(msgCategoryInactive)
		}
		return err
	}
	if imageID == nil {
		return nil
	}
	img, err := s.fileRepo.GetByID(ctx, *imageID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewNotFoundError(msgImageNotFound)
		}
		return err
	}
	if img.IsDeleted() {
		return errors.NewNotFoundError(msgImageNotFound)
	}
	return nil
}

func (s *Service) checkBatch(ctx context.Context, batch, categoryID, excludeID string) error {
	exists, err := s.poolRepo.ExistsByBatchAndCategory(ctx, batch, categoryID, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return errors.NewConflictError(msgBatchExists)
	}
	return nil
}

// toDTO fills the related entities. Lookup failures leave them nil.
func (s *Service) toDTO(ctx context.Context, p *pool.Pool) *dto.PoolDTO {
	out := dto.ToPoolDTO(p, markdown.Render(s.renderer, p.Description()))

	if sp, err := s.productRepo.GetByIDWithDeleted(ctx, p.CategoryID()); err == nil {
		out.Category = spdto.ToSampleProductDTO(sp, markdown.Render(s.renderer, sp.Description()))
	}
	if p.SampleImageID() != nil {
		if f, err := s.fileRepo.GetByID(ctx, *p.SampleImageID()); err == nil {
			out.SampleImage = filedto.ToFileDTO(f)
		}
	}
	if u, err := s.userRepo.GetByID(ctx, p.UserID()); err == nil {
		out.User = userdto.ToUserDTO(u)
	}
	return out
}
