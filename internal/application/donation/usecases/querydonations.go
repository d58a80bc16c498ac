package usecases

import (
	"context"

	"github.com/labpool/labpool/internal/application/donation/dto"
	"github.com/labpool/labpool/internal/domain/donation"
	"github.com/labpool/labpool/internal/domain/pool"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
	"github.com/labpool/labpool/internal/shared/money"
)

// QueryDonationsUseCase serves the read side of donations.
type QueryDonationsUseCase struct {
	donationRepo donation.Repository
	poolRepo     pool.Repository
	logger       logger.Interface
}

func NewQueryDonationsUseCase(
	donationRepo donation.Repository,
	poolRepo pool.Repository,
	logger logger.Interface,
) *QueryDonationsUseCase {
	return &QueryDonationsUseCase{
		donationRepo: donationRepo,
		poolRepo:     poolRepo,
		logger:       logger,
	}
}

func (uc *QueryDonationsUseCase) Get(ctx context.Context, id string) (*dto.DonationDTO, error) {
	d, err := uc.donationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToDonationDTO(d), nil
}

func (uc *QueryDonationsUseCase) List(ctx context.Context, req dto.ListDonationsRequest) ([]*dto.DonationDTO, int64, error) {
	status := donation.Status(req.Status)
	if status != "" && !status.IsValid() {
		return nil, 0, errors.NewValidationError("Invalid donation status", req.Status)
	}

	list, total, err := uc.donationRepo.List(ctx, donation.ListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		PoolID:   req.PoolID,
		UserID:   req.UserID,
		Status:   status,
	})
	if err != nil {
		return nil, 0, err
	}
	return dto.ToDonationDTOs(list), total, nil
}

// ListByPool returns the successful donations of one pool.
func (uc *QueryDonationsUseCase) ListByPool(ctx context.Context, poolID string, page, pageSize int) ([]*dto.DonationDTO, int64, error) {
	if _, err := uc.poolRepo.GetByID(ctx, poolID); err != nil {
		return nil, 0, err
	}
	return uc.List(ctx, dto.ListDonationsRequest{
		Page:     page,
		PageSize: pageSize,
		PoolID:   poolID,
		Status:   donation.StatusSuccess.String(),
	})
}

func (uc *QueryDonationsUseCase) ListMine(ctx context.Context, userID string, page, pageSize int) ([]*dto.DonationDTO, int64, error) {
	if userID == "" {
		return nil, 0, errors.NewUnauthorizedError("Authentication required")
	}
	return uc.List(ctx, dto.ListDonationsRequest{Page: page, PageSize: pageSize, UserID: userID})
}

// maxStatsDonations bounds the donation list embedded in pool stats.
const maxStatsDonations = 100

func (uc *QueryDonationsUseCase) PoolStats(ctx context.Context, poolID string) (*dto.PoolStatsDTO, error) {
	p, err := uc.poolRepo.GetByID(ctx, poolID)
	if err != nil {
		return nil, err
	}

	list, total, err := uc.donationRepo.List(ctx, donation.ListFilter{
		Page:     1,
		PageSize: maxStatsDonations,
		PoolID:   poolID,
		Status:   donation.StatusSuccess,
	})
	if err != nil {
		return nil, err
	}

	var price *float64
	if p.PoolPrice() != nil {
		v := money.ToMajor(*p.PoolPrice())
		price = &v
	}

	return &dto.PoolStatsDTO{
		PoolID:            p.ID(),
		PoolName:          p.Name(),
		PoolPrice:         price,
		AmountReceived:    money.ToMajor(p.AmountReceived()),
		RemainingAmount:   money.ToMajor(p.RemainingAmount()),
		PercentageReached: p.PercentageReached(),
		TotalDonations:    total,
		Donations:         dto.ToDonationDTOs(list),
	}, nil
}
