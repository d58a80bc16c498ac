package usecases

import (
	"context"

	"github.com/labpool/labpool/internal/application/donation/dto"
	"github.com/labpool/labpool/internal/application/donation/paymentgateway"
	"github.com/labpool/labpool/internal/domain/donation"
	"github.com/labpool/labpool/internal/domain/pool"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/id"
	"github.com/labpool/labpool/internal/shared/logger"
)

type CreateOrderCommand struct {
	PoolID  string
	Amount  int64
	Message string
	// Donor.UserID is the signed-in caller, empty for anonymous donors.
	Donor donation.Donor
}

// CreateOrderUseCase opens a payment order for a donation. The pool is
// only read here; it is credited when the payment is verified.
type CreateOrderUseCase struct {
	poolRepo     pool.Repository
	donationRepo donation.Repository
	gateway      paymentgateway.PaymentGateway
	currency     string
	metrics      Metrics
	logger       logger.Interface
}

func NewCreateOrderUseCase(
	poolRepo pool.Repository,
	donationRepo donation.Repository,
	gateway paymentgateway.PaymentGateway,
	currency string,
	metrics Metrics,
	logger logger.Interface,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		poolRepo:     poolRepo,
		donationRepo: donationRepo,
		gateway:      gateway,
		currency:     currency,
		metrics:      metrics,
		logger:       logger,
	}
}

func (uc *CreateOrderUseCase) Execute(ctx context.Context, cmd CreateOrderCommand) (*dto.CreateOrderResponse, error) {
	p, err := uc.poolRepo.GetByID(ctx, cmd.PoolID)
	if err != nil {
		return nil, err
	}
	if err := p.CheckAcceptsDonation(cmd.Amount); err != nil {
		return nil, err
	}
	donor, err := cmd.Donor.Normalize()
	if err != nil {
		return nil, err
	}

	noteUser := donor.UserID
	if donor.IsAnonymous() {
		noteUser = "anonymous"
	}
	notes := map[string]string{
		"poolId":  p.ID(),
		"userId":  noteUser,
		"message": cmd.Message,
	}

	order, err := uc.gateway.CreateOrder(ctx, paymentgateway.CreateOrderRequest{
		Amount:   cmd.Amount,
		Currency: uc.currency,
		Receipt:  id.WithPrefix("donation"),
		Notes:    notes,
	})
	if err != nil {
		uc.logger.Errorw("failed to create payment order", "pool_id", p.ID(), "error", err)
		return nil, errors.NewExternalServiceError("Failed to create payment order")
	}

	d, err := donation.NewDonation(donation.NewDonationParams{
		Amount:          cmd.Amount,
		Currency:        order.Currency,
		Message:         cmd.Message,
		PoolID:          p.ID(),
		Donor:           donor,
		ProviderOrderID: order.ID,
		Notes:           notes,
	})
	if err != nil {
		return nil, err
	}
	if err := uc.donationRepo.Create(ctx, d); err != nil {
		uc.logger.Errorw("failed to persist donation", "order_id", order.ID, "error", err)
		return nil, err
	}

	uc.metrics.OrderCreated()
	uc.logger.Infow("donation order created", "donation_id", d.ID(), "pool_id", p.ID(), "order_id", order.ID)

	return &dto.CreateOrderResponse{
		DonationID: d.ID(),
		OrderID:    order.ID,
		Amount:     order.Amount,
		Currency:   order.Currency,
		KeyID:      uc.gateway.KeyID(),
	}, nil
}
