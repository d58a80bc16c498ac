package usecases

import (
	"context"

	"github.com/labpool/labpool/internal/application/donation/dto"
	"github.com/labpool/labpool/internal/application/donation/receipt"
	"github.com/labpool/labpool/internal/domain/donation"
	"github.com/labpool/labpool/internal/domain/pool"
	"github.com/labpool/labpool/internal/domain/user"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
	"github.com/labpool/labpool/internal/shared/money"
	"github.com/labpool/labpool/internal/shared/utils"
)

type VerifyPaymentCommand struct {
	OrderID   string
	PaymentID string
	Signature string
}

// VerifyPaymentUseCase settles a checkout callback. A valid signature
// marks the donation successful and credits its pool in one transaction;
// the conditional status update makes concurrent callbacks for the same
// order succeed at most once.
type VerifyPaymentUseCase struct {
	donationRepo donation.Repository
	poolRepo     pool.Repository
	userRepo     user.Repository
	txManager    TransactionManager
	keySecret    string
	sender       receipt.Sender
	metrics      Metrics
	logger       logger.Interface
}

func NewVerifyPaymentUseCase(
	donationRepo donation.Repository,
	poolRepo pool.Repository,
	userRepo user.Repository,
	txManager TransactionManager,
	keySecret string,
	sender receipt.Sender,
	metrics Metrics,
	logger logger.Interface,
) *VerifyPaymentUseCase {
	return &VerifyPaymentUseCase{
		donationRepo: donationRepo,
		poolRepo:     poolRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		keySecret:    keySecret,
		sender:       sender,
		metrics:      metrics,
		logger:       logger,
	}
}

func (uc *VerifyPaymentUseCase) Execute(ctx context.Context, cmd VerifyPaymentCommand) (*dto.VerifyPaymentResponse, error) {
	d, err := uc.donationRepo.GetByProviderOrderID(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if err := d.EnsureVerifiable(); err != nil {
		uc.metrics.VerificationConflict()
		return nil, err
	}

	t := donation.Transition{PaymentID: cmd.PaymentID, Signature: cmd.Signature}

	if !donation.VerifySignature(uc.keySecret, cmd.OrderID, cmd.PaymentID, cmd.Signature) {
		moved, err := uc.donationRepo.MarkFailed(ctx, d.ID(), t)
		if err != nil {
			uc.logger.Errorw("failed to mark donation failed", "donation_id", d.ID(), "error", err)
			return nil, errors.NewInternalError("Failed to record payment failure")
		}
		if !moved {
			// Another callback settled the order between the read and the update.
			uc.metrics.VerificationConflict()
			return nil, uc.settledError(ctx, d.ID())
		}
		uc.metrics.SignatureMismatch()
		uc.logger.Warnw("payment signature mismatch", "donation_id", d.ID(), "order_id", cmd.OrderID)
		return nil, errors.NewBadRequestError("Invalid payment signature")
	}

	var credit pool.CreditResult
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		moved, err := uc.donationRepo.MarkSucceeded(ctx, d.ID(), t)
		if err != nil {
			return err
		}
		if !moved {
			return errors.NewConflictError("Payment already verified")
		}
		credit, err = uc.poolRepo.Credit(ctx, d.PoolID(), d.Amount())
		return err
	})
	if err != nil {
		if errors.IsConflictError(err) {
			uc.metrics.VerificationConflict()
		} else {
			uc.logger.Errorw("failed to settle donation", "donation_id", d.ID(), "error", err)
		}
		return nil, err
	}

	_ = d.MarkSucceeded(cmd.PaymentID, cmd.Signature)
	uc.metrics.DonationSucceeded(d.Amount(), credit.TargetReached)

	uc.logger.Infow("payment verified", "donation_id", d.ID(), "pool_id", d.PoolID())
	if credit.TargetReached {
		uc.logger.Infow("pool reached its target", "pool_id", d.PoolID())
	}

	uc.sendReceipt(ctx, d, credit.TargetReached)

	return &dto.VerifyPaymentResponse{
		Success:  true,
		Message:  "Payment verified successfully",
		Donation: dto.ToDonationDTO(d),
	}, nil
}

// settledError reports the conflict for a donation that left Pending under
// a concurrent callback.
func (uc *VerifyPaymentUseCase) settledError(ctx context.Context, id string) error {
	current, err := uc.donationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := current.EnsureVerifiable(); err != nil {
		return err
	}
	return errors.NewConflictError("Payment already verified")
}

// sendReceipt runs after commit. Failures are logged and never reach the
// caller.
func (uc *VerifyPaymentUseCase) sendReceipt(ctx context.Context, d *donation.Donation, targetFired bool) {
	donor := d.Donor()
	to, name := donor.Email, donor.Name
	if !donor.IsAnonymous() {
		u, err := uc.userRepo.GetByID(ctx, donor.UserID)
		if err != nil {
			uc.logger.Warnw("receipt skipped, donor not found", "donation_id", d.ID(), "error", err)
			return
		}
		to, name = u.Email(), u.Name()
	}
	if to == "" {
		return
	}

	var poolName string
	if p, err := uc.poolRepo.GetByIDWithDeleted(ctx, d.PoolID()); err == nil {
		poolName = p.Name()
	}

	err := uc.sender.SendDonationReceipt(ctx, receipt.DonationReceipt{
		To:          to,
		DonorName:   name,
		DonationID:  d.ID(),
		PoolName:    poolName,
		Amount:      money.Format(d.Amount()),
		Currency:    d.Currency(),
		PaymentID:   d.ProviderPaymentID(),
		TargetFired: targetFired,
	})
	if err != nil {
		uc.logger.Warnw("failed to send donation receipt", "donation_id", d.ID(), "to", utils.MaskEmail(to), "error", err)
	}
}
