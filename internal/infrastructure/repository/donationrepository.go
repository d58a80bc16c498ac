package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/domain/donation"
	"github.com/labpool/labpool/internal/infrastructure/persistence/mappers"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
	"github.com/labpool/labpool/internal/shared/db"
	"github.com/labpool/labpool/internal/shared/id"
	"github.com/labpool/labpool/internal/shared/logger"
)

const (
	msgDonationNotFound = "Donation not found"
	msgDonationExists   = "Donation for this order already exists"
)

type DonationRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewDonationRepository(db *gorm.DB, logger logger.Interface) donation.Repository {
	return &DonationRepository{db: db, logger: logger}
}

func (r *DonationRepository) Create(ctx context.Context, d *donation.Donation) error {
	if d.ID() == "" {
		if err := d.SetID(id.NewUUID()); err != nil {
			return err
		}
	}

	model := mappers.DonationToModel(d)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create donation", "order_id", d.ProviderOrderID(), "error", err)
		return translate(err, "create donation", msgDonationNotFound, msgDonationExists)
	}

	r.logger.Infow("donation created", "id", model.ID, "pool_id", model.PoolID, "amount", model.Amount)
	return nil
}

func (r *DonationRepository) GetByID(ctx context.Context, id string) (*donation.Donation, error) {
	var model models.DonationModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "get donation", msgDonationNotFound, "")
	}
	return mappers.DonationToDomain(&model), nil
}

func (r *DonationRepository) GetByProviderOrderID(ctx context.Context, orderID string) (*donation.Donation, error) {
	var model models.DonationModel
	if err := db.GetTxFromContext(ctx, r.db).Where("provider_order_id = ?", orderID).First(&model).Error; err != nil {
		return nil, translate(err, "get donation", msgDonationNotFound, "")
	}
	return mappers.DonationToDomain(&model), nil
}

func (r *DonationRepository) List(ctx context.Context, filter donation.ListFilter) ([]*donation.Donation, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.DonationModel{})
	if filter.PoolID != "" {
		query = query.Where("pool_id = ?", filter.PoolID)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count donations", "error", err)
		return nil, 0, translate(err, "count donations", msgDonationNotFound, "")
	}

	var list []*models.DonationModel
	if err := query.Order("created_at DESC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list donations", "error", err)
		return nil, 0, translate(err, "list donations", msgDonationNotFound, "")
	}

	result := make([]*donation.Donation, 0, len(list))
	for _, m := range list {
		result = append(result, mappers.DonationToDomain(m))
	}
	return result, total, nil
}

func (r *DonationRepository) MarkSucceeded(ctx context.Context, id string, t donation.Transition) (bool, error) {
	return r.transition(ctx, id, donation.StatusSuccess, t)
}

func (r *DonationRepository) MarkFailed(ctx context.Context, id string, t donation.Transition) (bool, error) {
	return r.transition(ctx, id, donation.StatusFailed, t)
}

// transition moves a Pending donation to to. The status guard in the WHERE
// clause is what serialises concurrent verifications of the same order.
func (r *DonationRepository) transition(ctx context.Context, id string, to donation.Status, t donation.Transition) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.DonationModel{}).
		Where("id = ? AND status = ?", id, donation.StatusPending.String()).
		Updates(map[string]interface{}{
			"status":              to.String(),
			"provider_payment_id": t.PaymentID,
			"provider_signature":  t.Signature,
			"updated_at":          time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update donation status", "id", id, "status", to, "error", result.Error)
		return false, translate(result.Error, "update donation status", msgDonationNotFound, "")
	}
	return result.RowsAffected == 1, nil
}
