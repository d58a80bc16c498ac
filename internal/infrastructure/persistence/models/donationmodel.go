package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/labpool/labpool/internal/shared/constants"
)

// DonationModel stores the amount in minor units. Notes mirror what was
// sent to the payment provider with the order.
type DonationModel struct {
	ID                  string  `gorm:"primaryKey;size:36"`
	Amount              int64   `gorm:"not null"`
	Currency            string  `gorm:"not null;size:3"`
	Message             string  `gorm:"type:text"`
	Status              string  `gorm:"not null;size:16;default:Pending;index"`
	PoolID              string  `gorm:"not null;size:36;index"`
	UserID              *string `gorm:"size:36;index"`
	AnonymousDonorName  *string `gorm:"size:255"`
	AnonymousDonorEmail *string `gorm:"size:255"`
	AnonymousDonorPhone *string `gorm:"size:20"`
	ProviderOrderID     *string `gorm:"uniqueIndex;size:255"`
	ProviderPaymentID   *string `gorm:"size:255"`
	ProviderSignature   *string `gorm:"size:255"`
	Notes               datatypes.JSONMap
	CreatedAt           time.Time `gorm:"index"`
	UpdatedAt           time.Time
}

func (DonationModel) TableName() string {
	return constants.TableDonations
}
