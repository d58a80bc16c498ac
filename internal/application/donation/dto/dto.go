package dto

import (
	"time"

	"github.com/labpool/labpool/internal/domain/donation"
	"github.com/labpool/labpool/internal/shared/mapper"
	"github.com/labpool/labpool/internal/shared/money"
)

// DonationDTO carries the amount in major units.
type DonationDTO struct {
	ID                  string    `json:"id"`
	Amount              float64   `json:"amount"`
	Currency            string    `json:"currency"`
	Message             string    `json:"message"`
	Status              string    `json:"status"`
	PoolID              string    `json:"poolId"`
	UserID              string    `json:"userId,omitempty"`
	AnonymousDonorName  string    `json:"anonymousDonorName,omitempty"`
	AnonymousDonorEmail string    `json:"anonymousDonorEmail,omitempty"`
	AnonymousDonorPhone string    `json:"anonymousDonorPhone,omitempty"`
	ProviderOrderID     string    `json:"providerOrderId,omitempty"`
	ProviderPaymentID   string    `json:"providerPaymentId,omitempty"`
	ProviderSignature   string    `json:"providerSignature,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func ToDonationDTO(d *donation.Donation) *DonationDTO {
	if d == nil {
		return nil
	}
	donor := d.Donor()
	return &DonationDTO{
		ID:                  d.ID(),
		Amount:              money.ToMajor(d.Amount()),
		Currency:            d.Currency(),
		Message:             d.Message(),
		Status:              d.Status().String(),
		PoolID:              d.PoolID(),
		UserID:              donor.UserID,
		AnonymousDonorName:  donor.Name,
		AnonymousDonorEmail: donor.Email,
		AnonymousDonorPhone: donor.Phone,
		ProviderOrderID:     d.ProviderOrderID(),
		ProviderPaymentID:   d.ProviderPaymentID(),
		ProviderSignature:   d.ProviderSignature(),
		CreatedAt:           d.CreatedAt(),
		UpdatedAt:           d.UpdatedAt(),
	}
}

func ToDonationDTOs(list []*donation.Donation) []*DonationDTO {
	return mapper.MapSlice(list, ToDonationDTO)
}

type CreateOrderRequest struct {
	PoolID              string  `json:"poolId" binding:"required,uuid"`
	Amount              float64 `json:"amount" binding:"decimal2"`
	Message             string  `json:"message" binding:"max=1000"`
	AnonymousDonorName  string  `json:"anonymousDonorName" binding:"max=255"`
	AnonymousDonorEmail string  `json:"anonymousDonorEmail" binding:"omitempty,email,max=255"`
	AnonymousDonorPhone string  `json:"anonymousDonorPhone" binding:"max=20"`
}

// CreateOrderResponse is what the checkout widget needs. Amount is in
// minor units, the way the payment provider expects it.
type CreateOrderResponse struct {
	DonationID string `json:"donationId"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	KeyID      string `json:"keyId"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpayOrderId" binding:"required"`
	PaymentID string `json:"razorpayPaymentId" binding:"required"`
	Signature string `json:"razorpaySignature" binding:"required"`
}

type VerifyPaymentResponse struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	Donation *DonationDTO `json:"donation"`
}

type ListDonationsRequest struct {
	Page     int
	PageSize int
	PoolID   string
	UserID   string
	Status   string
}

// PoolStatsDTO is a public aggregate and is not field-filtered.
type PoolStatsDTO struct {
	PoolID            string         `json:"poolId"`
	PoolName          string         `json:"poolName"`
	PoolPrice         *float64       `json:"poolPrice"`
	AmountReceived    float64        `json:"amountReceived"`
	RemainingAmount   float64        `json:"remainingAmount"`
	PercentageReached float64        `json:"percentageReached"`
	TotalDonations    int64          `json:"totalDonations"`
	Donations         []*DonationDTO `json:"donations"`
}
