package donation

import (
	"strings"
	"time"

	"github.com/labpool/labpool/internal/shared/errors"
)

type Status string

const (
	StatusPending Status = "Pending"
	StatusSuccess Status = "Success"
	StatusFailed  Status = "Failed"
)

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusSuccess || s == StatusFailed
}

func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

func (s Status) String() string {
	return string(s)
}

// Donor identifies who pays. A donation belongs either to a signed-in user
// or to an anonymous donor with name and email, never both.
type Donor struct {
	UserID string
	Name   string
	Email  string
	Phone  string
}

// Normalize applies the identity rule. An authenticated donor loses any
// anonymous contact fields; an anonymous donor must supply email and name.
func (d Donor) Normalize() (Donor, error) {
	if d.UserID != "" {
		return Donor{UserID: d.UserID}, nil
	}
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	if d.Email == "" {
		return Donor{}, errors.NewValidationError("Email is required for anonymous donations")
	}
	if d.Name == "" {
		return Donor{}, errors.NewValidationError("Name is required for anonymous donations")
	}
	return d, nil
}

func (d Donor) IsAnonymous() bool {
	return d.UserID == ""
}

// Donation is one payment attempt toward a pool. Amount is in minor units.
type Donation struct {
	id                string
	amount            int64
	currency          string
	message           string
	status            Status
	poolID            string
	donor             Donor
	providerOrderID   string
	providerPaymentID string
	providerSignature string
	notes             map[string]string
	createdAt         time.Time
	updatedAt         time.Time
}

type NewDonationParams struct {
	Amount          int64
	Currency        string
	Message         string
	PoolID          string
	Donor           Donor
	ProviderOrderID string
	Notes           map[string]string
}

// NewDonation creates a Pending donation for an order the payment provider
// has already issued.
func NewDonation(p NewDonationParams) (*Donation, error) {
	if p.Amount <= 0 {
		return nil, errors.NewValidationError("Donation amount must be positive")
	}
	if p.PoolID == "" {
		return nil, errors.NewValidationError("pool is required")
	}
	if p.ProviderOrderID == "" {
		return nil, errors.NewValidationError("provider order reference is required")
	}
	donor, err := p.Donor.Normalize()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Donation{
		amount:          p.Amount,
		currency:        p.Currency,
		message:         strings.TrimSpace(p.Message),
		status:          StatusPending,
		poolID:          p.PoolID,
		donor:           donor,
		providerOrderID: p.ProviderOrderID,
		notes:           p.Notes,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

type DonationReconstructParams struct {
	ID                string
	Amount            int64
	Currency          string
	Message           string
	Status            Status
	PoolID            string
	Donor             Donor
	ProviderOrderID   string
	ProviderPaymentID string
	ProviderSignature string
	Notes             map[string]string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func ReconstructDonationWithParams(p DonationReconstructParams) *Donation {
	return &Donation{
		id:                p.ID,
		amount:            p.Amount,
		currency:          p.Currency,
		message:           p.Message,
		status:            p.Status,
		poolID:            p.PoolID,
		donor:             p.Donor,
		providerOrderID:   p.ProviderOrderID,
		providerPaymentID: p.ProviderPaymentID,
		providerSignature: p.ProviderSignature,
		notes:             p.Notes,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
	}
}

func (d *Donation) ID() string { return d.id }
func (d *Donation) Amount() int64 { return d.amount }
func (d *Donation) Currency() string { return d.currency }
func (d *Donation) Message() string { return d.message }
func (d *Donation) Status() Status { return d.status }
func (d *Donation) PoolID() string { return d.poolID }
func (d *Donation) Donor() Donor { return d.donor }
func (d *Donation) ProviderOrderID() string { return d.providerOrderID }
func (d *Donation) ProviderPaymentID() string { return d.providerPaymentID }
func (d *Donation) ProviderSignature() string { return d.providerSignature }
func (d *Donation) Notes() map[string]string { return d.notes }
func (d *Donation) CreatedAt() time.Time { return d.createdAt }
func (d *Donation) UpdatedAt() time.Time { return d.updatedAt }

func (d *Donation) SetID(id string) error {
	if d.id != "" {
		return errors.NewInternalError("donation ID is already set")
	}
	d.id = id
	return nil
}

// EnsureVerifiable rejects a callback for a donation that already left
// Pending.
func (d *Donation) EnsureVerifiable() error {
	switch d.status {
	case StatusSuccess:
		return errors.NewConflictError("Payment already verified")
	case StatusFailed:
		return errors.NewConflictError("Payment verification already failed")
	}
	return nil
}

// MarkSucceeded records the capture. Only a Pending donation can move.
func (d *Donation) MarkSucceeded(paymentID, signature string) error {
	if err := d.EnsureVerifiable(); err != nil {
		return err
	}
	d.status = StatusSuccess
	d.providerPaymentID = paymentID
	d.providerSignature = signature
	d.updatedAt = time.Now().UTC()
	return nil
}

// MarkFailed records a rejected callback. Only a Pending donation can move.
func (d *Donation) MarkFailed(paymentID, signature string) error {
	if err := d.EnsureVerifiable(); err != nil {
		return err
	}
	d.status = StatusFailed
	d.providerPaymentID = paymentID
	d.providerSignature = signature
	d.updatedAt = time.Now().UTC()
	return nil
}
