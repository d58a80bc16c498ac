package receipt

import "context"

// Sender delivers a receipt for a verified donation. Delivery failures
// never undo the donation.
type Sender interface {
	SendDonationReceipt(ctx context.Context, r DonationReceipt) error
}

type DonationReceipt struct {
	To          string
	DonorName   string
	DonationID  string
	PoolName    string
	Amount      string // formatted major units, e.g. "1,250.00"
	Currency    string
	PaymentID   string
	TargetFired bool
}

// NopSender is used when SMTP is not configured.
type NopSender struct{}

func (NopSender) SendDonationReceipt(context.Context, DonationReceipt) error { return nil }
