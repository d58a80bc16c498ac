package donation

import "context"

type ListFilter struct {
	Page     int
	PageSize int
	PoolID   string
	UserID   string
	Status   Status
}

// Transition carries the provider references stored with a status change.
type Transition struct {
	PaymentID string
	Signature string
}

type Repository interface {
	Create(ctx context.Context, d *Donation) error
	GetByID(ctx context.Context, id string) (*Donation, error)
	GetByProviderOrderID(ctx context.Context, orderID string) (*Donation, error)
	// List orders by created_at descending.
	List(ctx context.Context, filter ListFilter) ([]*Donation, int64, error)

	// MarkSucceeded and MarkFailed update the row only while it is still
	// Pending. They report false when another caller got there first.
	MarkSucceeded(ctx context.Context, id string, t Transition) (bool, error)
	MarkFailed(ctx context.Context, id string, t Transition) (bool, error)
}
