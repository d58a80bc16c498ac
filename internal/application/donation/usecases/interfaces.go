package usecases

import "context"

// Metrics records donation outcomes. A nil Metrics is never passed; use
// NopMetrics when nothing should be recorded.
type Metrics interface {
	OrderCreated()
	SignatureMismatch()
	VerificationConflict()
	DonationSucceeded(amount int64, targetReached bool)
}

type NopMetrics struct{}

func (NopMetrics) OrderCreated()                 {}
func (NopMetrics) SignatureMismatch()            {}
func (NopMetrics) VerificationConflict()         {}
func (NopMetrics) DonationSucceeded(int64, bool) {}

// TransactionManager runs fn in one database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
