package pool

import "context"

type ListFilter struct {
	Page              int
	PageSize          int
	UserID            string
	IncludeInactive   bool
	IncludeDeleted    bool
	IncludeUnapproved bool
}

// CreditResult reports what a credit did to the pool row.
type CreditResult struct {
	// TargetReached is true only for the credit that moved the pool into
	// StatusTargetReached.
	TargetReached bool
}

type Repository interface {
	Create(ctx context.Context, p *Pool) error
	GetByID(ctx context.Context, id string) (*Pool, error)
	// GetByIDWithDeleted also returns a soft-deleted pool.
	GetByIDWithDeleted(ctx context.Context, id string) (*Pool, error)
	Update(ctx context.Context, p *Pool) error
	SoftDelete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*Pool, int64, error)
	// ExistsByBatchAndCategory ignores the pool with id excludeID.
	ExistsByBatchAndCategory(ctx context.Context, batchNumber, categoryID, excludeID string) (bool, error)
	// Credit adds amount to amount_received and one contributor in a single
	// statement, then moves the status forward. Callers run it inside the
	// transaction that marks the donation successful.
	Credit(ctx context.Context, id string, amount int64) (CreditResult, error)
}
