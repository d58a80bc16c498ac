package sampleproduct

import "context"

type ListFilter struct {
	Page            int
	PageSize        int
	IncludeInactive bool
	IncludeDeleted  bool
}

type Repository interface {
	Create(ctx context.Context, s *SampleProduct) error
	GetByID(ctx context.Context, id string) (*SampleProduct, error)
	GetByIDWithDeleted(ctx context.Context, id string) (*SampleProduct, error)
	// GetActiveByID only returns active, non-deleted products.
	GetActiveByID(ctx context.Context, id string) (*SampleProduct, error)
	// ExistsByNameOrCode ignores the product with id excludeID. A nil code
	// only checks the name.
	ExistsByNameOrCode(ctx context.Context, name string, code *string, excludeID string) (bool, error)
	Update(ctx context.Context, s *SampleProduct) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	// List orders by name.
	List(ctx context.Context, filter ListFilter) ([]*SampleProduct, int64, error)
}
