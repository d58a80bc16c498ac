package user

import "context"

type ListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// Repository loads users with their roles and each role's permissions.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Update stores scalar fields and replaces the role links.
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
