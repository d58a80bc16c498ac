package permission

import "context"

type PermissionFilter struct {
	Page     int
	PageSize int
	Search   string
	// Resource filters on the stored resource string, exact match.
	Resource string
	// IncludeDeleted lists soft-deleted rows too.
	IncludeDeleted bool
}

type PermissionRepository interface {
	Create(ctx context.Context, p *Permission) error
	GetByID(ctx context.Context, id string) (*Permission, error)
	// GetByIDs returns the permissions found; missing ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]*Permission, error)
	GetByName(ctx context.Context, name string) (*Permission, error)
	Update(ctx context.Context, p *Permission) error
	Delete(ctx context.Context, id string) error
	// GetByIDWithDeleted and Restore see soft-deleted rows.
	GetByIDWithDeleted(ctx context.Context, id string) (*Permission, error)
	Restore(ctx context.Context, id string) error
	List(ctx context.Context, filter PermissionFilter) ([]*Permission, int64, error)
}

type RoleFilter struct {
	Page           int
	PageSize       int
	Search         string
	IncludeDeleted bool
}

type RoleRepository interface {
	// Create stores the role together with its permission links.
	Create(ctx context.Context, r *Role) error
	GetByID(ctx context.Context, id string) (*Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Role, error)
	// Update stores scalar fields and replaces the permission links.
	Update(ctx context.Context, r *Role) error
	Delete(ctx context.Context, id string) error
	GetByIDWithDeleted(ctx context.Context, id string) (*Role, error)
	Restore(ctx context.Context, id string) error
	List(ctx context.Context, filter RoleFilter) ([]*Role, int64, error)
}
