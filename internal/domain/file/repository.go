package file

import (
	"context"
	"io"
)

type ListFilter struct {
	Page           int
	PageSize       int
	ModuleName     ModuleName
	UploaderID     string
	IncludeDeleted bool
}

type Repository interface {
	Create(ctx context.Context, f *File) error
	// GetByID returns deleted files too; callers decide visibility.
	GetByID(ctx context.Context, id string) (*File, error)
	Update(ctx context.Context, f *File) error
	HardDelete(ctx context.Context, id string) error
	// List orders by upload date descending.
	List(ctx context.Context, filter ListFilter) ([]*File, int64, error)
}

// Storage keeps the uploaded bytes. Paths are relative to the storage root.
type Storage interface {
	Save(ctx context.Context, module ModuleName, originalName string, r io.Reader) (path string, size int64, err error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Remove(ctx context.Context, path string) error
}
