// Package db provides query scopes and transaction propagation for repositories.
package db

import (
	"gorm.io/gorm"
)

// NotDeleted filters out soft-deleted rows. Repositories apply it explicitly
// on every read instead of relying on gorm's implicit soft-delete clause.
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NULL")
	}
}

// NotDeletedWithAlias is NotDeleted for joined queries.
func NotDeletedWithAlias(alias string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(alias + ".deleted_at IS NULL")
	}
}

// IncludeDeleted applies NotDeleted unless includeDeleted is set. Callers
// must pair it with Unscoped so gorm's own soft-delete clause stays out.
func IncludeDeleted(includeDeleted bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if includeDeleted {
			return db
		}
		return db.Where("deleted_at IS NULL")
	}
}

// Paginate applies LIMIT/OFFSET for 1-based pages. A non-positive page size
// disables pagination.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
