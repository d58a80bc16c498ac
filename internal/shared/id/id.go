// Package id generates entity identifiers and sortable references.
package id

import (
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// NewUUID returns a random (v4) identifier used as a primary key.
func NewUUID() string {
	return uuid.NewString()
}

// IsUUID reports whether s parses as a UUID.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// NewULID returns a lexicographically sortable identifier. Used for
// request ids, payment receipts and mock provider references.
func NewULID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// WithPrefix formats prefix_ULID, e.g. "donation_01HV...".
func WithPrefix(prefix string) string {
	return prefix + "_" + NewULID()
}
