package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labpool/labpool/internal/shared/errors"
)

func priced(price, received int64, status Status) *Pool {
	return ReconstructPoolWithParams(PoolReconstructParams{
		ID:             "pool-1",
		Name:           "Whey batch",
		SampleSource:   "Lab A",
		BatchNumber:    "B-1",
		PoolPrice:      &price,
		AmountReceived: received,
		Status:         status,
		IsActive:       true,
		IsApproved:     true,
		CategoryID:     "cat-1",
		UserID:         "owner",
	})
}

func TestNewPool(t *testing.T) {
	p, err := NewPool(NewPoolParams{
		Name: "Whey batch", SampleSource: "Lab A", BatchNumber: "B-1", CategoryID: "cat-1", UserID: "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusCreated, p.Status())
	assert.True(t, p.IsActive())
	assert.False(t, p.IsApproved())
	assert.Nil(t, p.PoolPrice())
	assert.True(t, p.IsOwnedBy("u1"))
	assert.False(t, p.IsOwnedBy(""))
}

func TestNewPool_ShortName(t *testing.T) {
	_, err := NewPool(NewPoolParams{Name: "W", SampleSource: "Lab", BatchNumber: "B", CategoryID: "c", UserID: "u"})
	assert.True(t, errors.IsValidationError(err))
}

func TestCheckAcceptsDonation(t *testing.T) {
	unapproved := priced(10000, 0, StatusFunding)
	unapproved.Reject()

	unpriced := priced(10000, 0, StatusCreated)
	unpriced.poolPrice = nil

	tests := []struct {
		name    string
		pool    *Pool
		amount  int64
		wantMsg string
	}{
		{"not approved", unapproved, 100, "Pool is not accepting donations"},
		{"no price", unpriced, 100, "Pool price is not set"},
		{"target status", priced(10000, 0, StatusTargetReached), 100, "Pool has already reached its target"},
		{"fully funded", priced(10000, 10000, StatusFunding), 100, "Pool has already reached its target amount"},
		{"exceeds remaining", priced(10000, 8000, StatusFunding), 2500, "Donation amount exceeds remaining pool amount. Maximum allowed: 20.00"},
		{"exact remaining", priced(10000, 8000, StatusFunding), 2000, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pool.CheckAcceptsDonation(tt.amount)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			assert.Equal(t, tt.wantMsg, errors.GetAppError(err).Message)
		})
	}
}

func TestCredit_ReachesTargetOnce(t *testing.T) {
	p := priced(10000, 8000, StatusCreated)

	p.Credit(2000)

	assert.Equal(t, int64(10000), p.AmountReceived())
	assert.Equal(t, StatusTargetReached, p.Status())
	assert.Equal(t, 1, p.TotalContributors())
	assert.Equal(t, int64(0), p.RemainingAmount())
	assert.Equal(t, 100.0, p.PercentageReached())
}

func TestCredit_CreatedMovesToFunding(t *testing.T) {
	p := priced(10000, 0, StatusCreated)

	p.Credit(1000)

	assert.Equal(t, StatusFunding, p.Status())
	assert.Equal(t, 10.0, p.PercentageReached())
}

func TestCredit_KeepsLaterStatus(t *testing.T) {
	p := priced(10000, 9000, StatusSentToLab)

	p.Credit(1000)

	assert.Equal(t, StatusSentToLab, p.Status())
	assert.Equal(t, int64(10000), p.AmountReceived())
}

func TestApply_RejectsBadPriceAndStatus(t *testing.T) {
	p := priced(10000, 0, StatusFunding)
	zero := int64(0)
	bad := Status("Shipped")

	assert.Error(t, p.Apply(PoolUpdate{PoolPrice: &zero}))
	assert.Error(t, p.Apply(PoolUpdate{Status: &bad}))

	price := int64(5000)
	require.NoError(t, p.Apply(PoolUpdate{PoolPrice: &price}))
	assert.Equal(t, int64(5000), *p.PoolPrice())
}
