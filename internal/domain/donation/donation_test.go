package donation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labpool/labpool/internal/shared/errors"
)

func newPending(t *testing.T, donor Donor) *Donation {
	t.Helper()
	d, err := NewDonation(NewDonationParams{
		Amount:          2000,
		Currency:        "INR",
		PoolID:          "pool-1",
		Donor:           donor,
		ProviderOrderID: "order_1",
	})
	require.NoError(t, err)
	return d
}

func TestDonor_Normalize(t *testing.T) {
	t.Run("authenticated drops anonymous fields", func(t *testing.T) {
		d, err := Donor{UserID: "u1", Name: "X", Email: "x@example.com", Phone: "1"}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, Donor{UserID: "u1"}, d)
	})

	t.Run("anonymous without email", func(t *testing.T) {
		_, err := Donor{Name: "Asha"}.Normalize()
		require.Error(t, err)
		assert.Equal(t, "Email is required for anonymous donations", errors.GetAppError(err).Message)
	})

	t.Run("anonymous without name", func(t *testing.T) {
		_, err := Donor{Email: "a@example.com"}.Normalize()
		require.Error(t, err)
		assert.Equal(t, "Name is required for anonymous donations", errors.GetAppError(err).Message)
	})

	t.Run("anonymous complete", func(t *testing.T) {
		d, err := Donor{Name: " Asha ", Email: "a@example.com"}.Normalize()
		require.NoError(t, err)
		assert.True(t, d.IsAnonymous())
		assert.Equal(t, "Asha", d.Name)
	})
}

func TestNewDonation_StartsPending(t *testing.T) {
	d := newPending(t, Donor{UserID: "u1"})

	assert.Equal(t, StatusPending, d.Status())
	assert.NoError(t, d.EnsureVerifiable())
}

func TestNewDonation_RejectsNonPositiveAmount(t *testing.T) {
	_, err := NewDonation(NewDonationParams{Amount: 0, PoolID: "p", ProviderOrderID: "o", Donor: Donor{UserID: "u"}})
	assert.True(t, errors.IsValidationError(err))
}

func TestDonation_TerminalStatesAreFinal(t *testing.T) {
	d := newPending(t, Donor{UserID: "u1"})
	require.NoError(t, d.MarkSucceeded("pay_1", "sig"))

	assert.Equal(t, StatusSuccess, d.Status())
	assert.Equal(t, "pay_1", d.ProviderPaymentID())

	err := d.MarkFailed("pay_2", "sig")
	assert.True(t, errors.IsConflictError(err))
	assert.Equal(t, "Payment already verified", errors.GetAppError(err).Message)
	assert.Equal(t, StatusSuccess, d.Status())

	f := newPending(t, Donor{UserID: "u1"})
	require.NoError(t, f.MarkFailed("pay_3", "bad"))
	assert.True(t, errors.IsConflictError(f.MarkSucceeded("pay_3", "good")))
}

func TestSignature(t *testing.T) {
	sig := ComputeSignature("secret", "order_1", "pay_1")

	assert.Len(t, sig, 64)
	assert.True(t, VerifySignature("secret", "order_1", "pay_1", sig))
	assert.False(t, VerifySignature("other", "order_1", "pay_1", sig))
	assert.False(t, VerifySignature("secret", "order_1", "pay_2", sig))
	assert.False(t, VerifySignature("secret", "order_1", "pay_1", ""))
}
