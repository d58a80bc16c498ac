package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	pair, err := svc.Generate("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.NotEmpty(t, claims.ID)

	_, err = svc.VerifyAccess(pair.RefreshToken)
	assert.Error(t, err)
}

func TestJWTService_Refresh(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)
	pair, err := svc.Generate("user-1")
	require.NoError(t, err)

	next, claims, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	_, _, err = svc.Refresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)
	pair, err := svc.Generate("user-1")
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		_, err := NewJWTService("other", 15, 7).Verify(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().UTC().Add(time.Hour) }
		defer func() { svc.now = func() time.Time { return time.Now().UTC() } }()

		_, err := svc.Verify(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		assert.Error(t, err)
	})
}

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret!")
	require.NoError(t, err)

	assert.NoError(t, h.Verify("s3cret!", hash))
	assert.Error(t, h.Verify("wrong", hash))
	assert.Error(t, h.Verify("s3cret!", "not-a-hash"))
}

func TestNewBcryptPasswordHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasher(99).cost)
}
