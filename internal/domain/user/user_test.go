package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/shared/errors"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser(" Asha ", " Asha@Example.com ", "hash")
	require.NoError(t, err)

	assert.Equal(t, "Asha", u.Name())
	assert.Equal(t, "asha@example.com", u.Email())
	assert.True(t, u.IsActive())
	assert.Empty(t, u.Roles())
}

func TestNewUser_Invalid(t *testing.T) {
	tests := []struct {
		name, userName, email, hash string
	}{
		{"missing email", "Asha", "", "hash"},
		{"bad email", "Asha", "not-an-email", "hash"},
		{"missing name", " ", "a@example.com", "hash"},
		{"missing hash", "Asha", "a@example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.userName, tt.email, tt.hash)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestUser_SubjectAndSuperadmin(t *testing.T) {
	admin := permission.ReconstructRole(permission.RoleReconstructParams{ID: "r1", Name: "superadmin", IsActive: true})
	u := ReconstructUser(UserReconstructParams{ID: "u1", Name: "Root", Email: "root@example.com", IsActive: true})

	assert.False(t, u.IsSuperadmin())
	u.AssignRoles([]*permission.Role{admin})

	assert.True(t, u.IsSuperadmin())
	assert.Equal(t, []string{"r1"}, u.RoleIDs())
	assert.Equal(t, "u1", u.Subject().UserID)
	assert.Len(t, u.Subject().Roles, 1)
}

func TestUser_ApplyKeepsPasswordWhenEmpty(t *testing.T) {
	u := ReconstructUser(UserReconstructParams{ID: "u1", Name: "A", Email: "a@example.com", PasswordHash: "old", IsActive: true})
	empty, inactive := "", false

	require.NoError(t, u.Apply(UserUpdate{PasswordHash: &empty, IsActive: &inactive}))
	assert.Equal(t, "old", u.PasswordHash())
	assert.False(t, u.IsActive())
}
