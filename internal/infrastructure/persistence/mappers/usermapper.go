package mappers

import (
	"github.com/labpool/labpool/internal/domain/user"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
)

// UserToModel leaves Roles empty; links are written separately.
func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		Name:         u.Name(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		IsActive:     u.IsActive(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func UserToDomain(m *models.UserModel) *user.User {
	return user.ReconstructUser(user.UserReconstructParams{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		Roles:        RolesToDomain(m.Roles),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	})
}
