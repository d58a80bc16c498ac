package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/shared/errors"
)

const maxNameLength = 100

// User is an account that authenticates with email and password and
// receives capabilities through its roles.
type User struct {
	id           string
	name         string
	email        string
	passwordHash string
	isActive     bool
	roles        []*permission.Role
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(name, email, passwordHash string) (*User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, errors.NewValidationError("password is required")
	}

	now := time.Now().UTC()
	return &User{
		name:         strings.TrimSpace(name),
		email:        normalized,
		passwordHash: passwordHash,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

type UserReconstructParams struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	IsActive     bool
	Roles        []*permission.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func ReconstructUser(p UserReconstructParams) *User {
	return &User{
		id:           p.ID,
		name:         p.Name,
		email:        p.Email,
		passwordHash: p.PasswordHash,
		isActive:     p.IsActive,
		roles:        p.Roles,
		createdAt:    p.CreatedAt,
		updatedAt:    p.UpdatedAt,
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errors.NewValidationError("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", errors.NewValidationError("invalid email address", email)
	}
	return email, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewValidationError("name is required")
	}
	if len(name) > maxNameLength {
		return errors.NewValidationError("name too long (max 100 characters)")
	}
	return nil
}

func (u *User) ID() string { return u.id }
func (u *User) Name() string { return u.name }
func (u *User) Email() string { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) IsActive() bool { return u.isActive }
func (u *User) Roles() []*permission.Role { return u.roles }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) SetID(id string) error {
	if u.id != "" {
		return errors.NewInternalError("user ID is already set")
	}
	u.id = id
	return nil
}

// Subject is the authorization snapshot used to build the user's ability.
func (u *User) Subject() permission.Subject {
	return permission.Subject{UserID: u.id, Roles: u.roles}
}

func (u *User) IsSuperadmin() bool {
	for _, r := range u.roles {
		if r.IsSuperadmin() {
			return true
		}
	}
	return false
}

func (u *User) RoleIDs() []string {
	ids := make([]string, 0, len(u.roles))
	for _, r := range u.roles {
		ids = append(ids, r.ID())
	}
	return ids
}

type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	IsActive     *bool
}

func (u *User) Apply(upd UserUpdate) error {
	if upd.Name != nil {
		if err := validateName(*upd.Name); err != nil {
			return err
		}
		u.name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		email, err := normalizeEmail(*upd.Email)
		if err != nil {
			return err
		}
		u.email = email
	}
	if upd.PasswordHash != nil && *upd.PasswordHash != "" {
		u.passwordHash = *upd.PasswordHash
	}
	if upd.IsActive != nil {
		u.isActive = *upd.IsActive
	}
	u.updatedAt = time.Now().UTC()
	return nil
}

// AssignRoles replaces the role set.
func (u *User) AssignRoles(roles []*permission.Role) {
	u.roles = roles
	u.updatedAt = time.Now().UTC()
}
