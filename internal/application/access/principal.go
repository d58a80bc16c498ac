// Package access decides whether the caller of an operation may run it.
package access

import (
	"context"

	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/domain/user"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
)

// Principal is the authenticated caller of one request: the user snapshot
// loaded at the start of the request and the ability derived from it.
type Principal struct {
	User    *user.User
	Ability permission.Ability
}

func (p *Principal) UserID() string {
	if p == nil || p.User == nil {
		return ""
	}
	return p.User.ID()
}

// Resolver loads the live role and permission snapshot for a token
// subject. Nothing is cached across requests.
type Resolver struct {
	userRepo user.Repository
	factory  permission.AbilityFactory
	logger   logger.Interface
}

func NewResolver(userRepo user.Repository, factory permission.AbilityFactory, log logger.Interface) *Resolver {
	return &Resolver{userRepo: userRepo, factory: factory, logger: log}
}

// Resolve returns Unauthorized for unknown or inactive users.
func (r *Resolver) Resolve(ctx context.Context, userID string) (*Principal, error) {
	u, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewUnauthorizedError("User not found")
		}
		return nil, err
	}
	if !u.IsActive() {
		r.logger.Warnw("inactive user presented a token", "user_id", userID)
		return nil, errors.NewUnauthorizedError("User account is inactive")
	}

	return &Principal{User: u, Ability: r.factory.For(u.Subject())}, nil
}
