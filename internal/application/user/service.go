package user

import (
	"context"

	"github.com/labpool/labpool/internal/application/user/dto"
	"github.com/labpool/labpool/internal/domain/permission"
	"github.com/labpool/labpool/internal/domain/user"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// Service manages user accounts and their role assignments.
type Service struct {
	userRepo user.Repository
	roleRepo permission.RoleRepository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewService(
	userRepo user.Repository,
	roleRepo permission.RoleRepository,
	hasher PasswordHasher,
	logger logger.Interface,
) *Service {
	return &Service{
		userRepo: userRepo,
		roleRepo: roleRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (s *Service) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserDTO, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewConflictError("User with this email already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("Failed to create user")
	}
	u, err := user.NewUser(req.Name, req.Email, hash)
	if err != nil {
		return nil, err
	}
	if len(req.RoleIDs) > 0 {
		roles, err := s.loadRoles(ctx, req.RoleIDs)
		if err != nil {
			return nil, err
		}
		u.AssignRoles(roles)
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return dto.ToUserDTO(u), nil
}

func (s *Service) Get(ctx context.Context, id string) (*dto.UserDTO, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToUserDTO(u), nil
}

func (s *Service) List(ctx context.Context, req dto.ListUsersRequest) ([]*dto.UserDTO, int64, error) {
	list, total, err := s.userRepo.List(ctx, user.ListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
	})
	if err != nil {
		return nil, 0, err
	}
	return dto.ToUserDTOs(list), total, nil
}

func (s *Service) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserDTO, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	upd := user.UserUpdate{Name: req.Name, Email: req.Email, IsActive: req.IsActive}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			s.logger.Errorw("failed to hash password", "user_id", id, "error", err)
			return nil, errors.NewInternalError("Failed to update user")
		}
		upd.PasswordHash = &hash
	}
	if err := u.Apply(upd); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return dto.ToUserDTO(u), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}

// AssignRoles replaces the user's role set. Unknown role ids fail the
// whole call.
func (s *Service) AssignRoles(ctx context.Context, id string, req dto.AssignRolesRequest) (*dto.UserDTO, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	roles, err := s.loadRoles(ctx, req.RoleIDs)
	if err != nil {
		return nil, err
	}
	u.AssignRoles(roles)
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Infow("user roles replaced", "user_id", id, "count", len(roles))
	return dto.ToUserDTO(u), nil
}

func (s *Service) loadRoles(ctx context.Context, ids []string) ([]*permission.Role, error) {
	found, err := s.roleRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(found))
	for _, r := range found {
		known[r.ID()] = true
	}
	for _, rid := range ids {
		if !known[rid] {
			return nil, errors.NewNotFoundError("One or more roles not found", rid)
		}
	}
	return found, nil
}
