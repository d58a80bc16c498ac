package user

import (
	"context"

	"github.com/labpool/labpool/internal/application/user/dto"
	"github.com/labpool/labpool/internal/domain/user"
	"github.com/labpool/labpool/internal/infrastructure/auth"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
)

const msgInvalidCredentials = "Invalid credentials"

type TokenService interface {
	Generate(userID string) (*auth.TokenPair, error)
	Refresh(refreshToken string) (*auth.TokenPair, *auth.Claims, error)
}

// AuthService issues bearer tokens.
type AuthService struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenService
	logger   logger.Interface
}

func NewAuthService(
	userRepo user.Repository,
	hasher PasswordHasher,
	tokens TokenService,
	logger logger.Interface,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewUnauthorizedError(msgInvalidCredentials)
		}
		return nil, err
	}
	if err := s.hasher.Verify(req.Password, u.PasswordHash()); err != nil {
		s.logger.Warnw("login with wrong password", "user_id", u.ID())
		return nil, errors.NewUnauthorizedError(msgInvalidCredentials)
	}
	if !u.IsActive() {
		return nil, errors.NewUnauthorizedError("User account is inactive")
	}

	pair, err := s.tokens.Generate(u.ID())
	if err != nil {
		s.logger.Errorw("failed to sign tokens", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("Failed to issue token")
	}

	s.logger.Infow("user logged in", "user_id", u.ID())
	return tokenResponse(pair, u), nil
}

func (s *AuthService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error) {
	pair, claims, err := s.tokens.Refresh(req.RefreshToken)
	if err != nil {
		return nil, errors.NewUnauthorizedError("Invalid refresh token")
	}
	u, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil || !u.IsActive() {
		return nil, errors.NewUnauthorizedError("Invalid refresh token")
	}
	return tokenResponse(pair, u), nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*dto.UserDTO, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToUserDTO(u), nil
}

func tokenResponse(pair *auth.TokenPair, u *user.User) *dto.LoginResponse {
	return &dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(pair.ExpiresIn),
		User:         dto.ToUserDTO(u),
	}
}
