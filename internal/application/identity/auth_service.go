package identity

import (
	"context"
	"errors"

	"github.com/Darkingtail/mall4r/internal/domain/identity"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/Darkingtail/mall4r/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// LoginRecorder counts login outcomes
type LoginRecorder interface {
	LoginAttempt(success bool)
}

// AuthService handles authentication operations
type AuthService struct {
	users     identity.SysUserRepository
	menus     *MenuService
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	recorder  LoginRecorder
	logger    *zap.Logger
}

// NewAuthService creates a new authentication service. blacklist and
// recorder may be nil.
func NewAuthService(
	users identity.SysUserRepository,
	menus *MenuService,
	jwt *auth.JWTService,
	blacklist auth.TokenBlacklist,
	recorder LoginRecorder,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		menus:     menus,
		jwt:       jwt,
		blacklist: blacklist,
		recorder:  recorder,
		logger:    logger,
	}
}

var errInvalidCredentials = shared.NewDomainError(shared.ErrUnauthorized.Code, "Invalid username or password")

// Login authenticates an operator and returns a token pair carrying the
// operator's permissions
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*auth.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, in.Principal)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login with unknown username",
				zap.String("username", in.Principal),
				zap.String("ip", in.IP))
			s.record(false)
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(in.Credentials) {
		s.logger.Warn("Invalid password attempt",
			zap.String("username", in.Principal),
			zap.String("ip", in.IP))
		s.record(false)
		return nil, errInvalidCredentials
	}

	if !user.CanLogin() {
		s.logger.Warn("Login attempt for disabled account", zap.String("username", in.Principal))
		s.record(false)
		return nil, shared.NewDomainError(shared.ErrForbidden.Code, "Account has been disabled")
	}

	pair, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	s.record(true)

	s.logger.Info("Operator logged in",
		zap.String("username", user.Username),
		zap.Int64("user_id", user.UserID))
	return pair, nil
}

// Refresh rotates a token pair. The presented refresh token is revoked so
// it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, in RefreshInput) (*auth.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(in.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, tokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.GetUserID()
	if err != nil {
		return nil, tokenError(auth.ErrMissingUserID)
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.ErrUnauthorized.Code, "User not found")
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError(shared.ErrForbidden.Code, "Account has been disabled")
	}

	perms, err := s.menus.Permissions(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	pair, err := s.jwt.RefreshTokenPair(in.RefreshToken, perms)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, tokenError(err)
	}

	if s.blacklist != nil {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			s.logger.Error("Failed to revoke rotated refresh token", zap.Error(err))
		}
	}
	s.logger.Info("Token refreshed", zap.Int64("user_id", user.UserID))
	return pair, nil
}

// Logout revokes the presented access token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || s.blacklist == nil {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		return err
	}
	s.logger.Info("Operator logged out",
		zap.String("user_id", claims.UserID),
		zap.String("jti", claims.ID))
	return nil
}

func (s *AuthService) issue(ctx context.Context, user *identity.SysUser) (*auth.TokenPair, error) {
	perms, err := s.menus.Permissions(ctx, user.UserID)
	if err != nil {
		s.logger.Error("Failed to collect operator permissions", zap.Error(err))
		return nil, err
	}
	pair, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:      user.UserID,
		Username:    user.Username,
		Permissions: perms,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}
	return pair, nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	if s.blacklist == nil {
		return nil
	}
	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return err
	}
	if !revoked {
		revoked, err = s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
		if err != nil {
			return err
		}
	}
	if revoked {
		return tokenError(auth.ErrTokenBlacklisted)
	}
	return nil
}

func (s *AuthService) record(success bool) {
	if s.recorder != nil {
		s.recorder.LoginAttempt(success)
	}
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError(shared.ErrUnauthorized.Code, "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError(shared.ErrUnauthorized.Code, "Maximum token refresh count exceeded. Please log in again")
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return shared.NewDomainError(shared.ErrUnauthorized.Code, "Token has been revoked")
	default:
		return shared.NewDomainError(shared.ErrUnauthorized.Code, "Invalid refresh token")
	}
}
