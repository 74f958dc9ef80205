package identity

import (
	"context"
	"strconv"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/identity"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/Darkingtail/mall4r/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService handles operator accounts
type UserService struct {
	repo      identity.SysUserRepository
	blacklist auth.TokenBlacklist
	revokeTTL time.Duration
	logger    *zap.Logger
}

// NewUserService creates a new UserService. Tokens of disabled or deleted
// operators are revoked for revokeTTL, the lifetime of a refresh token.
func NewUserService(
	repo identity.SysUserRepository,
	blacklist auth.TokenBlacklist,
	revokeTTL time.Duration,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		repo:      repo,
		blacklist: blacklist,
		revokeTTL: revokeTTL,
		logger:    logger,
	}
}

func (s *UserService) Page(ctx context.Context, filter shared.Filter) (shared.Paginated[identity.SysUser], error) {
	return s.repo.FindPage(ctx, filter)
}

// GetByID returns an operator with its role ids
func (s *UserService) GetByID(ctx context.Context, id int64) (*identity.SysUser, error) {
	return s.repo.FindByID(ctx, id)
}

// Create adds an operator with a unique username
func (s *UserService) Create(ctx context.Context, in UserInput) (*identity.SysUser, error) {
	u, err := identity.NewSysUser(in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	in.apply(u)
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, u.Username, 0); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("Operator created",
		zap.Int64("user_id", u.UserID),
		zap.String("username", u.Username))
	return u, nil
}

// Update replaces an operator's profile and roles
func (s *UserService) Update(ctx context.Context, in UserInput) (*identity.SysUser, error) {
	u, err := s.repo.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	wasEnabled := u.CanLogin()
	in.apply(u)
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if u.IsSuperAdmin() && !u.CanLogin() {
		return nil, shared.NewDomainError(shared.ErrInvalidState.Code, "The system administrator cannot be disabled")
	}
	if err := s.ensureUnique(ctx, u.Username, u.UserID); err != nil {
		return nil, err
	}
	if err := u.ApplyPassword(in.Password); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	if wasEnabled && !u.CanLogin() {
		s.revoke(ctx, u.UserID)
	}
	return u, nil
}

// ChangePassword replaces the caller's password after checking the old one
func (s *UserService) ChangePassword(ctx context.Context, userID int64, in PasswordInput) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !u.VerifyPassword(in.Password) {
		return shared.NewDomainError(shared.ErrInvalidInput.Code, "The current password is incorrect")
	}
	if err := u.SetPassword(in.NewPassword); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}
	s.logger.Info("Operator password changed", zap.Int64("user_id", userID))
	return nil
}

// DeleteBatch removes operators. Neither the built-in administrator nor the
// caller may be among them.
func (s *UserService) DeleteBatch(ctx context.Context, ids []int64, currentUserID int64) error {
	if err := identity.CheckDeletable(ids, currentUserID); err != nil {
		return err
	}
	if err := s.repo.DeleteBatch(ctx, ids); err != nil {
		return err
	}
	for _, id := range ids {
		s.revoke(ctx, id)
	}
	s.logger.Info("Operators deleted", zap.Int64s("user_ids", ids))
	return nil
}

func (s *UserService) ensureUnique(ctx context.Context, username string, excludeID int64) error {
	exists, err := s.repo.ExistsByUsername(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.ErrAlreadyExists.Code, "Username already exists")
	}
	return nil
}

// revoke invalidates every token issued to the operator so far. Failures
// are logged; the account change itself has already been stored.
func (s *UserService) revoke(ctx context.Context, userID int64) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, strconv.FormatInt(userID, 10), s.revokeTTL); err != nil {
		s.logger.Error("Failed to revoke operator tokens",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}
}
