package identity

import (
	"context"

	"github.com/Darkingtail/mall4r/internal/domain/identity"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"go.uber.org/zap"
)

// RoleService handles roles and their menu grants
type RoleService struct {
	repo   identity.SysRoleRepository
	logger *zap.Logger
}

// NewRoleService creates a new RoleService
func NewRoleService(repo identity.SysRoleRepository, logger *zap.Logger) *RoleService {
	return &RoleService{repo: repo, logger: logger}
}

// List returns every role without its grants
func (s *RoleService) List(ctx context.Context) ([]identity.SysRole, error) {
	return s.repo.FindAll(ctx, shared.Filter{})
}

func (s *RoleService) Page(ctx context.Context, filter shared.Filter) (shared.Paginated[identity.SysRole], error) {
	return s.repo.FindPage(ctx, filter)
}

// GetByID returns a role with its menu ids
func (s *RoleService) GetByID(ctx context.Context, id int64) (*identity.SysRole, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a role on behalf of createUserID
func (s *RoleService) Create(ctx context.Context, r identity.SysRole, createUserID int64) (*identity.SysRole, error) {
	r.RoleID = 0
	r.CreateUserID = createUserID
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &r); err != nil {
		return nil, err
	}
	s.logger.Info("Role created",
		zap.Int64("role_id", r.RoleID),
		zap.Int("menus", len(r.MenuIDList)))
	return &r, nil
}

// Update replaces a role and its grants
func (s *RoleService) Update(ctx context.Context, r identity.SysRole) (*identity.SysRole, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &r); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, r.RoleID)
}

func (s *RoleService) DeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.DeleteBatch(ctx, ids)
}
