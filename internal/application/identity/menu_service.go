package identity

import (
	"context"
	"errors"

	"github.com/Darkingtail/mall4r/internal/domain/identity"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

// MenuService handles the navigation menus and the permissions they carry
type MenuService struct {
	repo identity.SysMenuRepository
}

// NewMenuService creates a new MenuService
func NewMenuService(repo identity.SysMenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

// Nav returns the menu tree and permission list of an operator. The
// built-in administrator sees every menu.
func (s *MenuService) Nav(ctx context.Context, userID int64) (identity.Nav, error) {
	menus, err := s.visible(ctx, userID)
	if err != nil {
		return identity.Nav{}, err
	}
	return identity.BuildNav(menus), nil
}

// Permissions returns the permission codes granted to an operator
func (s *MenuService) Permissions(ctx context.Context, userID int64) ([]string, error) {
	nav, err := s.Nav(ctx, userID)
	if err != nil {
		return nil, err
	}
	return nav.Authorities, nil
}

// List returns every menu as a flat list
func (s *MenuService) List(ctx context.Context) ([]identity.SysMenu, error) {
	return s.repo.FindAll(ctx, shared.Filter{})
}

// Tree returns every menu, buttons included, as a forest
func (s *MenuService) Tree(ctx context.Context) ([]identity.SysMenu, error) {
	all, err := s.repo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	tree := identity.BuildMenuTree(all)
	if tree == nil {
		tree = []identity.SysMenu{}
	}
	return tree, nil
}

func (s *MenuService) GetByID(ctx context.Context, id int64) (*identity.SysMenu, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a menu under a parent of a compatible type
func (s *MenuService) Create(ctx context.Context, m identity.SysMenu) (*identity.SysMenu, error) {
	m.MenuID = 0
	if err := s.prepare(ctx, &m); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MenuService) Update(ctx context.Context, m identity.SysMenu) (*identity.SysMenu, error) {
	if err := s.prepare(ctx, &m); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Delete removes a leaf menu and its role grants
func (s *MenuService) Delete(ctx context.Context, id int64) error {
	children, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return shared.NewDomainError(shared.ErrHasChildren.Code, "Delete the sub-menus or buttons first")
	}
	return s.repo.Delete(ctx, id)
}

func (s *MenuService) visible(ctx context.Context, userID int64) ([]identity.SysMenu, error) {
	if userID == identity.SuperAdminID {
		return s.repo.FindAll(ctx, shared.Filter{})
	}
	return s.repo.FindByUserID(ctx, userID)
}

func (s *MenuService) prepare(ctx context.Context, m *identity.SysMenu) error {
	m.List = nil
	var parent *identity.SysMenu
	if m.ParentID != 0 {
		p, err := s.repo.FindByID(ctx, m.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NotFound("Parent menu")
			}
			return err
		}
		parent = p
	}
	return m.Validate(parent)
}
