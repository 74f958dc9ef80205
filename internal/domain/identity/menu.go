package identity

import (
	"context"
	"sort"
	"strings"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

// Menu types
const (
	MenuCatalog = 0
	MenuPage    = 1
	MenuButton  = 2
)

// SysMenu is one node of the back-office navigation. Buttons carry
// permission codes only and never appear in the navigation tree.
type SysMenu struct {
	MenuID   int64     `gorm:"column:menu_id;primaryKey;autoIncrement" json:"menuId"`
	ParentID int64     `gorm:"column:parent_id;not null;default:0;index" json:"parentId"`
	Name     string    `gorm:"column:name;type:varchar(50);not null" json:"name"`
	URL      string    `gorm:"column:url;type:varchar(200)" json:"url"`
	Perms    string    `gorm:"column:perms;type:varchar(500)" json:"perms"`
	Type     int       `gorm:"column:type;not null;default:0" json:"type"`
	Icon     string    `gorm:"column:icon;type:varchar(50)" json:"icon"`
	OrderNum int       `gorm:"column:order_num;not null;default:0" json:"orderNum"`
	List     []SysMenu `gorm:"-" json:"list,omitempty"`
}

// TableName returns the table name for GORM
func (SysMenu) TableName() string {
	return "tz_sys_menu"
}

func (m SysMenu) GetID() int64       { return m.MenuID }
func (m SysMenu) GetParentID() int64 { return m.ParentID }

// Validate checks a menu against its parent. parent is nil for a top-level menu.
func (m *SysMenu) Validate(parent *SysMenu) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return shared.InvalidInput("Menu name is required")
	}
	if m.Type < MenuCatalog || m.Type > MenuButton {
		return shared.InvalidInput("Menu type must be 0, 1 or 2")
	}
	if m.Type == MenuPage && strings.TrimSpace(m.URL) == "" {
		return shared.InvalidInput("Menu URL is required")
	}
	parentType := MenuCatalog
	if parent != nil {
		if m.MenuID != 0 && parent.MenuID == m.MenuID {
			return shared.InvalidInput("A menu cannot be its own parent")
		}
		parentType = parent.Type
	}
	switch m.Type {
	case MenuCatalog, MenuPage:
		if parentType != MenuCatalog {
			return shared.InvalidInput("The parent of a catalog or menu must be a catalog")
		}
	case MenuButton:
		if parentType != MenuPage {
			return shared.InvalidInput("The parent of a button must be a menu")
		}
	}
	return nil
}

// Nav is the navigation payload of the current operator
type Nav struct {
	MenuList    []SysMenu `json:"menuList"`
	Authorities []string  `json:"authorities"`
}

// BuildNav builds the navigation tree and the permission list from the
// menus the operator may see
func BuildNav(menus []SysMenu) Nav {
	var visible []SysMenu
	permSet := make(map[string]bool)
	for _, m := range menus {
		for _, p := range strings.Split(m.Perms, ",") {
			if p = strings.TrimSpace(p); p != "" {
				permSet[p] = true
			}
		}
		if m.Type != MenuButton {
			visible = append(visible, m)
		}
	}
	perms := make([]string, 0, len(permSet))
	for p := range permSet {
		perms = append(perms, p)
	}
	sort.Strings(perms)

	tree := BuildMenuTree(visible)
	if tree == nil {
		tree = []SysMenu{}
	}
	return Nav{MenuList: tree, Authorities: perms}
}

// BuildMenuTree links menus into a forest ordered by orderNum
func BuildMenuTree(menus []SysMenu) []SysMenu {
	return shared.BuildForest(menus,
		func(p *SysMenu, c SysMenu) { p.List = append(p.List, c) },
		func(a, b SysMenu) bool {
			if a.OrderNum != b.OrderNum {
				return a.OrderNum < b.OrderNum
			}
			return a.MenuID < b.MenuID
		},
	)
}

// SysMenuRepository defines persistence for menus
type SysMenuRepository interface {
	shared.CrudRepository[SysMenu]
	// FindByUserID returns the menus reachable through the operator's roles
	FindByUserID(ctx context.Context, userID int64) ([]SysMenu, error)
	CountChildren(ctx context.Context, id int64) (int64, error)
}
