// Package catalog holds the product catalog: categories, brands,
// properties, tags, comments and products.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

// MaxCategoryGrade is the deepest grade a category may have. Roots are grade 0.
const MaxCategoryGrade = 2

// Category is a product category
type Category struct {
	CategoryID   int64      `gorm:"column:category_id;primaryKey;autoIncrement" json:"categoryId"`
	ShopID       int64      `gorm:"column:shop_id;not null;default:1" json:"shopId"`
	ParentID     int64      `gorm:"column:parent_id;not null;default:0;index" json:"parentId"`
	CategoryName string     `gorm:"column:category_name;type:varchar(50);not null" json:"categoryName"`
	Icon         string     `gorm:"column:icon;type:varchar(255)" json:"icon"`
	Pic          string     `gorm:"column:pic;type:varchar(300)" json:"pic"`
	Seq          int        `gorm:"column:seq;not null;default:0" json:"seq"`
	Status       int        `gorm:"column:status;not null" json:"status"`
	Grade        int        `gorm:"column:grade;not null;default:0" json:"grade"`
	RecTime      time.Time  `gorm:"column:rec_time;autoCreateTime" json:"recTime"`
	UpdateTime   time.Time  `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
	Categories   []Category `gorm:"-" json:"categories,omitempty"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "tz_category"
}

func (c Category) GetID() int64       { return c.CategoryID }
func (c Category) GetParentID() int64 { return c.ParentID }

// Validate checks the editable fields of a category
func (c *Category) Validate() error {
	c.CategoryName = strings.TrimSpace(c.CategoryName)
	if c.CategoryName == "" {
		return shared.InvalidInput("Category name is required")
	}
	if strings.TrimSpace(c.Pic) == "" {
		return shared.InvalidInput("Category image is required")
	}
	if c.Status != shared.StatusEnabled && c.Status != shared.StatusDisabled {
		return shared.InvalidInput("Status must be 0 or 1")
	}
	return nil
}

// PlaceUnder sets the parent of c and derives its grade. all is the full
// category list; it is used to reject cycles.
func (c *Category) PlaceUnder(parentID int64, all []Category) error {
	if parentID == 0 {
		c.ParentID = 0
		c.Grade = 0
		return nil
	}
	if c.CategoryID != 0 && parentID == c.CategoryID {
		return shared.InvalidInput("A category cannot be its own parent")
	}

	byID := make(map[int64]Category, len(all))
	for _, x := range all {
		byID[x.CategoryID] = x
	}
	parent, ok := byID[parentID]
	if !ok {
		return shared.NotFound("Parent category")
	}

	// walk up from the parent; meeting c means c would become its own ancestor
	depth := 1
	for cur := parent; cur.ParentID != 0; depth++ {
		if c.CategoryID != 0 && cur.ParentID == c.CategoryID {
			return shared.InvalidInput("A category cannot be moved under its own descendant")
		}
		next, ok := byID[cur.ParentID]
		if !ok || depth > len(all) {
			break
		}
		cur = next
	}
	if depth > MaxCategoryGrade {
		return shared.InvalidInput("Categories can be nested at most three levels deep")
	}
	c.ParentID = parentID
	c.Grade = depth
	return nil
}

// BuildCategoryTree links a flat category list into a forest ordered by seq
func BuildCategoryTree(items []Category) []Category {
	return shared.BuildForest(items,
		func(p *Category, c Category) { p.Categories = append(p.Categories, c) },
		func(a, b Category) bool {
			if a.Seq != b.Seq {
				return a.Seq < b.Seq
			}
			return a.CategoryID < b.CategoryID
		},
	)
}

// CategoryRepository defines persistence for categories
type CategoryRepository interface {
	shared.CrudRepository[Category]
	CountChildren(ctx context.Context, id int64) (int64, error)
}
