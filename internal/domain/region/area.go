// Package region holds the administrative area hierarchy used by address
// pickers: province, city, district and town.
package region

import (
	"context"
	"strings"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

// Area levels
const (
	LevelProvince = 1
	LevelCity     = 2
	LevelDistrict = 3
	LevelTown     = 4
	MaxLevel      = LevelTown
)

// Area is one node of the region tree
type Area struct {
	AreaID   int64  `gorm:"column:area_id;primaryKey;autoIncrement" json:"areaId"`
	AreaName string `gorm:"column:area_name;type:varchar(50);not null;index" json:"areaName"`
	ParentID int64  `gorm:"column:parent_id;not null;default:0;index" json:"parentId"`
	Level    int    `gorm:"column:level;not null" json:"level"`
	Areas    []Area `gorm:"-" json:"areas,omitempty"`
}

// TableName returns the table name for GORM
func (Area) TableName() string {
	return "tz_area"
}

func (a Area) GetID() int64       { return a.AreaID }
func (a Area) GetParentID() int64 { return a.ParentID }

// IsRoot reports whether the area is a province
func (a *Area) IsRoot() bool {
	return a.ParentID == 0
}

// NewArea creates an area below parent. A nil parent creates a province.
func NewArea(name string, parent *Area) (*Area, error) {
	a := &Area{}
	if err := a.Rename(name); err != nil {
		return nil, err
	}
	if err := a.MoveTo(parent); err != nil {
		return nil, err
	}
	return a, nil
}

// Rename sets a non-blank name
func (a *Area) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.InvalidInput("Area name cannot be empty")
	}
	if len([]rune(name)) > 50 {
		return shared.InvalidInput("Area name cannot exceed 50 characters")
	}
	a.AreaName = name
	return nil
}

// MoveTo re-parents the area and derives its level from the parent
func (a *Area) MoveTo(parent *Area) error {
	if parent == nil {
		a.ParentID = 0
		a.Level = LevelProvince
		return nil
	}
	if a.AreaID != 0 && parent.AreaID == a.AreaID {
		return shared.InvalidInput("Area cannot be its own parent")
	}
	if parent.Level >= MaxLevel {
		return shared.InvalidInput("Towns cannot have child areas")
	}
	a.ParentID = parent.AreaID
	a.Level = parent.Level + 1
	return nil
}

// BuildTree nests flat areas under their parents in the Areas field
func BuildTree(areas []Area) []Area {
	return shared.BuildForest(areas,
		func(p *Area, c Area) { p.Areas = append(p.Areas, c) },
		func(a, b Area) bool { return a.AreaID < b.AreaID },
	)
}

// AreaRepository defines persistence for areas
type AreaRepository interface {
	shared.CrudRepository[Area]
	FindByParentID(ctx context.Context, parentID int64) ([]Area, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Area, error)
	// Move writes a re-parented area and shifts the level of the given
	// descendants by levelDelta, atomically
	Move(ctx context.Context, area *Area, descendantIDs []int64, levelDelta int) error
	// DeleteTree removes the area and every descendant
	DeleteTree(ctx context.Context, id int64) (int64, error)
}
