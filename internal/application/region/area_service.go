// Package region manages the administrative area tree.
package region

import (
	"context"
	"errors"

	"github.com/Darkingtail/mall4r/internal/domain/region"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"go.uber.org/zap"
)

// AreaService handles area operations
type AreaService struct {
	repo   region.AreaRepository
	logger *zap.Logger
}

// NewAreaService creates a new AreaService
func NewAreaService(repo region.AreaRepository, logger *zap.Logger) *AreaService {
	return &AreaService{repo: repo, logger: logger}
}

// Page returns one page of areas
func (s *AreaService) Page(ctx context.Context, filter shared.Filter) (shared.Paginated[region.Area], error) {
	return s.repo.FindPage(ctx, filter)
}

// List returns every area
func (s *AreaService) List(ctx context.Context) ([]region.Area, error) {
	return s.repo.FindAll(ctx, shared.Filter{})
}

// ListByPid returns the direct children of pid. pid 0 lists the provinces.
func (s *AreaService) ListByPid(ctx context.Context, pid int64) ([]region.Area, error) {
	return s.repo.FindByParentID(ctx, pid)
}

// Tree returns every area linked into a forest
func (s *AreaService) Tree(ctx context.Context) ([]region.Area, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return region.BuildTree(all), nil
}

// GetByID returns one area
func (s *AreaService) GetByID(ctx context.Context, id int64) (*region.Area, error) {
	return s.repo.FindByID(ctx, id)
}

// Create adds an area. The level is derived from the parent; a level sent
// by the client is ignored.
func (s *AreaService) Create(ctx context.Context, in region.Area) (*region.Area, error) {
	parent, err := s.parent(ctx, in.ParentID)
	if err != nil {
		return nil, err
	}
	area, err := region.NewArea(in.AreaName, parent)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, area); err != nil {
		return nil, err
	}

	s.logger.Info("Area created",
		zap.Int64("area_id", area.AreaID),
		zap.Int64("parent_id", area.ParentID),
		zap.Int("level", area.Level))
	return area, nil
}

// Update renames an area and, when the parent changed, moves it together
// with its subtree. Every descendant's level shifts with the moved area.
func (s *AreaService) Update(ctx context.Context, in region.Area) (*region.Area, error) {
	area, err := s.repo.FindByID(ctx, in.AreaID)
	if err != nil {
		return nil, err
	}
	if err := area.Rename(in.AreaName); err != nil {
		return nil, err
	}

	if in.ParentID == area.ParentID {
		if err := s.repo.Update(ctx, area); err != nil {
			return nil, err
		}
		return area, nil
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	descendants := shared.DescendantIDs(all, area.AreaID)
	for _, id := range descendants {
		if id == in.ParentID {
			return nil, shared.InvalidInput("An area cannot be moved under its own descendant")
		}
	}
	parent, err := s.parent(ctx, in.ParentID)
	if err != nil {
		return nil, err
	}
	oldLevel := area.Level
	if err := area.MoveTo(parent); err != nil {
		return nil, err
	}
	delta := area.Level - oldLevel
	if deepest := deepestLevel(all, descendants, oldLevel); deepest+delta > region.MaxLevel {
		return nil, shared.InvalidInput("The move would place descendant areas below the town level")
	}

	if err := s.repo.Move(ctx, area, descendants, delta); err != nil {
		return nil, err
	}
	s.logger.Info("Area moved",
		zap.Int64("area_id", area.AreaID),
		zap.Int64("parent_id", area.ParentID),
		zap.Int("level", area.Level),
		zap.Int("descendants", len(descendants)))
	return area, nil
}

// deepestLevel returns the highest level among ids, or floor when ids is empty
func deepestLevel(all []region.Area, ids []int64, floor int) int {
	in := make(map[int64]bool, len(ids))
	for _, id := range ids {
		in[id] = true
	}
	deepest := floor
	for _, a := range all {
		if in[a.AreaID] && a.Level > deepest {
			deepest = a.Level
		}
	}
	return deepest
}

// Delete removes an area together with every descendant
func (s *AreaService) Delete(ctx context.Context, id int64) error {
	n, err := s.repo.DeleteTree(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return shared.NotFound("Area")
	}
	s.logger.Info("Area tree deleted", zap.Int64("area_id", id), zap.Int64("rows", n))
	return nil
}

func (s *AreaService) parent(ctx context.Context, id int64) (*region.Area, error) {
	if id == 0 {
		return nil, nil
	}
	parent, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Parent area")
		}
		return nil, err
	}
	return parent, nil
}
