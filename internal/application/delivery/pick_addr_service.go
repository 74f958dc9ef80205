// Package delivery manages pick-up points and shipping fee templates.
package delivery

import (
	"context"

	"github.com/Darkingtail/mall4r/internal/domain/delivery"
	"github.com/Darkingtail/mall4r/internal/domain/region"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"go.uber.org/zap"
)

// PickAddrService handles pick-up point operations
type PickAddrService struct {
	repo   delivery.PickAddrRepository
	areas  region.AreaRepository
	logger *zap.Logger
}

// NewPickAddrService creates a new PickAddrService
func NewPickAddrService(repo delivery.PickAddrRepository, areas region.AreaRepository, logger *zap.Logger) *PickAddrService {
	return &PickAddrService{repo: repo, areas: areas, logger: logger}
}

// Page returns one page of pick-up points
func (s *PickAddrService) Page(ctx context.Context, filter shared.Filter) (shared.Paginated[delivery.PickAddr], error) {
	return s.repo.FindPage(ctx, filter)
}

// GetByID returns one pick-up point
func (s *PickAddrService) GetByID(ctx context.Context, id int64) (*delivery.PickAddr, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates the region chain and stores a pick-up point
func (s *PickAddrService) Create(ctx context.Context, p delivery.PickAddr) (*delivery.PickAddr, error) {
	p.AddrID = 0
	if err := s.prepare(ctx, &p); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	s.logger.Info("Pick-up point created", zap.Int64("addr_id", p.AddrID))
	return &p, nil
}

// Update replaces a pick-up point
func (s *PickAddrService) Update(ctx context.Context, p delivery.PickAddr) (*delivery.PickAddr, error) {
	if err := s.prepare(ctx, &p); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes one pick-up point
func (s *PickAddrService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// DeleteBatch removes pick-up points
func (s *PickAddrService) DeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.DeleteBatch(ctx, ids)
}

// prepare validates p and fills the region names from the area table
func (s *PickAddrService) prepare(ctx context.Context, p *delivery.PickAddr) error {
	if err := p.Validate(); err != nil {
		return err
	}
	found, err := s.areas.FindByIDs(ctx, []int64{p.ProvinceID, p.CityID, p.AreaID})
	if err != nil {
		return err
	}
	byID := make(map[int64]region.Area, len(found))
	for _, a := range found {
		byID[a.AreaID] = a
	}
	province, ok1 := byID[p.ProvinceID]
	city, ok2 := byID[p.CityID]
	district, ok3 := byID[p.AreaID]
	if !ok1 || !ok2 || !ok3 {
		return shared.NotFound("Selected region")
	}
	return p.ApplyRegion(province, city, district)
}
