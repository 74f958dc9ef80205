package adminclient

import (
	"context"
	"sync"

	"github.com/Darkingtail/mall4r/internal/domain/delivery"
	"github.com/Darkingtail/mall4r/internal/domain/identity"
	"github.com/Darkingtail/mall4r/internal/domain/region"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PickAddrModal edits a pick-up point with its province, city and
// district selectors
type PickAddrModal struct {
	*Modal[delivery.PickAddr]
	areas *Resource[region.Area]

	mu        sync.Mutex
	provinces []region.Area
	cities    []region.Area
	districts []region.Area
}

// NewPickAddrModal creates the pick-up point form
func NewPickAddrModal(api *API, logger *zap.Logger) *PickAddrModal {
	return &PickAddrModal{
		Modal: NewModal[delivery.PickAddr](api.PickAddr, PickAddrRules, nil, logger),
		areas: api.Area,
	}
}

// Open shows the form. The provinces always load; on update the stored
// province's cities and city's districts load alongside them. The form
// stays closed when any of them fails.
func (m *PickAddrModal) Open(ctx context.Context, mode Mode, id int64) error {
	if err := m.Modal.Open(ctx, mode, id); err != nil {
		return err
	}
	form := m.Form()

	var provinces, cities, districts []region.Area
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		provinces, err = m.areas.ListByPid(gctx, 0)
		return err
	})
	if mode == ModeUpdate && form.ProvinceID != 0 {
		g.Go(func() error {
			var err error
			cities, err = m.areas.ListByPid(gctx, form.ProvinceID)
			return err
		})
	}
	if mode == ModeUpdate && form.CityID != 0 {
		g.Go(func() error {
			var err error
			districts, err = m.areas.ListByPid(gctx, form.CityID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		m.fail("failed to load areas", err)
		m.Close()
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.provinces, m.cities, m.districts = provinces, cities, districts
	return nil
}

// Options returns the loaded province, city and district lists
func (m *PickAddrModal) Options() (provinces, cities, districts []region.Area) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.provinces, m.cities, m.districts
}

// SelectProvince picks a province, clears the city and district and loads
// the province's cities
func (m *PickAddrModal) SelectProvince(ctx context.Context, id int64) error {
	cities, err := m.areas.ListByPid(ctx, id)
	if err != nil {
		m.fail("failed to load cities", err)
		return err
	}
	m.mu.Lock()
	name := areaName(m.provinces, id)
	m.cities, m.districts = cities, nil
	m.mu.Unlock()

	m.Edit(func(f *delivery.PickAddr) {
		f.ProvinceID, f.Province = id, name
		f.CityID, f.City = 0, ""
		f.AreaID, f.Area = 0, ""
	})
	return nil
}

// SelectCity picks a city, clears the district and loads the city's
// districts
func (m *PickAddrModal) SelectCity(ctx context.Context, id int64) error {
	districts, err := m.areas.ListByPid(ctx, id)
	if err != nil {
		m.fail("failed to load districts", err)
		return err
	}
	m.mu.Lock()
	name := areaName(m.cities, id)
	m.districts = districts
	m.mu.Unlock()

	m.Edit(func(f *delivery.PickAddr) {
		f.CityID, f.City = id, name
		f.AreaID, f.Area = 0, ""
	})
	return nil
}

// SelectDistrict picks a district. Districts are leaves, nothing is fetched.
func (m *PickAddrModal) SelectDistrict(id int64) {
	m.mu.Lock()
	name := areaName(m.districts, id)
	m.mu.Unlock()

	m.Edit(func(f *delivery.PickAddr) {
		f.AreaID, f.Area = id, name
	})
}

func areaName(list []region.Area, id int64) string {
	for _, a := range list {
		if a.AreaID == id {
			return a.AreaName
		}
	}
	return ""
}

// sysUserStore reads operators as records and writes them as forms
type sysUserStore struct {
	api *SysUserAPI
}

func (s sysUserStore) GetByID(ctx context.Context, id int64) (*SysUserForm, error) {
	u, err := s.api.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f := sysUserForm(u)
	return &f, nil
}

func (s sysUserStore) Add(ctx context.Context, form SysUserForm) (*SysUserForm, error) {
	return s.save(ctx, form)
}

func (s sysUserStore) Update(ctx context.Context, form SysUserForm) (*SysUserForm, error) {
	return s.save(ctx, form)
}

func (s sysUserStore) save(ctx context.Context, form SysUserForm) (*SysUserForm, error) {
	u, err := s.api.Save(ctx, form)
	if err != nil {
		return nil, err
	}
	f := sysUserForm(u)
	return &f, nil
}

func sysUserForm(u *identity.SysUser) SysUserForm {
	return SysUserForm{
		UserID:     u.UserID,
		Username:   u.Username,
		Email:      u.Email,
		Mobile:     u.Mobile,
		Status:     u.Status,
		RoleIDList: u.RoleIDList,
	}
}

// SysUserModal edits an operator and offers the role list
type SysUserModal struct {
	*Modal[SysUserForm]
	roles *Resource[identity.SysRole]

	mu       sync.Mutex
	roleList []identity.SysRole
}

// NewSysUserModal creates the operator form; new operators start enabled
func NewSysUserModal(api *API, logger *zap.Logger) *SysUserModal {
	return &SysUserModal{
		Modal: NewModal[SysUserForm](sysUserStore{api: api.SysUser}, nil, func() SysUserForm {
			return SysUserForm{Status: 1}
		}, logger),
		roles: api.SysRole,
	}
}

// Open loads the role list and the operator at the same time. The form
// stays closed when either fails.
func (m *SysUserModal) Open(ctx context.Context, mode Mode, id int64) error {
	var roles []identity.SysRole
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roles, err = m.roles.List(gctx)
		if err != nil {
			m.fail("failed to load roles", err)
		}
		return err
	})
	g.Go(func() error {
		return m.Modal.Open(gctx, mode, id)
	})
	if err := g.Wait(); err != nil {
		// the record may have loaded while the roles did not
		m.Close()
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.roleList = roles
	return nil
}

// Roles returns the loaded role list
func (m *SysUserModal) Roles() []identity.SysRole {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roleList
}
