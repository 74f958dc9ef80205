package persistence

import (
	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"gorm.io/gorm"
)

// Repositories bundles every repository of the back-office
type Repositories struct {
	Area      *GormAreaRepository
	PickAddr  *GormPickAddrRepository
	Transport *GormTransportRepository
	HotSearch *GormHotSearchRepository
	IndexImg  *GormIndexImgRepository
	Notice    *GormNoticeRepository
	Member    *GormMemberRepository
	UserAddr  *GormUserAddrRepository
	Order     *GormOrderRepository
	Category  *GormCategoryRepository
	Brand     *GormBrandRepository
	Spec      *GormProdPropRepository
	Attribute *GormProdPropRepository
	ProdTag   *GormProdTagRepository
	ProdComm  *GormProdCommRepository
	Product   *GormProductRepository
	SysUser   *GormSysUserRepository
	SysRole   *GormSysRoleRepository
	SysMenu   *GormSysMenuRepository
}

// NewRepositories creates every repository over db
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Area:      NewGormAreaRepository(db),
		PickAddr:  NewGormPickAddrRepository(db),
		Transport: NewGormTransportRepository(db),
		HotSearch: NewGormHotSearchRepository(db),
		IndexImg:  NewGormIndexImgRepository(db),
		Notice:    NewGormNoticeRepository(db),
		Member:    NewGormMemberRepository(db),
		UserAddr:  NewGormUserAddrRepository(db),
		Order:     NewGormOrderRepository(db),
		Category:  NewGormCategoryRepository(db),
		Brand:     NewGormBrandRepository(db),
		Spec:      NewGormProdPropRepository(db, catalog.PropRuleSpec),
		Attribute: NewGormProdPropRepository(db, catalog.PropRuleAttribute),
		ProdTag:   NewGormProdTagRepository(db),
		ProdComm:  NewGormProdCommRepository(db),
		Product:   NewGormProductRepository(db),
		SysUser:   NewGormSysUserRepository(db),
		SysRole:   NewGormSysRoleRepository(db),
		SysMenu:   NewGormSysMenuRepository(db),
	}
}
