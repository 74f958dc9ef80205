package persistence

import (
	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/delivery"
	"github.com/Darkingtail/mall4r/internal/domain/identity"
	"github.com/Darkingtail/mall4r/internal/domain/marketing"
	"github.com/Darkingtail/mall4r/internal/domain/member"
	"github.com/Darkingtail/mall4r/internal/domain/region"
	"github.com/Darkingtail/mall4r/internal/domain/trade"
)

// Models lists every persisted record type
func Models() []interface{} {
	return []interface{}{
		&region.Area{},
		&delivery.PickAddr{},
		&delivery.Transport{},
		&delivery.Transfee{},
		&delivery.TransfeeFree{},
		&marketing.HotSearch{},
		&marketing.IndexImg{},
		&marketing.Notice{},
		&member.Member{},
		&member.UserAddr{},
		&trade.Order{},
		&trade.OrderItem{},
		&trade.UserAddrOrder{},
		&catalog.Category{},
		&catalog.Brand{},
		&catalog.ProdProp{},
		&catalog.ProdPropValue{},
		&catalog.ProdTag{},
		&catalog.ProdComm{},
		&catalog.Product{},
		&identity.SysUser{},
		&identity.UserRole{},
		&identity.SysRole{},
		&identity.RoleMenu{},
		&identity.SysMenu{},
	}
}
