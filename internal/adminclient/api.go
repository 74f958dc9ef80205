package adminclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/delivery"
	"github.com/Darkingtail/mall4r/internal/domain/identity"
	"github.com/Darkingtail/mall4r/internal/domain/marketing"
	"github.com/Darkingtail/mall4r/internal/domain/member"
	"github.com/Darkingtail/mall4r/internal/domain/region"
	"github.com/Darkingtail/mall4r/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// Base paths of the back-office resources
const (
	AreaPath      = "/admin/area"
	PickAddrPath  = "/shop/pickAddr"
	TransportPath = "/shop/transport"
	HotSearchPath = "/admin/hotSearch"
	IndexImgPath  = "/admin/indexImg"
	NoticePath    = "/shop/notice"
	MemberPath    = "/admin/user"
	UserAddrPath  = "/user/addr"
	OrderPath     = "/order/order"
	CategoryPath  = "/prod/category"
	BrandPath     = "/admin/brand"
	SpecPath      = "/prod/spec"
	AttributePath = "/admin/attribute"
	ProdTagPath   = "/prod/prodTag"
	ProdCommPath  = "/prod/prodComm"
	ProductPath   = "/prod/prod"
	SysUserPath   = "/sys/user"
	SysRolePath   = "/sys/role"
	SysMenuPath   = "/sys/menu"
)

// API bundles one module per back-office resource
type API struct {
	Area      *Resource[region.Area]
	PickAddr  *Resource[delivery.PickAddr]
	Transport *TransportAPI
	HotSearch *Resource[marketing.HotSearch]
	IndexImg  *Resource[marketing.IndexImg]
	Notice    *Resource[marketing.Notice]
	Member    *MemberAPI
	UserAddr  *Resource[member.UserAddr]
	Order     *OrderAPI
	Category  *CategoryAPI
	Brand     *Resource[catalog.Brand]
	Spec      *Resource[catalog.ProdProp]
	Attribute *Resource[catalog.ProdProp]
	ProdTag   *ProdTagAPI
	ProdComm  *ProdCommAPI
	Product   *ProductAPI
	SysUser   *SysUserAPI
	SysRole   *Resource[identity.SysRole]
	SysMenu   *SysMenuAPI
}

// NewAPI creates every resource module on top of c
func NewAPI(c *Client) *API {
	return &API{
		Area:      NewResource[region.Area](c, AreaPath),
		PickAddr:  NewResource[delivery.PickAddr](c, PickAddrPath),
		Transport: &TransportAPI{Resource: NewResource[delivery.Transport](c, TransportPath)},
		HotSearch: NewResource[marketing.HotSearch](c, HotSearchPath),
		IndexImg:  NewResource[marketing.IndexImg](c, IndexImgPath),
		Notice:    NewResource[marketing.Notice](c, NoticePath),
		Member:    &MemberAPI{Resource: NewResource[member.Member](c, MemberPath)},
		UserAddr:  NewResource[member.UserAddr](c, UserAddrPath),
		Order:     &OrderAPI{Resource: NewResource[trade.Order](c, OrderPath)},
		Category:  &CategoryAPI{Resource: NewResource[catalog.Category](c, CategoryPath)},
		Brand:     NewResource[catalog.Brand](c, BrandPath),
		Spec:      NewResource[catalog.ProdProp](c, SpecPath),
		Attribute: NewResource[catalog.ProdProp](c, AttributePath),
		ProdTag:   &ProdTagAPI{Resource: NewResource[catalog.ProdTag](c, ProdTagPath)},
		ProdComm:  &ProdCommAPI{Resource: NewResource[catalog.ProdComm](c, ProdCommPath)},
		Product:   &ProductAPI{Resource: NewResource[catalog.Product](c, ProductPath)},
		SysUser:   &SysUserAPI{Resource: NewResource[identity.SysUser](c, SysUserPath)},
		SysRole:   NewResource[identity.SysRole](c, SysRolePath),
		SysMenu:   &SysMenuAPI{Resource: NewResource[identity.SysMenu](c, SysMenuPath)},
	}
}

// TransportAPI adds the freight estimate to the shipping templates
type TransportAPI struct {
	*Resource[delivery.Transport]
}

// FeeQuote asks for the freight of count pieces (or weight) worth amount
// shipped to cityID
type FeeQuote struct {
	TransportID int64           `json:"transportId"`
	CityID      int64           `json:"cityId"`
	Count       decimal.Decimal `json:"count"`
	Amount      decimal.Decimal `json:"amount"`
}

// Fee estimates the freight of a shipment
func (a *TransportAPI) Fee(ctx context.Context, q FeeQuote) (decimal.Decimal, error) {
	out, err := call[struct {
		Fee decimal.Decimal `json:"fee"`
	}](ctx, a.c, http.MethodGet, a.base+"/fee", EncodeQuery(q), nil)
	return out.Fee, err
}

// MemberAPI addresses members by their string user id
type MemberAPI struct {
	*Resource[member.Member]
}

// GetByUserID loads one member
func (a *MemberAPI) GetByUserID(ctx context.Context, userID string) (*member.Member, error) {
	return a.getByKey(ctx, userID)
}

// BatchDeleteUsers removes several members
func (a *MemberAPI) BatchDeleteUsers(ctx context.Context, userIDs []string) error {
	_, err := call[json.RawMessage](ctx, a.c, http.MethodDelete, a.base, nil, userIDs)
	return err
}

// OrderAPI exposes order lookup and shipping
type OrderAPI struct {
	*Resource[trade.Order]
}

// OrderFilter holds the order page filters. Status is a pointer because
// status 0 (unpaid) is a valid filter.
type OrderFilter struct {
	OrderNumber string    `json:"orderNumber"`
	Status      *int      `json:"status"`
	IsPayed     *int      `json:"isPayed"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// Info loads an order with its items and address
func (a *OrderAPI) Info(ctx context.Context, orderNumber string) (*trade.Order, error) {
	o, err := call[trade.Order](ctx, a.c, http.MethodGet, a.base+"/orderInfo/"+url.PathEscape(orderNumber), nil, nil)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// DeliveryRequest ships an order
type DeliveryRequest struct {
	OrderNumber string `json:"orderNumber" validate:"required"`
	DvyID       int64  `json:"dvyId" validate:"required"`
	DvyFlowID   string `json:"dvyFlowId" validate:"required"`
}

// Delivery ships an order waiting for shipment
func (a *OrderAPI) Delivery(ctx context.Context, req DeliveryRequest) (*trade.Order, error) {
	o, err := call[trade.Order](ctx, a.c, http.MethodPut, a.base+"/delivery", nil, req)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Couriers lists the delivery companies
func (a *OrderAPI) Couriers(ctx context.Context) ([]trade.Courier, error) {
	return call[[]trade.Courier](ctx, a.c, http.MethodGet, "/order/delivery/list", nil, nil)
}

// CategoryAPI exposes the category forest
type CategoryAPI struct {
	*Resource[catalog.Category]
}

// Tree loads every category as a forest
func (a *CategoryAPI) Tree(ctx context.Context) ([]catalog.Category, error) {
	return a.list(ctx, "/listCategory", nil)
}

// ListEnabled loads the enabled categories as a flat list
func (a *CategoryAPI) ListEnabled(ctx context.Context) ([]catalog.Category, error) {
	return a.list(ctx, "/listProdCategory", nil)
}

// ProdTagAPI exposes the enabled tag list
type ProdTagAPI struct {
	*Resource[catalog.ProdTag]
}

// ListEnabled loads the enabled tags
func (a *ProdTagAPI) ListEnabled(ctx context.Context) ([]catalog.ProdTag, error) {
	return a.list(ctx, "/listTagList", nil)
}

// ProdCommAPI answers product reviews
type ProdCommAPI struct {
	*Resource[catalog.ProdComm]
}

// ReplyRequest answers and moderates one review
type ReplyRequest struct {
	ProdCommID   int64  `json:"prodCommId" validate:"required"`
	ReplyContent string `json:"replyContent"`
	ReplySts     int    `json:"replySts"`
	Status       int    `json:"status" validate:"oneof=-1 0 1"`
}

// Reply stores the answer and the review decision
func (a *ProdCommAPI) Reply(ctx context.Context, req ReplyRequest) (*catalog.ProdComm, error) {
	v, err := call[catalog.ProdComm](ctx, a.c, http.MethodPut, a.base, nil, req)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ProductAPI toggles product sale status
type ProductAPI struct {
	*Resource[catalog.Product]
}

// SetStatus puts a product on or off sale
func (a *ProductAPI) SetStatus(ctx context.Context, prodID int64, status int) error {
	_, err := call[json.RawMessage](ctx, a.c, http.MethodPut, a.base+"/prodStatus", nil, map[string]any{
		"prodId": prodID,
		"status": status,
	})
	return err
}

// SysUserAPI manages operators. Operators are written through SysUserForm
// because the password only travels inbound.
type SysUserAPI struct {
	*Resource[identity.SysUser]
}

// SysUserForm is the create/update payload of an operator. An empty
// password on update keeps the stored one.
type SysUserForm struct {
	UserID     int64   `json:"userId"`
	Username   string  `json:"username" validate:"required,min=2,max=50"`
	Password   string  `json:"password" validate:"omitempty,min=6"`
	Email      string  `json:"email" validate:"omitempty,email"`
	Mobile     string  `json:"mobile" validate:"omitempty,len=11,numeric"`
	Status     int     `json:"status" validate:"oneof=0 1"`
	RoleIDList []int64 `json:"roleIdList"`
}

// Save creates the operator when UserID is 0 and updates it otherwise
func (a *SysUserAPI) Save(ctx context.Context, form SysUserForm) (*identity.SysUser, error) {
	method := http.MethodPut
	if form.UserID == 0 {
		method = http.MethodPost
	}
	u, err := call[identity.SysUser](ctx, a.c, method, a.base, nil, form)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Current loads the logged in operator
func (a *SysUserAPI) Current(ctx context.Context) (*identity.SysUser, error) {
	u, err := call[identity.SysUser](ctx, a.c, http.MethodGet, a.base+"/info", nil, nil)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ChangePassword changes the logged in operator's password
func (a *SysUserAPI) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := call[json.RawMessage](ctx, a.c, http.MethodPost, a.base+"/password", nil, map[string]string{
		"password":    oldPassword,
		"newPassword": newPassword,
	})
	return err
}

// SysMenuAPI loads the navigation
type SysMenuAPI struct {
	*Resource[identity.SysMenu]
}

// Nav loads the menu tree and permissions of the logged in operator
func (a *SysMenuAPI) Nav(ctx context.Context) (*identity.Nav, error) {
	nav, err := call[identity.Nav](ctx, a.c, http.MethodGet, a.base+"/nav", nil, nil)
	if err != nil {
		return nil, err
	}
	return &nav, nil
}

// Table loads every menu as a tree, buttons included
func (a *SysMenuAPI) Table(ctx context.Context) ([]identity.SysMenu, error) {
	return a.list(ctx, "/table", nil)
}

// page size of the record lists loaded into selectors
const selectorPageSize = 500

// ProductOptions loads products for selectors such as the carousel link
// picker
func (a *API) ProductOptions(ctx context.Context, name string) ([]catalog.Product, error) {
	page, err := a.Product.FetchPage(ctx, PageRequest{Current: 1, Size: selectorPageSize}, map[string]string{"prodName": name})
	if err != nil {
		return nil, err
	}
	return page.Records, nil
}
