package handler

import (
	identityapp "github.com/Darkingtail/mall4r/internal/application/identity"
	"github.com/Darkingtail/mall4r/internal/domain/identity"
	"github.com/gin-gonic/gin"
)

// SysUserHandler handles /sys/user, the back-office operators
type SysUserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewSysUserHandler creates a new SysUserHandler
func NewSysUserHandler(userService *identityapp.UserService) *SysUserHandler {
	return &SysUserHandler{userService: userService}
}

// Page handles GET /sys/user/page
func (h *SysUserHandler) Page(c *gin.Context) {
	page, err := h.userService.Page(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// GetByID handles GET /sys/user/info/:id
func (h *SysUserHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	u, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, u)
}

// Current handles GET /sys/user/info, the caller's own record
func (h *SysUserHandler) Current(c *gin.Context) {
	u, err := h.userService.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, u)
}

// Create handles POST /sys/user
func (h *SysUserHandler) Create(c *gin.Context) {
	var req identityapp.UserInput
	if !h.bindJSON(c, &req) {
		return
	}
	u, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, u)
}

// Update handles PUT /sys/user
func (h *SysUserHandler) Update(c *gin.Context) {
	var req identityapp.UserInput
	if !h.bindJSON(c, &req) {
		return
	}
	u, err := h.userService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, u)
}

// ChangePassword handles POST /sys/user/password
func (h *SysUserHandler) ChangePassword(c *gin.Context) {
	var req identityapp.PasswordInput
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.userService.ChangePassword(c.Request.Context(), currentUserID(c), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// DeleteBatch handles DELETE /sys/user
func (h *SysUserHandler) DeleteBatch(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	if err := h.userService.DeleteBatch(c.Request.Context(), ids, currentUserID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// SysRoleHandler handles /sys/role
type SysRoleHandler struct {
	BaseHandler
	roleService *identityapp.RoleService
}

// NewSysRoleHandler creates a new SysRoleHandler
func NewSysRoleHandler(roleService *identityapp.RoleService) *SysRoleHandler {
	return &SysRoleHandler{roleService: roleService}
}

// List handles GET /sys/role/list
func (h *SysRoleHandler) List(c *gin.Context) {
	list, err := h.roleService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// Page handles GET /sys/role/page
func (h *SysRoleHandler) Page(c *gin.Context) {
	page, err := h.roleService.Page(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// GetByID handles GET /sys/role/info/:id
func (h *SysRoleHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	r, err := h.roleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// Create handles POST /sys/role
func (h *SysRoleHandler) Create(c *gin.Context) {
	var req identity.SysRole
	if !h.bindJSON(c, &req) {
		return
	}
	r, err := h.roleService.Create(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, r)
}

// Update handles PUT /sys/role
func (h *SysRoleHandler) Update(c *gin.Context) {
	var req identity.SysRole
	if !h.bindJSON(c, &req) {
		return
	}
	r, err := h.roleService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// DeleteBatch handles DELETE /sys/role
func (h *SysRoleHandler) DeleteBatch(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	if err := h.roleService.DeleteBatch(c.Request.Context(), ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// SysMenuHandler handles /sys/menu
type SysMenuHandler struct {
	BaseHandler
	menuService *identityapp.MenuService
}

// NewSysMenuHandler creates a new SysMenuHandler
func NewSysMenuHandler(menuService *identityapp.MenuService) *SysMenuHandler {
	return &SysMenuHandler{menuService: menuService}
}

// Nav handles GET /sys/menu/nav
func (h *SysMenuHandler) Nav(c *gin.Context) {
	nav, err := h.menuService.Nav(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nav)
}

// List handles GET /sys/menu/list
func (h *SysMenuHandler) List(c *gin.Context) {
	list, err := h.menuService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// Tree handles GET /sys/menu/table
func (h *SysMenuHandler) Tree(c *gin.Context) {
	tree, err := h.menuService.Tree(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tree)
}

// GetByID handles GET /sys/menu/info/:id
func (h *SysMenuHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	m, err := h.menuService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}

// Create handles POST /sys/menu
func (h *SysMenuHandler) Create(c *gin.Context) {
	var req identity.SysMenu
	if !h.bindJSON(c, &req) {
		return
	}
	m, err := h.menuService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, m)
}

// Update handles PUT /sys/menu
func (h *SysMenuHandler) Update(c *gin.Context) {
	var req identity.SysMenu
	if !h.bindJSON(c, &req) {
		return
	}
	m, err := h.menuService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}

// Delete handles DELETE /sys/menu/:id
func (h *SysMenuHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.menuService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}
