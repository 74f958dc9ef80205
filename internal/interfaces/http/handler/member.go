package handler

import (
	"net/http"

	memberapp "github.com/Darkingtail/mall4r/internal/application/member"
	"github.com/Darkingtail/mall4r/internal/domain/member"
	"github.com/Darkingtail/mall4r/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// MemberHandler handles /admin/user, the storefront members
type MemberHandler struct {
	BaseHandler
	memberService *memberapp.MemberService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(memberService *memberapp.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// Page handles GET /admin/user/page
func (h *MemberHandler) Page(c *gin.Context) {
	page, err := h.memberService.Page(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// GetByID handles GET /admin/user/info/:userId
func (h *MemberHandler) GetByID(c *gin.Context) {
	m, err := h.memberService.GetByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}

// Update handles PUT /admin/user
func (h *MemberHandler) Update(c *gin.Context) {
	var req member.Member
	if !h.bindJSON(c, &req) {
		return
	}
	m, err := h.memberService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}

// DeleteBatch handles DELETE /admin/user with a JSON array of member ids
func (h *MemberHandler) DeleteBatch(c *gin.Context) {
	var ids []string
	if !h.bindJSON(c, &ids) {
		return
	}
	if len(ids) == 0 {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "No ids given")
		return
	}
	if err := h.memberService.DeleteBatch(c.Request.Context(), ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// UserAddrHandler handles /user/addr
type UserAddrHandler struct {
	BaseHandler
	userAddrService *memberapp.UserAddrService
}

// NewUserAddrHandler creates a new UserAddrHandler
func NewUserAddrHandler(userAddrService *memberapp.UserAddrService) *UserAddrHandler {
	return &UserAddrHandler{userAddrService: userAddrService}
}

// Page handles GET /user/addr/page
func (h *UserAddrHandler) Page(c *gin.Context) {
	page, err := h.userAddrService.Page(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// GetByID handles GET /user/addr/info/:id
func (h *UserAddrHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.userAddrService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, a)
}

// Create handles POST /user/addr
func (h *UserAddrHandler) Create(c *gin.Context) {
	var req member.UserAddr
	if !h.bindJSON(c, &req) {
		return
	}
	a, err := h.userAddrService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, a)
}

// Update handles PUT /user/addr
func (h *UserAddrHandler) Update(c *gin.Context) {
	var req member.UserAddr
	if !h.bindJSON(c, &req) {
		return
	}
	a, err := h.userAddrService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, a)
}

// Delete handles DELETE /user/addr/:id
func (h *UserAddrHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.userAddrService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}
