package handler

import (
	"strconv"

	regionapp "github.com/Darkingtail/mall4r/internal/application/region"
	"github.com/Darkingtail/mall4r/internal/domain/region"
	"github.com/gin-gonic/gin"
)

// AreaHandler handles /admin/area
type AreaHandler struct {
	BaseHandler
	areaService *regionapp.AreaService
}

// NewAreaHandler creates a new AreaHandler
func NewAreaHandler(areaService *regionapp.AreaService) *AreaHandler {
	return &AreaHandler{areaService: areaService}
}

// Page handles GET /admin/area/page
func (h *AreaHandler) Page(c *gin.Context) {
	page, err := h.areaService.Page(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// List handles GET /admin/area/list
func (h *AreaHandler) List(c *gin.Context) {
	areas, err := h.areaService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, areas)
}

// ListByPid handles GET /admin/area/listByPid?pid=. A missing pid lists the provinces.
func (h *AreaHandler) ListByPid(c *gin.Context) {
	var pid int64
	if raw := c.Query("pid"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			h.BadRequest(c, "Invalid pid")
			return
		}
		pid = parsed
	}
	areas, err := h.areaService.ListByPid(c.Request.Context(), pid)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, areas)
}

// Tree handles GET /admin/area/tree
func (h *AreaHandler) Tree(c *gin.Context) {
	tree, err := h.areaService.Tree(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tree)
}

// GetByID handles GET /admin/area/info/:id
func (h *AreaHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	area, err := h.areaService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, area)
}

// Create handles POST /admin/area
func (h *AreaHandler) Create(c *gin.Context) {
	var req region.Area
	if !h.bindJSON(c, &req) {
		return
	}
	area, err := h.areaService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, area)
}

// Update handles PUT /admin/area
func (h *AreaHandler) Update(c *gin.Context) {
	var req region.Area
	if !h.bindJSON(c, &req) {
		return
	}
	area, err := h.areaService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, area)
}

// Delete handles DELETE /admin/area/:id, removing the whole subtree
func (h *AreaHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.areaService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}
