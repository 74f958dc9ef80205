package handler

import (
	marketingapp "github.com/Darkingtail/mall4r/internal/application/marketing"
	"github.com/Darkingtail/mall4r/internal/domain/marketing"
	"github.com/gin-gonic/gin"
)

// HotSearchHandler handles /admin/hotSearch
type HotSearchHandler struct {
	BaseHandler
	hotSearchService *marketingapp.HotSearchService
}

// NewHotSearchHandler creates a new HotSearchHandler
func NewHotSearchHandler(hotSearchService *marketingapp.HotSearchService) *HotSearchHandler {
	return &HotSearchHandler{hotSearchService: hotSearchService}
}

// Page handles GET /admin/hotSearch/page
func (h *HotSearchHandler) Page(c *gin.Context) {
	page, err := h.hotSearchService.Page(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// GetByID handles GET /admin/hotSearch/info/:id
func (h *HotSearchHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	hs, err := h.hotSearchService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, hs)
}

// Create handles POST /admin/hotSearch
func (h *HotSearchHandler) Create(c *gin.Context) {
	var req marketing.HotSearch
	if !h.bindJSON(c, &req) {
		return
	}
	hs, err := h.hotSearchService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, hs)
}

// Update handles PUT /admin/hotSearch
func (h *HotSearchHandler) Update(c *gin.Context) {
	var req marketing.HotSearch
	if !h.bindJSON(c, &req) {
		return
	}
	hs, err := h.hotSearchService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, hs)
}

// DeleteBatch handles DELETE /admin/hotSearch
func (h *HotSearchHandler) DeleteBatch(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	if err := h.hotSearchService.DeleteBatch(c.Request.Context(), ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// IndexImgHandler handles /admin/indexImg
type IndexImgHandler struct {
	BaseHandler
	indexImgService *marketingapp.IndexImgService
}

// NewIndexImgHandler creates a new IndexImgHandler
func NewIndexImgHandler(indexImgService *marketingapp.IndexImgService) *IndexImgHandler {
	return &IndexImgHandler{indexImgService: indexImgService}
}

// Page handles GET /admin/indexImg/page
func (h *IndexImgHandler) Page(c *gin.Context) {
	page, err := h.indexImgService.Page(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// GetByID handles GET /admin/indexImg/info/:id. Product banners carry prodName.
func (h *IndexImgHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	img, err := h.indexImgService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, img)
}

// Create handles POST /admin/indexImg
func (h *IndexImgHandler) Create(c *gin.Context) {
	var req marketing.IndexImg
	if !h.bindJSON(c, &req) {
		return
	}
	img, err := h.indexImgService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, img)
}

// Update handles PUT /admin/indexImg
func (h *IndexImgHandler) Update(c *gin.Context) {
	var req marketing.IndexImg
	if !h.bindJSON(c, &req) {
		return
	}
	img, err := h.indexImgService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, img)
}

// DeleteBatch handles DELETE /admin/indexImg
func (h *IndexImgHandler) DeleteBatch(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	if err := h.indexImgService.DeleteBatch(c.Request.Context(), ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// NoticeHandler handles /shop/notice
type NoticeHandler struct {
	BaseHandler
	noticeService *marketingapp.NoticeService
}

// NewNoticeHandler creates a new NoticeHandler
func NewNoticeHandler(noticeService *marketingapp.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

// Page handles GET /shop/notice/page
func (h *NoticeHandler) Page(c *gin.Context) {
	page, err := h.noticeService.Page(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// GetByID handles GET /shop/notice/info/:id
func (h *NoticeHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	n, err := h.noticeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, n)
}

// Create handles POST /shop/notice
func (h *NoticeHandler) Create(c *gin.Context) {
	var req marketing.Notice
	if !h.bindJSON(c, &req) {
		return
	}
	n, err := h.noticeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, n)
}

// Update handles PUT /shop/notice
func (h *NoticeHandler) Update(c *gin.Context) {
	var req marketing.Notice
	if !h.bindJSON(c, &req) {
		return
	}
	n, err := h.noticeService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, n)
}

// Delete handles DELETE /shop/notice/:id
func (h *NoticeHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.noticeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}
