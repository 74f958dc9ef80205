package handler

import (
	deliveryapp "github.com/Darkingtail/mall4r/internal/application/delivery"
	"github.com/Darkingtail/mall4r/internal/domain/delivery"
	"github.com/gin-gonic/gin"
)

// PickAddrHandler handles /shop/pickAddr
type PickAddrHandler struct {
	BaseHandler
	pickAddrService *deliveryapp.PickAddrService
}

// NewPickAddrHandler creates a new PickAddrHandler
func NewPickAddrHandler(pickAddrService *deliveryapp.PickAddrService) *PickAddrHandler {
	return &PickAddrHandler{pickAddrService: pickAddrService}
}

// Page handles GET /shop/pickAddr/page
func (h *PickAddrHandler) Page(c *gin.Context) {
	page, err := h.pickAddrService.Page(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// GetByID handles GET /shop/pickAddr/info/:id
func (h *PickAddrHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	addr, err := h.pickAddrService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addr)
}

// Create handles POST /shop/pickAddr
func (h *PickAddrHandler) Create(c *gin.Context) {
	var req delivery.PickAddr
	if !h.bindJSON(c, &req) {
		return
	}
	addr, err := h.pickAddrService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, addr)
}

// Update handles PUT /shop/pickAddr
func (h *PickAddrHandler) Update(c *gin.Context) {
	var req delivery.PickAddr
	if !h.bindJSON(c, &req) {
		return
	}
	addr, err := h.pickAddrService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addr)
}

// Delete handles DELETE /shop/pickAddr/:id
func (h *PickAddrHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.pickAddrService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// DeleteBatch handles DELETE /shop/pickAddr with a JSON id array
func (h *PickAddrHandler) DeleteBatch(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	if err := h.pickAddrService.DeleteBatch(c.Request.Context(), ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// TransportHandler handles /shop/transport
type TransportHandler struct {
	BaseHandler
	transportService *deliveryapp.TransportService
}

// NewTransportHandler creates a new TransportHandler
func NewTransportHandler(transportService *deliveryapp.TransportService) *TransportHandler {
	return &TransportHandler{transportService: transportService}
}

// Page handles GET /shop/transport/page
func (h *TransportHandler) Page(c *gin.Context) {
	page, err := h.transportService.Page(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// List handles GET /shop/transport/list
func (h *TransportHandler) List(c *gin.Context) {
	list, err := h.transportService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// GetByID handles GET /shop/transport/info/:id, fee rows included
func (h *TransportHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.transportService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Create handles POST /shop/transport
func (h *TransportHandler) Create(c *gin.Context) {
	var req delivery.Transport
	if !h.bindJSON(c, &req) {
		return
	}
	t, err := h.transportService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, t)
}

// Update handles PUT /shop/transport
func (h *TransportHandler) Update(c *gin.Context) {
	var req delivery.Transport
	if !h.bindJSON(c, &req) {
		return
	}
	t, err := h.transportService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Delete handles DELETE /shop/transport/:id
func (h *TransportHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.transportService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// DeleteBatch handles DELETE /shop/transport with a JSON id array
func (h *TransportHandler) DeleteBatch(c *gin.Context) {
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}
	if err := h.transportService.DeleteBatch(c.Request.Context(), ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// Fee handles GET /shop/transport/fee?transportId&cityId&count&amount
func (h *TransportHandler) Fee(c *gin.Context) {
	var q deliveryapp.FeeQuote
	if err := c.ShouldBindQuery(&q); err != nil {
		h.handleBindError(c, err)
		return
	}
	fee, err := h.transportService.Fee(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"fee": fee})
}
