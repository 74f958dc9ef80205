package handler

import (
	tradeapp "github.com/Darkingtail/mall4r/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles /order/order and /order/delivery
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Page handles GET /order/order/page. startTime and endTime use
// "2006-01-02 15:04:05" and bound createTime.
func (h *OrderHandler) Page(c *gin.Context) {
	page, err := h.orderService.Page(c.Request.Context(), pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// Info handles GET /order/order/orderInfo/:orderNumber
func (h *OrderHandler) Info(c *gin.Context) {
	o, err := h.orderService.Info(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// Delivery handles PUT /order/order/delivery
func (h *OrderHandler) Delivery(c *gin.Context) {
	var req tradeapp.DeliveryInput
	if !h.bindJSON(c, &req) {
		return
	}
	o, err := h.orderService.Delivery(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// Couriers handles GET /order/delivery/list
func (h *OrderHandler) Couriers(c *gin.Context) {
	h.Success(c, h.orderService.Couriers())
}
