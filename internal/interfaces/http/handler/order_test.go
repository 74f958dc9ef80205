package handler

import (
	"net/http"
	"testing"

	tradeapp "github.com/Darkingtail/mall4r/internal/application/trade"
	"github.com/Darkingtail/mall4r/internal/domain/trade"
	"github.com/Darkingtail/mall4r/internal/infrastructure/persistence"
	"github.com/Darkingtail/mall4r/internal/interfaces/http/dto"
	"github.com/Darkingtail/mall4r/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type deliveryCounter struct{ n int }

func (d *deliveryCounter) OrderDelivered() { d.n++ }

func TestOrderHandler_Delivery(t *testing.T) {
	engine, db := newTestEngine(t)
	counter := &deliveryCounter{}
	h := NewOrderHandler(tradeapp.NewOrderService(persistence.NewGormOrderRepository(db), counter, zap.NewNop()))
	engine.GET("/order/order/orderInfo/:orderNumber", h.Info)
	engine.PUT("/order/order/delivery", h.Delivery)
	engine.GET("/order/delivery/list", h.Couriers)

	require.NoError(t, db.Create(&trade.Order{
		OrderNumber: "202601010001",
		UserID:      "u-1",
		Total:       decimal.RequireFromString("99.00"),
		Status:      trade.OrderToShip,
	}).Error)
	require.NoError(t, db.Create(&trade.Order{
		OrderNumber: "202601010002",
		UserID:      "u-1",
		Total:       decimal.RequireFromString("10.00"),
		Status:      trade.OrderUnpaid,
	}).Error)

	t.Run("lists couriers", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{Path: "/order/delivery/list"})
		env := testutil.DecodeEnvelope[[]trade.Courier](t, w)
		assert.Len(t, env.Data, len(trade.Couriers()))
	})

	t.Run("ships an order waiting for shipment", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{
			Method: http.MethodPut,
			Path:   "/order/order/delivery",
			Body:   tradeapp.DeliveryInput{OrderNumber: "202601010001", DvyID: 1, DvyFlowID: "SF100"},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		o := testutil.DecodeEnvelope[trade.Order](t, w).Data
		assert.Equal(t, trade.OrderShipped, o.Status)
		assert.Equal(t, "SF100", o.DvyFlowID)
		assert.Equal(t, 1, counter.n)
	})

	t.Run("rejects an order in another state", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{
			Method: http.MethodPut,
			Path:   "/order/order/delivery",
			Body:   tradeapp.DeliveryInput{OrderNumber: "202601010002", DvyID: 1, DvyFlowID: "SF101"},
		})
		testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState)
	})

	t.Run("rejects shipping twice", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{
			Method: http.MethodPut,
			Path:   "/order/order/delivery",
			Body:   tradeapp.DeliveryInput{OrderNumber: "202601010001", DvyID: 2, DvyFlowID: "ZT1"},
		})
		testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState)
	})

	t.Run("requires the tracking number", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{
			Method: http.MethodPut,
			Path:   "/order/order/delivery",
			Body:   map[string]any{"orderNumber": "202601010002", "dvyId": 1},
		})
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})

	t.Run("unknown order", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{Path: "/order/order/orderInfo/nope"})
		testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})
}
