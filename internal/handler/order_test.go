package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/ecommerce-api/internal/model"
)

func newOrderHandler() (*OrderHandler, *fakeOrderStore) {
	orders := newFakeOrderStore()
	// AMQPURL stays empty so status updates skip event publishing.
	return NewOrderHandler(testCfg(), orders, zap.NewNop()), orders
}

func TestGetOrders(t *testing.T) {
	h, orders := newOrderHandler()
	orders.add(&model.Order{BuyerID: 1, Status: "Not Process"})
	orders.add(&model.Order{BuyerID: 2, Status: "Shipped"})
	orders.add(&model.Order{BuyerID: 1, Status: "Processing"})

	c, rec := jsonCtx(t, http.MethodGet, "/api/v1/auth/orders", "")
	c.Set("user_id", uint64(1))
	require.NoError(t, h.GetOrders(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got), "bare array expected")
	assert.Len(t, got, 2)
}

func TestGetOrdersEmpty(t *testing.T) {
	h, _ := newOrderHandler()

	c, rec := jsonCtx(t, http.MethodGet, "/api/v1/auth/orders", "")
	c.Set("user_id", uint64(9))
	require.NoError(t, h.GetOrders(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetAllOrders(t *testing.T) {
	h, orders := newOrderHandler()
	orders.add(&model.Order{BuyerID: 1, Status: "Not Process"})
	orders.add(&model.Order{BuyerID: 2, Status: "Shipped"})

	c, rec := jsonCtx(t, http.MethodGet, "/api/v1/auth/all-orders", "")
	require.NoError(t, h.GetAllOrders(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Shipped", got[0]["status"], "newest first")
}

func TestOrderStatus(t *testing.T) {
	h, orders := newOrderHandler()
	o := orders.add(&model.Order{BuyerID: 1, Status: "Not Process"})

	c, rec := jsonCtx(t, http.MethodPut, "/", `{"status":"Shipped"}`)
	c.SetParamNames("orderId")
	c.SetParamValues("1")
	require.NoError(t, h.OrderStatus(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Shipped", o.Status)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Shipped", got["status"])
}

func TestOrderStatusNotFound(t *testing.T) {
	h, _ := newOrderHandler()

	c, rec := jsonCtx(t, http.MethodPut, "/", `{"status":"Shipped"}`)
	c.SetParamNames("orderId")
	c.SetParamValues("99")
	require.NoError(t, h.OrderStatus(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", decodeBody(t, rec)["message"])
}
