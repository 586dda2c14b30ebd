package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop_system/internal/domain"
	"shop_system/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testServer) pay(token string, cart ...domain.Product) *httptest.ResponseRecorder {
	items := make([]map[string]any, len(cart))
	for i, p := range cart {
		items[i] = map[string]any{"id": p.ID, "price": p.Price}
	}
	return s.do(http.MethodPost, "/product/braintree/payment", token, map[string]any{
		"nonce": "fake-valid-nonce",
		"cart":  items,
	})
}

func TestBraintreeToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/product/braintree/token", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/product/braintree/token", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"clientToken":"client-token","success":true}`, w.Body.String())

	s.gateway.TokenErr = &payment.Error{Message: "Braintree gateway error"}
	w = s.do(http.MethodGet, "/product/braintree/token", s.userToken, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Braintree gateway error"}`, w.Body.String())

	s.gateway.TokenErr = errors.New("dial tcp: timeout")
	w = s.do(http.MethodGet, "/product/braintree/token", s.userToken, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
}

func TestBraintreePayment(t *testing.T) {
	s := newTestServer(t)
	cat := s.category("Books")
	a := s.product("Alpha", cat.ID, "100")
	b := s.product("Beta", cat.ID, "200")

	w := s.do(http.MethodPost, "/product/braintree/payment", s.userToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Nonce is empty", w.Body.String())

	w = s.do(http.MethodPost, "/product/braintree/payment", s.userToken, map[string]any{"cart": []any{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Nonce is empty", w.Body.String())

	w = s.do(http.MethodPost, "/product/braintree/payment", s.userToken, map[string]any{"nonce": "n"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cart is empty", w.Body.String())

	r := s.pay(s.userToken, a, b)
	require.Equal(t, http.StatusOK, r.Code, r.Body.String())
	assert.JSONEq(t, `{"ok":true}`, r.Body.String())
	require.Equal(t, 1, s.gateway.SaleCount())
	assert.Equal(t, "300", s.gateway.Sales[0].Amount.String())

	s.gateway.SaleErr = &payment.Error{Message: "Transaction error"}
	r = s.pay(s.userToken, a)
	assert.Equal(t, http.StatusInternalServerError, r.Code)
	assert.JSONEq(t, `{"message":"Transaction error"}`, r.Body.String())

	var n int64
	require.NoError(t, s.db.Model(&domain.Order{}).Count(&n).Error)
	assert.Equal(t, int64(1), n, "declined sale stores no order")
}

func TestOrderRoutes(t *testing.T) {
	s := newTestServer(t)
	cat := s.category("Books")
	a := s.product("Alpha", cat.ID, "100")
	require.Equal(t, http.StatusOK, s.pay(s.userToken, a).Code)

	w := s.do(http.MethodGet, "/auth/orders", s.adminToken, nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(http.MethodGet, "/auth/orders", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, jsonUnmarshal(w, &list))
	require.Len(t, list, 1)
	order := list[0]
	assert.Equal(t, "Not Process", order["status"])
	assert.Equal(t, "John Doe", order["buyer"].(map[string]any)["name"])
	assert.NotContains(t, order["buyer"], "password")
	products := order["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "Alpha", products[0].(map[string]any)["name"])

	w = s.do(http.MethodGet, "/auth/all-orders", s.userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodGet, "/auth/all-orders", s.adminToken, nil)
	require.NoError(t, jsonUnmarshal(w, &list))
	assert.Len(t, list, 1)

	id := uint(order["id"].(float64))
	path := fmt.Sprintf("/auth/order-status/%d", id)

	w = s.do(http.MethodPut, path, s.adminToken, map[string]string{"status": "Lost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/auth/order-status/999", s.adminToken, map[string]string{"status": "Shipped"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, path, s.userToken, map[string]string{"status": "Shipped"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, path, s.adminToken, map[string]string{"status": "Shipped"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Shipped", decode(t, w)["status"])
}
