package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/kirana/internal/models"
	"github.com/example/kirana/internal/orders"
)

// stubStore implements orders.Store in memory.
type stubStore struct {
	set       []models.Order
	updated   *models.Order
	updateErr error
}

func (s *stubStore) Create(o *models.Order) error {
	o.ID = uuid.New()
	s.set = append(s.set, *o)
	return nil
}

func (s *stubStore) Get(id uuid.UUID) (*models.Order, error) {
	for i := range s.set {
		if s.set[i].ID == id {
			cp := s.set[i]
			return &cp, nil
		}
	}
	return nil, orders.ErrNotFound
}

func (s *stubStore) Update(o *models.Order, expected time.Time) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	cp := *o
	s.updated = &cp
	return nil
}

func (s *stubStore) List(q orders.Query) ([]models.Order, error) {
	return append([]models.Order(nil), s.set...), nil
}

func adminOrder(name, status string, total float64, updatedAgo time.Duration) models.Order {
	o := models.Order{
		CustomerName: name,
		Status:       status,
		TotalAmount:  total,
	}
	o.ID = uuid.New()
	o.CreatedAt = time.Now().Add(-updatedAgo)
	o.UpdatedAt = time.Now().Add(-updatedAgo)
	return o
}

type orderListResponse struct {
	Success bool           `json:"success"`
	Data    []models.Order `json:"data"`
}

func performRequest(t *testing.T, app *fiber.App, method, target string, body []byte) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func TestListAllOrdersOverdueFilterWins(t *testing.T) {
	store := &stubStore{set: []models.Order{
		adminOrder("Asha Rao", models.StatusPending, 500, 72*time.Hour),
		adminOrder("Vikram Joshi", models.StatusPending, 900, 2*time.Hour),
		adminOrder("Meera Iyer", models.StatusDelivered, 1200, 240*time.Hour),
	}}

	app := fiber.New()
	h := NewAdminHandler(store, nil)
	app.Get("/admin/orders", h.ListAllOrders)

	// search and status would exclude the overdue pending order, but the
	// overdue filter disables both
	resp, payload := performRequest(t, app, http.MethodGet,
		"/admin/orders?overdue=pending&search=meera&status=delivered", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out orderListResponse
	require.NoError(t, json.Unmarshal(payload, &out))
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Asha Rao", out.Data[0].CustomerName)
}

func TestListAllOrdersSearchAndStatus(t *testing.T) {
	store := &stubStore{set: []models.Order{
		adminOrder("Asha Rao", models.StatusPending, 500, time.Hour),
		adminOrder("Asha Kulkarni", models.StatusCancelled, 350, time.Hour),
	}}

	app := fiber.New()
	h := NewAdminHandler(store, nil)
	app.Get("/admin/orders", h.ListAllOrders)

	resp, payload := performRequest(t, app, http.MethodGet,
		"/admin/orders?search=asha&status=cancelled", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out orderListResponse
	require.NoError(t, json.Unmarshal(payload, &out))
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Asha Kulkarni", out.Data[0].CustomerName)
}

func TestListAllOrdersRejectsBadOverdueFilter(t *testing.T) {
	app := fiber.New()
	h := NewAdminHandler(&stubStore{}, nil)
	app.Get("/admin/orders", h.ListAllOrders)

	resp, _ := performRequest(t, app, http.MethodGet, "/admin/orders?overdue=misc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateOrderStatusHappyPath(t *testing.T) {
	order := adminOrder("Dev Patel", models.StatusPending, 788, time.Hour)
	store := &stubStore{set: []models.Order{order}}

	app := fiber.New()
	h := NewAdminHandler(store, nil)
	app.Put("/admin/orders/:id/status", h.UpdateOrderStatus)

	body := []byte(`{"status":"processing"}`)
	resp, _ := performRequest(t, app, http.MethodPut,
		fmt.Sprintf("/admin/orders/%s/status", order.ID), body)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, store.updated)
	assert.Equal(t, models.StatusProcessing, store.updated.Status)
	assert.True(t, store.updated.UpdatedAt.After(order.UpdatedAt))
}

func TestUpdateOrderStatusIllegalEdge(t *testing.T) {
	order := adminOrder("Dev Patel", models.StatusDelivered, 1000, time.Hour)
	store := &stubStore{set: []models.Order{order}}

	app := fiber.New()
	h := NewAdminHandler(store, nil)
	app.Put("/admin/orders/:id/status", h.UpdateOrderStatus)

	body := []byte(`{"status":"pending"}`)
	resp, _ := performRequest(t, app, http.MethodPut,
		fmt.Sprintf("/admin/orders/%s/status", order.ID), body)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Nil(t, store.updated)
}

func TestUpdateOrderStatusConflict(t *testing.T) {
	order := adminOrder("Dev Patel", models.StatusPending, 500, time.Hour)
	store := &stubStore{set: []models.Order{order}, updateErr: orders.ErrConflict}

	app := fiber.New()
	h := NewAdminHandler(store, nil)
	app.Put("/admin/orders/:id/status", h.UpdateOrderStatus)

	body := []byte(`{"status":"cancelled"}`)
	resp, _ := performRequest(t, app, http.MethodPut,
		fmt.Sprintf("/admin/orders/%s/status", order.ID), body)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	app := fiber.New()
	h := NewAdminHandler(&stubStore{}, nil)
	app.Put("/admin/orders/:id/status", h.UpdateOrderStatus)

	body := []byte(`{"status":"processing"}`)
	resp, _ := performRequest(t, app, http.MethodPut,
		fmt.Sprintf("/admin/orders/%s/status", uuid.New()), body)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRevenueChartByProduct(t *testing.T) {
	order := adminOrder("Asha Rao", models.StatusDelivered, 600, time.Hour)
	order.Items = []models.OrderItem{
		{ProductName: "Masala Tea", Quantity: 2, UnitPrice: "150.00"},
		{ProductName: "Jaggery", Quantity: 2, UnitPrice: "100.00"},
	}
	store := &stubStore{set: []models.Order{order}}

	app := fiber.New()
	h := NewAdminHandler(store, nil)
	app.Get("/admin/revenue", h.RevenueChart)

	resp, payload := performRequest(t, app, http.MethodGet, "/admin/revenue?by=product", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Data struct {
			Buckets []struct {
				Label   string  `json:"label"`
				Revenue float64 `json:"revenue"`
			} `json:"buckets"`
			TotalRevenue float64 `json:"totalRevenue"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &out))
	require.Len(t, out.Data.Buckets, 2)
	assert.Equal(t, "Masala Tea", out.Data.Buckets[0].Label)
	assert.Equal(t, 300.0, out.Data.Buckets[0].Revenue)
	assert.Equal(t, 500.0, out.Data.TotalRevenue)
}

func TestRevenueChartRejectsUnknownGranularity(t *testing.T) {
	app := fiber.New()
	h := NewAdminHandler(&stubStore{}, nil)
	app.Get("/admin/revenue", h.RevenueChart)

	resp, _ := performRequest(t, app, http.MethodGet, "/admin/revenue?granularity=decade", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
