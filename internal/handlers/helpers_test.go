package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/eatoes/back-office/internal/models"
	"github.com/eatoes/back-office/internal/repository"
	"github.com/eatoes/back-office/internal/service"
	"github.com/eatoes/back-office/pkg/logger"
)

// testServer wires the full API surface over in-memory repositories
type testServer struct {
	router    *chi.Mux
	menuSvc   *service.MenuService
	orderSvc  *service.OrderService
	orderRepo *repository.InMemoryOrderRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	menuRepo := repository.NewInMemoryMenuRepository()
	orderRepo := repository.NewInMemoryOrderRepository(menuRepo)
	log := logger.New("error")

	menuSvc := service.NewMenuService(menuRepo)
	orderSvc := service.NewOrderService(orderRepo, menuRepo)
	analyticsSvc := service.NewAnalyticsService(orderRepo, menuRepo)

	menuHandler := NewMenuHandler(menuSvc, log)
	orderHandler := NewOrderHandler(orderSvc, log)
	analyticsHandler := NewAnalyticsHandler(analyticsSvc, log)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/menu", func(r chi.Router) {
			r.Get("/", menuHandler.ListItems)
			r.Get("/search", menuHandler.SearchItems)
			r.Post("/", menuHandler.CreateItem)
			r.Put("/{id}", menuHandler.UpdateItem)
			r.Delete("/{id}", menuHandler.DeleteItem)
			r.Patch("/{id}/availability", menuHandler.ToggleAvailability)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderHandler.ListOrders)
			r.Get("/{id}", orderHandler.GetOrder)
			r.Post("/", orderHandler.PlaceOrder)
			r.Patch("/{id}/status", orderHandler.UpdateStatus)
		})
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/summary", analyticsHandler.Summary)
			r.Get("/top-sellers", analyticsHandler.TopSellers)
		})
	})

	return &testServer{
		router:    r,
		menuSvc:   menuSvc,
		orderSvc:  orderSvc,
		orderRepo: orderRepo,
	}
}

func (ts *testServer) request(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var response map[string]string
	decodeBody(t, w, &response)
	return response["error"]
}

func seedMenuItem(t *testing.T, ts *testServer, name string, price float64) *models.MenuItem {
	t.Helper()
	item, err := ts.menuSvc.Create(context.Background(), models.CreateMenuItemRequest{
		Name:     name,
		Category: models.CategoryMainCourse,
		Price:    &price,
	})
	if err != nil {
		t.Fatalf("failed to seed menu item %q: %v", name, err)
	}
	return item
}
