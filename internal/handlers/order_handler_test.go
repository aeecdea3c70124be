package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eatoes/back-office/internal/models"
)

func TestPlaceOrder(t *testing.T) {
	ts := newTestServer(t)
	tea := seedMenuItem(t, ts, "Tea", 3.00)

	body := fmt.Sprintf(`{"customerName":"Alice","items":[{"menuItemId":%q,"quantity":2}],"tableNumber":4}`, tea.ID.Hex())
	w := ts.request(t, http.MethodPost, "/api/orders", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	decodeBody(t, w, &order)

	if order.TotalAmount != 6.00 {
		t.Errorf("expected total 6.00, got %v", order.TotalAmount)
	}
	if order.Status != models.StatusPending {
		t.Errorf("expected status Pending, got %s", order.Status)
	}
	if order.TableNumber == nil || *order.TableNumber != 4 {
		t.Errorf("expected table number 4, got %v", order.TableNumber)
	}
	if len(order.Items) != 1 || order.Items[0].MenuItem == nil || order.Items[0].MenuItem.Name != "Tea" {
		t.Errorf("expected resolved line for Tea, got %+v", order.Items)
	}
}

func TestPlaceOrder_UnavailableItem(t *testing.T) {
	ts := newTestServer(t)
	item := seedMenuItem(t, ts, "Beef Wellington", 32.00)
	if _, err := ts.menuSvc.ToggleAvailability(context.Background(), item.ID, false); err != nil {
		t.Fatalf("failed to toggle availability: %v", err)
	}

	body := fmt.Sprintf(`{"customerName":"Alice","items":[{"menuItemId":%q,"quantity":1}]}`, item.ID.Hex())
	w := ts.request(t, http.MethodPost, "/api/orders", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != `"Beef Wellington" is currently unavailable.` {
		t.Errorf("unexpected error message: %s", msg)
	}

	// No partial order was created
	count, err := ts.orderRepo.Count(context.Background())
	if err != nil {
		t.Fatalf("failed to count orders: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 orders after failed placement, got %d", count)
	}
}

func TestPlaceOrder_UnknownItem(t *testing.T) {
	ts := newTestServer(t)

	missing := primitive.NewObjectID().Hex()
	body := fmt.Sprintf(`{"customerName":"Alice","items":[{"menuItemId":%q,"quantity":1}]}`, missing)
	w := ts.request(t, http.MethodPost, "/api/orders", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != fmt.Sprintf("Menu item %s not found.", missing) {
		t.Errorf("unexpected error message: %s", msg)
	}
}

func TestGetOrder(t *testing.T) {
	ts := newTestServer(t)
	tea := seedMenuItem(t, ts, "Tea", 3.00)

	placed, err := ts.orderSvc.Place(context.Background(), models.PlaceOrderRequest{
		CustomerName: "Alice",
		Items:        []models.PlaceOrderLine{{MenuItemID: tea.ID.Hex(), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("failed to place order: %v", err)
	}

	w := ts.request(t, http.MethodGet, "/api/orders/"+placed.ID.Hex(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var order models.Order
	decodeBody(t, w, &order)
	if order.ID != placed.ID {
		t.Errorf("expected order %s, got %s", placed.ID.Hex(), order.ID.Hex())
	}
}

func TestGetOrder_Errors(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodGet, "/api/orders/not-a-valid-id", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for malformed id, got %d", w.Code)
	}

	w = ts.request(t, http.MethodGet, "/api/orders/"+primitive.NewObjectID().Hex(), "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for unknown id, got %d", w.Code)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	ts := newTestServer(t)
	tea := seedMenuItem(t, ts, "Tea", 3.00)

	placed, err := ts.orderSvc.Place(context.Background(), models.PlaceOrderRequest{
		CustomerName: "Alice",
		Items:        []models.PlaceOrderLine{{MenuItemID: tea.ID.Hex(), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("failed to place order: %v", err)
	}

	w := ts.request(t, http.MethodPatch, "/api/orders/"+placed.ID.Hex()+"/status", `{"status":"Delivered"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var order models.Order
	decodeBody(t, w, &order)
	if order.Status != models.StatusDelivered {
		t.Errorf("expected status Delivered, got %s", order.Status)
	}

	w = ts.request(t, http.MethodPatch, "/api/orders/"+placed.ID.Hex()+"/status", `{"status":"Eaten"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for invalid status, got %d", w.Code)
	}
}

func TestListOrders(t *testing.T) {
	ts := newTestServer(t)
	tea := seedMenuItem(t, ts, "Tea", 3.00)

	for i := 0; i < 3; i++ {
		if _, err := ts.orderSvc.Place(context.Background(), models.PlaceOrderRequest{
			CustomerName: "Alice",
			Items:        []models.PlaceOrderLine{{MenuItemID: tea.ID.Hex(), Quantity: 1}},
		}); err != nil {
			t.Fatalf("failed to place order: %v", err)
		}
	}

	w := ts.request(t, http.MethodGet, "/api/orders?page=1&pageSize=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var page models.OrderPage
	decodeBody(t, w, &page)

	if len(page.Orders) != 2 {
		t.Errorf("expected 2 orders on page 1, got %d", len(page.Orders))
	}
	if page.Pagination.Total != 3 {
		t.Errorf("expected total 3, got %d", page.Pagination.Total)
	}
	if page.Pagination.TotalPages != 2 {
		t.Errorf("expected 2 total pages, got %d", page.Pagination.TotalPages)
	}
	if page.Pagination.Page != 1 || page.Pagination.PageSize != 2 {
		t.Errorf("unexpected pagination metadata: %+v", page.Pagination)
	}

	// Status filter
	w = ts.request(t, http.MethodGet, "/api/orders?status=Cancelled", "")
	decodeBody(t, w, &page)
	if len(page.Orders) != 0 {
		t.Errorf("expected no cancelled orders, got %d", len(page.Orders))
	}
}
