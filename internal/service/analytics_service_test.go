package service

import (
	"context"
	"testing"

	"github.com/eatoes/back-office/internal/models"
	"github.com/eatoes/back-office/internal/repository"
)

type analyticsFixture struct {
	menuSvc      *MenuService
	orderSvc     *OrderService
	analyticsSvc *AnalyticsService
}

func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()

	menuRepo := repository.NewInMemoryMenuRepository()
	orderRepo := repository.NewInMemoryOrderRepository(menuRepo)

	return &analyticsFixture{
		menuSvc:      NewMenuService(menuRepo),
		orderSvc:     NewOrderService(orderRepo, menuRepo),
		analyticsSvc: NewAnalyticsService(orderRepo, menuRepo),
	}
}

func (f *analyticsFixture) createItem(t *testing.T, name string, price float64) *models.MenuItem {
	t.Helper()
	return mustCreate(t, f.menuSvc, models.CreateMenuItemRequest{
		Name:     name,
		Category: models.CategoryMainCourse,
		Price:    floatPtr(price),
	})
}

func (f *analyticsFixture) placeOrder(t *testing.T, item *models.MenuItem, quantity int) *models.Order {
	t.Helper()
	order, err := f.orderSvc.Place(context.Background(), models.PlaceOrderRequest{
		CustomerName: "Alice",
		Items:        []models.PlaceOrderLine{{MenuItemID: item.ID.Hex(), Quantity: quantity}},
	})
	if err != nil {
		t.Fatalf("Place() unexpected error: %v", err)
	}
	return order
}

func (f *analyticsFixture) setStatus(t *testing.T, order *models.Order, status models.Status) {
	t.Helper()
	if _, err := f.orderSvc.UpdateStatus(context.Background(), order.ID, string(status)); err != nil {
		t.Fatalf("UpdateStatus(%s) unexpected error: %v", status, err)
	}
}

func TestAnalyticsService_Summary_ExcludesCancelledRevenue(t *testing.T) {
	f := newAnalyticsFixture(t)

	kept := f.createItem(t, "Steak", 100.00)
	dropped := f.createItem(t, "Lobster", 50.00)

	f.placeOrder(t, kept, 1) // 100.00, stays Pending
	cancelled := f.placeOrder(t, dropped, 1)
	f.setStatus(t, cancelled, models.StatusCancelled)

	summary, err := f.analyticsSvc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() unexpected error: %v", err)
	}

	if summary.TotalOrders != 2 {
		t.Errorf("Summary() totalOrders = %d, want 2", summary.TotalOrders)
	}
	if summary.TotalRevenue != 100.00 {
		t.Errorf("Summary() totalRevenue = %v, want 100.00", summary.TotalRevenue)
	}
	if summary.TotalMenuItems != 2 {
		t.Errorf("Summary() totalMenuItems = %d, want 2", summary.TotalMenuItems)
	}
	if summary.AvailableItems != 2 {
		t.Errorf("Summary() availableItems = %d, want 2", summary.AvailableItems)
	}

	byStatus := map[models.Status]int64{}
	for _, sc := range summary.StatusBreakdown {
		byStatus[sc.Status] = sc.Count
	}
	if byStatus[models.StatusPending] != 1 || byStatus[models.StatusCancelled] != 1 {
		t.Errorf("Summary() statusBreakdown = %v, want 1 Pending and 1 Cancelled", summary.StatusBreakdown)
	}
}

func TestAnalyticsService_TopSellers_RanksByQuantityNotRevenue(t *testing.T) {
	f := newAnalyticsFixture(t)

	// A sells fewer units at a higher price than B
	itemA := f.createItem(t, "Item A", 10.00) // qty 3, revenue 30
	itemB := f.createItem(t, "Item B", 5.00)  // qty 5, revenue 25

	f.placeOrder(t, itemA, 3)
	f.placeOrder(t, itemB, 5)

	sellers, err := f.analyticsSvc.TopSellers(context.Background(), 5)
	if err != nil {
		t.Fatalf("TopSellers() unexpected error: %v", err)
	}
	if len(sellers) != 2 {
		t.Fatalf("TopSellers() returned %d entries, want 2", len(sellers))
	}

	if sellers[0].Name != "Item B" || sellers[0].TotalQuantity != 5 || sellers[0].TotalRevenue != 25.00 {
		t.Errorf("TopSellers()[0] = %+v, want Item B qty 5 revenue 25.00", sellers[0])
	}
	if sellers[1].Name != "Item A" || sellers[1].TotalQuantity != 3 || sellers[1].TotalRevenue != 30.00 {
		t.Errorf("TopSellers()[1] = %+v, want Item A qty 3 revenue 30.00", sellers[1])
	}
}

func TestAnalyticsService_TopSellers_SkipsCancelledAndDeleted(t *testing.T) {
	f := newAnalyticsFixture(t)

	ordered := f.createItem(t, "Ordered", 10.00)
	cancelledItem := f.createItem(t, "Cancelled Only", 10.00)
	deletedItem := f.createItem(t, "Deleted Later", 10.00)

	f.placeOrder(t, ordered, 2)

	cancelled := f.placeOrder(t, cancelledItem, 9)
	f.setStatus(t, cancelled, models.StatusCancelled)

	f.placeOrder(t, deletedItem, 9)
	if err := f.menuSvc.Delete(context.Background(), deletedItem.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}

	sellers, err := f.analyticsSvc.TopSellers(context.Background(), 5)
	if err != nil {
		t.Fatalf("TopSellers() unexpected error: %v", err)
	}
	if len(sellers) != 1 {
		t.Fatalf("TopSellers() returned %d entries, want only the live ordered item", len(sellers))
	}
	if sellers[0].Name != "Ordered" {
		t.Errorf("TopSellers()[0].Name = %s, want Ordered", sellers[0].Name)
	}
}

func TestAnalyticsService_TopSellers_LimitAndDefault(t *testing.T) {
	f := newAnalyticsFixture(t)

	names := []string{"One", "Two", "Three", "Four", "Five", "Six", "Seven"}
	for i, name := range names {
		item := f.createItem(t, name, 5.00)
		f.placeOrder(t, item, i+1)
	}

	sellers, err := f.analyticsSvc.TopSellers(context.Background(), 0)
	if err != nil {
		t.Fatalf("TopSellers() unexpected error: %v", err)
	}
	if len(sellers) != 5 {
		t.Errorf("TopSellers(0) returned %d entries, want default limit 5", len(sellers))
	}

	sellers, err = f.analyticsSvc.TopSellers(context.Background(), 2)
	if err != nil {
		t.Fatalf("TopSellers() unexpected error: %v", err)
	}
	if len(sellers) != 2 {
		t.Fatalf("TopSellers(2) returned %d entries, want 2", len(sellers))
	}
	if sellers[0].Name != "Seven" || sellers[1].Name != "Six" {
		t.Errorf("TopSellers(2) = [%s %s], want [Seven Six]", sellers[0].Name, sellers[1].Name)
	}
}

func TestAnalyticsService_EndToEnd(t *testing.T) {
	f := newAnalyticsFixture(t)

	before, err := f.analyticsSvc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() unexpected error: %v", err)
	}

	tea := f.createItem(t, "Tea", 3.00)
	order := f.placeOrder(t, tea, 2)

	if order.TotalAmount != 6.00 {
		t.Errorf("order total = %v, want 6.00", order.TotalAmount)
	}
	if order.Status != models.StatusPending {
		t.Errorf("order status = %s, want Pending", order.Status)
	}

	f.setStatus(t, order, models.StatusDelivered)

	after, err := f.analyticsSvc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() unexpected error: %v", err)
	}

	if after.TotalOrders != before.TotalOrders+1 {
		t.Errorf("totalOrders = %d, want %d", after.TotalOrders, before.TotalOrders+1)
	}
	if after.TotalRevenue != before.TotalRevenue+6.00 {
		t.Errorf("totalRevenue = %v, want %v", after.TotalRevenue, before.TotalRevenue+6.00)
	}
}
