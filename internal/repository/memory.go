package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eatoes/back-office/internal/models"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// InMemoryMenuRepository implements MenuRepository with in-memory storage.
// It mirrors the Mongo implementation's contract so services and handlers
// can be exercised without a database.
type InMemoryMenuRepository struct {
	mu    sync.RWMutex
	items []models.MenuItem
}

// NewInMemoryMenuRepository creates an empty in-memory menu repository
func NewInMemoryMenuRepository() *InMemoryMenuRepository {
	return &InMemoryMenuRepository{}
}

func (r *InMemoryMenuRepository) List(ctx context.Context, category models.Category) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := []models.MenuItem{}
	// Walk backwards so equal timestamps still come out newest-insert-first
	for i := len(r.items) - 1; i >= 0; i-- {
		if category != "" && r.items[i].Category != category {
			continue
		}
		items = append(items, r.items[i])
	}
	sortNewestFirst(items)
	return items, nil
}

func (r *InMemoryMenuRepository) Search(ctx context.Context, query string) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := []models.MenuItem{}
	for i := len(r.items) - 1; i >= 0; i-- {
		if matchesQuery(&r.items[i], query) {
			items = append(items, r.items[i])
		}
	}
	sortNewestFirst(items)
	return items, nil
}

func matchesQuery(item *models.MenuItem, query string) bool {
	if containsFold(item.Name, query) {
		return true
	}
	for _, ing := range item.Ingredients {
		if containsFold(ing, query) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func sortNewestFirst(items []models.MenuItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func (r *InMemoryMenuRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.items {
		if r.items[i].ID == id {
			item := r.items[i]
			return &item, nil
		}
	}
	return nil, ErrMenuItemNotFound
}

func (r *InMemoryMenuRepository) FindByName(ctx context.Context, name string) (*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.items {
		if strings.EqualFold(r.items[i].Name, name) {
			item := r.items[i]
			return &item, nil
		}
	}
	return nil, ErrMenuItemNotFound
}

func (r *InMemoryMenuRepository) Insert(ctx context.Context, item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	r.items = append(r.items, *item)
	return nil
}

func (r *InMemoryMenuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items[i] = *item
			return nil
		}
	}
	return ErrMenuItemNotFound
}

func (r *InMemoryMenuRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrMenuItemNotFound
}

func (r *InMemoryMenuRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *InMemoryMenuRepository) CountAvailable(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for i := range r.items {
		if r.items[i].IsAvailable {
			n++
		}
	}
	return n, nil
}

// InMemoryOrderRepository implements OrderRepository with in-memory storage.
// It holds a reference to the menu repository to perform the top-sellers join.
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []models.Order
	menu   *InMemoryMenuRepository
}

// NewInMemoryOrderRepository creates an empty in-memory order repository
func NewInMemoryOrderRepository(menu *InMemoryMenuRepository) *InMemoryOrderRepository {
	return &InMemoryOrderRepository{menu: menu}
}

func (r *InMemoryOrderRepository) Insert(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	r.orders = append(r.orders, *order)
	return nil
}

func (r *InMemoryOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			order := r.orders[i]
			return &order, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (r *InMemoryOrderRepository) List(ctx context.Context, status models.Status, page, pageSize int) ([]models.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []models.Order{}
	for i := len(r.orders) - 1; i >= 0; i-- {
		if status != "" && r.orders[i].Status != status {
			continue
		}
		matched = append(matched, r.orders[i])
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []models.Order{}, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *InMemoryOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			r.orders[i].UpdatedAt = nowUTC()
			order := r.orders[i]
			return &order, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (r *InMemoryOrderRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}

func (r *InMemoryOrderRepository) RevenueExcluding(ctx context.Context, status models.Status) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total float64
	for i := range r.orders {
		if r.orders[i].Status == status {
			continue
		}
		total += r.orders[i].TotalAmount
	}
	return total, nil
}

func (r *InMemoryOrderRepository) StatusCounts(ctx context.Context) ([]models.StatusCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byStatus := map[models.Status]int64{}
	for i := range r.orders {
		byStatus[r.orders[i].Status]++
	}

	counts := []models.StatusCount{}
	for _, status := range models.Statuses() {
		if n, ok := byStatus[status]; ok {
			counts = append(counts, models.StatusCount{Status: status, Count: n})
		}
	}
	return counts, nil
}

func (r *InMemoryOrderRepository) TopSellers(ctx context.Context, limit int) ([]models.TopSeller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type group struct {
		quantity int
		revenue  float64
	}
	groups := map[primitive.ObjectID]*group{}
	order := []primitive.ObjectID{} // first-seen order for stable ties

	for i := range r.orders {
		if r.orders[i].Status == models.StatusCancelled {
			continue
		}
		for _, line := range r.orders[i].Items {
			g, ok := groups[line.MenuItemID]
			if !ok {
				g = &group{}
				groups[line.MenuItemID] = g
				order = append(order, line.MenuItemID)
			}
			g.quantity += line.Quantity
			g.revenue += line.PriceAtOrder * float64(line.Quantity)
		}
	}

	sellers := []models.TopSeller{}
	for _, id := range order {
		item, err := r.menu.GetByID(ctx, id)
		if err != nil {
			// Deleted menu items have nothing to join against
			continue
		}
		g := groups[id]
		sellers = append(sellers, models.TopSeller{
			Name:          item.Name,
			Category:      item.Category,
			Price:         item.Price,
			TotalQuantity: g.quantity,
			TotalRevenue:  models.Round2(g.revenue),
		})
	}

	sort.SliceStable(sellers, func(i, j int) bool {
		return sellers[i].TotalQuantity > sellers[j].TotalQuantity
	})
	if len(sellers) > limit {
		sellers = sellers[:limit]
	}
	return sellers, nil
}
