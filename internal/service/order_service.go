package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eatoes/back-office/internal/models"
	"github.com/eatoes/back-office/internal/repository"
)

const defaultPageSize = 10

// OrderService handles order placement, lookup and the status workflow
type OrderService struct {
	orders repository.OrderRepository
	menu   repository.MenuRepository
}

// NewOrderService creates a new order service
func NewOrderService(orders repository.OrderRepository, menu repository.MenuRepository) *OrderService {
	return &OrderService{orders: orders, menu: menu}
}

// Place validates and materializes a new order. All lines are resolved
// and checked before anything is written, so a failing line leaves no
// partial order behind. Each line snapshots the catalog price at call
// time; the total is the rounded sum of the line extensions.
//
// The availability check and the write are not wrapped in a transaction:
// a concurrent catalog edit can slip between them. There is no stock
// counter to corrupt, so the order is accepted on the prices it saw.
func (s *OrderService) Place(ctx context.Context, req models.PlaceOrderRequest) (*models.Order, error) {
	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" {
		return nil, validationf("Customer name is required")
	}
	if len(req.Items) == 0 {
		return nil, validationf("Order must contain at least one item")
	}
	if req.TableNumber != nil && *req.TableNumber <= 0 {
		return nil, validationf("Table number must be a positive integer")
	}

	var total float64
	lines := make([]models.OrderLine, 0, len(req.Items))
	for _, reqLine := range req.Items {
		if reqLine.Quantity < 1 {
			return nil, validationf("Quantity must be at least 1")
		}

		id, err := primitive.ObjectIDFromHex(reqLine.MenuItemID)
		if err != nil {
			return nil, validationf("Menu item %s not found.", reqLine.MenuItemID)
		}

		item, err := s.menu.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrMenuItemNotFound) {
				return nil, validationf("Menu item %s not found.", reqLine.MenuItemID)
			}
			return nil, err
		}
		if !item.IsAvailable {
			return nil, validationf("%q is currently unavailable.", item.Name)
		}

		lines = append(lines, models.OrderLine{
			MenuItemID:   item.ID,
			Quantity:     reqLine.Quantity,
			PriceAtOrder: item.Price,
		})
		total += item.Price * float64(reqLine.Quantity)
	}

	now := nowUTC()
	order := &models.Order{
		CustomerName: customerName,
		Items:        lines,
		TotalAmount:  models.Round2(total),
		Status:       models.StatusPending,
		TableNumber:  req.TableNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	if err := s.resolveLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Get returns a single order with its catalog references resolved
func (s *OrderService) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.resolveLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns one page of orders newest-first with pagination metadata.
// A status of "All" or empty means no filter.
func (s *OrderService) List(ctx context.Context, status string, page, pageSize int) (*models.OrderPage, error) {
	if status == models.StatusAll {
		status = ""
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	orders, total, err := s.orders.List(ctx, models.Status(status), page, pageSize)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if err := s.resolveLines(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}

	return &models.OrderPage{
		Orders: orders,
		Pagination: models.Pagination{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		},
	}, nil
}

// UpdateStatus moves an order to any of the enumerated statuses. No
// transition graph is enforced; callers needing stricter rules layer
// them on top.
func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	st := models.Status(status)
	if !st.IsValid() {
		return nil, validationf("Invalid order status")
	}

	order, err := s.orders.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}
	if err := s.resolveLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// resolveLines attaches denormalized catalog details to each line. The
// reference is weak: lines whose menu item was deleted are left
// unresolved rather than failing the read.
func (s *OrderService) resolveLines(ctx context.Context, order *models.Order) error {
	for i := range order.Items {
		item, err := s.menu.GetByID(ctx, order.Items[i].MenuItemID)
		if err != nil {
			if errors.Is(err, repository.ErrMenuItemNotFound) {
				continue
			}
			return err
		}
		order.Items[i].MenuItem = &models.MenuItemRef{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Category,
			Price:    item.Price,
		}
	}
	return nil
}
