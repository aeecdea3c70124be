package service

import (
	"context"

	"github.com/eatoes/back-office/internal/models"
	"github.com/eatoes/back-office/internal/repository"
)

const defaultTopSellersLimit = 5

// AnalyticsService computes the dashboard rollups over both stores.
// All operations are read-only.
type AnalyticsService struct {
	orders repository.OrderRepository
	menu   repository.MenuRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(orders repository.OrderRepository, menu repository.MenuRepository) *AnalyticsService {
	return &AnalyticsService{orders: orders, menu: menu}
}

// Summary returns the aggregate counts and the revenue total. Revenue
// sums totalAmount over all orders except Cancelled ones and is rounded
// to two decimals at output.
func (s *AnalyticsService) Summary(ctx context.Context) (*models.Summary, error) {
	totalOrders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalMenuItems, err := s.menu.Count(ctx)
	if err != nil {
		return nil, err
	}

	availableItems, err := s.menu.CountAvailable(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.orders.RevenueExcluding(ctx, models.StatusCancelled)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.orders.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Summary{
		TotalOrders:     totalOrders,
		TotalMenuItems:  totalMenuItems,
		AvailableItems:  availableItems,
		TotalRevenue:    models.Round2(revenue),
		StatusBreakdown: breakdown,
	}, nil
}

// TopSellers returns the best-selling menu items ranked by quantity sold
// across non-Cancelled orders. Items deleted from the catalog after being
// ordered are excluded, since the join has nothing to attach.
func (s *AnalyticsService) TopSellers(ctx context.Context, limit int) ([]models.TopSeller, error) {
	if limit < 1 {
		limit = defaultTopSellersLimit
	}
	return s.orders.TopSellers(ctx, limit)
}
