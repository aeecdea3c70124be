package models

import "math"

// StatusCount is one entry of the order status breakdown
type StatusCount struct {
	Status Status `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

// Summary holds the aggregate figures for the analytics dashboard.
// TotalRevenue sums totalAmount over all non-Cancelled orders.
type Summary struct {
	TotalOrders     int64         `json:"totalOrders"`
	TotalMenuItems  int64         `json:"totalMenuItems"`
	AvailableItems  int64         `json:"availableItems"`
	TotalRevenue    float64       `json:"totalRevenue"`
	StatusBreakdown []StatusCount `json:"statusBreakdown"`
}

// TopSeller is one row of the best-sellers ranking, joined against the
// catalog for display. Field names match the aggregation projection.
type TopSeller struct {
	Name          string   `bson:"name" json:"name"`
	Category      Category `bson:"category" json:"category"`
	Price         float64  `bson:"price" json:"price"`
	TotalQuantity int      `bson:"totalQuantity" json:"totalQuantity"`
	TotalRevenue  float64  `bson:"totalRevenue" json:"totalRevenue"`
}

// Round2 rounds a currency amount to two decimal places, half away from zero
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
