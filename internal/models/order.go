package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the fixed set of order statuses
type Status string

const (
	StatusPending   Status = "Pending"
	StatusPreparing Status = "Preparing"
	StatusReady     Status = "Ready"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

// StatusAll is the filter sentinel meaning "no status filter"
const StatusAll = "All"

// Statuses lists all valid order statuses
func Statuses() []Status {
	return []Status{StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled}
}

// IsValid reports whether s is one of the enumerated statuses
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderLine is a single line of an order. MenuItemID is a weak reference:
// the menu item may be edited or deleted later without invalidating the
// order, which is why the price is snapshotted into PriceAtOrder.
// MenuItem carries the resolved catalog details for display and is filled
// at read time, never persisted.
type OrderLine struct {
	MenuItemID   primitive.ObjectID `bson:"menu_item_id" json:"menuItemId"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	PriceAtOrder float64            `bson:"price_at_order" json:"priceAtOrder"`
	MenuItem     *MenuItemRef       `bson:"-" json:"menuItem,omitempty"`
}

// MenuItemRef is the denormalized view of a referenced menu item
type MenuItemRef struct {
	ID       primitive.ObjectID `json:"id"`
	Name     string             `json:"name"`
	Category Category           `json:"category"`
	Price    float64            `json:"price"`
}

// Order represents a placed customer order. TotalAmount is computed once
// at creation from the line snapshots and never recomputed.
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerName string             `bson:"customer_name" json:"customerName"`
	Items        []OrderLine        `bson:"items" json:"items"`
	TotalAmount  float64            `bson:"total_amount" json:"totalAmount"`
	Status       Status             `bson:"status" json:"status"`
	TableNumber  *int               `bson:"table_number" json:"tableNumber"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// PlaceOrderRequest represents an incoming order request
type PlaceOrderRequest struct {
	CustomerName string           `json:"customerName"`
	Items        []PlaceOrderLine `json:"items"`
	TableNumber  *int             `json:"tableNumber,omitempty"`
}

// PlaceOrderLine is a requested (menu item, quantity) pair
type PlaceOrderLine struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

// Pagination describes one page of a paginated listing
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// OrderPage is one page of orders plus pagination metadata
type OrderPage struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}
