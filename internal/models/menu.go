package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the fixed set of menu categories
type Category string

const (
	CategoryAppetizer  Category = "Appetizer"
	CategoryMainCourse Category = "Main Course"
	CategoryDessert    Category = "Dessert"
	CategoryBeverage   Category = "Beverage"
)

// CategoryAll is the filter sentinel meaning "no category filter"
const CategoryAll = "All"

// Categories lists all valid menu categories
func Categories() []Category {
	return []Category{CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage}
}

// IsValid reports whether c is one of the enumerated categories
func (c Category) IsValid() bool {
	switch c {
	case CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage:
		return true
	}
	return false
}

// MenuItem represents a sellable menu entry
type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Category    Category           `bson:"category" json:"category"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Ingredients []string           `bson:"ingredients" json:"ingredients"`
	IsAvailable bool               `bson:"is_available" json:"isAvailable"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CreateMenuItemRequest represents an incoming create request.
// Price is a pointer so a missing price can be told apart from a free item.
type CreateMenuItemRequest struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Ingredients []string `json:"ingredients"`
}

// UpdateMenuItemRequest represents a partial update; nil fields are left unchanged
type UpdateMenuItemRequest struct {
	Name        *string   `json:"name"`
	Category    *Category `json:"category"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Ingredients *[]string `json:"ingredients"`
	IsAvailable *bool     `json:"isAvailable"`
}
