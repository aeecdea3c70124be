package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eatoes/back-office/internal/models"
	"github.com/eatoes/back-office/internal/repository"
)

// MenuService handles business logic for the menu catalog
type MenuService struct {
	repo repository.MenuRepository
}

// NewMenuService creates a new menu service
func NewMenuService(repo repository.MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

// List returns menu items newest-first. A category of "All" or empty
// means no filter; unknown categories simply match nothing.
func (s *MenuService) List(ctx context.Context, category string) ([]models.MenuItem, error) {
	if category == models.CategoryAll {
		category = ""
	}
	return s.repo.List(ctx, models.Category(category))
}

// Search matches menu items by name and ingredients. A blank query
// behaves as an unfiltered List. The repository degrades full-text
// search to a substring match when the text index is unavailable, so a
// query matching nothing returns an empty list, never an error.
func (s *MenuService) Search(ctx context.Context, query string) ([]models.MenuItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.List(ctx, "")
	}
	return s.repo.Search(ctx, query)
}

// Create validates and persists a new menu item. Names are unique
// case-insensitively; availability defaults to true.
func (s *MenuService) Create(ctx context.Context, req models.CreateMenuItemRequest) (*models.MenuItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationf("Item name is required")
	}
	if !req.Category.IsValid() {
		return nil, validationf("Category must be one of: Appetizer, Main Course, Dessert, Beverage")
	}
	if req.Price == nil {
		return nil, validationf("Price is required")
	}
	if *req.Price < 0 {
		return nil, validationf("Price cannot be negative")
	}

	_, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return nil, &ConflictError{Message: "A menu item with this name already exists."}
	}
	if !errors.Is(err, repository.ErrMenuItemNotFound) {
		return nil, err
	}

	now := nowUTC()
	item := &models.MenuItem{
		Name:        name,
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		Price:       *req.Price,
		Ingredients: req.Ingredients,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if item.Ingredients == nil {
		item.Ingredients = []string{}
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies a validated partial update to an existing item
func (s *MenuService) Update(ctx context.Context, id primitive.ObjectID, req models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, validationf("Item name is required")
		}
		item.Name = name
	}
	if req.Category != nil {
		if !req.Category.IsValid() {
			return nil, validationf("Category must be one of: Appetizer, Main Course, Dessert, Beverage")
		}
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, validationf("Price cannot be negative")
		}
		item.Price = *req.Price
	}
	if req.Ingredients != nil {
		item.Ingredients = *req.Ingredients
		if item.Ingredients == nil {
			item.Ingredients = []string{}
		}
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	item.UpdatedAt = nowUTC()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a menu item. Orders referencing it keep their price
// snapshots and stay valid.
func (s *MenuService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}

// ToggleAvailability sets the availability flag on an item
func (s *MenuService) ToggleAvailability(ctx context.Context, id primitive.ObjectID, isAvailable bool) (*models.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.IsAvailable = isAvailable
	item.UpdatedAt = nowUTC()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
