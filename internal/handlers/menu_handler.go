package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eatoes/back-office/internal/models"
	"github.com/eatoes/back-office/internal/service"
)

// MenuHandler handles menu catalog HTTP requests
type MenuHandler struct {
	service *service.MenuService
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(service *service.MenuService, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

// ListItems handles GET /api/menu?category=
func (h *MenuHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// SearchItems handles GET /api/menu/search?q=
func (h *MenuHandler) SearchItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// CreateItem handles POST /api/menu
func (h *MenuHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode create menu item request", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("menu item created", "id", item.ID.Hex(), "name", item.Name)
	writeJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/menu/{id}
func (h *MenuHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	var req models.UpdateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode update menu item request", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/menu/{id}
func (h *MenuHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("menu item deleted", "id", id.Hex())
	writeJSON(w, http.StatusOK, map[string]string{"message": "Menu item deleted successfully."})
}

// ToggleAvailability handles PATCH /api/menu/{id}/availability
func (h *MenuHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	var req struct {
		IsAvailable *bool `json:"isAvailable"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsAvailable == nil {
		writeError(w, http.StatusBadRequest, "isAvailable is required")
		return
	}

	item, err := h.service.ToggleAvailability(r.Context(), id, *req.IsAvailable)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// itemID parses the {id} path parameter, rejecting malformed ids
func (h *MenuHandler) itemID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		h.logger.Warn("invalid menu item ID", "id", raw)
		writeError(w, http.StatusBadRequest, "Invalid ID supplied")
		return primitive.NilObjectID, false
	}
	return id, true
}
