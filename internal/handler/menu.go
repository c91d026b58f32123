package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/elysian-cafe/api/internal/catalog"
	"github.com/elysian-cafe/api/internal/database"
	"github.com/elysian-cafe/api/internal/enum"
	"github.com/elysian-cafe/api/internal/ws"
)

// MenuStore defines the database methods needed by menu handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type MenuStore interface {
	ListMenuItems(ctx context.Context) ([]database.MenuItem, error)
	ListAvailableMenuItems(ctx context.Context) ([]database.MenuItem, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (database.MenuItem, error)
	CreateMenuItem(ctx context.Context, arg database.CreateMenuItemParams) (database.MenuItem, error)
	UpdateMenuItem(ctx context.Context, arg database.UpdateMenuItemParams) (database.MenuItem, error)
	SetMenuItemAvailability(ctx context.Context, arg database.SetMenuItemAvailabilityParams) (database.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	CountMenuItemsByName(ctx context.Context, name string) (int64, error)
}

// MenuHandler handles catalog endpoints: the public storefront listing and
// the admin CRUD surface.
type MenuHandler struct {
	store MenuStore
	hub   *ws.Hub
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(store MenuStore, hub *ws.Hub) *MenuHandler {
	return &MenuHandler{store: store, hub: hub}
}

// RegisterPublicRoutes registers the storefront listing.
func (h *MenuHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/menu", h.ListAvailable)
}

// RegisterAdminRoutes registers catalog management endpoints.
// Expected to be mounted inside an admin-scoped subrouter: /admin/menu
func (h *MenuHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Patch("/{id}/availability", h.SetAvailability)
	r.Delete("/{id}", h.Delete)
	r.Post("/seed", h.SeedDefaults)
}

// --- Request / Response types ---

type menuItemRequest struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	VegType     string `json:"vegType"`
	Available   *bool  `json:"available"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type availabilityRequest struct {
	Available *bool `json:"available"`
}

type menuItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Category    string    `json:"category"`
	VegType     string    `json:"vegType"`
	Available   bool      `json:"available"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toMenuItemResponse(m database.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:          m.ID,
		Name:        m.Name,
		Price:       numericToString(m.Price),
		Category:    m.Category,
		VegType:     m.VegType,
		Available:   m.Available,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// --- Helpers ---

func isValidVegType(s string) bool {
	return s == enum.VegTypeVeg || s == enum.VegTypeNonVeg
}

var errNegativePrice = errors.New("negative price")

func parsePrice(s string) (pgtype.Numeric, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return pgtype.Numeric{}, err
	}
	if d.IsNegative() {
		return pgtype.Numeric{}, errNegativePrice
	}
	var n pgtype.Numeric
	if err := n.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return n, nil
}

var categoryRank = func() map[string]int {
	m := make(map[string]int, len(enum.Categories))
	for i, c := range enum.Categories {
		m[c] = i
	}
	return m
}()

// sortStorefront orders items by the storefront category order. Unknown
// categories sort last; within a category the store's ordering holds.
func sortStorefront(items []database.MenuItem) {
	rank := func(category string) int {
		if r, ok := categoryRank[category]; ok {
			return r
		}
		return len(enum.Categories)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return rank(items[i].Category) < rank(items[j].Category)
	})
}

// numericToString renders money with 2 decimal places for consistent
// representation across responses.
func numericToString(n pgtype.Numeric) string {
	if !n.Valid {
		return "0.00"
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return "0.00"
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return "0.00"
	}
	return d.StringFixed(2)
}

func (h *MenuHandler) broadcastMenuChanged() {
	items, err := h.store.ListAvailableMenuItems(context.Background())
	if err != nil {
		log.Printf("ERROR: menu broadcast snapshot: %v", err)
		return
	}
	sortStorefront(items)
	resp := make([]menuItemResponse, len(items))
	for i, m := range items {
		resp[i] = toMenuItemResponse(m)
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		log.Printf("ERROR: marshal menu broadcast: %v", err)
		return
	}
	h.hub.Broadcast(ws.TopicMenu, ws.Event{Type: "menu.updated", Payload: payload})
}

func (h *MenuHandler) decodeAndValidate(r *http.Request, w http.ResponseWriter) (*menuItemRequest, bool) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return nil, false
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return nil, false
	}
	if req.Price == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "price is required"})
		return nil, false
	}
	if req.Category == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category is required"})
		return nil, false
	}
	if !isValidVegType(req.VegType) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "vegType must be Veg or Non-Veg"})
		return nil, false
	}
	return &req, true
}

// --- Handlers ---

// ListAvailable returns the storefront catalog: available items only.
func (h *MenuHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListAvailableMenuItems(r.Context())
	if err != nil {
		log.Printf("ERROR: list menu: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	sortStorefront(items)

	resp := make([]menuItemResponse, len(items))
	for i, m := range items {
		resp[i] = toMenuItemResponse(m)
	}

	writeJSON(w, http.StatusOK, resp)
}

// List returns the full catalog, hidden items included.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListMenuItems(r.Context())
	if err != nil {
		log.Printf("ERROR: list menu items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]menuItemResponse, len(items))
	for i, m := range items {
		resp[i] = toMenuItemResponse(m)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single menu item by ID.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	item, err := h.store.GetMenuItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: get menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

// Create adds a new item to the catalog.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAndValidate(r, w)
	if !ok {
		return
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		if errors.Is(err, errNegativePrice) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "price must be >= 0"})
		} else {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid price"})
		}
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item, err := h.store.CreateMenuItem(r.Context(), database.CreateMenuItemParams{
		Name:        req.Name,
		Price:       price,
		Category:    req.Category,
		VegType:     req.VegType,
		Available:   available,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		log.Printf("ERROR: create menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcastMenuChanged()
	writeJSON(w, http.StatusCreated, toMenuItemResponse(item))
}

// Update replaces an existing catalog item.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	req, ok := h.decodeAndValidate(r, w)
	if !ok {
		return
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		if errors.Is(err, errNegativePrice) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "price must be >= 0"})
		} else {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid price"})
		}
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item, err := h.store.UpdateMenuItem(r.Context(), database.UpdateMenuItemParams{
		ID:          id,
		Name:        req.Name,
		Price:       price,
		Category:    req.Category,
		VegType:     req.VegType,
		Available:   available,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: update menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcastMenuChanged()
	writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

// SetAvailability toggles an item in or out of the storefront without
// touching the rest of the record.
func (h *MenuHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Available == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "available is required"})
		return
	}

	item, err := h.store.SetMenuItemAvailability(r.Context(), database.SetMenuItemAvailabilityParams{
		ID:        id,
		Available: *req.Available,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: set menu item availability: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcastMenuChanged()
	writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

// SeedDefaults inserts the default catalog, skipping items that already
// exist by name so repeat calls don't duplicate.
func (h *MenuHandler) SeedDefaults(w http.ResponseWriter, r *http.Request) {
	created, skipped := 0, 0
	for _, item := range catalog.Default {
		n, err := h.store.CountMenuItemsByName(r.Context(), item.Name)
		if err != nil {
			log.Printf("ERROR: check seed item %q: %v", item.Name, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		if n > 0 {
			skipped++
			continue
		}

		var price pgtype.Numeric
		if err := price.Scan(decimal.NewFromInt(item.Price).String()); err != nil {
			log.Printf("ERROR: seed price for %q: %v", item.Name, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}

		if _, err := h.store.CreateMenuItem(r.Context(), database.CreateMenuItemParams{
			Name:        item.Name,
			Price:       price,
			Category:    item.Category,
			VegType:     item.VegType,
			Available:   true,
			Description: item.Description,
		}); err != nil {
			log.Printf("ERROR: seed item %q: %v", item.Name, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		created++
	}

	if created > 0 {
		h.broadcastMenuChanged()
	}
	writeJSON(w, http.StatusOK, map[string]int{"created": created, "skipped": skipped})
}

// MenuSnapshot builds the initial feed state for a new menu subscriber.
func MenuSnapshot(store MenuStore) ws.SnapshotFunc {
	return func(ctx context.Context) (ws.Event, error) {
		items, err := store.ListAvailableMenuItems(ctx)
		if err != nil {
			return ws.Event{}, err
		}
		sortStorefront(items)
		resp := make([]menuItemResponse, len(items))
		for i, m := range items {
			resp[i] = toMenuItemResponse(m)
		}
		payload, err := json.Marshal(resp)
		if err != nil {
			return ws.Event{}, err
		}
		return ws.Event{Type: "menu.snapshot", Payload: payload}, nil
	}
}

// Delete removes a catalog item. Existing orders keep their denormalized
// copies, so history is unaffected.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	_, err = h.store.DeleteMenuItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: delete menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcastMenuChanged()
	w.WriteHeader(http.StatusNoContent)
}
