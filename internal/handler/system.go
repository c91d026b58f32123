package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/elysian-cafe/api/internal/database"
	"github.com/elysian-cafe/api/internal/ws"
)

// SystemStore defines the database methods needed by system config handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type SystemStore interface {
	GetSystemConfig(ctx context.Context) (database.SystemConfig, error)
	UpdateSystemConfig(ctx context.Context, arg database.UpdateSystemConfigParams) (database.SystemConfig, error)
}

// SystemHandler handles the storefront gate and payment configuration.
type SystemHandler struct {
	store SystemStore
	hub   *ws.Hub
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(store SystemStore, hub *ws.Hub) *SystemHandler {
	return &SystemHandler{store: store, hub: hub}
}

// RegisterPublicRoutes registers the storefront config read.
func (h *SystemHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/system/config", h.Get)
}

// RegisterAdminRoutes registers the config update endpoint.
// Expected to be mounted inside an admin-scoped subrouter: /admin/system
func (h *SystemHandler) RegisterAdminRoutes(r chi.Router) {
	r.Put("/config", h.Update)
}

// --- Request / Response types ---

type updateConfigRequest struct {
	AcceptingOrders *bool   `json:"acceptingOrders"`
	UpiID           *string `json:"upiId"`
	PayeeName       *string `json:"payeeName"`
}

type configResponse struct {
	AcceptingOrders bool      `json:"acceptingOrders"`
	UpiID           string    `json:"upiId"`
	PayeeName       string    `json:"payeeName"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toConfigResponse(c database.SystemConfig) configResponse {
	// Ordering is open unless explicitly closed.
	accepting := true
	if c.AcceptingOrders.Valid {
		accepting = c.AcceptingOrders.Bool
	}
	return configResponse{
		AcceptingOrders: accepting,
		UpiID:           c.UpiID,
		PayeeName:       c.PayeeName,
		UpdatedAt:       c.UpdatedAt,
	}
}

// --- Handlers ---

// Get returns the current storefront configuration.
func (h *SystemHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.GetSystemConfig(r.Context())
	if err != nil {
		log.Printf("ERROR: get system config: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toConfigResponse(cfg))
}

// Update merges the provided fields into the config. Omitted fields keep
// their stored values.
func (h *SystemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.AcceptingOrders == nil && req.UpiID == nil && req.PayeeName == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no fields to update"})
		return
	}

	params := database.UpdateSystemConfigParams{}
	if req.AcceptingOrders != nil {
		params.AcceptingOrders = pgtype.Bool{Bool: *req.AcceptingOrders, Valid: true}
	}
	if req.UpiID != nil {
		params.UpiID = pgtype.Text{String: *req.UpiID, Valid: true}
	}
	if req.PayeeName != nil {
		params.PayeeName = pgtype.Text{String: *req.PayeeName, Valid: true}
	}

	cfg, err := h.store.UpdateSystemConfig(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: update system config: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcastConfigChanged(cfg)
	writeJSON(w, http.StatusOK, toConfigResponse(cfg))
}

// --- Helpers ---

func (h *SystemHandler) broadcastConfigChanged(cfg database.SystemConfig) {
	payload, err := json.Marshal(toConfigResponse(cfg))
	if err != nil {
		log.Printf("ERROR: marshal config event: %v", err)
		return
	}
	h.hub.Broadcast(ws.TopicConfig, ws.Event{Type: "config.updated", Payload: payload})
}

// ConfigSnapshot builds the initial feed state for a new config subscriber.
func ConfigSnapshot(store SystemStore) ws.SnapshotFunc {
	return func(ctx context.Context) (ws.Event, error) {
		cfg, err := store.GetSystemConfig(ctx)
		if err != nil {
			return ws.Event{}, err
		}
		payload, err := json.Marshal(toConfigResponse(cfg))
		if err != nil {
			return ws.Event{}, err
		}
		return ws.Event{Type: "config.snapshot", Payload: payload}, nil
	}
}
