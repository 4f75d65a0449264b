package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"commerce-admin-core/internal/application"
	"commerce-admin-core/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// DeliveryMethodHandler serves the delivery method catalog endpoints.
type DeliveryMethodHandler struct {
	service    *application.DeliveryMethodService
	reconciler *application.Reconciler
	logger     zerolog.Logger
}

// NewDeliveryMethodHandler creates a new delivery method handler.
func NewDeliveryMethodHandler(
	service *application.DeliveryMethodService,
	reconciler *application.Reconciler,
	logger zerolog.Logger,
) *DeliveryMethodHandler {
	return &DeliveryMethodHandler{
		service:    service,
		reconciler: reconciler,
		logger:     logger,
	}
}

// RegisterRoutes mounts the catalog endpoints on the router.
func (h *DeliveryMethodHandler) RegisterRoutes(r chi.Router) {
	r.Get("/delivery-methods", h.List)
	r.Post("/delivery-methods", h.Create)
	r.Post("/delivery-methods/sync", h.Sync)
	r.Get("/delivery-methods/{id}", h.Get)
	r.Put("/delivery-methods/{id}", h.Update)
	r.Delete("/delivery-methods/{id}", h.Delete)
}

// Create handles POST /delivery-methods
func (h *DeliveryMethodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input application.CreateDeliveryMethodInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	method, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, method)
}

// List handles GET /delivery-methods
func (h *DeliveryMethodHandler) List(w http.ResponseWriter, r *http.Request) {
	methods, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if methods == nil {
		methods = []*domain.DeliveryMethod{}
	}
	writeJSON(w, http.StatusOK, methods)
}

// Get handles GET /delivery-methods/{id}
func (h *DeliveryMethodHandler) Get(w http.ResponseWriter, r *http.Request) {
	method, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, method)
}

// Update handles PUT /delivery-methods/{id}
func (h *DeliveryMethodHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update domain.DeliveryMethodUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	method, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, method)
}

// Delete handles DELETE /delivery-methods/{id}
func (h *DeliveryMethodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type syncRequest struct {
	FrontendMethods []application.ExternalMethod `json:"frontendMethods"`
}

type syncResponse struct {
	Methods []application.SyncedMethod `json:"methods"`
}

// Sync handles POST /delivery-methods/sync. The body carries the
// storefront's shipping-option list; the response carries the reconciled
// catalog entries in input order.
func (h *DeliveryMethodHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: frontendMethods must be a list", domain.ErrInvalidInput))
		return
	}

	synced, err := h.reconciler.Reconcile(r.Context(), req.FrontendMethods)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, syncResponse{Methods: synced})
}
