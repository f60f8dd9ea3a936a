package supplier

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes supplier HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/suppliers", func(r chi.Router) {
		r.Post("/profile", h.setupProfile)    // POST  /api/v1/suppliers/profile
		r.Get("/{id}", h.getSupplier)         // GET   /api/v1/suppliers/{id}
		r.Get("/user/{user_id}", h.getByUser) // GET   /api/v1/suppliers/user/{user_id}
	})
}

// RegisterAdminRoutes mounts the operator-only supplier endpoints on an
// already-guarded sub-router.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/suppliers", h.listSuppliers)                 // GET   /api/v1/admin/suppliers
	r.Patch("/suppliers/{id}/status", h.updateStatus)    // PATCH /api/v1/admin/suppliers/{id}/status
}

func (h *Handler) setupProfile(w http.ResponseWriter, r *http.Request) {
	var req SetupProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sup, err := h.service.SetupProfile(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "invalid") ||
			strings.Contains(err.Error(), "unsupported") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, sup)
}

func (h *Handler) getSupplier(w http.ResponseWriter, r *http.Request) {
	sup, err := h.service.GetSupplier(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "supplier not found"})
		return
	}
	respond(w, http.StatusOK, sup)
}

func (h *Handler) getByUser(w http.ResponseWriter, r *http.Request) {
	sup, err := h.service.GetByUserID(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "supplier not found"})
		return
	}
	respond(w, http.StatusOK, sup)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sup, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "unknown") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sup)
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.service.ListSuppliers(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, suppliers)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
