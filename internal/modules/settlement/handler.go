package settlement

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mfn0002-png/terangaFil-backend/internal/modules/payment"
)

// Handler exposes the gateway callback and the operator payout endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	// PayDunya posts here once the buyer has paid.
	r.Post("/api/v1/payments/callback", h.callback)
}

// RegisterAdminRoutes mounts the operator-only payout endpoints on an
// already-guarded sub-router.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/payouts", h.listPayouts)                     // GET   /api/v1/admin/payouts
	r.Get("/payouts/order/{order_id}", h.listByOrder)    // GET   /api/v1/admin/payouts/order/{order_id}
	r.Patch("/payouts/{id}/retry", h.retry)              // PATCH /api/v1/admin/payouts/{id}/retry
}

func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	var payload payment.CallbackPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// The gateway notifies every status change; only a completed payment
	// settles anything. Acknowledge the rest so it stops retrying.
	if payload.Status != "completed" {
		log.Printf("payment callback for order %s ignored (status %s)", payload.CustomData.OrderID, payload.Status)
		respond(w, http.StatusOK, map[string]bool{"success": true})
		return
	}

	if err := h.service.Settle(r.Context(), payload.CustomData.OrderID,
		payload.PaymentMethod, payload.Token, payload.TransactionID); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) retry(w http.ResponseWriter, r *http.Request) {
	payout, err := h.service.Retry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrAlreadyCompleted) {
			code = http.StatusUnprocessableEntity
		} else if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, payout)
}

func (h *Handler) listPayouts(w http.ResponseWriter, r *http.Request) {
	payouts, err := h.service.ListPayouts(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, payouts)
}

func (h *Handler) listByOrder(w http.ResponseWriter, r *http.Request) {
	payouts, err := h.service.ListOrderPayouts(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, payouts)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
