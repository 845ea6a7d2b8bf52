package movement

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ebenezer-app/ebenezer/internal/http/respond"
	"github.com/ebenezer-app/ebenezer/internal/identity"
	"github.com/ebenezer-app/ebenezer/internal/movement"
)

type Handler struct {
	svc *movement.Service
}

func NewHandler(svc *movement.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/{id}", h.delete)
}

// createMovementRequest takes the amount in cents. Date is YYYY-MM-DD and defaults to today.
type createMovementRequest struct {
	Type          movement.Type          `json:"tipo"`
	Sector        movement.Sector        `json:"settore"`
	PaymentMethod movement.PaymentMethod `json:"metodo_pagamento"`
	Category      movement.Category      `json:"categoria"`
	Description   string                 `json:"descrizione"`
	Amount        int64                  `json:"importo"`
	Date          string                 `json:"data,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	u, err := identity.UserFromContext(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req createMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := movement.CreateParams{
		Type:          req.Type,
		Sector:        req.Sector,
		PaymentMethod: req.PaymentMethod,
		Category:      req.Category,
		Description:   req.Description,
		Amount:        req.Amount,
	}

	if req.Date != "" {
		date, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			respond.Error(w, r, &movement.ValidationError{Field: "data", Reason: "formato atteso AAAA-MM-GG"})
			return
		}

		params.Date = date
	}

	m, err := h.svc.Create(r.Context(), u.ID, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(m))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	u, err := identity.UserFromContext(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	ms, err := h.svc.List(r.Context(), u.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(ms))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	u, err := identity.UserFromContext(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id, u.ID); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
