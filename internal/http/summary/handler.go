package summary

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ebenezer-app/ebenezer/internal/export"
	"github.com/ebenezer-app/ebenezer/internal/http/respond"
	"github.com/ebenezer-app/ebenezer/internal/identity"
	"github.com/ebenezer-app/ebenezer/internal/ledger"
	"github.com/ebenezer-app/ebenezer/internal/movement"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

type categoryResponse struct {
	Category movement.Category `json:"categoria"`
	Label    string            `json:"etichetta"`
	Amount   int64             `json:"importo"`
	Share    int               `json:"percentuale"`
}

type summaryResponse struct {
	TotalEntrate int64              `json:"totale_entrate"`
	TotalUscite  int64              `json:"totale_uscite"`
	Saldo        int64              `json:"saldo"`
	Movements    int                `json:"movimenti"`
	Categories   []categoryResponse `json:"categorie"`
}

func toResponse(s ledger.Summary, count int) summaryResponse {
	resp := summaryResponse{
		TotalEntrate: s.TotalEntrate,
		TotalUscite:  s.TotalUscite,
		Saldo:        s.Saldo,
		Movements:    count,
		Categories:   []categoryResponse{},
	}

	for _, c := range s.SortedCategories() {
		resp.Categories = append(resp.Categories, categoryResponse{
			Category: c.Category,
			Label:    c.Category.Label(),
			Amount:   c.Amount,
			Share:    s.CategoryShare(c.Category),
		})
	}

	return resp
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	u, err := identity.UserFromContext(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	ov, err := h.svc.Overview(r.Context(), u.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(ov.Summary, len(ov.Movements)))
}
