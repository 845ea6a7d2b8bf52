package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ebenezer-app/ebenezer/internal/export"
	"github.com/ebenezer-app/ebenezer/internal/http/respond"
	"github.com/ebenezer-app/ebenezer/internal/identity"
)

type Handler struct {
	svc *export.Service
	now func() time.Time
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{format}", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	u, err := identity.UserFromContext(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	format := export.Format(chi.URLParam(r, "format"))

	doc, err := h.svc.Export(r.Context(), u.ID, format, h.now())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))

	if _, err := w.Write(doc.Data); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
