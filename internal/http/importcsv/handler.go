package importcsv

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ebenezer-app/ebenezer/internal/http/respond"
	"github.com/ebenezer-app/ebenezer/internal/identity"
	"github.com/ebenezer-app/ebenezer/internal/importer"
	"github.com/ebenezer-app/ebenezer/internal/movement"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importSuccessResponse struct {
	Imported int         `json:"imported"`
	IDs      []uuid.UUID `json:"ids"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	u, err := identity.UserFromContext(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	src := importer.Source(r.FormValue("source"))
	if src == "" {
		src = importer.SourceEbenezer
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ms, err := h.importSvc.Import(r.Context(), u.ID, src, file)
	if err != nil {
		var storeErr *movement.StoreError
		if errors.As(err, &storeErr) || errors.Is(err, movement.ErrNotAuthenticated) {
			respond.Error(w, r, err)
			return
		}

		// Anything else is a problem with the uploaded file.
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	resp := importSuccessResponse{Imported: len(ms), IDs: make([]uuid.UUID, 0, len(ms))}
	for _, m := range ms {
		resp.IDs = append(resp.IDs, m.ID)
	}

	respond.JSON(w, http.StatusCreated, resp)
}
