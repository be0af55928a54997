package api

import (
	"net/http"

	"github.com/erazemk/restock/internal/inventory"
	"github.com/erazemk/restock/internal/model"
)

// ListHandler handles the restock list endpoints.
type ListHandler struct {
	Service *inventory.Service
}

// List handles GET /api/list.
func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.List(r.Context(), ownerFrom(r))
	if err != nil {
		serviceError(w, r, err, nil)
		return
	}
	jsonResponse(w, http.StatusOK, entries)
}

// Create handles POST /api/list (quick add).
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.ListInput
	if err := decodeJSON(r, &in); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.Service.QuickAdd(r.Context(), ownerFrom(r), in)
	if err != nil {
		serviceError(w, r, err, entriesOrNil(res))
		return
	}
	jsonResponse(w, http.StatusCreated, res)
}

// Delete handles DELETE /api/list/{id}.
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.RemoveFromList(r.Context(), ownerFrom(r), r.PathValue("id"))
	if err != nil {
		serviceError(w, r, err, entriesOrNil(res))
		return
	}
	jsonResponse(w, http.StatusOK, res)
}
