package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/erazemk/restock/internal/asset"
	"github.com/erazemk/restock/internal/inventory"
	"github.com/erazemk/restock/internal/model"
)

// maxUploadSize bounds a multipart item request, image included.
const maxUploadSize = 10 << 20

// ItemsHandler handles item endpoints.
type ItemsHandler struct {
	Service *inventory.Service
}

// List handles GET /api/items. With ?barcode= only items carrying exactly
// that barcode are returned.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	var items []model.Item
	var err error
	if barcode, ok := r.URL.Query()["barcode"]; ok {
		items, err = h.Service.FindByBarcode(r.Context(), owner, barcode[0])
	} else {
		items, err = h.Service.Items(r.Context(), owner)
	}
	if err != nil {
		serviceError(w, r, err, nil)
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, img, err := readItemRequest(w, r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.Service.CreateItem(r.Context(), ownerFrom(r), in, img)
	if err != nil {
		serviceError(w, r, err, itemsOrNil(res))
		return
	}
	jsonResponse(w, http.StatusCreated, res)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Item(r.Context(), ownerFrom(r), r.PathValue("id"))
	if err != nil {
		serviceError(w, r, err, nil)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}. Every field is replaced; an image
// part replaces the photo, its absence keeps the current one.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, img, err := readItemRequest(w, r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.Service.UpdateItem(r.Context(), ownerFrom(r), r.PathValue("id"), in, img)
	if err != nil {
		serviceError(w, r, err, itemsOrNil(res))
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.DeleteItem(r.Context(), ownerFrom(r), r.PathValue("id"))
	if err != nil {
		serviceError(w, r, err, itemsOrNil(res))
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

// Decrement handles POST /api/items/{id}/decrement.
func (h *ItemsHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.QuickRemove(r.Context(), ownerFrom(r), r.PathValue("id"))
	if err != nil {
		serviceError(w, r, err, itemsOrNil(res))
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

// Transfer handles POST /api/items/{id}/list. The body is optional.
func (h *ItemsHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var ov model.TransferOverrides
	if err := decodeJSON(r, &ov); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.Service.TransferByID(r.Context(), ownerFrom(r), r.PathValue("id"), ov)
	if err != nil {
		serviceError(w, r, err, entriesOrNil(res))
		return
	}
	jsonResponse(w, http.StatusCreated, res)
}

// readItemRequest decodes an item payload sent either as JSON or as a
// multipart form with a JSON "data" field and an optional "image" file.
func readItemRequest(w http.ResponseWriter, r *http.Request) (model.ItemInput, *asset.Upload, error) {
	var in model.ItemInput

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := decodeJSON(r, &in); err != nil {
			return in, nil, errors.New("invalid request body")
		}
		return in, nil, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return in, nil, errors.New("file too large or invalid multipart form")
	}

	if err := json.Unmarshal([]byte(r.FormValue("data")), &in); err != nil {
		return in, nil, errors.New("invalid item data")
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil, nil
	}
	if err != nil {
		return in, nil, errors.New("invalid image file")
	}
	defer file.Close()

	mime := header.Header.Get("Content-Type")
	if mime != "" && !strings.HasPrefix(mime, "image/") {
		return in, nil, errors.New("image must be an image file")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return in, nil, errors.New("failed to read image")
	}

	return in, &asset.Upload{Filename: header.Filename, ContentType: mime, Data: data}, nil
}

func itemsOrNil(res inventory.ItemResult) any {
	if res.Items == nil {
		return nil
	}
	return res
}

func entriesOrNil(res inventory.ListResult) any {
	if res.Entries == nil {
		return nil
	}
	return res
}
