package api

import (
	"bytes"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/spoolshelf/internal/imaging"
	"github.com/erazemk/spoolshelf/internal/inventory"
	"github.com/erazemk/spoolshelf/internal/model"
	"github.com/erazemk/spoolshelf/internal/service"
	"github.com/erazemk/spoolshelf/internal/store"
	"github.com/erazemk/spoolshelf/internal/tabular"
)

// Upload limits.
const (
	maxImportBytes = 2 << 20
	maxSwatchBytes = 5 << 20
)

// LinesHandler handles inventory line endpoints.
type LinesHandler struct {
	Inventory *service.Inventory
	DB        *sql.DB
}

// List handles GET /api/lines. Optional ?category= and ?status= filter the result.
func (h *LinesHandler) List(w http.ResponseWriter, r *http.Request) {
	category := model.Category(r.URL.Query().Get("category"))
	status := model.Status(r.URL.Query().Get("status"))
	if category != "" && !category.Valid() {
		jsonError(w, http.StatusBadRequest, "invalid category")
		return
	}
	if status != "" && !status.Valid() {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}

	lines, err := h.Inventory.List(r.Context())
	if err != nil {
		inventoryError(w, r, err)
		return
	}

	filtered := lines[:0]
	for _, l := range lines {
		if (category == "" || l.Category == category) && (status == "" || l.Status == status) {
			filtered = append(filtered, l)
		}
	}
	jsonResponse(w, http.StatusOK, filtered)
}

// Get handles GET /api/lines/{id}.
func (h *LinesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid line id")
		return
	}

	line, err := h.Inventory.Get(r.Context(), id)
	if err != nil {
		inventoryError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, line)
}

// AddStock handles POST /api/lines/stock.
func (h *LinesHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	var in inventory.StockInput
	if err := decodeJSON(r, &in); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in.Material = strings.TrimSpace(in.Material)
	in.Color = strings.TrimSpace(in.Color)
	in.Brand = strings.TrimSpace(in.Brand)
	in.Notes = strings.TrimSpace(in.Notes)

	res, err := h.Inventory.AddStock(r.Context(), in)
	if err != nil {
		inventoryError(w, r, err)
		return
	}

	status := http.StatusOK
	if res.Outcome.Created != 0 {
		status = http.StatusCreated
	}
	jsonResponse(w, status, res)
}

// Open handles POST /api/lines/{id}/open.
func (h *LinesHandler) Open(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid line id")
		return
	}

	res, err := h.Inventory.OpenUnit(r.Context(), id)
	if err != nil {
		inventoryError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

// Consume handles POST /api/lines/{id}/consume.
func (h *LinesHandler) Consume(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid line id")
		return
	}

	res, err := h.Inventory.ConsumeUnit(r.Context(), id)
	if err != nil {
		inventoryError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

// Export handles GET /api/lines/export.
func (h *LinesHandler) Export(w http.ResponseWriter, r *http.Request) {
	lines, err := h.Inventory.List(r.Context())
	if err != nil {
		inventoryError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := tabular.Encode(&buf, lines); err != nil {
		slog.Error("failed to encode export", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to export inventory")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="inventory.csv"`)
	w.Write(buf.Bytes())
}

// Import handles POST /api/lines/import. The body is a CSV table that
// replaces the whole inventory.
func (h *LinesHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	defer r.Body.Close()

	lines, err := tabular.Decode(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, http.StatusRequestEntityTooLarge, "table too large")
			return
		}
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	imported, err := h.Inventory.Import(r.Context(), lines)
	if err != nil {
		inventoryError(w, r, err)
		return
	}

	slog.Info("inventory replaced from upload", "user", GetClaims(r.Context()).Username, "lines", len(imported))
	jsonResponse(w, http.StatusOK, imported)
}

// UploadSwatch handles PUT /api/lines/{id}/swatch. The photo is stored for
// the line's product, so the opened and unopened lines share it.
func (h *LinesHandler) UploadSwatch(w http.ResponseWriter, r *http.Request) {
	line, ok := h.lookup(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxSwatchBytes)
	if err := r.ParseMultipartForm(maxSwatchBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	data, err := imaging.Swatch(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetSwatch(r.Context(), h.DB, line.Product(), data, imaging.MIME); err != nil {
		slog.Error("failed to save swatch", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save swatch")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "swatch uploaded"})
}

// GetSwatch handles GET /api/lines/{id}/swatch.
func (h *LinesHandler) GetSwatch(w http.ResponseWriter, r *http.Request) {
	line, ok := h.lookup(w, r)
	if !ok {
		return
	}

	data, mime, err := store.GetSwatch(r.Context(), h.DB, line.Product())
	if err != nil {
		slog.Error("failed to get swatch", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get swatch")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no swatch")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}

func (h *LinesHandler) lookup(w http.ResponseWriter, r *http.Request) (model.Line, bool) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid line id")
		return model.Line{}, false
	}

	line, err := h.Inventory.Get(r.Context(), id)
	if err != nil {
		inventoryError(w, r, err)
		return model.Line{}, false
	}
	return line, true
}
