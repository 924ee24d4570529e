package handlers

import (
	"net/http"
	"strconv"

	"github.com/diewo77/costopro/httpx"
	"github.com/diewo77/costopro/internal/pricing"
	"github.com/diewo77/costopro/internal/services"
	"github.com/rs/zerolog"
)

type CatalogHandler struct {
	catalog *services.CatalogService
	log     zerolog.Logger
}

func NewCatalogHandler(catalog *services.CatalogService, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

// List returns the inventory, most recent first.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.catalog.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, records)
}

// Create saves a priced form snapshot.
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	in := pricing.DefaultInput()
	if !decode(w, r, &in) {
		return
	}
	rec, err := h.catalog.Save(r.Context(), services.SessionFromContext(r.Context()), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}

// Delete removes a record; unknown ids succeed.
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		fail(w, r, http.StatusBadRequest, "bad_request", nil)
		return
	}
	if err := h.catalog.Remove(r.Context(), services.SessionFromContext(r.Context()), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Dashboard summarizes the inventory for the session user.
func (h *CatalogHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.catalog.Dashboard(r.Context(), services.SessionFromContext(r.Context()))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, struct {
		*services.Dashboard
		InventoryValueFormatted string `json:"inventory_value_formatted"`
	}{d, formatter(r).Format(d.InventoryValue)})
}
