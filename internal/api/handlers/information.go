package handlers

import (
	"log/slog"
	"net/http"

	"github.com/baharkarakas/ppob-wallet/internal/api/httpx"
	"github.com/baharkarakas/ppob-wallet/internal/services"
)

type InformationHandler struct {
	base
	catalog *services.CatalogService
}

func NewInformationHandler(catalog *services.CatalogService, log *slog.Logger) *InformationHandler {
	return &InformationHandler{base: base{log: log}, catalog: catalog}
}

func (h *InformationHandler) Services(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.Services(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w, "Sukses", list)
}

func (h *InformationHandler) Banners(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.Banners(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w, "Sukses", list)
}
