package catalog

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
)

// Handler exposes the order-form product endpoints.
type Handler struct {
	Service *Service
}

// Products handles GET /api/v1/orders/products.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.ListProducts(r.Context())
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": products})
}

// Packing handles GET /api/v1/orders/products/{name}/packing.
func (h *Handler) Packing(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	options, err := h.Service.ListPacking(r.Context(), name)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": options})
}

// Price handles GET /api/v1/orders/products/{productID}/price?quantity=N.
func (h *Handler) Price(w http.ResponseWriter, r *http.Request) {
	quote, err := h.Service.Quote(r.Context(), chi.URLParam(r, "productID"), r.URL.Query().Get("quantity"))
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": quote})
}
