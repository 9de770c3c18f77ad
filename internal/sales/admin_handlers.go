package sales

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
)

// AdminHandler exposes directory CRUD for the admin console.
type AdminHandler struct {
	Service *Service
}

// ListSalesmen handles GET /api/v1/admin/salesmen.
func (h *AdminHandler) ListSalesmen(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ListSalesmen(r.Context())
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

// CreateSalesman handles POST /api/v1/admin/salesmen.
func (h *AdminHandler) CreateSalesman(w http.ResponseWriter, r *http.Request) {
	var in SalesmanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	created, err := h.Service.CreateSalesman(r.Context(), in)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": created})
}

// UpdateSalesman handles PUT /api/v1/admin/salesmen/{salesmanID}.
func (h *AdminHandler) UpdateSalesman(w http.ResponseWriter, r *http.Request) {
	var in SalesmanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	updated, err := h.Service.UpdateSalesman(r.Context(), chi.URLParam(r, "salesmanID"), in)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": updated})
}

// DeleteSalesman handles DELETE /api/v1/admin/salesmen/{salesmanID}.
func (h *AdminHandler) DeleteSalesman(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteSalesman(r.Context(), chi.URLParam(r, "salesmanID")); err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]string{"status": "deleted"}})
}

// ListManagers handles GET /api/v1/admin/sales-managers.
func (h *AdminHandler) ListManagers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ListManagers(r.Context())
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

// CreateManager handles POST /api/v1/admin/sales-managers.
func (h *AdminHandler) CreateManager(w http.ResponseWriter, r *http.Request) {
	var in ManagerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	created, err := h.Service.CreateManager(r.Context(), in)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": created})
}

// UpdateManager handles PUT /api/v1/admin/sales-managers/{managerID}.
func (h *AdminHandler) UpdateManager(w http.ResponseWriter, r *http.Request) {
	var in ManagerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	updated, err := h.Service.UpdateManager(r.Context(), chi.URLParam(r, "managerID"), in)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": updated})
}

// DeleteManager handles DELETE /api/v1/admin/sales-managers/{managerID}.
func (h *AdminHandler) DeleteManager(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteManager(r.Context(), chi.URLParam(r, "managerID")); err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]string{"status": "deleted"}})
}

// ListDirectors handles GET /api/v1/admin/directors.
func (h *AdminHandler) ListDirectors(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ListDirectors(r.Context())
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

// CreateDirector handles POST /api/v1/admin/directors.
func (h *AdminHandler) CreateDirector(w http.ResponseWriter, r *http.Request) {
	var in DirectorInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	created, err := h.Service.CreateDirector(r.Context(), in)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": created})
}

// UpdateDirector handles PUT /api/v1/admin/directors/{directorID}.
func (h *AdminHandler) UpdateDirector(w http.ResponseWriter, r *http.Request) {
	var in DirectorInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	updated, err := h.Service.UpdateDirector(r.Context(), chi.URLParam(r, "directorID"), in)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": updated})
}

// DeleteDirector handles DELETE /api/v1/admin/directors/{directorID}.
func (h *AdminHandler) DeleteDirector(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteDirector(r.Context(), chi.URLParam(r, "directorID")); err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]string{"status": "deleted"}})
}

// ListDealers handles GET /api/v1/admin/dealers.
func (h *AdminHandler) ListDealers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ListDealers(r.Context())
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

// CreateDealer handles POST /api/v1/admin/dealers.
func (h *AdminHandler) CreateDealer(w http.ResponseWriter, r *http.Request) {
	var in DealerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	created, err := h.Service.CreateDealer(r.Context(), in)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": created})
}

// UpdateDealer handles PUT /api/v1/admin/dealers/{dealerID}.
func (h *AdminHandler) UpdateDealer(w http.ResponseWriter, r *http.Request) {
	var in DealerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	updated, err := h.Service.UpdateDealer(r.Context(), chi.URLParam(r, "dealerID"), in)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": updated})
}

// DeleteDealer handles DELETE /api/v1/admin/dealers/{dealerID}.
func (h *AdminHandler) DeleteDealer(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteDealer(r.Context(), chi.URLParam(r, "dealerID")); err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]string{"status": "deleted"}})
}
