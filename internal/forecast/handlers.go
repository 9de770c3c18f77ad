package forecast

import (
	"encoding/json"
	"net/http"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
)

// Handler exposes the forecast endpoints.
type Handler struct {
	Service *Service
}

// Save handles POST /api/v1/forecasts.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	id, ok := common.IdentityFrom(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "caller identity required", nil)
		return
	}
	var in SaveInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}
	f, err := h.Service.Save(r.Context(), id.UID, id.Email, in)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": f})
}

// Mine handles GET /api/v1/forecasts?year=.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	id, ok := common.IdentityFrom(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "caller identity required", nil)
		return
	}
	year := common.AtoiDefault(r.URL.Query().Get("year"), 0)
	forecasts, err := h.Service.Mine(r.Context(), id.UID, id.Email, year)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": forecasts})
}

// All handles GET /api/v1/admin/forecasts?year=&salesman_id=.
func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	year := common.AtoiDefault(r.URL.Query().Get("year"), 0)
	forecasts, err := h.Service.All(r.Context(), r.URL.Query().Get("salesman_id"), year)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": forecasts})
}
