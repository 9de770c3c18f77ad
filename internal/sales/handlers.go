package sales

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
)

// Handler exposes the order-form directory endpoints.
type Handler struct {
	Service *Service
}

// Salesmen handles GET /api/v1/orders/salesmen?state=.
func (h *Handler) Salesmen(w http.ResponseWriter, r *http.Request) {
	salesmen, err := h.Service.SalesmenByState(r.Context(), r.URL.Query().Get("state"))
	if err != nil {
		common.RenderError(w, err)
		return
	}
	if salesmen == nil {
		salesmen = []Salesman{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": salesmen})
}

// Dealers handles GET /api/v1/orders/dealers/{salesmanID}.
func (h *Handler) Dealers(w http.ResponseWriter, r *http.Request) {
	dealers, err := h.Service.DealersBySalesman(r.Context(), chi.URLParam(r, "salesmanID"))
	if err != nil {
		common.RenderError(w, err)
		return
	}
	if dealers == nil {
		dealers = []Dealer{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": dealers})
}

// Me handles GET /api/v1/orders/me. The caller is identified from the
// bearer token when present, falling back to uid/email query params the
// way the original clients send them.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	uid := r.URL.Query().Get("uid")
	email := r.URL.Query().Get("email")
	if id, ok := common.IdentityFrom(r.Context()); ok {
		if id.UID != "" {
			uid = id.UID
		}
		if id.Email != "" {
			email = id.Email
		}
	}
	profile, err := h.Service.Me(r.Context(), uid, email)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, profile)
}
