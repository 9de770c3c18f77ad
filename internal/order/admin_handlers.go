package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
)

// AdminHandler exposes the admin order surfaces: full listing, the
// discount approval queue, and approve/reject decisions.
type AdminHandler struct {
	Service *Service
}

// Orders handles GET /api/v1/orders/admin/orders?page=&limit=.
// Display-id sequences are numbered over the full result set before the
// page is cut, so codes stay stable across pages.
func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	views, err := h.Service.List(r.Context())
	if err != nil {
		common.RenderError(w, err)
		return
	}
	page, perPage := common.ParsePagination(r, 50)
	total := len(views)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data":       views[start:end],
		"pagination": common.Pagination{Page: page, PerPage: perPage, TotalItems: total},
	})
}

// DiscountApprovals handles GET /api/v1/orders/admin/discount-approvals.
func (h *AdminHandler) DiscountApprovals(w http.ResponseWriter, r *http.Request) {
	views, err := h.Service.PendingApprovals(r.Context())
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": views})
}

// ApproveDiscount handles POST /api/v1/orders/admin/approve-discount/{orderID}.
func (h *AdminHandler) ApproveDiscount(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, StatusApproved)
}

// RejectDiscount handles POST /api/v1/orders/admin/reject-discount/{orderID}.
func (h *AdminHandler) RejectDiscount(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, StatusRejected)
}

func (h *AdminHandler) decide(w http.ResponseWriter, r *http.Request, decision string) {
	view, err := h.Service.Decide(r.Context(), chi.URLParam(r, "orderID"), decision)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}
