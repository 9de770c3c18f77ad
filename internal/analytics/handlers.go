package analytics

import (
	"net/http"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// Overview handles GET /analytics/overview.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	o, err := h.Svc.Overview(r.Context())
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, o)
}
