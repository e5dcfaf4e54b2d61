package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kind-link-bridge/internal/domain"
	"kind-link-bridge/internal/service"
	"kind-link-bridge/internal/transport/http/ez"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

type dashboardIn struct {
	UserID int64 `uri:"user_id" binding:"required,min=1"`
}

func (in *dashboardIn) OwnerID() int64 { return in.UserID }

func (h *DashboardHandler) Priority() int { return 30 }

func (h *DashboardHandler) Mount(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[dashboardIn, *domain.Dashboard]{
		Method: http.MethodGet,
		Path:   "/dashboard/:user_id",
		Binder: ez.BindURI,
		Owner:  true,
		Handler: func(c *gin.Context, in *dashboardIn) (*domain.Dashboard, error) {
			return h.svc.Get(c.Request.Context(), in.UserID)
		},
	})
}
