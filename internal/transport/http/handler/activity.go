package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kind-link-bridge/internal/domain"
	"kind-link-bridge/internal/service"
	"kind-link-bridge/internal/transport/http/ez"
)

type ActivityHandler struct {
	svc *service.ActivityService
}

func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

// Pointer fields tell a missing value apart from zero.
type donationIn struct {
	UserID *int64   `json:"user_id" binding:"required,min=1"`
	Amount *float64 `json:"amount"  binding:"required,gt=0,lte=1000000000"`
}

type volunteerIn struct {
	UserID *int64 `json:"user_id" binding:"required,min=1"`
	Hours  *int64 `json:"hours"   binding:"required,gt=0,lte=10000"`
}

type causeIn struct {
	UserID    *int64 `json:"user_id"    binding:"required,min=1"`
	CauseName string `json:"cause_name" binding:"required,max=191"`
}

func (in *donationIn) OwnerID() int64  { return deref(in.UserID) }
func (in *volunteerIn) OwnerID() int64 { return deref(in.UserID) }
func (in *causeIn) OwnerID() int64     { return deref(in.UserID) }

func deref(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func (h *ActivityHandler) Priority() int { return 20 }

func (h *ActivityHandler) Mount(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[donationIn, *domain.Donation]{
		Method: http.MethodPost,
		Path:   "/donations",
		Binder: ez.BindJSON,
		Owner:  true,
		Handler: func(c *gin.Context, in *donationIn) (*domain.Donation, error) {
			return h.svc.RecordDonation(c.Request.Context(), *in.UserID, *in.Amount)
		},
	})

	ez.RegisterAction(e, ez.Action[volunteerIn, *domain.VolunteerRecord]{
		Method: http.MethodPost,
		Path:   "/volunteer",
		Binder: ez.BindJSON,
		Owner:  true,
		Handler: func(c *gin.Context, in *volunteerIn) (*domain.VolunteerRecord, error) {
			return h.svc.RecordVolunteerHours(c.Request.Context(), *in.UserID, *in.Hours)
		},
	})

	ez.RegisterAction(e, ez.Action[causeIn, *domain.CauseSupport]{
		Method: http.MethodPost,
		Path:   "/causes",
		Binder: ez.BindJSON,
		Owner:  true,
		Handler: func(c *gin.Context, in *causeIn) (*domain.CauseSupport, error) {
			return h.svc.SupportCause(c.Request.Context(), *in.UserID, in.CauseName)
		},
	})
}
