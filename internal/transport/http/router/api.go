package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"kind-link-bridge/internal/core/auth"
	"kind-link-bridge/internal/core/config"
	"kind-link-bridge/internal/core/server"
	"kind-link-bridge/internal/service"
	"kind-link-bridge/internal/transport/http/ez"
	"kind-link-bridge/internal/transport/http/handler"
	mdw "kind-link-bridge/internal/transport/http/middleware"
)

type Deps struct {
	Log       *zap.Logger
	JWT       *auth.JWTer
	Accounts  *service.AccountService
	Activity  *service.ActivityService
	Dashboard *service.DashboardService

	// Zero-valued limits are not installed.
	Limits config.Limits
	// RequireToken puts the write and dashboard routes behind AuthJWT and an
	// owner check.
	RequireToken bool
	// Registry backs /metrics; nil gets a private registry.
	Registry *prometheus.Registry
}

func NewAPIEngine(d Deps) *gin.Engine {
	l := d.Log
	if l == nil {
		l = zap.NewNop()
	}
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := server.NewRouter(l)
	r.Use(mdw.RequestID())
	lim := d.Limits
	if lim.RPS > 0 {
		r.Use(mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst))
	}
	if lim.PerIPRPS > 0 {
		r.Use(mdw.RateLimitPerIP(rate.Limit(lim.PerIPRPS), lim.PerIPBurst))
	}
	if lim.MaxConcurrent > 0 {
		r.Use(mdw.ConcurrencyLimit(lim.MaxConcurrent))
	}
	if lim.MaxBodyBytes > 0 {
		r.Use(mdw.MaxBodyBytes(lim.MaxBodyBytes))
	}
	if lim.RequestTimeoutSec > 0 {
		r.Use(mdw.Timeout(time.Duration(lim.RequestTimeoutSec) * time.Second))
	}
	r.Use(mdw.Metrics(reg), mdw.AccessLog(l))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	MountAll(ez.New(r, l, false), handler.NewAccountHandler(d.Accounts, d.JWT))

	owned := r.Group("")
	if d.RequireToken {
		owned.Use(mdw.AuthJWT(d.JWT))
	}
	MountAll(ez.New(owned, l, d.RequireToken),
		handler.NewDashboardHandler(d.Dashboard),
		handler.NewActivityHandler(d.Activity),
	)
	return r
}
