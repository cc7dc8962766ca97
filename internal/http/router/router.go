package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/payout-admin/internal/config"
	"github.com/ignatzorin/payout-admin/internal/http/handlers"
	"github.com/ignatzorin/payout-admin/internal/http/middleware"
)

// Handlers - хендлеры, которые подключает роутер.
type Handlers struct {
	Health      *handlers.HealthHandler
	Dashboard   *handlers.DashboardHandler
	Users       *handlers.UserHandler
	Withdrawals *handlers.WithdrawalHandler
	WS          *handlers.WSHandler
}

func SetupRouter(cfg *config.Config, log logrus.FieldLogger, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.ErrorHandler(log))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	api.Use(middleware.Operator(cfg.AdminOperatorID))
	{
		api.GET("/ws", h.WS.Handle)

		api.GET("/dashboard/summary", h.Dashboard.GetSummary)
		api.GET("/dashboard/recent-withdrawals", h.Dashboard.GetRecentWithdrawals)

		api.GET("/users", h.Users.ListUsers)
		api.GET("/users/count", h.Users.CountUsers)
		api.PATCH("/users/:id/status", middleware.RequireParam("id"), h.Users.UpdateStatus)

		api.GET("/withdrawals", h.Withdrawals.ListWithdrawals)
		api.GET("/withdrawals/stats", h.Withdrawals.GetStats)
		api.GET("/withdrawals/export.xlsx", h.Withdrawals.ExportXLSX)
		api.POST("/withdrawals/:id/actions/:action", middleware.RequireParam("id"), h.Withdrawals.ApplyAction)
		api.PATCH("/withdrawals/:id/status", middleware.RequireParam("id"), h.Withdrawals.UpdateStatus)
	}

	return r
}
