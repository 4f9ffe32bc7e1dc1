package handler

import (
	"finly/internal/metrics"
	"finly/internal/middleware"

	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	Auth       *middleware.AuthMiddleware
	Metrics    *metrics.Metrics
	CORSOrigin string
}

// NewRouter mounts every route at the root and again under /api/v1.
func NewRouter(h *Handlers, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(cfg.Metrics))
	if cfg.CORSOrigin != "" {
		router.Use(middleware.CORS(cfg.CORSOrigin))
	}

	router.GET("/health", Health)
	router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	h.mount(&router.RouterGroup, cfg.Auth)
	h.mount(router.Group("/api/v1"), cfg.Auth)
	return router
}

func (h *Handlers) mount(g *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	g.POST("/auth/register", h.Users.Register)
	g.POST("/auth/login", h.Users.Login)
	g.GET("/reviews", h.Reviews.ListRecent)

	private := g.Group("")
	private.Use(auth.RequireAuth())
	{
		private.GET("/expenses", h.Expenses.List)
		private.POST("/expenses", h.Expenses.Create)
		private.DELETE("/expenses/:id", h.Expenses.Delete)

		private.GET("/profile", h.Profiles.Get)
		private.PUT("/profile", h.Profiles.Update)

		private.POST("/reviews", h.Reviews.Create)

		private.POST("/advice/tips", h.Advice.SavingTips)
		private.GET("/advice/alerts", h.Advice.SpendingAlerts)

		private.GET("/users/total", h.Users.Total)
		private.GET("/user/total", h.Users.Total)
	}
}
