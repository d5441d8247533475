package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"ppf-order-backend/internal/metrics"
	"ppf-order-backend/internal/middleware"
)

type RouterDeps struct {
	Orders   *OrdersHandler
	Auth     *AuthHandler
	Sessions middleware.SessionValidator
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewRouter wires every route. Order submission, sign-in, the package
// catalog and health are public; everything else needs an admin session.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(deps.Metrics.Middleware())

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router.GET("/health", HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	router.GET("/packages", PackagesHandler)

	router.POST("/orders", deps.Orders.CreateOrder)
	router.POST("/auth/sign-in", deps.Auth.SignIn)

	admin := router.Group("/")
	admin.Use(middleware.RequireSession(deps.Sessions))

	admin.GET("/orders", deps.Orders.ListOrders)
	admin.GET("/orders/:id", deps.Orders.GetOrder)
	admin.PUT("/orders/:id", deps.Orders.UpdateOrder)
	admin.DELETE("/orders/:id", deps.Orders.DeleteOrder)

	admin.POST("/auth/sign-out", deps.Auth.SignOut)
	admin.GET("/auth/session", deps.Auth.Session)

	return router
}
