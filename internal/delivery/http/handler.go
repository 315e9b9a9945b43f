package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"order-desk/internal/models"
	"order-desk/internal/service"
)

type Handler struct {
	svc service.Order
}

func NewHandler(s service.Order) *Handler {
	return &Handler{svc: s}
}

type listOrdersResponse struct {
	Data  []models.Order `json:"data"`
	Empty string         `json:"empty,omitempty"`
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	api := router.Group("/api")
	{
		orders := api.Group("/orders")
		{
			orders.GET("", h.ListOrders)
			orders.GET("/next-id", h.NextOrderID)
			orders.GET("/:id", h.GetOrder)
			orders.POST("", h.CreateOrder)
			orders.PUT("/:id", h.UpdateOrder)

			orders.POST("/:id/delete", h.RequestDelete)
			orders.POST("/:id/delete/confirm", h.ConfirmDelete)
			orders.POST("/delete/cancel", h.CancelDelete)

			orders.GET("/:id/printable", h.Printable)
			orders.POST("/:id/print", h.PrintOrder)
		}
		api.POST("/merchandise/validate", h.ValidateItem)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			newErrorResponse(c, http.StatusNotFound, "not found")
			return
		}
		c.Status(http.StatusNotFound)
	})

	return router
}
