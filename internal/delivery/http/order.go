package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"order-desk/internal/models"
	"order-desk/internal/service"
)

// ListOrders
// @Summary ListOrders
// @Description Lists orders newest first, filtered by first or last name when q is set
// @Produce json
// @Param q query string false "search term"
// @Success 200 {object} listOrdersResponse
// @Router /api/orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	orders := h.svc.ListOrders(c.Query("q"))
	resp := listOrdersResponse{Data: orders}
	if len(orders) == 0 {
		resp.Data = []models.Order{}
		resp.Empty = service.EmptyListMessage
	}
	c.JSON(http.StatusOK, resp)
}

// GetOrder
// @Summary GetOrder
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} models.Order
// @Failure 400,404 {object} errorResponse
// @Router /api/orders/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.svc.GetOrder(id)
	if err != nil {
		h.orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// NextOrderID
// @Summary NextOrderID
// @Description Id the next created order will get
// @Produce json
// @Router /api/orders/next-id [get]
func (h *Handler) NextOrderID(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"id": h.svc.NextOrderID()})
}

// CreateOrder
// @Summary CreateOrder
// @Accept json
// @Produce json
// @Success 201 {object} models.Order
// @Failure 400 {object} errorResponse
// @Failure 422 {object} validationResponse
// @Router /api/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var draft models.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	order, err := h.svc.CreateOrder(draft)
	if err != nil {
		h.orderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// UpdateOrder
// @Summary UpdateOrder
// @Description Body is a draft; code may be a string or a number, so a fetched order can be sent back as is
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} models.Order
// @Failure 400,404 {object} errorResponse
// @Failure 422 {object} validationResponse
// @Router /api/orders/{id} [put]
func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var draft models.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	order, err := h.svc.UpdateOrder(id, draft)
	if err != nil {
		h.orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// RequestDelete stages an order for deletion and returns the confirmation prompt.
// @Router /api/orders/{id}/delete [post]
func (h *Handler) RequestDelete(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusAccepted, messageResponse{Message: h.svc.RequestDelete(id)})
}

// ConfirmDelete deletes the order only if it is the one staged by RequestDelete.
// @Router /api/orders/{id}/delete/confirm [post]
func (h *Handler) ConfirmDelete(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := h.svc.ConfirmDelete(id); err != nil {
		if errors.Is(err, service.ErrNothingPending) {
			newErrorResponse(c, http.StatusConflict, err.Error())
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// @Router /api/orders/delete/cancel [post]
func (h *Handler) CancelDelete(c *gin.Context) {
	h.svc.CancelDelete()
	c.Status(http.StatusNoContent)
}

type itemRequest struct {
	ItemCode string `json:"itemCode"`
	ItemName string `json:"itemName"`
}

// ValidateItem
// @Summary ValidateItem
// @Description Checks a merchandise item before it is added to a draft
// @Accept json
// @Success 204
// @Failure 422 {object} itemErrorResponse
// @Router /api/merchandise/validate [post]
func (h *Handler) ValidateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	err := h.svc.ValidateItem(req.ItemCode, req.ItemName)
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var codeErr *service.ItemCodeError
	var nameErr *service.ItemNameError
	switch {
	case errors.As(err, &codeErr):
		c.JSON(http.StatusUnprocessableEntity, itemErrorResponse{Field: codeErr.Message})
	case errors.As(err, &nameErr):
		c.JSON(http.StatusUnprocessableEntity, itemErrorResponse{Alert: nameErr.Message})
	default:
		newErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

// Printable
// @Summary Printable
// @Produce html
// @Param id path string true "order id"
// @Router /api/orders/{id}/printable [get]
func (h *Handler) Printable(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	html, err := h.svc.Printable(id)
	if err != nil {
		h.orderError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// @Router /api/orders/{id}/print [post]
func (h *Handler) PrintOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := h.svc.PrintOrder(id); err != nil {
		if errors.Is(err, service.ErrNoSurface) {
			newErrorResponse(c, http.StatusServiceUnavailable, err.Error())
			return
		}
		h.orderError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

func orderID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		newErrorResponse(c, http.StatusBadRequest, "missing id")
		return "", false
	}
	return id, true
}

func (h *Handler) orderError(c *gin.Context, err error) {
	var verr *service.ValidationErrors
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, validationResponse{Errors: verr.Fields})
	case errors.Is(err, service.ErrNotFound):
		newErrorResponse(c, http.StatusNotFound, "order not found")
	default:
		newErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}
