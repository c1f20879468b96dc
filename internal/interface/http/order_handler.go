package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	app "github.com/greenkart/greenkart-api/internal/application"
	"github.com/greenkart/greenkart-api/internal/interface/middleware"
	"github.com/greenkart/greenkart-api/pkg/response"
	"github.com/greenkart/greenkart-api/pkg/validation"
)

// OrderHandler serves the customer-facing order endpoints.
type OrderHandler struct {
	Svc *app.OrderService
}

func NewOrderHandler(svc *app.OrderService) *OrderHandler {
	return &OrderHandler{Svc: svc}
}

func orderIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *OrderHandler) Create(c *gin.Context) {
	uid, ok := middleware.UserIDFromCtx(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	var req app.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	o, err := h.Svc.Create(c.Request.Context(), uid, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, o, "Order created successfully")
}

func (h *OrderHandler) List(c *gin.Context) {
	uid, ok := middleware.UserIDFromCtx(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	orders, err := h.Svc.ListByUser(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders, "User orders fetched")
}

func (h *OrderHandler) Get(c *gin.Context) {
	uid, ok := middleware.UserIDFromCtx(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	o, err := h.Svc.GetForUser(c.Request.Context(), uid, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "Order fetched successfully")
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	uid, ok := middleware.UserIDFromCtx(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "User ID, Order ID and reason required", validation.ToDetails(err))
		return
	}
	o, err := h.Svc.Cancel(c.Request.Context(), uid, id, req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "Order cancelled successfully")
}
