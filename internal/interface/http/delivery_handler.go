package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/greenkart/greenkart-api/internal/application"
	"github.com/greenkart/greenkart-api/pkg/response"
	"github.com/greenkart/greenkart-api/pkg/validation"
)

// DeliveryHandler serves the handoff views used by delivery partners.
type DeliveryHandler struct {
	Svc *app.OrderService
}

func NewDeliveryHandler(svc *app.OrderService) *DeliveryHandler {
	return &DeliveryHandler{Svc: svc}
}

func (h *DeliveryHandler) ListShipped(c *gin.Context) {
	page, limit := pageParams(c)
	out, err := h.Svc.ListShipped(c.Request.Context(), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "Shipped orders fetched successfully")
}

func (h *DeliveryHandler) ListDelivered(c *gin.Context) {
	page, limit := pageParams(c)
	out, err := h.Svc.ListDelivered(c.Request.Context(), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "Delivered orders fetched successfully")
}

func (h *DeliveryHandler) GetDetails(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	o, err := h.Svc.DeliveryDetails(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "Order details fetched successfully")
}

func (h *DeliveryHandler) Deliver(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req struct {
		OTP string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Order ID and OTP are required", validation.ToDetails(err))
		return
	}
	o, err := h.Svc.VerifyOTPAndDeliver(c.Request.Context(), id, req.OTP)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "Order delivered successfully")
}

func (h *DeliveryHandler) Cancel(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Order ID and reason are required", validation.ToDetails(err))
		return
	}
	o, err := h.Svc.CancelDelivery(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "Order cancelled successfully")
}
