package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	app "github.com/greenkart/greenkart-api/internal/application"
	"github.com/greenkart/greenkart-api/pkg/response"
	"github.com/greenkart/greenkart-api/pkg/validation"
)

// AdminHandler serves user management and order administration.
type AdminHandler struct {
	Users  *app.UserAdminService
	Orders *app.OrderService
}

func NewAdminHandler(users *app.UserAdminService, orders *app.OrderService) *AdminHandler {
	return &AdminHandler{Users: users, Orders: orders}
}

func pageParams(c *gin.Context) (int64, int64) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit < 1 {
		limit = 20
	}
	return page, limit
}

func userIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "Valid user id is required", nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "Users fetched")
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid role value", validation.ToDetails(err))
		return
	}
	u, err := h.Users.SetRole(c.Request.Context(), id, req.Role)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "User role updated")
}

func (h *AdminHandler) BlockUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Blocked *bool `json:"blocked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "blocked must be a boolean", validation.ToDetails(err))
		return
	}
	u, err := h.Users.SetBlocked(c.Request.Context(), id, *req.Blocked)
	if err != nil {
		response.FromError(c, err)
		return
	}
	msg := "User unblocked"
	if *req.Blocked {
		msg = "User blocked"
	}
	response.Success(c, http.StatusOK, u, msg)
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	page, limit := pageParams(c)
	out, err := h.Orders.AdminList(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "Orders fetched successfully")
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	o, err := h.Orders.AdminGet(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "Order fetched successfully")
}

func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	o, err := h.Orders.AdminSetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "Order status updated successfully")
}

func (h *AdminHandler) DeleteOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	if err := h.Orders.AdminDelete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Order deleted successfully")
}

func (h *AdminHandler) OrderStats(c *gin.Context) {
	stats, err := h.Orders.AdminStats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats, "Order statistics fetched successfully")
}
