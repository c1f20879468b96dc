package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/greenkart/greenkart-api/internal/application"
	"github.com/greenkart/greenkart-api/internal/interface/middleware"
	"github.com/greenkart/greenkart-api/pkg/response"
	"github.com/greenkart/greenkart-api/pkg/validation"
)

type CartHandler struct {
	Svc *app.CartService
}

func NewCartHandler(svc *app.CartService) *CartHandler {
	return &CartHandler{Svc: svc}
}

func (h *CartHandler) Get(c *gin.Context) {
	uid, ok := middleware.UserIDFromCtx(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	cart, err := h.Svc.Get(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart, "User cart fetched")
}

func (h *CartHandler) AddItem(c *gin.Context) {
	uid, ok := middleware.UserIDFromCtx(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	var req app.CartItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	cart, err := h.Svc.AddItem(c.Request.Context(), uid, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart, "Item added to cart")
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	uid, ok := middleware.UserIDFromCtx(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	var req app.RemoveCartItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	cart, err := h.Svc.RemoveItem(c.Request.Context(), uid, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart, "Item removed from cart")
}

func (h *CartHandler) Clear(c *gin.Context) {
	uid, ok := middleware.UserIDFromCtx(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	cart, err := h.Svc.Clear(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart, "User cart cleared")
}
