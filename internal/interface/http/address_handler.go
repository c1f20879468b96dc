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

type AddressHandler struct {
	Svc *app.AddressService
}

func NewAddressHandler(svc *app.AddressService) *AddressHandler {
	return &AddressHandler{Svc: svc}
}

func (h *AddressHandler) Create(c *gin.Context) {
	uid, ok := middleware.UserIDFromCtx(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	var req app.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), uid, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "Address created")
}

func (h *AddressHandler) List(c *gin.Context) {
	uid, ok := middleware.UserIDFromCtx(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	addresses, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, addresses, "Addresses fetched")
}

func (h *AddressHandler) Update(c *gin.Context) {
	uid, ok := middleware.UserIDFromCtx(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("addressId"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "Required fields missing", nil)
		return
	}
	var req app.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Update(c.Request.Context(), uid, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a, "Address updated")
}

func (h *AddressHandler) Delete(c *gin.Context) {
	uid, ok := middleware.UserIDFromCtx(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("addressId"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "Required fields missing", nil)
		return
	}
	a, err := h.Svc.Delete(c.Request.Context(), uid, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a, "Address deleted")
}
