package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	app "github.com/greenkart/greenkart-api/internal/application"
	"github.com/greenkart/greenkart-api/pkg/response"
	"github.com/greenkart/greenkart-api/pkg/validation"
)

// ProductHandler covers products and their varieties.
type ProductHandler struct {
	Svc *app.CatalogService
}

func NewProductHandler(svc *app.CatalogService) *ProductHandler {
	return &ProductHandler{Svc: svc}
}

func hexParam(c *gin.Context, name, message string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, message, nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Svc.ListProducts(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, products, "Products fetched")
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req app.CreateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "title, category, and images[] are required", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "Product created")
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := hexParam(c, "productId", "Valid product id is required")
	if !ok {
		return
	}
	var req app.UpdateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "Product updated")
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := hexParam(c, "productId", "Valid product id is required")
	if !ok {
		return
	}
	p, err := h.Svc.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "Product deleted")
}

func (h *ProductHandler) AddVariety(c *gin.Context) {
	productID, ok := hexParam(c, "productId", "Valid productId is required")
	if !ok {
		return
	}
	var req app.VarietyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	v, err := h.Svc.AddVariety(c.Request.Context(), productID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, v, "Variety added")
}

func (h *ProductHandler) UpdateVariety(c *gin.Context) {
	productID, ok := hexParam(c, "productId", "Valid productId and varietyId are required")
	if !ok {
		return
	}
	varietyID, ok := hexParam(c, "varietyId", "Valid productId and varietyId are required")
	if !ok {
		return
	}
	var req app.VarietyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	v, err := h.Svc.UpdateVariety(c.Request.Context(), productID, varietyID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, "Variety updated")
}

func (h *ProductHandler) DeleteVariety(c *gin.Context) {
	productID, ok := hexParam(c, "productId", "Valid productId and varietyId are required")
	if !ok {
		return
	}
	varietyID, ok := hexParam(c, "varietyId", "Valid productId and varietyId are required")
	if !ok {
		return
	}
	v, err := h.Svc.DeleteVariety(c.Request.Context(), productID, varietyID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, "Variety deleted")
}
