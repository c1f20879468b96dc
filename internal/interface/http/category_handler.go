package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	app "github.com/greenkart/greenkart-api/internal/application"
	"github.com/greenkart/greenkart-api/pkg/response"
	"github.com/greenkart/greenkart-api/pkg/validation"
)

type CategoryHandler struct {
	Svc *app.CatalogService
}

func NewCategoryHandler(svc *app.CatalogService) *CategoryHandler {
	return &CategoryHandler{Svc: svc}
}

func categoryIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "Category id is required", nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.Svc.ListCategories(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categories, "Categories fetched")
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req app.CreateCategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "title, slug, imageUrl, and imagePublicId are required", validation.ToDetails(err))
		return
	}
	category, err := h.Svc.CreateCategory(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, category, "Category created")
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := categoryIDParam(c)
	if !ok {
		return
	}
	var req app.UpdateCategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	category, err := h.Svc.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, category, "Category updated")
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := categoryIDParam(c)
	if !ok {
		return
	}
	category, err := h.Svc.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, category, "Category deleted")
}
