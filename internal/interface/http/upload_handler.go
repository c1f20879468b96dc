package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenkart/greenkart-api/pkg/media"
	"github.com/greenkart/greenkart-api/pkg/response"
)

// UploadHandler fronts the media host: signed direct-upload payloads,
// server-side uploads and deletions.
type UploadHandler struct {
	Media *media.Cloudinary
}

func NewUploadHandler(m *media.Cloudinary) *UploadHandler {
	return &UploadHandler{Media: m}
}

func (h *UploadHandler) SignedUpload(c *gin.Context) {
	var req media.SignedUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", nil)
		return
	}
	payload, err := h.Media.BuildSignedUploadPayload(req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, payload, "Signed upload payload generated")
}

func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "No files provided for upload", nil)
		return
	}
	files := form.File["files"]
	results, err := h.Media.UploadMany(c.Request.Context(), files, c.PostForm("folder"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, results, "Files uploaded successfully")
}

func (h *UploadHandler) DeleteOne(c *gin.Context) {
	publicID := c.Param("publicId")
	result, err := h.Media.DeleteOne(c.Request.Context(), publicID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"result": result, "publicId": publicID}, "Image deleted")
}

func (h *UploadHandler) DeleteMany(c *gin.Context) {
	var req struct {
		PublicIDs []string `json:"publicIds" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "At least one valid publicId must be provided", nil)
		return
	}
	results, err := h.Media.DeleteMany(c.Request.Context(), req.PublicIDs)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, results, "Images deleted")
}
