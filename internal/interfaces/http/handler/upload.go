package handler

import (
	"net/http"

	"github.com/Darkingtail/mall4r/internal/application/upload"
	"github.com/Darkingtail/mall4r/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// UploadFormField is the multipart field the file travels in
const UploadFormField = "file"

// UploadHandler handles /admin/file
type UploadHandler struct {
	BaseHandler
	uploadService *upload.Service
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadService *upload.Service) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Element handles POST /admin/file/upload/element and returns the relative
// object key
func (h *UploadHandler) Element(c *gin.Context) {
	fh, err := c.FormFile(UploadFormField)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidationRequired, "Multipart field \"file\" is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer f.Close()

	key, err := h.uploadService.Upload(c.Request.Context(), upload.File{
		Filename: fh.Filename,
		Size:     fh.Size,
		Body:     f,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, key)
}
