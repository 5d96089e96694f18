package upload

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skillbridge/internal/middleware"
	"skillbridge/internal/pkg/response"
)

// Handler handles HTTP requests for image uploads.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/me/avatar", h.UploadAvatar)
	rg.POST("/services/:id/image", h.UploadServiceImage)
}

// UploadAvatar godoc
// @Summary Upload profile avatar
// @Tags Uploads
// @Accept multipart/form-data
// @Security BearerAuth
// @Param file formData file true "JPEG, PNG or WebP image"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401,503 {object} map[string]interface{}
// @Router /me/avatar [post]
func (h *Handler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, ErrNoFile)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, ErrNoFile)
		return
	}
	defer file.Close()

	url, err := h.service.UploadAvatar(c.Request.Context(), middleware.ActorFrom(c), file, fileHeader.Size)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url})
}

// UploadServiceImage godoc
// @Summary Upload a service image
// @Tags Uploads
// @Accept multipart/form-data
// @Security BearerAuth
// @Param id path int true "Service ID"
// @Param file formData file true "JPEG, PNG or WebP image"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401,403,404,503 {object} map[string]interface{}
// @Router /services/{id}/image [post]
func (h *Handler) UploadServiceImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, ErrNoFile)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, ErrNoFile)
		return
	}
	defer file.Close()

	svc, err := h.service.UploadServiceImage(c.Request.Context(), middleware.ActorFrom(c), id, file, fileHeader.Size)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service": svc})
}
