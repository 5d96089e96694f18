package saved

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skillbridge/internal/middleware"
	"skillbridge/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	saved := rg.Group("/saved-services")
	{
		saved.GET("", h.List)
		saved.POST("/:serviceId/toggle", h.Toggle)
		saved.GET("/:serviceId", h.Check)
	}
}

// List returns the caller's saved services
//
// @Summary List saved services
// @Tags Saved
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} SavedListResponse
// @Router /saved-services [get]
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	rows, total, err := h.service.List(c.Request.Context(), middleware.ActorFrom(c), perPage, (page-1)*perPage)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toSavedListResponse(rows, total, page, perPage))
}

// Toggle adds or removes a service from the saved list
//
// @Summary Toggle saved service
// @Tags Saved
// @Security BearerAuth
// @Param serviceId path int64 true "Service ID"
// @Success 200 {object} ToggleResponse
// @Failure 404 {object} map[string]interface{}
// @Router /saved-services/{serviceId}/toggle [post]
func (h *Handler) Toggle(c *gin.Context) {
	serviceID, ok := parseServiceID(c)
	if !ok {
		return
	}

	saved, err := h.service.Toggle(c.Request.Context(), middleware.ActorFrom(c), serviceID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToggleResponse{Saved: saved})
}

// @Router /saved-services/{serviceId} [get]
func (h *Handler) Check(c *gin.Context) {
	serviceID, ok := parseServiceID(c)
	if !ok {
		return
	}

	saved, err := h.service.IsSaved(c.Request.Context(), middleware.ActorFrom(c), serviceID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, CheckResponse{IsSaved: saved})
}

func parseServiceID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("serviceId"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID")
		return 0, false
	}
	return id, true
}
