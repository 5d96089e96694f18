package review

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skillbridge/internal/middleware"
	"skillbridge/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	// Public routes (no auth required)
	if public != nil {
		public.GET("/services/:id/reviews", h.ListForService)
		public.GET("/services/:id/reviews/summary", h.Summary)
	}

	// Protected routes (auth required)
	if protected != nil {
		protected.POST("/reviews", h.Create)
		protected.POST("/reviews/:id/response", h.Respond)
		protected.GET("/bookings/:id/review", h.GetForBooking)
	}
}

// Create stores a review of a completed booking.
// @Summary		Write a review
// @Tags		Reviews
// @Security	BearerAuth
// @Param		request	body	CreateReviewRequest	true	"booking_id, rating, comment"
// @Success		201	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}	"Not the booking's customer or wrong role"
// @Failure		409	{object}	map[string]interface{}	"Booking not completed or already reviewed"
// @Router		/reviews [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rv, err := h.svc.Create(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"review": rv})
}

// @Summary		List reviews of a service
// @Tags		Reviews
// @Param		id		path	int	true	"Service ID"
// @Param		limit	query	int	false	"Page size (default 20)"
// @Param		offset	query	int	false	"Offset"
// @Router		/services/:id/reviews [GET]
func (h *Handler) ListForService(c *gin.Context) {
	serviceID, ok := pathID(c, "Invalid service ID")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	res, err := h.svc.ListForService(c.Request.Context(), serviceID, limit, offset)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Summary(c *gin.Context) {
	serviceID, ok := pathID(c, "Invalid service ID")
	if !ok {
		return
	}

	sum, err := h.svc.Summary(c.Request.Context(), serviceID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, sum)
}

// Respond adds the worker's answer to a review.
// @Summary		Respond to a review
// @Tags		Reviews
// @Security	BearerAuth
// @Param		id		path	int				true	"Review ID"
// @Param		request	body	RespondRequest	true	"Response text"
// @Failure		409	{object}	map[string]interface{}	"Already responded"
// @Router		/reviews/:id/response [POST]
func (h *Handler) Respond(c *gin.Context) {
	reviewID, ok := pathID(c, "Invalid review ID")
	if !ok {
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rv, err := h.svc.Respond(c.Request.Context(), middleware.ActorFrom(c), reviewID, req.Response)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"review": rv})
}

func (h *Handler) GetForBooking(c *gin.Context) {
	bookingID, ok := pathID(c, "Invalid booking ID")
	if !ok {
		return
	}

	rv, err := h.svc.GetForBooking(c.Request.Context(), middleware.ActorFrom(c), bookingID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"review": rv})
}

func pathID(c *gin.Context, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", message)
		return 0, false
	}
	return id, true
}
