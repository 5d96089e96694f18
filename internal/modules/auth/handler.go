package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillbridge/internal/middleware"
	"skillbridge/internal/pkg/response"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	me := protected.Group("/me")
	{
		me.GET("", h.GetMe)
		me.PATCH("", h.UpdateProfile)
		me.PUT("/role", h.SelectRole)
	}
}

// Register creates an account without a role.
// @Summary		Register
// @Tags		Auth
// @Param		request	body	RegisterRequest	true	"email, password, full_name, phone"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// Login
// @Summary		Login
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"email, password"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// GetMe returns the current profile. ?include_stats=true adds booking counts.
// @Summary		Current profile
// @Tags		Profile
// @Security	BearerAuth
// @Param		include_stats	query	bool	false	"include booking counts"
// @Success		200	{object}	map[string]interface{}
// @Router		/me [GET]
func (h *Handler) GetMe(c *gin.Context) {
	withStats := c.Query("include_stats") == "true"

	p, err := h.service.Me(c.Request.Context(), middleware.ActorFrom(c), withStats)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": p})
}

// @Summary		Update profile
// @Tags		Profile
// @Security	BearerAuth
// @Param		request	body	UpdateProfileRequest	true	"full_name, phone"
// @Success		200	{object}	map[string]interface{}
// @Router		/me [PATCH]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.service.UpdateProfile(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": p})
}

// SelectRole sets or switches between worker and customer.
// @Summary		Select role
// @Tags		Profile
// @Security	BearerAuth
// @Param		request	body	SelectRoleRequest	true	"role"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Router		/me/role [PUT]
func (h *Handler) SelectRole(c *gin.Context) {
	var req SelectRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.service.SelectRole(c.Request.Context(), middleware.ActorFrom(c), req.Role)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": p})
}
