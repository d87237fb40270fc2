package booking

import (
	"net/http"
	"strconv"

	"floorcare/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	bookings := protected.Group("/bookings")
	{
		bookings.POST("", h.Create)
		bookings.GET("/me", h.GetMine)
		bookings.GET("/:id", h.GetByID)
		bookings.PATCH("/:id/status", h.UpdateStatus)
		bookings.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	bookings := admin.Group("/bookings/admin")
	{
		bookings.GET("", h.AdminList)
		bookings.GET("/:id", h.AdminGetByID)
		bookings.PATCH("/:id/status", h.AdminUpdateStatus)
		bookings.DELETE("/:id", h.AdminDelete)
	}
}

// Create books a flooring service visit for the authenticated user.
// @Summary		Create booking
// @Security	BearerAuth
// @Param		request	body	CreateBookingRequest	true	"booking fields"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{} "validation failure naming the field"
// @Router		/bookings [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

// GetMine lists the caller's bookings newest-first with pagination.
// @Summary		My bookings
// @Security	BearerAuth
// @Param		page	query	int		false	"page (default 1)"
// @Param		limit	query	int		false	"page size (1-100, default 10)"
// @Param		status	query	string	false	"pending or completed"
// @Success		200	{object}	map[string]interface{}
// @Router		/bookings/me [GET]
func (h *Handler) GetMine(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = defaultPageLimit
	}
	status := c.Query("status")

	result, err := h.service.GetMyBookings(c.Request.Context(), c.GetInt64("user_id"), page, limit, status)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetByID returns one booking; callers see only their own unless admin.
// @Summary		Get booking
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/bookings/{id} [GET]
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBookingByID(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// UpdateStatus changes a booking's status. Only admins may do this,
// including for their own bookings.
// @Summary		Update booking status
// @Security	BearerAuth
// @Param		request	body	UpdateStatusRequest	true	"pending or completed"
// @Success		200	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Router		/bookings/{id}/status [PATCH]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status is required")
		return
	}

	b, err := h.service.UpdateBookingStatus(c.Request.Context(), c.GetInt64("user_id"), id, req.Status)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// Delete removes a booking; owner or admin only.
// @Summary		Delete booking
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Router		/bookings/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.DeleteBooking(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// AdminList returns every booking newest-first.
// @Summary		List all bookings (admin)
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Router		/bookings/admin [GET]
func (h *Handler) AdminList(c *gin.Context) {
	items, err := h.service.GetAllBookingsAdmin(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": items})
}

func (h *Handler) AdminGetByID(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBookingByIDAdmin(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) AdminUpdateStatus(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status is required")
		return
	}

	b, err := h.service.UpdateBookingStatusAdmin(c.Request.Context(), id, req.Status)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) AdminDelete(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.DeleteBookingAdmin(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return 0, false
	}
	return id, true
}
