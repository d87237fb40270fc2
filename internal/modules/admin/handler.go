package admin

import (
	"net/http"
	"strconv"

	"floorcare/internal/modules/auth"
	"floorcare/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	session *SessionService
	users   *UsersService
}

func NewHandler(session *SessionService, users *UsersService) *Handler {
	return &Handler{
		session: session,
		users:   users,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.POST("/admin/login", h.Login)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	users := admin.Group("/admin/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

// Login authenticates the panel operator and issues an admin token.
// @Summary		Admin panel login
// @Param		request	body	LoginRequest	true	"operator credentials"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/admin/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	token, err := h.session.Login(req.Email, req.Password)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"role":  "admin",
	})
}

// ListUsers returns every account newest-first, sanitized.
// @Summary		List users (admin)
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Router		/admin/users [GET]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.FindAllUsers(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	out := make([]auth.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, auth.ToUserResponse(&users[i]))
	}

	response.Success(c, http.StatusOK, gin.H{"users": out})
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	user, err := h.users.FindUserByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": auth.ToUserResponse(user)})
}

// UpdateUser applies a sparse patch of profile fields to any account.
// @Summary		Update user (admin)
// @Security	BearerAuth
// @Param		request	body	UpdateUserRequest	true	"sparse profile patch"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/admin/users/{id} [PUT]
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.users.UpdateUserByID(c.Request.Context(), id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": auth.ToUserResponse(user)})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	user, err := h.users.DeleteUserByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": auth.ToUserResponse(user)})
}

func userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user id")
		return 0, false
	}
	return id, true
}
