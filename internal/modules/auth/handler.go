package auth

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"floorcare/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler manages all HTTP interactions for authentication and profiles
type Handler struct {
	service       *Service
	uploadDir     string
	maxAvatarSize int64
}

func NewHandler(service *Service, uploadDir string, maxAvatarSize int64) *Handler {
	return &Handler{
		service:       service,
		uploadDir:     uploadDir,
		maxAvatarSize: maxAvatarSize,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/verify-reset-otp", h.VerifyResetOtp)
		authGroup.POST("/reset-password", h.ResetPassword)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.GET("/me", h.GetMe)
		authGroup.PUT("/me", h.UpdateMe)
		authGroup.POST("/avatar", h.UploadAvatar)
		authGroup.DELETE("/avatar", h.DeleteAvatar)
	}
}

// Register creates a new account and issues a session token.
// @Summary		Register
// @Param		request	body	RegisterRequest	true	"email, password, optional role"
// @Success		201	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{} "Email already registered"
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", firstBindingError(err))
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Login authenticates by email and password.
// @Summary		Login
// @Param		request	body	LoginRequest	true	"email, password"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{} "Invalid email or password"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", firstBindingError(err))
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// GetMe returns the authenticated user's profile.
// @Summary		Current profile
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Router		/auth/me [GET]
func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.GetCurrentUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": ToUserResponse(user)})
}

// UpdateMe partially updates optional profile fields. Email and role
// cannot be changed here.
// @Summary		Update profile
// @Security	BearerAuth
// @Param		request	body	UpdateProfileRequest	true	"sparse profile patch"
// @Success		200	{object}	map[string]interface{}
// @Router		/auth/me [PUT]
func (h *Handler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": ToUserResponse(user)})
}

// UploadAvatar stores a new avatar image (multipart field "avatar",
// image/* only, max 2MB) and records its public URL.
// @Summary		Upload avatar
// @Security	BearerAuth
// @Accept		multipart/form-data
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{} "non-image or too large"
// @Router		/auth/avatar [POST]
func (h *Handler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Avatar file is required")
		return
	}

	if file.Size > h.maxAvatarSize {
		response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", "Avatar must be at most 2MB")
		return
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Avatar must be an image")
		return
	}

	avatarDir := filepath.Join(h.uploadDir, "avatars")
	if err := os.MkdirAll(avatarDir, os.ModePerm); err != nil {
		response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to create upload directory")
		return
	}

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(avatarDir, filename)); err != nil {
		response.Error(c, http.StatusInternalServerError, "SAVE_FAILED", "Failed to save file")
		return
	}

	user, err := h.service.SetAvatar(c.Request.Context(), c.GetInt64("user_id"), "/uploads/avatars/"+filename)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": ToUserResponse(user)})
}

// DeleteAvatar clears the avatar reference and removes the stored file
// best-effort; a missing file is not an error.
// @Summary		Delete avatar
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Router		/auth/avatar [DELETE]
func (h *Handler) DeleteAvatar(c *gin.Context) {
	oldURL, user, err := h.service.ClearAvatar(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if strings.HasPrefix(oldURL, "/uploads/") {
		_ = os.Remove(filepath.Join(h.uploadDir, strings.TrimPrefix(oldURL, "/uploads/")))
	}

	response.Success(c, http.StatusOK, gin.H{"user": ToUserResponse(user)})
}

// ForgotPassword starts the OTP flow; the reply never reveals whether
// the email exists.
// @Summary		Request password-reset OTP
// @Param		request	body	ForgotPasswordRequest	true	"email"
// @Success		200	{object}	map[string]interface{}
// @Failure		429	{object}	map[string]interface{} "resend cooldown"
// @Router		/auth/forgot-password [POST]
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", firstBindingError(err))
		return
	}

	message, err := h.service.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Message(c, http.StatusOK, message)
}

// VerifyResetOtp checks the 6-digit OTP.
// @Summary		Verify password-reset OTP
// @Param		request	body	VerifyResetOtpRequest	true	"email, otp"
// @Success		200	{object}	map[string]interface{}
// @Failure		429	{object}	map[string]interface{} "too many attempts"
// @Router		/auth/verify-reset-otp [POST]
func (h *Handler) VerifyResetOtp(c *gin.Context) {
	var req VerifyResetOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "OTP must be 6 digits")
		return
	}

	if err := h.service.VerifyResetOtp(c.Request.Context(), req.Email, req.Otp); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "OTP verified")
}

// ResetPassword completes the flow with a verified OTP.
// @Summary		Reset password
// @Param		request	body	ResetPasswordRequest	true	"email, newPassword, confirmPassword"
// @Success		200	{object}	map[string]interface{}
// @Router		/auth/reset-password [POST]
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", firstBindingError(err))
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Email, req.NewPassword, req.ConfirmPassword); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Password reset successful")
}

// firstBindingError keeps the boundary contract of surfacing only the
// first violation.
func firstBindingError(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, "\n"); i >= 0 {
		msg = msg[:i]
	}
	if msg == "" {
		return "Validation error"
	}
	return msg
}
