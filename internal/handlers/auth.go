package handlers

import (
	"errors"
	"net/http"

	"adhub-backend/internal/config"
	"adhub-backend/internal/models"
	"adhub-backend/internal/services"
	"adhub-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authService *services.AuthService
	config      *config.Config
	validator   *validator.Validate
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		config:      cfg,
		validator:   validator.New(),
	}
}

func (h *AuthHandler) CheckWhitelist(c *gin.Context) {
	var req models.WhitelistCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	resp, err := h.authService.CheckWhitelist(req.Email)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, resp)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrNotWhitelisted) {
			utils.Forbidden(c, err.Error())
			return
		}
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := utils.GenerateToken(
		user.ID, user.Email, user.Role,
		h.config.JWT.Secret, h.config.JWT.ExpireHours)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.SuccessWithMessage(c, "registered", models.UserResponse{
		User:  user,
		Token: token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	user, err := h.authService.Login(&req)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	token, err := utils.GenerateToken(
		user.ID, user.Email, user.Role,
		h.config.JWT.Secret, h.config.JWT.ExpireHours)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.SuccessWithMessage(c, "logged in", models.UserResponse{
		User:  user,
		Token: token,
	})
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		utils.InternalError(c)
		return
	}

	storage, err := h.authService.GetUserStorage(userID)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"storage": gin.H{
			"used_space": storage.UsedSpace,
			"max_space":  h.config.File.MaxUserStorage,
			"file_count": storage.FileCount,
		},
		"created_at": user.CreatedAt,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	// stateless JWT, the client just drops the token
	utils.SuccessWithMessage(c, "logged out", nil)
}
