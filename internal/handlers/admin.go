package handlers

import (
	"net/http"
	"strconv"

	"adhub-backend/internal/models"
	"adhub-backend/internal/services"
	"adhub-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db            *gorm.DB
	notionService *services.NotionService
	validator     *validator.Validate
}

func NewAdminHandler(db *gorm.DB, notionService *services.NotionService) *AdminHandler {
	return &AdminHandler{
		db:            db,
		notionService: notionService,
		validator:     validator.New(),
	}
}

func (h *AdminHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.InternalError(c)
		return
	}
	utils.Success(c, users)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}

	var req models.UserRoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	var user models.User
	if err := h.db.First(&user, uint(userID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "user not found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	updates := map[string]interface{}{"role": req.Role}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := h.db.Model(&user).Updates(updates).Error; err != nil {
		utils.InternalError(c)
		return
	}

	utils.SuccessWithMessage(c, "user updated", user)
}

// TriggerNotionSync runs the workspace sync outside its cron schedule.
func (h *AdminHandler) TriggerNotionSync(c *gin.Context) {
	managers, err := h.notionService.SyncManagers(c.Request.Context())
	if err != nil {
		utils.Error(c, http.StatusBadGateway, "manager sync failed: "+err.Error())
		return
	}

	accounts, err := h.notionService.SyncAccounts(c.Request.Context())
	if err != nil {
		utils.Error(c, http.StatusBadGateway, "account sync failed: "+err.Error())
		return
	}

	utils.Success(c, gin.H{
		"managers_synced": managers,
		"accounts_synced": accounts,
	})
}
