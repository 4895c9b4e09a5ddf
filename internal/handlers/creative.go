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

type CreativeHandler struct {
	creativeService *services.CreativeService
	validator       *validator.Validate
}

func NewCreativeHandler(creativeService *services.CreativeService) *CreativeHandler {
	return &CreativeHandler{
		creativeService: creativeService,
		validator:       validator.New(),
	}
}

func draftID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid draft id")
		return 0, false
	}
	return uint(id), true
}

func (h *CreativeHandler) GetDrafts(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	req := models.DraftListRequest{Page: 1, Limit: 20}
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid query parameters")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	drafts, pagination, err := h.creativeService.GetDrafts(userID, &req)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{
		"drafts":     drafts,
		"pagination": pagination,
	})
}

func (h *CreativeHandler) CreateDraft(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req models.DraftCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	draft, err := h.creativeService.CreateDraft(userID, &req)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "draft created", draft)
}

func (h *CreativeHandler) GetDraft(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, ok := draftID(c)
	if !ok {
		return
	}

	draft, err := h.creativeService.GetDraft(id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "draft not found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	utils.Success(c, draft)
}

func (h *CreativeHandler) UpdateDraft(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, ok := draftID(c)
	if !ok {
		return
	}

	var req models.DraftUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	draft, err := h.creativeService.UpdateDraft(id, userID, &req)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "draft not found or already submitted")
		} else {
			utils.InternalError(c)
		}
		return
	}

	utils.SuccessWithMessage(c, "draft updated", draft)
}

func (h *CreativeHandler) SubmitDraft(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, ok := draftID(c)
	if !ok {
		return
	}

	draft, err := h.creativeService.SubmitDraft(id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "draft not found")
		} else {
			utils.Error(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessWithMessage(c, "creative submitted", draft)
}

func (h *CreativeHandler) DeleteDraft(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	id, ok := draftID(c)
	if !ok {
		return
	}

	if err := h.creativeService.DeleteDraft(id, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "draft not found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	utils.SuccessWithMessage(c, "draft deleted", nil)
}
