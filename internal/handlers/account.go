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

type AccountHandler struct {
	accountService *services.AccountService
	validator      *validator.Validate
}

func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		validator:      validator.New(),
	}
}

func (h *AccountHandler) GetAccounts(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	req := models.AccountListRequest{Page: 1, Limit: 50}
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid query parameters")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	accounts, pagination, err := h.accountService.GetAccounts(user, &req)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{
		"accounts":   accounts,
		"pagination": pagination,
	})
}

func (h *AccountHandler) GetAccountSummaries(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	summaries, err := h.accountService.Summaries(user)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, summaries)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	accountID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid account id")
		return
	}

	account, err := h.accountService.GetAccount(user, uint(accountID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "account not found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	utils.Success(c, account)
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	accountID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid account id")
		return
	}

	var req models.AccountUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	account, err := h.accountService.UpdateAccount(uint(accountID), &req)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "account not found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	utils.SuccessWithMessage(c, "account updated", account)
}
