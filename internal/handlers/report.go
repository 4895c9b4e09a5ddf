package handlers

import (
	"net/http"
	"strconv"
	"time"

	"adhub-backend/internal/models"
	"adhub-backend/internal/services"
	"adhub-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type ReportHandler struct {
	metricsService *services.MetricsService
	accountService *services.AccountService
	validator      *validator.Validate
}

func NewReportHandler(metricsService *services.MetricsService, accountService *services.AccountService) *ReportHandler {
	return &ReportHandler{
		metricsService: metricsService,
		accountService: accountService,
		validator:      validator.New(),
	}
}

// Sync advances one chunk of an account's metrics backfill. Dashboards
// call it in a loop until the response says completed.
func (h *ReportHandler) Sync(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	var req models.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	// the caller must be able to see the account to touch its metrics
	if _, err := h.accountService.GetAccount(user, req.AccountID); err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "account not found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	result, err := h.metricsService.SyncChunk(c.Request.Context(), req.AccountID, req.BackfillDays)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "account not found")
		} else {
			utils.Error(c, http.StatusBadGateway, "sync failed: "+err.Error())
		}
		return
	}

	utils.Success(c, result)
}

func (h *ReportHandler) GetMetrics(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	accountID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid account id")
		return
	}

	if _, err := h.accountService.GetAccount(user, uint(accountID)); err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "account not found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	from, err := time.Parse("2006-01-02", c.DefaultQuery("from", time.Now().AddDate(0, 0, -30).Format("2006-01-02")))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid from date")
		return
	}
	to, err := time.Parse("2006-01-02", c.DefaultQuery("to", time.Now().Format("2006-01-02")))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid to date")
		return
	}

	rows, err := h.metricsService.GetMetrics(uint(accountID), from, to)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, rows)
}
