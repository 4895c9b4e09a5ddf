package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"adhub-backend/internal/models"
	"adhub-backend/internal/services"
	"adhub-backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type stubFetcher struct{}

func (stubFetcher) FetchDaily(ctx context.Context, account *models.Account, from, to time.Time) ([]models.DailyMetric, error) {
	var rows []models.DailyMetric
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		rows = append(rows, models.DailyMetric{Date: d, Spend: 25, Clicks: 10})
	}
	return rows, nil
}

func newReportTestRouter(t *testing.T, db *gorm.DB, user *models.User) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	metricsService := services.NewMetricsService(db, stubFetcher{}, 7)
	accountService := services.NewAccountService(db)
	handler := NewReportHandler(metricsService, accountService)

	router := gin.New()
	authed := router.Group("", func(c *gin.Context) {
		c.Set("user", user)
		c.Set("user_id", user.ID)
	})
	authed.GET("/accounts/:id/metrics", handler.GetMetrics)
	authed.POST("/reports/sync", handler.Sync)
	return router
}

func TestGetMetricsScopedToManager(t *testing.T) {
	db := testutil.OpenTestDB(t)
	manager := testutil.CreateTestUser(t, db, "gestor@example.com", "staff")
	stranger := testutil.CreateTestUser(t, db, "outro@example.com", "staff")
	account := testutil.CreateTestAccount(t, db, "Padaria Central", manager.Email)

	row := models.DailyMetric{
		AccountID: account.ID,
		Date:      time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Spend:     123.45,
		Revenue:   678.90,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed metric: %v", err)
	}

	path := fmt.Sprintf("/accounts/%d/metrics?from=2025-04-01&to=2025-04-02", account.ID)

	w := testutil.PerformJSON(t, newReportTestRouter(t, db, stranger), http.MethodGet, path, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("stranger read: status = %d, want 404, body = %s", w.Code, w.Body.String())
	}

	w = testutil.PerformJSON(t, newReportTestRouter(t, db, manager), http.MethodGet, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("manager read: status = %d, body = %s", w.Code, w.Body.String())
	}

	admin := testutil.CreateTestUser(t, db, "admin@example.com", "admin")
	w = testutil.PerformJSON(t, newReportTestRouter(t, db, admin), http.MethodGet, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin read: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestSyncScopedToManager(t *testing.T) {
	db := testutil.OpenTestDB(t)
	manager := testutil.CreateTestUser(t, db, "gestor@example.com", "staff")
	stranger := testutil.CreateTestUser(t, db, "outro@example.com", "staff")
	account := testutil.CreateTestAccount(t, db, "Padaria Central", manager.Email)

	body := gin.H{"account_id": account.ID, "backfill_days": 7}

	w := testutil.PerformJSON(t, newReportTestRouter(t, db, stranger), http.MethodPost, "/reports/sync", body)
	if w.Code != http.StatusNotFound {
		t.Fatalf("stranger sync: status = %d, want 404, body = %s", w.Code, w.Body.String())
	}

	var count int64
	if err := db.Model(&models.DailyMetric{}).Where("account_id = ?", account.ID).Count(&count).Error; err != nil {
		t.Fatalf("count metrics: %v", err)
	}
	if count != 0 {
		t.Fatalf("stranger sync wrote %d metric rows", count)
	}

	w = testutil.PerformJSON(t, newReportTestRouter(t, db, manager), http.MethodPost, "/reports/sync", body)
	if w.Code != http.StatusOK {
		t.Fatalf("manager sync: status = %d, body = %s", w.Code, w.Body.String())
	}
}
