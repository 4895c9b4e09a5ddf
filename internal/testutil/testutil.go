package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"adhub-backend/internal/database"
	"adhub-backend/internal/models"

	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB returns an isolated in-memory database with the full
// schema migrated.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(gormlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// a single connection keeps every query on the same in-memory db
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func CreateTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "unused",
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func CreateTestAccount(t *testing.T, db *gorm.DB, name, managerEmail string) *models.Account {
	t.Helper()

	account := &models.Account{
		NotionID:     "notion-" + name,
		Name:         name,
		Status:       "active",
		ManagerEmail: managerEmail,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("create test account: %v", err)
	}
	return account
}

func CreateTestDeck(t *testing.T, db *gorm.DB, userID uint, title string) *models.Deck {
	t.Helper()

	deck := &models.Deck{
		UserID:    userID,
		Title:     title,
		Type:      "report",
		Status:    "ready",
		CreatedAt: time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC),
	}
	if err := db.Create(deck).Error; err != nil {
		t.Fatalf("create test deck: %v", err)
	}
	return deck
}

// PerformJSON runs one JSON request against a handler-wired engine and
// returns the recorder.
func PerformJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// DecodeJSON unmarshals a response body into a generic map.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}
