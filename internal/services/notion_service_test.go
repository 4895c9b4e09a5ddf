package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"adhub-backend/internal/config"
	"adhub-backend/internal/models"
	"adhub-backend/internal/testutil"
)

func titleProp(s string) map[string]interface{} {
	return map[string]interface{}{"type": "title", "title": []map[string]string{{"plain_text": s}}}
}

func selectProp(s string) map[string]interface{} {
	return map[string]interface{}{"type": "select", "select": map[string]string{"name": s}}
}

func emailProp(s string) map[string]interface{} {
	return map[string]interface{}{"type": "email", "email": s}
}

func richTextProp(s string) map[string]interface{} {
	return map[string]interface{}{"type": "rich_text", "rich_text": []map[string]string{{"plain_text": s}}}
}

// fake workspace API: two pages split over two cursor-paginated
// responses, exercising the has_more loop.
func newFakeNotion(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Notion-Version") == "" {
			t.Error("missing Notion-Version header")
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("bad auth header %q", r.Header.Get("Authorization"))
		}

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		first := map[string]interface{}{
			"id": "page-1",
			"properties": map[string]interface{}{
				"Conta":        titleProp("Supermercado Lopes"),
				"Status":       selectProp("Active"),
				"Tier":         selectProp("A"),
				"Gestor Email": emailProp("Ana@Example.com"),
				"Meta Account": richTextProp("act_123"),
			},
		}
		second := map[string]interface{}{
			"id": "page-2",
			"properties": map[string]interface{}{
				"Conta":  titleProp("Academia Fit"),
				"Status": selectProp(""),
			},
		}
		// a page with no title is skipped
		untitled := map[string]interface{}{
			"id":         "page-3",
			"properties": map[string]interface{}{"Status": selectProp("Active")},
		}

		w.Header().Set("Content-Type", "application/json")
		if _, resumed := body["start_cursor"]; !resumed {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"results":     []interface{}{first},
				"has_more":    true,
				"next_cursor": "cursor-2",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results":  []interface{}{second, untitled},
			"has_more": false,
		})
	}))
}

func TestSyncAccounts(t *testing.T) {
	db := testutil.OpenTestDB(t)
	server := newFakeNotion(t)
	defer server.Close()

	svc := NewNotionService(db, config.NotionConfig{Token: "test-token", AccountsDB: "db-accounts"})
	svc.baseURL = server.URL

	synced, err := svc.SyncAccounts(context.Background())
	if err != nil {
		t.Fatalf("SyncAccounts: %v", err)
	}
	if synced != 2 {
		t.Errorf("synced = %d, want 2", synced)
	}

	var account models.Account
	if err := db.Where("notion_id = ?", "page-1").First(&account).Error; err != nil {
		t.Fatalf("load account: %v", err)
	}
	if account.Name != "Supermercado Lopes" {
		t.Errorf("name = %q", account.Name)
	}
	if account.Status != "active" {
		t.Errorf("status should be lowercased, got %q", account.Status)
	}
	if account.ManagerEmail != "ana@example.com" {
		t.Errorf("manager email should be lowercased, got %q", account.ManagerEmail)
	}
	if account.MetaAccount != "act_123" {
		t.Errorf("meta account = %q", account.MetaAccount)
	}

	// empty upstream status falls back to active
	account = models.Account{}
	if err := db.Where("notion_id = ?", "page-2").First(&account).Error; err != nil {
		t.Fatalf("load account: %v", err)
	}
	if account.Status != "active" {
		t.Errorf("default status = %q, want active", account.Status)
	}

	// second run upserts instead of duplicating
	if _, err := svc.SyncAccounts(context.Background()); err != nil {
		t.Fatalf("re-sync: %v", err)
	}
	var count int64
	db.Model(&models.Account{}).Count(&count)
	if count != 2 {
		t.Errorf("accounts = %d after re-sync, want 2", count)
	}
}

func TestSyncAccountsUnconfigured(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewNotionService(db, config.NotionConfig{})
	if _, err := svc.SyncAccounts(context.Background()); err == nil {
		t.Error("missing token should error")
	}
}

func TestSyncAccountsUpstreamError(t *testing.T) {
	// gateways answer errors with HTML, not JSON
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html><body>502 Bad Gateway</body></html>"))
	}))
	defer server.Close()

	db := testutil.OpenTestDB(t)
	svc := NewNotionService(db, config.NotionConfig{Token: "test-token", AccountsDB: "db-accounts"})
	svc.baseURL = server.URL

	_, err := svc.SyncAccounts(context.Background())
	if err == nil {
		t.Fatal("expected error from 502 response")
	}
	if !strings.Contains(err.Error(), "notion query failed") {
		t.Errorf("err = %v, want the upstream status, not a decode failure", err)
	}
}
