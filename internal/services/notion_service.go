package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"adhub-backend/internal/config"
	"adhub-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const notionAPIVersion = "2022-06-28"

// NotionService copies the account-of-record and manager-whitelist
// databases from the workspace tool into relational tables. Rows are
// upserted by notion id; rows deleted upstream are left in place.
type NotionService struct {
	db      *gorm.DB
	cfg     config.NotionConfig
	client  *http.Client
	baseURL string
}

func NewNotionService(db *gorm.DB, cfg config.NotionConfig) *NotionService {
	return &NotionService{
		db:      db,
		cfg:     cfg,
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: "https://api.notion.com",
	}
}

type notionPage struct {
	ID         string                    `json:"id"`
	Properties map[string]notionProperty `json:"properties"`
}

type notionProperty struct {
	Type     string           `json:"type"`
	Title    []notionRichText `json:"title,omitempty"`
	RichText []notionRichText `json:"rich_text,omitempty"`
	Email    string           `json:"email,omitempty"`
	Select   *notionSelect    `json:"select,omitempty"`
}

type notionRichText struct {
	PlainText string `json:"plain_text"`
}

type notionSelect struct {
	Name string `json:"name"`
}

type notionQueryResponse struct {
	Results    []notionPage `json:"results"`
	HasMore    bool         `json:"has_more"`
	NextCursor string       `json:"next_cursor"`
}

func (p notionProperty) text() string {
	switch p.Type {
	case "title":
		if len(p.Title) > 0 {
			return p.Title[0].PlainText
		}
	case "rich_text":
		if len(p.RichText) > 0 {
			return p.RichText[0].PlainText
		}
	case "email":
		return p.Email
	case "select":
		if p.Select != nil {
			return p.Select.Name
		}
	}
	return ""
}

// queryDatabase walks one database with the cursor pagination loop the
// workspace API requires.
func (s *NotionService) queryDatabase(ctx context.Context, databaseID string) ([]notionPage, error) {
	var pages []notionPage
	cursor := ""

	for {
		body := map[string]interface{}{"page_size": 100}
		if cursor != "" {
			body["start_cursor"] = cursor
		}
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}

		url := fmt.Sprintf("%s/v1/databases/%s/query", s.baseURL, databaseID)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
		req.Header.Set("Notion-Version", notionAPIVersion)
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("notion query failed: %s", resp.Status)
		}

		var result notionQueryResponse
		err = json.NewDecoder(resp.Body).Decode(&result)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		pages = append(pages, result.Results...)
		if !result.HasMore {
			break
		}
		cursor = result.NextCursor
	}

	return pages, nil
}

func (s *NotionService) SyncAccounts(ctx context.Context) (int, error) {
	if s.cfg.Token == "" || s.cfg.AccountsDB == "" {
		return 0, fmt.Errorf("notion accounts sync is not configured")
	}

	pages, err := s.queryDatabase(ctx, s.cfg.AccountsDB)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, page := range pages {
		account := models.Account{
			NotionID:     page.ID,
			Name:         page.Properties["Conta"].text(),
			Status:       strings.ToLower(page.Properties["Status"].text()),
			Tier:         page.Properties["Tier"].text(),
			ManagerEmail: strings.ToLower(page.Properties["Gestor Email"].text()),
			Objectives:   page.Properties["Objetivos"].text(),
			MetaAccount:  page.Properties["Meta Account"].text(),
			GoogleAds:    page.Properties["Google Ads"].text(),
			WooSiteURL:   page.Properties["Woo Site URL"].text(),
		}
		if account.Name == "" {
			continue
		}
		if account.Status == "" {
			account.Status = "active"
		}

		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "notion_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "status", "tier", "manager_email", "objectives", "meta_account", "google_ads", "woo_site_url", "updated_at"}),
		}).Create(&account).Error
		if err != nil {
			return synced, err
		}
		synced++
	}

	logrus.WithField("accounts", synced).Info("notion account sync finished")
	return synced, nil
}

func (s *NotionService) SyncManagers(ctx context.Context) (int, error) {
	if s.cfg.Token == "" || s.cfg.ManagersDB == "" {
		return 0, fmt.Errorf("notion managers sync is not configured")
	}

	pages, err := s.queryDatabase(ctx, s.cfg.ManagersDB)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, page := range pages {
		manager := models.Manager{
			NotionID: page.ID,
			Name:     page.Properties["Name"].text(),
			Email:    strings.ToLower(page.Properties["Email"].text()),
			Role:     strings.ToLower(page.Properties["Role"].text()),
			Status:   strings.ToLower(page.Properties["Status"].text()),
		}
		if manager.Email == "" {
			continue
		}
		if manager.Role == "" {
			manager.Role = "user"
		}
		if manager.Status == "" {
			manager.Status = "active"
		}

		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "notion_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "role", "status", "updated_at"}),
		}).Create(&manager).Error
		if err != nil {
			return synced, err
		}
		synced++
	}

	logrus.WithField("managers", synced).Info("notion manager sync finished")
	return synced, nil
}
