package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"adhub-backend/internal/models"
)

// PlatformClient fetches daily spend/performance rows from the ad
// platform's reporting API.
type PlatformClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewPlatformClient(baseURL, apiKey string) *PlatformClient {
	return &PlatformClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type platformRow struct {
	Date        string  `json:"date"`
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Conversions int64   `json:"conversions"`
	Revenue     float64 `json:"revenue"`
}

type platformReport struct {
	Rows []platformRow `json:"rows"`
}

func (c *PlatformClient) FetchDaily(ctx context.Context, account *models.Account, from, to time.Time) ([]models.DailyMetric, error) {
	if account.MetaAccount == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("account", account.MetaAccount)
	q.Set("since", from.Format("2006-01-02"))
	q.Set("until", to.Format("2006-01-02"))
	q.Set("granularity", "day")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/reports/daily?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("platform report request failed: %s", resp.Status)
	}

	var report platformReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, err
	}

	rows := make([]models.DailyMetric, 0, len(report.Rows))
	for _, r := range report.Rows {
		date, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			continue
		}
		rows = append(rows, models.DailyMetric{
			AccountID:   account.ID,
			Date:        date,
			Spend:       r.Spend,
			Impressions: r.Impressions,
			Clicks:      r.Clicks,
			Conversions: r.Conversions,
			Revenue:     r.Revenue,
		})
	}
	return rows, nil
}
