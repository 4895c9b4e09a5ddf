package models

import "time"

// AccountSyncState tracks how far the daily-metrics backfill has
// advanced for an account. One chunk of days is synced per request and
// the caller keeps calling until Completed comes back true.
type AccountSyncState struct {
	AccountID     uint       `json:"account_id" gorm:"primaryKey"`
	SyncedThrough *time.Time `json:"synced_through"`
	LastRunAt     time.Time  `json:"last_run_at"`

	Account Account `json:"-" gorm:"foreignKey:AccountID"`
}

type DailyMetric struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	AccountID   uint      `json:"account_id" gorm:"not null;uniqueIndex:idx_metrics_account_day"`
	Date        time.Time `json:"date" gorm:"not null;uniqueIndex:idx_metrics_account_day"`
	Spend       float64   `json:"spend"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Conversions int64     `json:"conversions"`
	Revenue     float64   `json:"revenue"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SyncRequest struct {
	AccountID    uint `json:"account_id" validate:"required"`
	BackfillDays int  `json:"backfill_days" validate:"omitempty,min=1,max=365"`
}

type SyncChunkResult struct {
	Completed     bool      `json:"completed"`
	SyncedFrom    time.Time `json:"synced_from"`
	SyncedThrough time.Time `json:"synced_through"`
	Rows          int       `json:"rows"`
}
