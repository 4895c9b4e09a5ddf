package models

import "time"

// Account is a client ad account of record, synced from the workspace
// database. NotionID is the upsert key for the sync job.
type Account struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	NotionID     string    `json:"notion_id" gorm:"size:64;uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Status       string    `json:"status" gorm:"size:30;default:active;index"`
	Tier         string    `json:"tier" gorm:"size:30"`
	ManagerEmail string    `json:"manager_email" gorm:"size:100;index"`
	Objectives   string    `json:"objectives" gorm:"size:255"`
	MetaAccount  string    `json:"meta_account" gorm:"size:64"`
	GoogleAds    string    `json:"google_ads" gorm:"size:64"`
	WooSiteURL   string    `json:"woo_site_url" gorm:"size:255"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type AccountUpdateRequest struct {
	Name         string `json:"name" validate:"omitempty,max=255"`
	Status       string `json:"status" validate:"omitempty,oneof=active paused archived"`
	Tier         string `json:"tier" validate:"omitempty,max=30"`
	ManagerEmail string `json:"manager_email" validate:"omitempty,email"`
	Objectives   string `json:"objectives" validate:"omitempty,max=255"`
}

type AccountListRequest struct {
	Page   int    `form:"page" validate:"min=1"`
	Limit  int    `form:"limit" validate:"min=1,max=100"`
	Status string `form:"status" validate:"omitempty,oneof=active paused archived"`
	Search string `form:"search"`
}

type AccountSummary struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Code   string `json:"code"`
}
