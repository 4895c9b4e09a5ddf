package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

const (
	DraftStatusDraft     = "draft"
	DraftStatusSubmitted = "submitted"
)

type CreativeDraft struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	AccountID uint           `json:"account_id" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"size:255;not null"`
	Code      string         `json:"code" gorm:"size:64;index"`
	Type      string         `json:"type" gorm:"size:30;default:single"`
	Objective string         `json:"objective" gorm:"size:50"`
	Status    string         `json:"status" gorm:"size:20;default:draft;index"`
	Payload   json.RawMessage `json:"payload,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User    User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Account Account        `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	Files   []CreativeFile `json:"files,omitempty" gorm:"foreignKey:DraftID"`
}

type CreativeFile struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	DraftID   uint           `json:"draft_id" gorm:"not null;index"`
	FileName  string         `json:"file_name" gorm:"size:255;not null"`
	FilePath  string         `json:"-" gorm:"size:500;not null"`
	FileSize  int64          `json:"file_size" gorm:"not null"`
	MimeType  string         `json:"mime_type" gorm:"size:100"`
	Format    string         `json:"format" gorm:"size:20"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	IsVideo   bool           `json:"is_video" gorm:"default:false"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

type DraftCreateRequest struct {
	AccountID uint           `json:"account_id" validate:"required"`
	Name      string         `json:"name" validate:"required,max=255"`
	Type      string         `json:"type" validate:"omitempty,oneof=single carousel collection existing-post"`
	Objective string         `json:"objective" validate:"omitempty,max=50"`
	Payload   map[string]any `json:"payload"`
}

type DraftUpdateRequest struct {
	Name      string         `json:"name" validate:"omitempty,max=255"`
	Type      string         `json:"type" validate:"omitempty,oneof=single carousel collection existing-post"`
	Objective string         `json:"objective" validate:"omitempty,max=50"`
	Payload   map[string]any `json:"payload"`
}

type DraftListRequest struct {
	Page      int    `form:"page" validate:"min=1"`
	Limit     int    `form:"limit" validate:"min=1,max=100"`
	AccountID *uint  `form:"account_id"`
	Status    string `form:"status" validate:"omitempty,oneof=draft submitted"`
	Sort      string `form:"sort" validate:"omitempty,oneof=created_at updated_at name"`
	Order     string `form:"order" validate:"omitempty,oneof=asc desc"`
}

type DraftSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Status    string    `json:"status"`
	Account   string    `json:"account"`
	FileCount int       `json:"file_count"`
	CreatedAt time.Time `json:"created_at"`
}
