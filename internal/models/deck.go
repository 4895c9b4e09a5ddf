package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deck is a shareable report deck. IDs are opaque UUIDs because deck
// links travel outside the app.
type Deck struct {
	ID            string         `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uint           `json:"user_id" gorm:"not null;index"`
	AccountID     *uint          `json:"account_id" gorm:"index"`
	Title         string         `json:"title" gorm:"size:255;not null"`
	Type          string         `json:"type" gorm:"size:30;default:report"`
	BrandIdentity string         `json:"brand_identity" gorm:"size:50"`
	ContentHTML   string         `json:"content_html,omitempty" gorm:"type:text"`
	Status        string         `json:"status" gorm:"size:20;default:ready"`
	CreatedAt     time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	ShareFields

	User    User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Account *Account `json:"account,omitempty" gorm:"foreignKey:AccountID"`
}

func (d *Deck) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

func (d *Deck) ResourceID() string { return d.ID }

func (d *Deck) OwnerID() uint { return d.UserID }

func (d *Deck) SlugSource() (string, time.Time) { return d.Title, d.CreatedAt }

func (d *Deck) ShareState() *ShareFields { return &d.ShareFields }

type DeckCreateRequest struct {
	Title         string `json:"title" validate:"required,max=255"`
	Type          string `json:"type" validate:"omitempty,oneof=report proposal plan"`
	BrandIdentity string `json:"brand_identity" validate:"omitempty,max=50"`
	ContentHTML   string `json:"content_html"`
	AccountID     *uint  `json:"account_id"`
}

type DeckUpdateRequest struct {
	Title       string `json:"title" validate:"omitempty,max=255"`
	ContentHTML string `json:"content_html"`
	Status      string `json:"status" validate:"omitempty,oneof=draft ready archived"`
}

type DeckListRequest struct {
	Page  int `form:"page" validate:"min=1"`
	Limit int `form:"limit" validate:"min=1,max=100"`
}
