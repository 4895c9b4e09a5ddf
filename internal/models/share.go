package models

import "time"

// ShareFields are the columns a publicly shareable record carries.
// A record is resolvable by slug only while IsPublic is true; the slug,
// once issued, stays with the record for its whole lifetime so links
// can never be taken over by another record.
type ShareFields struct {
	Slug           *string    `json:"slug,omitempty" gorm:"size:160;uniqueIndex"`
	IsPublic       bool       `json:"is_public" gorm:"default:false;index"`
	PasswordHash   *string    `json:"-" gorm:"size:255"`
	ShareExpiresAt *time.Time `json:"share_expires_at,omitempty"`
	ShareCreatedAt *time.Time `json:"-"`
	ShareViewCount int        `json:"-" gorm:"default:0"`
}

// Shareable is implemented by any record kind that can be published
// behind a public slug (decks, optimization recordings).
type Shareable interface {
	ResourceID() string
	OwnerID() uint
	// SlugSource returns the human-readable title and the creation time
	// the public slug is derived from.
	SlugSource() (string, time.Time)
	ShareState() *ShareFields
}

type ShareCreateRequest struct {
	ResourceID       string `json:"resource_id"`
	Password         string `json:"password,omitempty" validate:"omitempty,min=6"`
	GeneratePassword bool   `json:"generate_password,omitempty"`
	ExpiresDays      int    `json:"expires_days,omitempty" validate:"omitempty,min=1,max=365"`
}

type ShareCreateResponse struct {
	Success           bool   `json:"success"`
	URL               string `json:"url"`
	Slug              string `json:"slug"`
	PasswordProtected bool   `json:"password_protected"`
	// Password is echoed only when it was server-generated, so the owner
	// can relay it to viewers. A caller-supplied password is never echoed.
	Password string `json:"password,omitempty"`
}

type ShareViewRequest struct {
	Slug     string `json:"slug"`
	Password string `json:"password,omitempty"`
}

type ShareViewResponse struct {
	Success          bool        `json:"success"`
	PasswordRequired bool        `json:"password_required"`
	Error            string      `json:"error,omitempty"`
	Resource         interface{} `json:"resource,omitempty"`
}
