package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"size:100;not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"`
	Role         string         `json:"role" gorm:"size:20;default:user"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	Drafts []CreativeDraft `json:"drafts,omitempty" gorm:"foreignKey:UserID"`
	Decks  []Deck          `json:"decks,omitempty" gorm:"foreignKey:UserID"`
}

// Manager is the account-of-record whitelist synced from the workspace
// database. Only emails present here (and active) may register.
type Manager struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	NotionID  string    `json:"notion_id" gorm:"size:64;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"size:100"`
	Email     string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Role      string    `json:"role" gorm:"size:20;default:user"`
	Status    string    `json:"status" gorm:"size:20;default:active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type WhitelistCheckRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type WhitelistCheckResponse struct {
	Authorized  bool   `json:"authorized"`
	HasAccount  bool   `json:"has_account"`
	ManagerName string `json:"manager_name,omitempty"`
	Status      string `json:"status,omitempty"`
	Message     string `json:"message,omitempty"`
}

type UserRoleUpdateRequest struct {
	Role     string `json:"role" validate:"required,oneof=admin staff user"`
	IsActive *bool  `json:"is_active"`
}
