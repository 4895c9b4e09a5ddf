package models

import "time"

type SystemConfig struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Key         string    `json:"key" gorm:"size:100;uniqueIndex;not null"`
	Value       string    `json:"value" gorm:"size:500"`
	Description string    `json:"description" gorm:"size:255"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserStorage struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey"`
	UsedSpace int64     `json:"used_space" gorm:"default:0"`
	FileCount int       `json:"file_count" gorm:"default:0"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
