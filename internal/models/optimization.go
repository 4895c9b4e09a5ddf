package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RecordingStatusPending     = "pending"
	RecordingStatusTranscribed = "transcribed"
	RecordingStatusProcessed   = "processed"
)

// OptimizationRecording is a narrated account optimization: an audio
// recording plus its transcript and the processed summary that can be
// shared with the client.
type OptimizationRecording struct {
	ID         string         `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uint           `json:"user_id" gorm:"not null;index"`
	AccountID  uint           `json:"account_id" gorm:"not null;index"`
	RecordedAt time.Time      `json:"recorded_at" gorm:"not null;index"`
	AudioPath  string         `json:"-" gorm:"size:500"`
	Transcript string         `json:"transcript,omitempty" gorm:"type:text"`
	Processed  string         `json:"processed,omitempty" gorm:"type:text"`
	Context    string         `json:"context,omitempty" gorm:"type:text"`
	Status     string         `json:"status" gorm:"size:20;default:pending;index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	ShareFields

	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Account Account `json:"account,omitempty" gorm:"foreignKey:AccountID"`
}

func (r *OptimizationRecording) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *OptimizationRecording) ResourceID() string { return r.ID }

func (r *OptimizationRecording) OwnerID() uint { return r.UserID }

// SlugSource uses the account name, matching how optimization links are
// titled for clients. Falls back if the association was not loaded.
func (r *OptimizationRecording) SlugSource() (string, time.Time) {
	name := r.Account.Name
	if name == "" {
		name = "optimization"
	}
	return name, r.RecordedAt
}

func (r *OptimizationRecording) ShareState() *ShareFields { return &r.ShareFields }

type RecordingCreateRequest struct {
	AccountID  uint       `json:"account_id" validate:"required"`
	RecordedAt *time.Time `json:"recorded_at"`
	Context    string     `json:"context"`
}

type RecordingTranscriptRequest struct {
	Transcript string `json:"transcript" validate:"required"`
}

type RecordingProcessRequest struct {
	Processed string `json:"processed" validate:"required"`
}

type RecordingContextRequest struct {
	Context string `json:"context" validate:"required"`
}

type RecordingListRequest struct {
	Page      int    `form:"page" validate:"min=1"`
	Limit     int    `form:"limit" validate:"min=1,max=100"`
	AccountID *uint  `form:"account_id"`
	Status    string `form:"status" validate:"omitempty,oneof=pending transcribed processed"`
}
