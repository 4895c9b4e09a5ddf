package services

import (
	"fmt"
	"math"
	"time"

	"adhub-backend/internal/models"

	"gorm.io/gorm"
)

type OptimizationService struct {
	db *gorm.DB
}

func NewOptimizationService(db *gorm.DB) *OptimizationService {
	return &OptimizationService{db: db}
}

func (s *OptimizationService) CreateRecording(userID uint, req *models.RecordingCreateRequest) (*models.OptimizationRecording, error) {
	var account models.Account
	if err := s.db.First(&account, req.AccountID).Error; err != nil {
		return nil, fmt.Errorf("account not found")
	}

	recordedAt := time.Now()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	recording := models.OptimizationRecording{
		UserID:     userID,
		AccountID:  req.AccountID,
		RecordedAt: recordedAt,
		Context:    req.Context,
		Status:     models.RecordingStatusPending,
	}

	if err := s.db.Create(&recording).Error; err != nil {
		return nil, err
	}

	recording.Account = account
	return &recording, nil
}

func (s *OptimizationService) GetRecording(recordingID string, user *models.User) (*models.OptimizationRecording, error) {
	var recording models.OptimizationRecording
	query := s.db.Preload("Account").Where("id = ?", recordingID)
	if user.Role != "admin" && user.Role != "staff" {
		query = query.Where("user_id = ?", user.ID)
	}
	if err := query.First(&recording).Error; err != nil {
		return nil, err
	}
	return &recording, nil
}

// SetTranscript stores the raw transcription and advances the
// pending -> transcribed state.
func (s *OptimizationService) SetTranscript(recordingID string, user *models.User, transcript string) (*models.OptimizationRecording, error) {
	recording, err := s.GetRecording(recordingID, user)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"transcript": transcript,
		"status":     models.RecordingStatusTranscribed,
	}
	if err := s.db.Model(recording).Updates(updates).Error; err != nil {
		return nil, err
	}
	return recording, nil
}

// SetProcessed stores the cleaned-up narration. Requires a transcript.
func (s *OptimizationService) SetProcessed(recordingID string, user *models.User, processed string) (*models.OptimizationRecording, error) {
	recording, err := s.GetRecording(recordingID, user)
	if err != nil {
		return nil, err
	}
	if recording.Status == models.RecordingStatusPending {
		return nil, fmt.Errorf("recording has no transcript yet")
	}

	updates := map[string]interface{}{
		"processed": processed,
		"status":    models.RecordingStatusProcessed,
	}
	if err := s.db.Model(recording).Updates(updates).Error; err != nil {
		return nil, err
	}
	return recording, nil
}

func (s *OptimizationService) SetContext(recordingID string, user *models.User, context string) (*models.OptimizationRecording, error) {
	recording, err := s.GetRecording(recordingID, user)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(recording).Update("context", context).Error; err != nil {
		return nil, err
	}
	return recording, nil
}

func (s *OptimizationService) SetAudioPath(recordingID string, user *models.User, path string) error {
	recording, err := s.GetRecording(recordingID, user)
	if err != nil {
		return err
	}
	return s.db.Model(recording).Update("audio_path", path).Error
}

func (s *OptimizationService) GetRecordings(user *models.User, req *models.RecordingListRequest) ([]models.OptimizationRecording, *models.Pagination, error) {
	var recordings []models.OptimizationRecording
	var total int64

	query := s.db.Model(&models.OptimizationRecording{})
	if user.Role != "admin" && user.Role != "staff" {
		query = query.Where("user_id = ?", user.ID)
	}
	if req.AccountID != nil {
		query = query.Where("account_id = ?", *req.AccountID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	offset := (req.Page - 1) * req.Limit
	pages := int(math.Ceil(float64(total) / float64(req.Limit)))

	err := query.Preload("Account").Order("recorded_at DESC").
		Limit(req.Limit).Offset(offset).Find(&recordings).Error
	if err != nil {
		return nil, nil, err
	}

	pagination := &models.Pagination{
		Page:  req.Page,
		Limit: req.Limit,
		Total: int(total),
		Pages: pages,
	}

	return recordings, pagination, nil
}
