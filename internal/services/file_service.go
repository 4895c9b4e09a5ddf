package services

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"adhub-backend/internal/config"
	"adhub-backend/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Creative placements and the dimensions they demand.
const (
	FormatSquare     = "square"     // >= 1080x1080, 1:1
	FormatVertical   = "vertical"   // >= 1080x1920, 9:16
	FormatHorizontal = "horizontal" // >= 1200x628, 1.91:1
)

type FileService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewFileService(db *gorm.DB, cfg *config.Config) *FileService {
	return &FileService{db: db, cfg: cfg}
}

type DimensionResult struct {
	Valid   bool   `json:"valid"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Message string `json:"message"`
}

// ValidateImageDimensions decodes just the image header and checks the
// placement's dimension and aspect-ratio rules.
func ValidateImageDimensions(r io.Reader, format string) (*DimensionResult, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read image: %w", err)
	}

	w, h := cfg.Width, cfg.Height
	result := &DimensionResult{Width: w, Height: h}

	switch format {
	case FormatSquare:
		result.Valid = w >= 1080 && h >= 1080 && w == h
		if !result.Valid {
			result.Message = fmt.Sprintf("invalid dimensions (%dx%dpx), expected 1080x1080px or a larger 1:1 image", w, h)
		}
	case FormatVertical:
		ratio := float64(w) / float64(h)
		result.Valid = w >= 1080 && h >= 1920 && math.Abs(ratio-9.0/16.0) < 0.01
		if !result.Valid {
			result.Message = fmt.Sprintf("invalid dimensions (%dx%dpx), expected 1080x1920px or a larger 9:16 image", w, h)
		}
	case FormatHorizontal:
		ratio := float64(w) / float64(h)
		result.Valid = w >= 1200 && h >= 628 && math.Abs(ratio-1.91) < 0.05
		if !result.Valid {
			result.Message = fmt.Sprintf("invalid dimensions (%dx%dpx), expected 1200x628px or a larger 1.91:1 image", w, h)
		}
	default:
		// legacy check: exact feed or stories dimensions
		result.Valid = (w == 1080 && h == 1080) || (w == 1080 && h == 1920)
		if !result.Valid {
			result.Message = fmt.Sprintf("invalid dimensions (%dx%dpx), expected 1080x1080 or 1080x1920px", w, h)
		}
	}

	if result.Valid {
		result.Message = fmt.Sprintf("dimensions ok (%dx%dpx)", w, h)
	}
	return result, nil
}

func fileExt(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// SaveCreativeFile validates and stores one uploaded asset on a draft.
func (s *FileService) SaveCreativeFile(draftID, userID uint, header *multipart.FileHeader, format string) (*models.CreativeFile, error) {
	var draft models.CreativeDraft
	err := s.db.Where("id = ? AND user_id = ? AND status = ?", draftID, userID, models.DraftStatusDraft).
		First(&draft).Error
	if err != nil {
		return nil, err
	}

	ext := fileExt(header.Filename)
	isImage := s.cfg.IsImageType(ext)
	isVideo := s.cfg.IsVideoType(ext)
	if !isImage && !isVideo {
		return nil, fmt.Errorf("unsupported file type %q, use JPG, PNG, MP4 or MOV", ext)
	}

	maxSize := s.cfg.File.MaxImageSize
	if isVideo {
		maxSize = s.cfg.File.MaxVideoSize
	}
	if header.Size > maxSize {
		return nil, fmt.Errorf("file too large (%s), maximum is %s",
			humanize.Bytes(uint64(header.Size)), humanize.Bytes(uint64(maxSize)))
	}

	storage := models.UserStorage{UserID: userID}
	if err := s.db.Where("user_id = ?", userID).FirstOrCreate(&storage).Error; err != nil {
		return nil, err
	}
	if storage.UsedSpace+header.Size > s.cfg.File.MaxUserStorage {
		return nil, fmt.Errorf("storage quota exceeded (%s of %s used)",
			humanize.Bytes(uint64(storage.UsedSpace)), humanize.Bytes(uint64(s.cfg.File.MaxUserStorage)))
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	width, height := 0, 0
	if isImage {
		dims, err := ValidateImageDimensions(src, format)
		if err != nil {
			return nil, err
		}
		if !dims.Valid {
			return nil, fmt.Errorf("%s", dims.Message)
		}
		width, height = dims.Width, dims.Height
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
	}

	dir := filepath.Join(s.cfg.File.UploadPath, "creatives", fmt.Sprintf("%d", draftID))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	storedName := uuid.NewString() + "." + ext
	dstPath := filepath.Join(dir, storedName)
	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return nil, err
	}

	file := models.CreativeFile{
		DraftID:  draftID,
		FileName: header.Filename,
		FilePath: dstPath,
		FileSize: header.Size,
		MimeType: header.Header.Get("Content-Type"),
		Format:   format,
		Width:    width,
		Height:   height,
		IsVideo:  isVideo,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&file).Error; err != nil {
			return err
		}
		return s.updateUserStorageInTx(tx, userID, header.Size)
	})
	if err != nil {
		os.Remove(dstPath)
		return nil, err
	}

	return &file, nil
}

func (s *FileService) GetFiles(draftID, userID uint) ([]models.CreativeFile, error) {
	var draft models.CreativeDraft
	if err := s.db.Where("id = ? AND user_id = ?", draftID, userID).First(&draft).Error; err != nil {
		return nil, err
	}

	var files []models.CreativeFile
	if err := s.db.Where("draft_id = ?", draftID).Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// DeleteFile soft-deletes the row; the bytes on disk stay for recovery
// and are reaped separately.
func (s *FileService) DeleteFile(fileID, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var file models.CreativeFile
		err := tx.Table("creative_files").
			Select("creative_files.*").
			Joins("JOIN creative_drafts ON creative_files.draft_id = creative_drafts.id").
			Where("creative_files.id = ? AND creative_drafts.user_id = ? AND creative_files.deleted_at IS NULL", fileID, userID).
			First(&file).Error
		if err != nil {
			return err
		}

		result := tx.Delete(&file)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return s.updateUserStorageInTx(tx, userID, -file.FileSize)
	})
}

func (s *FileService) updateUserStorageInTx(tx *gorm.DB, userID uint, delta int64) error {
	fileDelta := 1
	if delta < 0 {
		fileDelta = -1
	}
	storage := models.UserStorage{UserID: userID}
	if err := tx.Where("user_id = ?", userID).FirstOrCreate(&storage).Error; err != nil {
		return err
	}
	return tx.Model(&models.UserStorage{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"used_space": gorm.Expr("used_space + ?", delta),
			"file_count": gorm.Expr("file_count + ?", fileDelta),
		}).Error
}
