package services

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"adhub-backend/internal/config"
	"adhub-backend/internal/models"
	"adhub-backend/internal/testutil"
)

func pngOf(t *testing.T, width, height int) *bytes.Reader {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestValidateImageDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		format string
		valid  bool
	}{
		{"square exact", 1080, 1080, FormatSquare, true},
		{"square larger", 2000, 2000, FormatSquare, true},
		{"square too small", 800, 800, FormatSquare, false},
		{"square not square", 1080, 1350, FormatSquare, false},

		{"vertical exact", 1080, 1920, FormatVertical, true},
		{"vertical larger", 2160, 3840, FormatVertical, true},
		{"vertical too small", 540, 960, FormatVertical, false},
		{"vertical wrong ratio", 1080, 1080, FormatVertical, false},

		{"horizontal exact", 1200, 628, FormatHorizontal, true},
		{"horizontal larger", 2400, 1256, FormatHorizontal, true},
		{"horizontal too small", 600, 314, FormatHorizontal, false},
		{"horizontal wrong ratio", 1200, 1200, FormatHorizontal, false},

		{"legacy feed", 1080, 1080, "", true},
		{"legacy stories", 1080, 1920, "", true},
		{"legacy anything else", 1200, 628, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateImageDimensions(pngOf(t, tt.width, tt.height), tt.format)
			if err != nil {
				t.Fatalf("ValidateImageDimensions: %v", err)
			}
			if result.Valid != tt.valid {
				t.Errorf("valid = %v, want %v (%s)", result.Valid, tt.valid, result.Message)
			}
			if result.Width != tt.width || result.Height != tt.height {
				t.Errorf("reported %dx%d, want %dx%d", result.Width, result.Height, tt.width, tt.height)
			}
			if !result.Valid && !strings.Contains(result.Message, "invalid dimensions") {
				t.Errorf("rejection message = %q", result.Message)
			}
		})
	}
}

func TestValidateImageDimensionsBadData(t *testing.T) {
	if _, err := ValidateImageDimensions(strings.NewReader("not an image"), FormatSquare); err == nil {
		t.Error("garbage input should error")
	}
}

func multipartPNG(t *testing.T, name string, width, height int) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.Copy(fw, pngOf(t, width, height)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart form: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestSaveCreativeFileCreatesStorageRow(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.CreateTestUser(t, db, "criador@example.com", "user")
	account := testutil.CreateTestAccount(t, db, "Padaria Central", "gestor@example.com")

	draft := models.CreativeDraft{
		UserID:    user.ID,
		AccountID: account.ID,
		Name:      "Post Abril",
		Status:    models.DraftStatusDraft,
	}
	if err := db.Create(&draft).Error; err != nil {
		t.Fatalf("create draft: %v", err)
	}

	cfg := &config.Config{File: config.FileConfig{
		UploadPath:        t.TempDir(),
		MaxImageSize:      10 << 20,
		MaxVideoSize:      100 << 20,
		MaxUserStorage:    50 << 20,
		AllowedImageTypes: []string{"jpg", "png"},
		AllowedVideoTypes: []string{"mp4", "mov"},
	}}
	svc := NewFileService(db, cfg)

	// no UserStorage row exists yet; the upload must create it and
	// count itself
	header := multipartPNG(t, "feed.png", 1080, 1080)
	file, err := svc.SaveCreativeFile(draft.ID, user.ID, header, FormatSquare)
	if err != nil {
		t.Fatalf("SaveCreativeFile: %v", err)
	}

	var storage models.UserStorage
	if err := db.First(&storage, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("storage row not created: %v", err)
	}
	if storage.UsedSpace != file.FileSize {
		t.Errorf("used_space = %d, want %d", storage.UsedSpace, file.FileSize)
	}
	if storage.FileCount != 1 {
		t.Errorf("file_count = %d, want 1", storage.FileCount)
	}

	if err := svc.DeleteFile(file.ID, user.ID); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if err := db.First(&storage, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload storage: %v", err)
	}
	if storage.UsedSpace != 0 || storage.FileCount != 0 {
		t.Errorf("after delete: used_space = %d, file_count = %d, want 0/0", storage.UsedSpace, storage.FileCount)
	}
}

func TestSaveCreativeFileQuotaExceeded(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.CreateTestUser(t, db, "criador@example.com", "user")
	account := testutil.CreateTestAccount(t, db, "Padaria Central", "gestor@example.com")

	draft := models.CreativeDraft{
		UserID:    user.ID,
		AccountID: account.ID,
		Name:      "Post Maio",
		Status:    models.DraftStatusDraft,
	}
	if err := db.Create(&draft).Error; err != nil {
		t.Fatalf("create draft: %v", err)
	}

	cfg := &config.Config{File: config.FileConfig{
		UploadPath:        t.TempDir(),
		MaxImageSize:      10 << 20,
		MaxVideoSize:      100 << 20,
		MaxUserStorage:    1, // anything counts as over quota
		AllowedImageTypes: []string{"png"},
		AllowedVideoTypes: []string{"mp4"},
	}}
	svc := NewFileService(db, cfg)

	header := multipartPNG(t, "feed.png", 1080, 1080)
	if _, err := svc.SaveCreativeFile(draft.ID, user.ID, header, FormatSquare); err == nil {
		t.Fatal("expected quota error for user without a storage row")
	} else if !strings.Contains(err.Error(), "storage quota exceeded") {
		t.Fatalf("err = %v, want quota error", err)
	}
}
