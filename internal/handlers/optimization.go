package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"adhub-backend/internal/models"
	"adhub-backend/internal/services"
	"adhub-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type OptimizationHandler struct {
	optimizationService *services.OptimizationService
	uploadPath          string
	validator           *validator.Validate
}

func NewOptimizationHandler(optimizationService *services.OptimizationService, uploadPath string) *OptimizationHandler {
	return &OptimizationHandler{
		optimizationService: optimizationService,
		uploadPath:          uploadPath,
		validator:           validator.New(),
	}
}

func (h *OptimizationHandler) GetRecordings(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	req := models.RecordingListRequest{Page: 1, Limit: 20}
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid query parameters")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	recordings, pagination, err := h.optimizationService.GetRecordings(user, &req)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{
		"recordings": recordings,
		"pagination": pagination,
	})
}

func (h *OptimizationHandler) CreateRecording(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req models.RecordingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	recording, err := h.optimizationService.CreateRecording(userID, &req)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "recording created", recording)
}

func (h *OptimizationHandler) GetRecording(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	recording, err := h.optimizationService.GetRecording(c.Param("id"), user)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "recording not found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	utils.Success(c, recording)
}

var audioExtensions = map[string]bool{
	"mp3": true, "m4a": true, "wav": true, "ogg": true, "webm": true,
}

// UploadAudio stores the narration file for a recording.
func (h *OptimizationHandler) UploadAudio(c *gin.Context) {
	user := c.MustGet("user").(*models.User)
	recordingID := c.Param("id")

	header, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "missing file")
		return
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if !audioExtensions[ext] {
		utils.Error(c, http.StatusBadRequest, "unsupported audio format "+ext)
		return
	}

	dir := filepath.Join(h.uploadPath, "recordings")
	if err := os.MkdirAll(dir, 0755); err != nil {
		utils.InternalError(c)
		return
	}
	dstPath := filepath.Join(dir, recordingID+"."+ext)

	if err := c.SaveUploadedFile(header, dstPath); err != nil {
		utils.InternalError(c)
		return
	}

	if err := h.optimizationService.SetAudioPath(recordingID, user, dstPath); err != nil {
		os.Remove(dstPath)
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "recording not found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	utils.SuccessWithMessage(c, "audio uploaded", gin.H{"path": dstPath})
}

func (h *OptimizationHandler) SetTranscript(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	var req models.RecordingTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	recording, err := h.optimizationService.SetTranscript(c.Param("id"), user, req.Transcript)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "recording not found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	utils.SuccessWithMessage(c, "transcript saved", recording)
}

func (h *OptimizationHandler) SetProcessed(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	var req models.RecordingProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	recording, err := h.optimizationService.SetProcessed(c.Param("id"), user, req.Processed)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "recording not found")
		} else {
			utils.Error(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessWithMessage(c, "processed narration saved", recording)
}

func (h *OptimizationHandler) SetContext(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	var req models.RecordingContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	recording, err := h.optimizationService.SetContext(c.Param("id"), user, req.Context)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "recording not found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	utils.SuccessWithMessage(c, "context updated", recording)
}
