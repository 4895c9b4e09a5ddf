package handlers

import (
	"net/http"
	"strconv"

	"adhub-backend/internal/services"
	"adhub-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FileHandler struct {
	fileService *services.FileService
}

func NewFileHandler(fileService *services.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// UploadFile accepts one multipart asset for a draft. The optional
// "format" field names the placement (square, vertical, horizontal) and
// drives the dimension check.
func (h *FileHandler) UploadFile(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid draft id")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "missing file")
		return
	}
	format := c.PostForm("format")

	file, err := h.fileService.SaveCreativeFile(uint(id), userID, header, format)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "draft not found or already submitted")
		} else {
			utils.Error(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessWithMessage(c, "file uploaded", file)
}

func (h *FileHandler) GetFiles(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid draft id")
		return
	}

	files, err := h.fileService.GetFiles(uint(id), userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "draft not found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	utils.Success(c, files)
}

func (h *FileHandler) DeleteFile(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid file id")
		return
	}

	if err := h.fileService.DeleteFile(uint(id), userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "file not found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	utils.SuccessWithMessage(c, "file deleted", nil)
}
