package handlers

import (
	"errors"
	"net/http"

	"adhub-backend/internal/models"
	"adhub-backend/internal/services"
	"adhub-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ShareHandler exposes issuance and resolution for every registered
// shareable kind. These endpoints speak the raw share wire format, not
// the app envelope, because anonymous viewer pages consume them.
type ShareHandler struct {
	shareService *services.ShareService
	validator    *validator.Validate
}

func NewShareHandler(shareService *services.ShareService) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		validator:    validator.New(),
	}
}

// CreateShare handles POST /:kind/share with {resource_id, password?}.
func (h *ShareHandler) CreateShare(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*models.User)

		var req models.ShareCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.ResourceID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "resource_id is required"})
			return
		}
		if err := h.validator.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		resp, err := h.shareService.Issue(user, kind, &req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrShareNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
			case errors.Is(err, services.ErrShareForbidden):
				c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to share this resource"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create share"})
			}
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// ViewShared handles POST /public/:kind/view with {slug, password?}.
// Unknown slugs and non-public resources both come back as a generic
// not-found, so link probing learns nothing.
func (h *ShareHandler) ViewShared(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ShareViewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.Slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slug is required"})
			return
		}

		payload, err := h.shareService.Resolve(kind, req.Slug, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrShareNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			case errors.Is(err, services.ErrShareExpired):
				c.JSON(http.StatusGone, gin.H{"error": "link expired"})
			case errors.Is(err, services.ErrSharePasswordNeeded):
				// 200: the slug is valid, the viewer just has to supply a password
				c.JSON(http.StatusOK, models.ShareViewResponse{
					Success:          false,
					PasswordRequired: true,
				})
			case errors.Is(err, services.ErrShareInvalidPassword):
				c.JSON(http.StatusUnauthorized, models.ShareViewResponse{
					Success:          false,
					PasswordRequired: true,
					Error:            "Invalid password",
				})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
			return
		}

		c.JSON(http.StatusOK, models.ShareViewResponse{
			Success:          true,
			PasswordRequired: false,
			Resource:         payload,
		})
	}
}

// RevokeShare handles DELETE /:kind/:id/share.
func (h *ShareHandler) RevokeShare(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*models.User)
		resourceID := c.Param("id")

		err := h.shareService.Revoke(user, kind, resourceID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrShareNotFound):
				utils.NotFound(c, "resource not found")
			case errors.Is(err, services.ErrShareForbidden):
				utils.Forbidden(c, "")
			default:
				utils.InternalError(c)
			}
			return
		}

		utils.SuccessWithMessage(c, "share disabled", nil)
	}
}
