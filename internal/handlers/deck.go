package handlers

import (
	"net/http"

	"adhub-backend/internal/models"
	"adhub-backend/internal/services"
	"adhub-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type DeckHandler struct {
	deckService *services.DeckService
	validator   *validator.Validate
}

func NewDeckHandler(deckService *services.DeckService) *DeckHandler {
	return &DeckHandler{
		deckService: deckService,
		validator:   validator.New(),
	}
}

func (h *DeckHandler) GetDecks(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	req := models.DeckListRequest{Page: 1, Limit: 20}
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid query parameters")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	decks, pagination, err := h.deckService.GetDecks(user, &req)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{
		"decks":      decks,
		"pagination": pagination,
	})
}

func (h *DeckHandler) CreateDeck(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req models.DeckCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	deck, err := h.deckService.CreateDeck(userID, &req)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.SuccessWithMessage(c, "deck created", deck)
}

func (h *DeckHandler) GetDeck(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	deck, err := h.deckService.GetDeck(c.Param("id"), user)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "deck not found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	utils.Success(c, deck)
}

func (h *DeckHandler) UpdateDeck(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req models.DeckUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	deck, err := h.deckService.UpdateDeck(c.Param("id"), userID, &req)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "deck not found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	utils.SuccessWithMessage(c, "deck updated", deck)
}

func (h *DeckHandler) DeleteDeck(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	if err := h.deckService.DeleteDeck(c.Param("id"), userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "deck not found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	utils.SuccessWithMessage(c, "deck deleted", nil)
}
