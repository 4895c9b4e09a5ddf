package services

import (
	"math"

	"adhub-backend/internal/models"

	"gorm.io/gorm"
)

type DeckService struct {
	db *gorm.DB
}

func NewDeckService(db *gorm.DB) *DeckService {
	return &DeckService{db: db}
}

func (s *DeckService) CreateDeck(userID uint, req *models.DeckCreateRequest) (*models.Deck, error) {
	deck := models.Deck{
		UserID:        userID,
		AccountID:     req.AccountID,
		Title:         req.Title,
		Type:          req.Type,
		BrandIdentity: req.BrandIdentity,
		ContentHTML:   req.ContentHTML,
		Status:        "ready",
	}
	if deck.Type == "" {
		deck.Type = "report"
	}

	if err := s.db.Create(&deck).Error; err != nil {
		return nil, err
	}
	return &deck, nil
}

func (s *DeckService) GetDeck(deckID string, user *models.User) (*models.Deck, error) {
	var deck models.Deck
	query := s.db.Preload("Account").Where("id = ?", deckID)
	if user.Role != "admin" && user.Role != "staff" {
		query = query.Where("user_id = ?", user.ID)
	}
	if err := query.First(&deck).Error; err != nil {
		return nil, err
	}
	return &deck, nil
}

func (s *DeckService) UpdateDeck(deckID string, userID uint, req *models.DeckUpdateRequest) (*models.Deck, error) {
	var deck models.Deck
	if err := s.db.Where("id = ? AND user_id = ?", deckID, userID).First(&deck).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.ContentHTML != "" {
		updates["content_html"] = req.ContentHTML
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(&deck).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return &deck, nil
}

func (s *DeckService) GetDecks(user *models.User, req *models.DeckListRequest) ([]models.Deck, *models.Pagination, error) {
	var decks []models.Deck
	var total int64

	query := s.db.Model(&models.Deck{})
	if user.Role != "admin" {
		query = query.Where("user_id = ?", user.ID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	offset := (req.Page - 1) * req.Limit
	pages := int(math.Ceil(float64(total) / float64(req.Limit)))

	err := query.Preload("Account").Order("created_at DESC").
		Limit(req.Limit).Offset(offset).Find(&decks).Error
	if err != nil {
		return nil, nil, err
	}

	pagination := &models.Pagination{
		Page:  req.Page,
		Limit: req.Limit,
		Total: int(total),
		Pages: pages,
	}

	return decks, pagination, nil
}

func (s *DeckService) DeleteDeck(deckID string, userID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", deckID, userID).Delete(&models.Deck{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
