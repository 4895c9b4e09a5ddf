package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"adhub-backend/internal/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type CreativeService struct {
	db *gorm.DB
}

func NewCreativeService(db *gorm.DB) *CreativeService {
	return &CreativeService{db: db}
}

// AccountCode builds the short account code used in creative names:
// first letter, the next three consonants (padded with X) and the
// account id after a '#'.
func AccountCode(accountName, accountID string) string {
	clean := strings.ToUpper(accountName)
	clean = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '.', ',':
			return -1
		}
		return r
	}, clean)

	runes := []rune(clean)
	first := 'X'
	if len(runes) > 0 {
		first = runes[0]
	}

	var rest []rune
	if len(runes) > 1 {
		rest = runes[1:]
	}

	consonants := make([]rune, 0, len(rest))
	for _, r := range rest {
		switch r {
		case 'A', 'E', 'I', 'O', 'U':
		default:
			consonants = append(consonants, r)
		}
	}
	if len(consonants) < 3 {
		consonants = append([]rune(nil), rest...)
	}
	if len(consonants) > 3 {
		consonants = consonants[:3]
	}
	for len(consonants) < 3 {
		consonants = append(consonants, 'X')
	}

	return string(first) + string(consonants) + "#" + accountID
}

// Notion stores objectives in Portuguese; the English names stay
// around for accounts imported before the rename.
var objectiveCodesPT = map[string]string{
	"Vendas":                  "CONV",
	"Conversões":              "CONV",
	"Tráfego":                 "TRAF",
	"Interações":              "ENGA",
	"Engajamento":             "ENGA",
	"Conversas":               "MSGS",
	"Mensagens":               "MSGS",
	"Cadastros":               "LEAD",
	"Geração de leads":        "LEAD",
	"Seguidores":              "BRAN",
	"Reconhecimento da marca": "BRAN",
	"Divulgação":              "RECH",
	"Alcance":                 "RECH",
	"Direções":                "STOR",
	"Tráfego na loja":         "STOR",
	"Aplicativo":              "APPS",
	"Instalações do app":      "APPS",
	"Visualizações de vídeo":  "VIDE",
	"Vendas do catálogo":      "CATA",
}

var objectiveCodesEN = map[string]string{
	"Conversions":     "CONV",
	"Traffic":         "TRAF",
	"Engagement":      "ENGA",
	"Lead Generation": "LEAD",
	"Brand Awareness": "BRAN",
	"App Installs":    "APPS",
	"Reach":           "RECH",
	"Video Views":     "VIDE",
	"Messages":        "MSGS",
	"Store Traffic":   "STOR",
	"Catalog Sales":   "CATA",
}

var typeCodes = map[string]string{
	"single":        "SING",
	"carousel":      "CARR",
	"collection":    "COLL",
	"existing-post": "POST",
}

func ObjectiveCode(objective string) string {
	if code, ok := objectiveCodesPT[objective]; ok {
		return code
	}
	if code, ok := objectiveCodesEN[objective]; ok {
		return code
	}
	return "UNKN"
}

func TypeCode(t string) string {
	if code, ok := typeCodes[t]; ok {
		return code
	}
	return "UNKN"
}

func (s *CreativeService) CreateDraft(userID uint, req *models.DraftCreateRequest) (*models.CreativeDraft, error) {
	var account models.Account
	if err := s.db.First(&account, req.AccountID).Error; err != nil {
		return nil, fmt.Errorf("account not found")
	}

	draft := models.CreativeDraft{
		UserID:    userID,
		AccountID: req.AccountID,
		Name:      req.Name,
		Type:      req.Type,
		Objective: req.Objective,
		Status:    models.DraftStatusDraft,
	}
	if draft.Type == "" {
		draft.Type = "single"
	}
	if req.Payload != nil {
		payload, err := json.Marshal(req.Payload)
		if err != nil {
			return nil, err
		}
		draft.Payload = payload
	}

	if err := s.db.Create(&draft).Error; err != nil {
		return nil, err
	}

	s.db.Preload("Account").Preload("Files").First(&draft, draft.ID)
	return &draft, nil
}

func (s *CreativeService) GetDraft(draftID, userID uint) (*models.CreativeDraft, error) {
	var draft models.CreativeDraft
	err := s.db.Preload("Account").Preload("Files").
		Where("id = ? AND user_id = ?", draftID, userID).First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *CreativeService) UpdateDraft(draftID, userID uint, req *models.DraftUpdateRequest) (*models.CreativeDraft, error) {
	var draft models.CreativeDraft
	err := s.db.Where("id = ? AND user_id = ? AND status = ?", draftID, userID, models.DraftStatusDraft).
		First(&draft).Error
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Type != "" {
		updates["type"] = req.Type
	}
	if req.Objective != "" {
		updates["objective"] = req.Objective
	}
	if req.Payload != nil {
		payload, err := json.Marshal(req.Payload)
		if err != nil {
			return nil, err
		}
		updates["payload"] = payload
	}

	if len(updates) > 0 {
		if err := s.db.Model(&draft).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.db.Preload("Account").Preload("Files").First(&draft, draft.ID)
	return &draft, nil
}

// SubmitDraft moves a draft to submitted and stamps its creative code.
// Submitted drafts are immutable afterwards.
func (s *CreativeService) SubmitDraft(draftID, userID uint) (*models.CreativeDraft, error) {
	var draft models.CreativeDraft
	err := s.db.Preload("Account").
		Where("id = ? AND user_id = ?", draftID, userID).First(&draft).Error
	if err != nil {
		return nil, err
	}
	if draft.Status != models.DraftStatusDraft {
		return nil, fmt.Errorf("draft already submitted")
	}

	// sequential creative number per account
	var submitted int64
	if err := s.db.Model(&models.CreativeDraft{}).
		Where("account_id = ? AND status = ?", draft.AccountID, models.DraftStatusSubmitted).
		Count(&submitted).Error; err != nil {
		return nil, err
	}

	code := fmt.Sprintf("JS-%03d-%s-%s-%s",
		submitted+1,
		ObjectiveCode(draft.Objective),
		TypeCode(draft.Type),
		AccountCode(draft.Account.Name, fmt.Sprintf("%d", draft.AccountID)))

	updates := map[string]interface{}{
		"status": models.DraftStatusSubmitted,
		"code":   code,
	}
	if err := s.db.Model(&draft).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &draft, nil
}

func (s *CreativeService) DeleteDraft(draftID, userID uint) error {
	result := s.db.Where("id = ? AND user_id = ? AND status = ?", draftID, userID, models.DraftStatusDraft).
		Delete(&models.CreativeDraft{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *CreativeService) GetDrafts(userID uint, req *models.DraftListRequest) ([]models.DraftSummary, *models.Pagination, error) {
	var drafts []models.CreativeDraft
	var total int64

	query := s.db.Model(&models.CreativeDraft{}).Where("user_id = ?", userID)
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

	orderBy := "created_at DESC"
	if req.Sort != "" {
		direction := "DESC"
		if req.Order == "asc" {
			direction = "ASC"
		}
		orderBy = fmt.Sprintf("%s %s", req.Sort, direction)
	}

	err := query.Preload("Account").Preload("Files").
		Order(orderBy).Limit(req.Limit).Offset(offset).Find(&drafts).Error
	if err != nil {
		return nil, nil, err
	}

	summaries := lo.Map(drafts, func(d models.CreativeDraft, _ int) models.DraftSummary {
		return models.DraftSummary{
			ID:        d.ID,
			Name:      d.Name,
			Code:      d.Code,
			Status:    d.Status,
			Account:   d.Account.Name,
			FileCount: len(d.Files),
			CreatedAt: d.CreatedAt,
		}
	})

	pagination := &models.Pagination{
		Page:  req.Page,
		Limit: req.Limit,
		Total: int(total),
		Pages: pages,
	}

	return summaries, pagination, nil
}
