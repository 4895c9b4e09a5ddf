package services

import (
	"fmt"
	"math"
	"strings"

	"adhub-backend/internal/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// GetAccounts lists accounts visible to the caller: admins see
// everything, staff and users see the accounts managed under their
// email.
func (s *AccountService) GetAccounts(user *models.User, req *models.AccountListRequest) ([]models.Account, *models.Pagination, error) {
	var accounts []models.Account
	var total int64

	query := s.db.Model(&models.Account{})
	if user.Role != "admin" {
		query = query.Where("manager_email = ?", user.Email)
	}

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Search != "" {
		query = query.Where("name ILIKE ?", "%"+req.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	offset := (req.Page - 1) * req.Limit
	pages := int(math.Ceil(float64(total) / float64(req.Limit)))

	if err := query.Order("name ASC").Limit(req.Limit).Offset(offset).Find(&accounts).Error; err != nil {
		return nil, nil, err
	}

	pagination := &models.Pagination{
		Page:  req.Page,
		Limit: req.Limit,
		Total: int(total),
		Pages: pages,
	}

	return accounts, pagination, nil
}

func (s *AccountService) GetAccount(user *models.User, accountID uint) (*models.Account, error) {
	var account models.Account
	query := s.db.Where("id = ?", accountID)
	if user.Role != "admin" {
		query = query.Where("manager_email = ?", user.Email)
	}
	if err := query.First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountService) UpdateAccount(accountID uint, req *models.AccountUpdateRequest) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, accountID).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.Tier != "" {
		updates["tier"] = req.Tier
	}
	if req.ManagerEmail != "" {
		updates["manager_email"] = strings.ToLower(req.ManagerEmail)
	}
	if req.Objectives != "" {
		updates["objectives"] = req.Objectives
	}

	if len(updates) > 0 {
		if err := s.db.Model(&account).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return &account, nil
}

// Summaries projects accounts into the light list the dashboard
// selectors use, including the generated account code.
func (s *AccountService) Summaries(user *models.User) ([]models.AccountSummary, error) {
	var accounts []models.Account
	query := s.db.Where("status = ?", "active")
	if user.Role != "admin" {
		query = query.Where("manager_email = ?", user.Email)
	}
	if err := query.Order("name ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}

	return lo.Map(accounts, func(a models.Account, _ int) models.AccountSummary {
		return models.AccountSummary{
			ID:     a.ID,
			Name:   a.Name,
			Status: a.Status,
			Code:   AccountCode(a.Name, fmt.Sprintf("%d", a.ID)),
		}
	}), nil
}
