package services

import (
	"errors"
	"fmt"
	"strings"

	"adhub-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrNotWhitelisted = errors.New("email is not authorized, contact your manager")

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// whitelistedManager returns the active manager row for an email, or
// ErrNotWhitelisted. Registration and the pre-login check both go
// through here.
func (s *AuthService) whitelistedManager(email string) (*models.Manager, error) {
	var manager models.Manager
	err := s.db.Where("email = ? AND status = ?", strings.ToLower(email), "active").First(&manager).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotWhitelisted
		}
		return nil, err
	}
	return &manager, nil
}

func (s *AuthService) CheckWhitelist(email string) (*models.WhitelistCheckResponse, error) {
	manager, err := s.whitelistedManager(email)
	if err != nil {
		if errors.Is(err, ErrNotWhitelisted) {
			return &models.WhitelistCheckResponse{
				Authorized: false,
				Message:    "email is not authorized, contact your manager",
			}, nil
		}
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&count).Error; err != nil {
		return nil, err
	}

	return &models.WhitelistCheckResponse{
		Authorized:  true,
		HasAccount:  count > 0,
		ManagerName: manager.Name,
		Status:      manager.Status,
	}, nil
}

func (s *AuthService) Register(req *models.UserRegisterRequest) (*models.User, error) {
	email := strings.ToLower(req.Email)

	manager, err := s.whitelistedManager(email)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         manager.Role,
		IsActive:     true,
	}
	if user.Role == "" {
		user.Role = "user"
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	// storage rollup row, created once per user
	storage := models.UserStorage{UserID: user.ID}
	if err := s.db.Create(&storage).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *AuthService) Login(req *models.UserLoginRequest) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ? AND is_active = ?", strings.ToLower(req.Email), true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return &user, nil
}

func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) GetUserStorage(userID uint) (*models.UserStorage, error) {
	var storage models.UserStorage
	if err := s.db.Where("user_id = ?", userID).First(&storage).Error; err != nil {
		return nil, err
	}
	return &storage, nil
}
