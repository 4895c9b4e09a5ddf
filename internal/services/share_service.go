package services

import (
	"errors"
	"time"

	"adhub-backend/internal/models"
	"adhub-backend/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrShareNotFound        = errors.New("resource not found")
	ErrShareForbidden       = errors.New("no permission to share this resource")
	ErrShareKindUnknown     = errors.New("unknown share kind")
	ErrShareExpired         = errors.New("share link has expired")
	ErrSharePasswordNeeded  = errors.New("password required")
	ErrShareInvalidPassword = errors.New("invalid password")
)

// ShareKind registers one shareable record kind with the service. The
// same issuance and resolution logic serves every kind; only the lookup
// target, the public URL prefix and the public payload differ.
type ShareKind struct {
	Name       string
	PathPrefix string
	NewModel   func() models.Shareable
	Preloads   []string
	// Payload projects the record into what anonymous viewers may see.
	Payload func(models.Shareable) interface{}
}

type ShareService struct {
	db      *gorm.DB
	params  utils.PasswordParams
	siteURL string
	kinds   map[string]ShareKind
}

func NewShareService(db *gorm.DB, siteURL string, params utils.PasswordParams) *ShareService {
	return &ShareService{
		db:      db,
		params:  params,
		siteURL: siteURL,
		kinds:   make(map[string]ShareKind),
	}
}

func (s *ShareService) Register(kind ShareKind) {
	s.kinds[kind.Name] = kind
}

func (s *ShareService) find(kind ShareKind, conds string, args ...interface{}) (models.Shareable, error) {
	model := kind.NewModel()
	query := s.db
	for _, preload := range kind.Preloads {
		query = query.Preload(preload)
	}
	if err := query.Where(conds, args...).First(model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}
	return model, nil
}

func canShare(user *models.User, resource models.Shareable) bool {
	return user.Role == "admin" || user.Role == "staff" || resource.OwnerID() == user.ID
}

// Issue publishes a resource under a slug, optionally gated by a
// password. Re-issuing keeps an existing slug so links stay stable and
// only refreshes the password and expiry.
func (s *ShareService) Issue(user *models.User, kindName string, req *models.ShareCreateRequest) (*models.ShareCreateResponse, error) {
	kind, ok := s.kinds[kindName]
	if !ok {
		return nil, ErrShareKindUnknown
	}

	resource, err := s.find(kind, "id = ?", req.ResourceID)
	if err != nil {
		return nil, err
	}

	if !canShare(user, resource) {
		return nil, ErrShareForbidden
	}

	share := resource.ShareState()

	slug := ""
	if share.Slug != nil {
		slug = *share.Slug
	} else {
		title, createdAt := resource.SlugSource()
		slug = utils.ShareSlug(title, createdAt)
	}

	plain := req.Password
	generated := false
	if plain == "" && req.GeneratePassword {
		plain, err = utils.GeneratePassword(10)
		if err != nil {
			return nil, err
		}
		generated = true
	}

	var passwordHash *string
	if plain != "" {
		hashed, err := s.params.HashPassword(plain)
		if err != nil {
			return nil, err
		}
		passwordHash = &hashed
	}

	var expiresAt *time.Time
	if req.ExpiresDays > 0 {
		t := time.Now().AddDate(0, 0, req.ExpiresDays)
		expiresAt = &t
	}

	now := time.Now()
	updates := map[string]interface{}{
		"slug":             slug,
		"is_public":        true,
		"password_hash":    passwordHash,
		"share_expires_at": expiresAt,
		"share_created_at": now,
	}
	if err := s.db.Model(resource).Updates(updates).Error; err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"kind":      kind.Name,
		"resource":  resource.ResourceID(),
		"protected": passwordHash != nil,
	}).Info("share link issued")

	resp := &models.ShareCreateResponse{
		Success:           true,
		URL:               s.siteURL + kind.PathPrefix + "/" + slug,
		Slug:              slug,
		PasswordProtected: passwordHash != nil,
	}
	if generated {
		resp.Password = plain
	}
	return resp, nil
}

// Resolve serves a shared resource to an anonymous viewer. Unknown
// slugs and slugs of records that are no longer public are
// indistinguishable to the caller.
func (s *ShareService) Resolve(kindName, slug, password string) (interface{}, error) {
	kind, ok := s.kinds[kindName]
	if !ok {
		return nil, ErrShareKindUnknown
	}

	resource, err := s.find(kind, "slug = ? AND is_public = ?", slug, true)
	if err != nil {
		return nil, err
	}

	share := resource.ShareState()

	if share.ShareExpiresAt != nil && time.Now().After(*share.ShareExpiresAt) {
		return nil, ErrShareExpired
	}

	if share.PasswordHash != nil && *share.PasswordHash != "" {
		if password == "" {
			return nil, ErrSharePasswordNeeded
		}
		if !s.params.VerifyPassword(password, *share.PasswordHash) {
			return nil, ErrShareInvalidPassword
		}
	}

	go func() {
		s.db.Model(resource).UpdateColumn("share_view_count", gorm.Expr("share_view_count + 1"))
	}()

	return kind.Payload(resource), nil
}

// Revoke disables public access. The slug stays on the record so it can
// never be handed to a different resource later.
func (s *ShareService) Revoke(user *models.User, kindName, resourceID string) error {
	kind, ok := s.kinds[kindName]
	if !ok {
		return ErrShareKindUnknown
	}

	resource, err := s.find(kind, "id = ?", resourceID)
	if err != nil {
		return err
	}

	if !canShare(user, resource) {
		return ErrShareForbidden
	}

	return s.db.Model(resource).Update("is_public", false).Error
}
