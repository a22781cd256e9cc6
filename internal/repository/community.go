package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"commune/internal/models"

	"gorm.io/gorm"
)

// CommunityRepository defines persistence operations for communities and
// memberships.
type CommunityRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Community, error)
	// List returns all communities when query is empty; otherwise communities
	// whose name or description contains query, case-insensitively.
	List(ctx context.Context, query string) ([]models.Community, error)
	Create(ctx context.Context, community *models.Community) error
	Join(ctx context.Context, userID, communityID uint) error
	Leave(ctx context.Context, userID, communityID uint) error
	IsMember(ctx context.Context, userID, communityID uint) (bool, error)
}

type communityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository returns a new CommunityRepository implementation.
func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) GetByID(ctx context.Context, id uint) (*models.Community, error) {
	var community models.Community
	if err := r.db.WithContext(ctx).First(&community, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStoreError(err)
	}
	return &community, nil
}

func (r *communityRepository) List(ctx context.Context, query string) ([]models.Community, error) {
	// Ordering by creation keeps the result deterministic; the id tiebreak
	// covers rows created within the same timestamp.
	tx := r.db.WithContext(ctx).Order("created_at ASC, id ASC")

	if q := strings.TrimSpace(query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var communities []models.Community
	if err := tx.Find(&communities).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return communities, nil
}

func (r *communityRepository) Create(ctx context.Context, community *models.Community) error {
	if community.CreatedAt.IsZero() {
		community.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(community).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

// Join inserts a membership row unconditionally. There is no duplicate check,
// so repeated joins create additional rows; Leave removes them all.
func (r *communityRepository) Join(ctx context.Context, userID, communityID uint) error {
	membership := models.Membership{UserID: userID, CommunityID: communityID}
	if err := r.db.WithContext(ctx).Create(&membership).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

// Leave deletes every membership row for the pair. Leaving a community the
// user never joined is a no-op, not an error.
func (r *communityRepository) Leave(ctx context.Context, userID, communityID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND community_id = ?", userID, communityID).
		Delete(&models.Membership{}).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *communityRepository) IsMember(ctx context.Context, userID, communityID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Membership{}).
		Where("user_id = ? AND community_id = ?", userID, communityID).
		Count(&count).Error; err != nil {
		return false, models.NewStoreError(err)
	}
	return count > 0, nil
}
