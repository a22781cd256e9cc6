package repository

import (
	"context"
	"time"

	"commune/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts.
//
// Create does not verify that the target community exists; that check happens
// one layer up, in the route handler, before this layer is reached.
type PostRepository interface {
	ListByCommunity(ctx context.Context, communityID uint) ([]models.Post, error)
	Create(ctx context.Context, post *models.Post) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// ListByCommunity returns every post in the community, regardless of the
// caller's membership; reading posts requires no authentication.
func (r *postRepository) ListByCommunity(ctx context.Context, communityID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Where("community_id = ?", communityID).
		Order("created_at ASC, id ASC").
		Find(&posts).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return posts, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}
