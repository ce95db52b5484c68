package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/farrelzna/Zhourt-URLShortner/internal/models"

	"gorm.io/gorm"
)

// ClickRepository is the append-only store boundary for click events.
type ClickRepository interface {
	Create(ctx context.Context, click *models.Click) error
	ListByLinkIDs(ctx context.Context, linkIDs []uint, since *time.Time) ([]models.Click, error)
	CountByLinkID(ctx context.Context, linkID uint) (int64, error)
}

type GormClickRepository struct {
	db *gorm.DB
}

func NewClickRepository(db *gorm.DB) *GormClickRepository {
	return &GormClickRepository{db: db}
}

// Create persists one click event. A single insert is atomic in the
// underlying store; there is no partial row to clean up on failure.
func (r *GormClickRepository) Create(ctx context.Context, click *models.Click) error {
	if err := r.db.WithContext(ctx).Create(click).Error; err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}
	return nil
}

func (r *GormClickRepository) ListByLinkIDs(ctx context.Context, linkIDs []uint, since *time.Time) ([]models.Click, error) {
	if len(linkIDs) == 0 {
		return nil, nil
	}

	q := r.db.WithContext(ctx).Where("link_id IN ?", linkIDs)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}

	var clicks []models.Click
	if err := q.Order("created_at asc").Find(&clicks).Error; err != nil {
		return nil, fmt.Errorf("failed to list clicks: %w", err)
	}
	return clicks, nil
}

func (r *GormClickRepository) CountByLinkID(ctx context.Context, linkID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Click{}).
		Where("link_id = ?", linkID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count clicks for link %d: %w", linkID, err)
	}
	return count, nil
}
