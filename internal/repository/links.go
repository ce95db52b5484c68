package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/farrelzna/Zhourt-URLShortner/internal/models"

	"gorm.io/gorm"
)

// LinkRepository is the store boundary for links. Short and custom codes
// share one resolvable namespace: FindByCode matches either column, and
// uniqueness violations on both surface as ErrDuplicateCode.
type LinkRepository interface {
	Create(ctx context.Context, link *models.Link) error
	FindByCode(ctx context.Context, code string) (*models.Link, error)
	FindByID(ctx context.Context, id, userID uint) (*models.Link, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Link, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Link, error)
	SetQRURL(ctx context.Context, id uint, qrURL string) error
	CodeTaken(ctx context.Context, code string) (bool, error)
	Delete(ctx context.Context, id, userID uint) error
}

type GormLinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *GormLinkRepository {
	return &GormLinkRepository{db: db}
}

func (r *GormLinkRepository) Create(ctx context.Context, link *models.Link) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("failed to create link: %w", err)
	}
	return nil
}

func (r *GormLinkRepository) FindByCode(ctx context.Context, code string) (*models.Link, error) {
	var link models.Link
	err := r.db.WithContext(ctx).
		Where("short_code = ? OR custom_code = ?", code, code).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up code %q: %w", code, err)
	}
	return &link, nil
}

func (r *GormLinkRepository) FindByID(ctx context.Context, id, userID uint) (*models.Link, error) {
	var link models.Link
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up link %d: %w", id, err)
	}
	return &link, nil
}

func (r *GormLinkRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Link, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var links []models.Link
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load links: %w", err)
	}
	return links, nil
}

func (r *GormLinkRepository) ListByUser(ctx context.Context, userID uint) ([]models.Link, error) {
	var links []models.Link
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list links for user %d: %w", userID, err)
	}
	return links, nil
}

func (r *GormLinkRepository) SetQRURL(ctx context.Context, id uint, qrURL string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Link{}).
		Where("id = ?", id).
		Update("qr_url", qrURL).Error
	if err != nil {
		return fmt.Errorf("failed to set qr url for link %d: %w", id, err)
	}
	return nil
}

func (r *GormLinkRepository) CodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Link{}).
		Where("short_code = ? OR custom_code = ?", code, code).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check code %q: %w", code, err)
	}
	return count > 0, nil
}

// Delete removes a link and its clicks in one transaction. The schema also
// declares ON DELETE CASCADE; the explicit delete keeps sqlite test
// databases without foreign key enforcement behaving the same way.
func (r *GormLinkRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Link{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete link %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("link_id = ?", id).Delete(&models.Click{}).Error; err != nil {
			return fmt.Errorf("failed to delete clicks for link %d: %w", id, err)
		}
		return nil
	})
}
