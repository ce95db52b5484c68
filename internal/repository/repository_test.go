package repository

import (
	"context"
	"testing"
	"time"

	"github.com/farrelzna/Zhourt-URLShortner/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Link{}, &models.Click{}))
	return db
}

func TestLinkRepository_CreateAndFindByCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLinkRepository(db)
	ctx := context.Background()

	link := &models.Link{
		UserID:      1,
		Title:       "Example",
		OriginalURL: "https://example.com",
		ShortCode:   "ab12",
	}
	require.NoError(t, repo.Create(ctx, link))
	assert.NotZero(t, link.ID)

	t.Run("Resolve by short code", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, "ab12")
		assert.NoError(t, err)
		assert.Equal(t, "https://example.com", found.OriginalURL)
	})

	t.Run("Resolve by custom code", func(t *testing.T) {
		custom := "promo"
		withCustom := &models.Link{
			UserID:      1,
			Title:       "Promo",
			OriginalURL: "https://example.com/promo",
			ShortCode:   "cd34",
			CustomCode:  &custom,
		}
		require.NoError(t, repo.Create(ctx, withCustom))

		found, err := repo.FindByCode(ctx, "promo")
		assert.NoError(t, err)
		assert.Equal(t, withCustom.ID, found.ID)

		// The generated code still resolves too.
		found, err = repo.FindByCode(ctx, "cd34")
		assert.NoError(t, err)
		assert.Equal(t, withCustom.ID, found.ID)
	})

	t.Run("Unassigned code", func(t *testing.T) {
		_, err := repo.FindByCode(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLinkRepository_DuplicateCodes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLinkRepository(db)
	ctx := context.Background()

	first := &models.Link{UserID: 1, Title: "A", OriginalURL: "https://a.com", ShortCode: "dup1"}
	require.NoError(t, repo.Create(ctx, first))

	t.Run("Duplicate short code", func(t *testing.T) {
		err := repo.Create(ctx, &models.Link{UserID: 2, Title: "B", OriginalURL: "https://b.com", ShortCode: "dup1"})
		assert.ErrorIs(t, err, ErrDuplicateCode)
	})

	t.Run("Duplicate custom code", func(t *testing.T) {
		custom := "mysale"
		require.NoError(t, repo.Create(ctx, &models.Link{UserID: 1, Title: "C", OriginalURL: "https://c.com", ShortCode: "cc01", CustomCode: &custom}))

		err := repo.Create(ctx, &models.Link{UserID: 2, Title: "D", OriginalURL: "https://d.com", ShortCode: "cc02", CustomCode: &custom})
		assert.ErrorIs(t, err, ErrDuplicateCode)
	})

	t.Run("CodeTaken sees both namespaces", func(t *testing.T) {
		taken, err := repo.CodeTaken(ctx, "dup1")
		assert.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.CodeTaken(ctx, "mysale")
		assert.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.CodeTaken(ctx, "free")
		assert.NoError(t, err)
		assert.False(t, taken)
	})
}

func TestLinkRepository_OwnerScope(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLinkRepository(db)
	ctx := context.Background()

	link := &models.Link{UserID: 7, Title: "Mine", OriginalURL: "https://mine.com", ShortCode: "mine"}
	require.NoError(t, repo.Create(ctx, link))

	_, err := repo.FindByID(ctx, link.ID, 7)
	assert.NoError(t, err)

	_, err = repo.FindByID(ctx, link.ID, 8)
	assert.ErrorIs(t, err, ErrNotFound)

	links, err := repo.ListByUser(ctx, 7)
	assert.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestLinkRepository_DeleteCascadesToClicks(t *testing.T) {
	db := setupTestDB(t)
	links := NewLinkRepository(db)
	clicks := NewClickRepository(db)
	ctx := context.Background()

	link := &models.Link{UserID: 1, Title: "Doomed", OriginalURL: "https://doomed.com", ShortCode: "doom"}
	require.NoError(t, links.Create(ctx, link))
	require.NoError(t, clicks.Create(ctx, &models.Click{LinkID: link.ID, DeviceType: "desktop"}))
	require.NoError(t, clicks.Create(ctx, &models.Click{LinkID: link.ID, DeviceType: "mobile"}))

	require.NoError(t, links.Delete(ctx, link.ID, 1))

	_, err := links.FindByCode(ctx, "doom")
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := clicks.CountByLinkID(ctx, link.ID)
	assert.NoError(t, err)
	assert.Zero(t, count)

	t.Run("Delete wrong owner", func(t *testing.T) {
		other := &models.Link{UserID: 1, Title: "Kept", OriginalURL: "https://kept.com", ShortCode: "kept"}
		require.NoError(t, links.Create(ctx, other))

		err := links.Delete(ctx, other.ID, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestClickRepository_ListByLinkIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClickRepository(db)
	ctx := context.Background()

	now := time.Now()
	old := models.Click{LinkID: 1, CreatedAt: now.Add(-48 * time.Hour), DeviceType: "desktop"}
	recent := models.Click{LinkID: 1, CreatedAt: now.Add(-time.Hour), DeviceType: "mobile"}
	otherLink := models.Click{LinkID: 2, CreatedAt: now, DeviceType: "tablet"}
	require.NoError(t, repo.Create(ctx, &old))
	require.NoError(t, repo.Create(ctx, &recent))
	require.NoError(t, repo.Create(ctx, &otherLink))

	t.Run("Empty id set", func(t *testing.T) {
		got, err := repo.ListByLinkIDs(ctx, nil, nil)
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("All clicks for one link, ordered", func(t *testing.T) {
		got, err := repo.ListByLinkIDs(ctx, []uint{1}, nil)
		assert.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, "desktop", got[0].DeviceType)
		assert.Equal(t, "mobile", got[1].DeviceType)
	})

	t.Run("Window filter", func(t *testing.T) {
		since := now.Add(-24 * time.Hour)
		got, err := repo.ListByLinkIDs(ctx, []uint{1, 2}, &since)
		assert.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
