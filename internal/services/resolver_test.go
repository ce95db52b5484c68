package services

import (
	"context"
	"testing"
	"time"

	"github.com/farrelzna/Zhourt-URLShortner/internal/models"
	"github.com/farrelzna/Zhourt-URLShortner/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableRedis returns a client that fails fast, exercising the
// cache-miss fallthrough without a running server.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:       "localhost:1",
		MaxRetries: -1,
	})
}

func TestResolver_Resolve(t *testing.T) {
	db := setupTestDB(t)
	links := repository.NewLinkRepository(db)
	resolver := NewResolver(links, unreachableRedis(), testLogger())
	ctx := context.Background()

	custom := "promo"
	link := &models.Link{
		UserID:      1,
		Title:       "Promo",
		OriginalURL: "https://example.com/promo",
		ShortCode:   "ab12",
		CustomCode:  &custom,
	}
	require.NoError(t, links.Create(ctx, link))

	t.Run("Resolve by short code", func(t *testing.T) {
		got, err := resolver.Resolve(ctx, "ab12")
		assert.NoError(t, err)
		assert.Equal(t, link.ID, got.LinkID)
		assert.Equal(t, "https://example.com/promo", got.OriginalURL)
	})

	t.Run("Resolve by custom code", func(t *testing.T) {
		got, err := resolver.Resolve(ctx, "promo")
		assert.NoError(t, err)
		assert.Equal(t, link.ID, got.LinkID)
	})

	t.Run("Unassigned code", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "nonexistent")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Empty code", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Expired link", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		expired := &models.Link{
			UserID:      1,
			Title:       "Expired",
			OriginalURL: "https://example.com/old",
			ShortCode:   "xp01",
			ExpiresAt:   &past,
		}
		require.NoError(t, links.Create(ctx, expired))

		_, err := resolver.Resolve(ctx, "xp01")
		assert.ErrorIs(t, err, ErrLinkExpired)
	})

	t.Run("Nil redis client", func(t *testing.T) {
		noCache := NewResolver(links, nil, testLogger())
		got, err := noCache.Resolve(ctx, "ab12")
		assert.NoError(t, err)
		assert.Equal(t, link.ID, got.LinkID)
	})
}
