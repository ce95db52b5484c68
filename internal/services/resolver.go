package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/farrelzna/Zhourt-URLShortner/internal/models"
	"github.com/farrelzna/Zhourt-URLShortner/internal/repository"

	"github.com/redis/go-redis/v9"
)

const resolveCacheTTL = 10 * time.Minute

// ResolvedLink is the outcome of a successful resolution.
type ResolvedLink struct {
	LinkID      uint
	OriginalURL string
}

// Resolver maps an inbound code to its destination. Lookups go through a
// Redis cache first; cache trouble falls through to the database so a
// degraded cache never breaks redirects.
type Resolver struct {
	links  repository.LinkRepository
	rdb    *redis.Client
	logger *slog.Logger
}

func NewResolver(links repository.LinkRepository, rdb *redis.Client, logger *slog.Logger) *Resolver {
	return &Resolver{
		links:  links,
		rdb:    rdb,
		logger: logger,
	}
}

// Resolve returns the link behind a code. ErrNotFound is terminal for the
// request; ErrLinkExpired means the code matched but the link is past its
// expiry. Resolve itself records nothing: the caller decides whether a
// click event is enqueued.
func (r *Resolver) Resolve(ctx context.Context, code string) (*ResolvedLink, error) {
	if code == "" {
		return nil, ErrNotFound
	}

	link, cached := r.fromCache(ctx, code)
	if !cached {
		var err error
		link, err = r.links.FindByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		r.toCache(ctx, code, link)
	}

	if link.Expired(time.Now()) {
		return nil, ErrLinkExpired
	}

	return &ResolvedLink{LinkID: link.ID, OriginalURL: link.OriginalURL}, nil
}

func (r *Resolver) fromCache(ctx context.Context, code string) (*models.Link, bool) {
	if r.rdb == nil {
		return nil, false
	}
	val, err := r.rdb.Get(ctx, "link:"+code).Result()
	if err != nil {
		return nil, false
	}
	var link models.Link
	if err := json.Unmarshal([]byte(val), &link); err != nil {
		return nil, false
	}
	return &link, true
}

func (r *Resolver) toCache(ctx context.Context, code string, link *models.Link) {
	if r.rdb == nil {
		return
	}
	data, err := json.Marshal(link)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, "link:"+code, data, resolveCacheTTL).Err(); err != nil {
		r.logger.Debug("Failed to cache link", "code", code, "error", err)
	}
}

// Invalidate drops a cached code, used after link deletion.
func (r *Resolver) Invalidate(ctx context.Context, codes ...string) {
	if r.rdb == nil {
		return
	}
	for _, code := range codes {
		if err := r.rdb.Del(ctx, "link:"+code).Err(); err != nil {
			r.logger.Debug("Failed to invalidate cached link", "code", code, "error", err)
		}
	}
}
