package services

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/farrelzna/Zhourt-URLShortner/internal/repository"
)

// topLinksLimit caps the top-links list in an aggregated view.
const topLinksLimit = 5

type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type LinkClicks struct {
	LinkID uint   `json:"link_id"`
	Code   string `json:"code"`
	Title  string `json:"title"`
	Clicks int64  `json:"clicks"`
}

// AnalyticsView is a read-only summary of click events for a set of links.
type AnalyticsView struct {
	TotalClicks       int64            `json:"total_clicks"`
	UniqueVisitors    int64            `json:"unique_visitors"`
	DeviceBreakdown   map[string]int64 `json:"device_breakdown"`
	LocationBreakdown map[string]int64 `json:"location_breakdown"`
	ClicksPerDay      []DayCount       `json:"clicks_per_day"`
	TopLinks          []LinkClicks     `json:"top_links"`
	AvgClicksPerDay   float64          `json:"avg_clicks_per_day"`
}

// AnalyticsService aggregates persisted click events. It never mutates
// its inputs and aggregation over an empty click set yields a zero view.
type AnalyticsService struct {
	links  repository.LinkRepository
	clicks repository.ClickRepository
	logger *slog.Logger
}

func NewAnalyticsService(links repository.LinkRepository, clicks repository.ClickRepository, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		links:  links,
		clicks: clicks,
		logger: logger,
	}
}

// Aggregate summarizes the clicks of the given links, optionally limited
// to events at or after since. Identical inputs produce identical views.
func (s *AnalyticsService) Aggregate(ctx context.Context, linkIDs []uint, since *time.Time) (*AnalyticsView, error) {
	view := &AnalyticsView{
		DeviceBreakdown:   make(map[string]int64),
		LocationBreakdown: make(map[string]int64),
		ClicksPerDay:      []DayCount{},
		TopLinks:          []LinkClicks{},
	}
	if len(linkIDs) == 0 {
		return view, nil
	}

	clicks, err := s.clicks.ListByLinkIDs(ctx, linkIDs, since)
	if err != nil {
		return nil, err
	}

	visitors := make(map[string]struct{})
	perLink := make(map[uint]int64)
	perDay := make(map[string]int64)

	for _, c := range clicks {
		view.TotalClicks++
		perLink[c.LinkID]++
		perDay[c.CreatedAt.Format("2006-01-02")]++

		device := c.DeviceType
		if device == "" {
			device = DeviceUnknown
		}
		view.DeviceBreakdown[device]++

		location := c.Country
		if location == "" {
			location = "Unknown"
		}
		view.LocationBreakdown[location]++

		if c.Fingerprint != "" {
			visitors[c.Fingerprint] = struct{}{}
		}
	}
	view.UniqueVisitors = int64(len(visitors))

	for day, count := range perDay {
		view.ClicksPerDay = append(view.ClicksPerDay, DayCount{Date: day, Count: count})
	}
	sort.Slice(view.ClicksPerDay, func(i, j int) bool {
		return view.ClicksPerDay[i].Date < view.ClicksPerDay[j].Date
	})

	topLinks, err := s.topLinks(ctx, perLink)
	if err != nil {
		return nil, err
	}
	view.TopLinks = topLinks

	return view, nil
}

// topLinks joins per-link counts against link metadata and returns the
// busiest links, count descending with link ID ascending as the
// deterministic tie-break.
func (s *AnalyticsService) topLinks(ctx context.Context, perLink map[uint]int64) ([]LinkClicks, error) {
	if len(perLink) == 0 {
		return []LinkClicks{}, nil
	}

	ids := make([]uint, 0, len(perLink))
	for id := range perLink {
		ids = append(ids, id)
	}
	links, err := s.links.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	top := make([]LinkClicks, 0, len(links))
	for _, link := range links {
		top = append(top, LinkClicks{
			LinkID: link.ID,
			Code:   link.Code(),
			Title:  link.Title,
			Clicks: perLink[link.ID],
		})
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].Clicks != top[j].Clicks {
			return top[i].Clicks > top[j].Clicks
		}
		return top[i].LinkID < top[j].LinkID
	})

	if len(top) > topLinksLimit {
		top = top[:topLinksLimit]
	}
	return top, nil
}

// AvgClicksPerDay divides total clicks by the link's age in days, never
// by less than one day, rounded to two decimals.
func AvgClicksPerDay(total int64, createdAt, now time.Time) float64 {
	days := int64(now.Sub(createdAt).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return math.Round(float64(total)/float64(days)*100) / 100
}
