package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/farrelzna/Zhourt-URLShortner/internal/models"
	"github.com/farrelzna/Zhourt-URLShortner/internal/repository"

	"github.com/mssola/user_agent"
)

// Device classifications derived from the client signature.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
	DeviceUnknown = "unknown"
)

// ClickRecorder persists click events off the redirect path. Record never
// blocks: events flow through a buffered channel into a worker goroutine,
// and are dropped with a warning when the buffer is full. A lost click is
// acceptable; a delayed redirect is not.
type ClickRecorder struct {
	clicks repository.ClickRepository
	logger *slog.Logger
	geoip  *GeoIPService
	events chan models.Click
}

func NewClickRecorder(clicks repository.ClickRepository, logger *slog.Logger, geoip *GeoIPService) *ClickRecorder {
	return &ClickRecorder{
		clicks: clicks,
		logger: logger,
		geoip:  geoip,
		events: make(chan models.Click, 1000),
	}
}

// Start drains the event channel until the context is cancelled.
func (r *ClickRecorder) Start(ctx context.Context) {
	r.logger.Info("Click recorder starting")
	for {
		select {
		case click := <-r.events:
			r.enrich(&click)
			if err := r.clicks.Create(ctx, &click); err != nil {
				r.logger.Error("Failed to record click", "link_id", click.LinkID, "error", err)
			}
		case <-ctx.Done():
			r.logger.Info("Click recorder stopping")
			return
		}
	}
}

// Record enqueues a click event. Best-effort: full buffer drops the event.
func (r *ClickRecorder) Record(click models.Click) {
	if click.CreatedAt.IsZero() {
		click.CreatedAt = time.Now()
	}
	select {
	case r.events <- click:
	default:
		r.logger.Warn("Click buffer full, dropping event", "link_id", click.LinkID)
	}
}

func (r *ClickRecorder) enrich(click *models.Click) {
	ua := user_agent.New(click.UserAgent)
	browser, version := ua.Browser()
	click.Browser = strings.TrimSpace(browser + " " + version)
	click.OS = ua.OS()
	click.DeviceType = classifyDevice(ua, click.UserAgent)

	country, city := r.geoip.GetLocation(click.IPAddress)
	click.Country = country
	click.City = city

	if click.Referrer == "" {
		click.Referrer = "Direct"
	}

	click.Fingerprint = Fingerprint(click.IPAddress)
	click.IPAddress = ""
}

// classifyDevice maps a parsed user agent onto the coarse device taxonomy.
// Tablets are checked by token first since the parser reports them as
// mobile.
func classifyDevice(ua *user_agent.UserAgent, raw string) string {
	if raw == "" {
		return DeviceUnknown
	}
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "ipad") || strings.Contains(lower, "tablet"):
		return DeviceTablet
	case ua.Bot():
		return DeviceBot
	case ua.Mobile():
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}

// Fingerprint hashes the request origin so unique visitors can be counted
// without retaining addresses.
func Fingerprint(ip string) string {
	if ip == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}
